package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled   bool                  `mapstructure:"enabled"` // 总开关
	Object    ObjectEventsConfig    `mapstructure:"object"`
	Analytics AnalyticsEventsConfig `mapstructure:"analytics"`
}

// ObjectEventsConfig 针对对象存储领域的事件开关。
type ObjectEventsConfig struct {
	Stored  bool `mapstructure:"stored"`
	Deleted bool `mapstructure:"deleted"`
}

// AnalyticsEventsConfig 针对行为分析领域的事件开关。
type AnalyticsEventsConfig struct {
	Login    bool `mapstructure:"login"`
	View     bool `mapstructure:"view"`
	Download bool `mapstructure:"download"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 对象领域的事件：默认仅开启最小必要集，避免噪声过大
	v.SetDefault("events.object.stored", true)
	v.SetDefault("events.object.deleted", true)

	// 行为分析事件：默认全部开启，消费端落库
	v.SetDefault("events.analytics.login", true)
	v.SetDefault("events.analytics.view", true)
	v.SetDefault("events.analytics.download", true)
}
