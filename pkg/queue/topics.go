// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：pv.<域>.<动作>，尽量稳定且向后兼容.
// 域：object(对象存储)、analytics(行为分析)
// 动作：存储相关(stored/deleted)、行为相关(login/view/download)

const (
	// 对象存储领域.
	TopicObjectStored  = "pv.object.stored"  // 对象已写入存储且元数据落库
	TopicObjectDeleted = "pv.object.deleted" // 对象从存储中删除

	// 行为分析领域.
	TopicAnalyticsLogin    = "pv.analytics.login"    // 用户登录
	TopicAnalyticsView     = "pv.analytics.view"     // 图片被查看
	TopicAnalyticsDownload = "pv.analytics.download" // 图片被下载
)

// 主题分组，用于批量订阅.
var (
	// 对象存储相关主题集合.
	ObjectTopics = []string{
		TopicObjectStored, TopicObjectDeleted,
	}

	// 行为分析相关主题集合.
	AnalyticsTopics = []string{
		TopicAnalyticsLogin, TopicAnalyticsView, TopicAnalyticsDownload,
	}
)
