package configs

import "github.com/spf13/viper"

const (
	DefaultJWTSecret      = "photovault-dev-secret" // 仅供本地开发，生产环境必须覆盖
	DefaultJWTIssuer      = "photovault"
	DefaultJWTExpiryHours = 24
	DefaultBcryptCost     = 10
)

// AuthConfig 控制 JWT 认证与密码哈希策略.
type AuthConfig struct {
	Enabled        bool     `mapstructure:"enabled"`          // 开启认证校验
	JWTSecret      string   `mapstructure:"jwt_secret"`       // HS256 签名密钥
	JWTIssuer      string   `mapstructure:"jwt_issuer"`       // 令牌签发者
	JWTExpiryHours int      `mapstructure:"jwt_expiry_hours"` // 令牌有效期（小时）
	BcryptCost     int      `mapstructure:"bcrypt_cost"       rule:"min=4,max=31"`
	SkipPaths      []string `mapstructure:"skip_paths"`       // 跳过认证的路径前缀（如 /metrics、/health）
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.jwt_issuer", DefaultJWTIssuer)
	v.SetDefault("auth.jwt_expiry_hours", DefaultJWTExpiryHours)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/health",
		"/uploads",
		"/api/auth/login",
	})
}
