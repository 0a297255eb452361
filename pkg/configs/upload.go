package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultUploadMaxSizeBytes   = 50 * 1024 * 1024 // 单文件上限 50MB
	DefaultUploadBatchMax       = 20               // 批量上传单次最大文件数
	DefaultSignedURLTTLSeconds  = 3600             // 预签名下载 URL 有效期（秒）
	DefaultLocalStorageDir      = "uploads"        // 本地存储目录（无 S3 凭证时回退）
	DefaultLocalPublicBaseURL   = ""               // 本地存储对外基础 URL，空则用请求 Host
	DefaultUploadConcurrency    = 4                // 批量上传并发度
	DefaultAllowedFileTypeRegex = `(?i)\.(jpeg|jpg|png|gif|bmp|webp|mp4|mov|avi|webm)$`
)

// UploadConfig 上传与下载策略配置.
type UploadConfig struct {
	MaxSizeBytes        int64  `mapstructure:"max_size_bytes"        rule:"min=1"`
	BatchMax            int    `mapstructure:"batch_max"             rule:"min=1,max=100"`
	SignedURLTTLSeconds int    `mapstructure:"signed_url_ttl"        rule:"min=60"`
	Concurrency         int    `mapstructure:"concurrency"           rule:"min=1,max=32"`
	LocalStorageDir     string `mapstructure:"local_storage_dir"`
	LocalPublicBaseURL  string `mapstructure:"local_public_base_url"`
}

// GetSignedURLTTL 返回预签名 URL 有效期.
func (c *UploadConfig) GetSignedURLTTL() time.Duration {
	return time.Duration(c.SignedURLTTLSeconds) * time.Second
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_size_bytes", DefaultUploadMaxSizeBytes)
	v.SetDefault("upload.batch_max", DefaultUploadBatchMax)
	v.SetDefault("upload.signed_url_ttl", DefaultSignedURLTTLSeconds)
	v.SetDefault("upload.concurrency", DefaultUploadConcurrency)
	v.SetDefault("upload.local_storage_dir", DefaultLocalStorageDir)
	v.SetDefault("upload.local_public_base_url", DefaultLocalPublicBaseURL)
}
