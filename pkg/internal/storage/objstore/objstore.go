// Package objstore 提供对象存储的统一接口，支持 S3(MinIO) 与本地磁盘两种实现.
// 未配置 S3 凭证时自动回退到本地磁盘存储.
package objstore

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yeisme/photovault/pkg/configs"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// ErrObjectNotFound 对象不存在.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo 描述存储中的一个对象.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore 定义对象存储接口.
type ObjectStore interface {
	// Store 写入对象. size 为 -1 时表示长度未知.
	Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// SignedDownloadURL 生成带有效期的下载 URL.
	SignedDownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete 删除对象. 对象不存在视为成功（幂等）.
	Delete(ctx context.Context, key string) error
	// List 按前缀列出对象，用于孤儿对象清理.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// HealthCheck 验证底层存储可用.
	HealthCheck(ctx context.Context) error
	// Close 关闭存储连接.
	Close() error
}

// Client 包装具体的 ObjectStore 实现.
type Client struct {
	ObjectStore

	// local 标记当前是否为本地磁盘实现.
	local bool
}

// IsLocal 返回当前实现是否为本地磁盘存储.
func (c *Client) IsLocal() bool {
	return c.local
}

// BaseDir 返回本地磁盘实现的根目录，非本地实现返回空串.
func (c *Client) BaseDir() string {
	if ls, ok := c.ObjectStore.(*LocalStore); ok {
		return ls.BaseDir()
	}

	return ""
}

// New 根据配置创建对象存储客户端：有 S3 凭证则连接 MinIO，否则回退本地磁盘.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig()

	if cfg.S3.HasCredentials() {
		store, err := newS3Store(ctx, &cfg.S3)
		if err != nil {
			return nil, err
		}

		return &Client{ObjectStore: store}, nil
	}

	store, err := newLocalStore(cfg.Upload.LocalStorageDir, cfg.Upload.LocalPublicBaseURL)
	if err != nil {
		return nil, err
	}

	nlog.Logger().Warn().
		Str("dir", cfg.Upload.LocalStorageDir).
		Msg("S3 凭证未配置，对象存储回退到本地磁盘")

	return &Client{ObjectStore: store, local: true}, nil
}
