package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore 本地磁盘对象存储实现，无 S3 凭证时的回退方案.
// 对象 key 映射为 baseDir 下的相对路径，"签名" URL 为无真实有效期的公开路径.
type LocalStore struct {
	baseDir string
	baseURL string
}

func newLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create local storage dir %s: %w", baseDir, err)
	}

	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// resolve 将对象 key 转换为本地路径，拒绝目录穿越.
func (l *LocalStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object key: %s", key)
	}

	return filepath.Join(l.baseDir, filepath.FromSlash(clean)), nil
}

// Store 将对象写入本地磁盘.
func (l *LocalStore) Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("create file %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)

		return fmt.Errorf("write file %s: %w", key, err)
	}

	return f.Close()
}

// SignedDownloadURL 返回公开访问路径，本地实现没有真实的过期语义.
func (l *LocalStore) SignedDownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	p, err := l.resolve(key)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrObjectNotFound
		}

		return "", fmt.Errorf("stat file %s: %w", key, err)
	}

	return l.baseURL + "/uploads/" + strings.TrimPrefix(path.Clean("/"+key), "/"), nil
}

// Delete 删除本地对象，不存在视为成功.
func (l *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", key, err)
	}

	return nil
}

// List 按前缀列出本地对象.
func (l *LocalStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var infos []ObjectInfo

	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.baseDir, p)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		infos = append(infos, ObjectInfo{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk local storage: %w", err)
	}

	return infos, nil
}

// HealthCheck 验证存储目录可用.
func (l *LocalStore) HealthCheck(ctx context.Context) error {
	_, err := os.Stat(l.baseDir)
	return err
}

// Close 关闭本地存储（无实际操作，接口兼容）.
func (l *LocalStore) Close() error {
	return nil
}

// BaseDir 返回本地存储根目录，供静态文件路由使用.
func (l *LocalStore) BaseDir() string {
	return l.baseDir
}
