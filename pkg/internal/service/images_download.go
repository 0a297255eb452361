package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/cache"
	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/storage/objstore"
	"github.com/yeisme/photovault/pkg/internal/types"
	nlog "github.com/yeisme/photovault/pkg/log"
	"github.com/yeisme/photovault/pkg/queue"
)

// downloadURLCacheKey 以对象键哈希作为缓存键，避免超长 key.
func downloadURLCacheKey(storageKey string) string {
	return fmt.Sprintf("signed-url:%x", xxhash.Sum64String(storageKey))
}

// DownloadURL 生成图片的带时效下载 URL，访问受控.
// URL 在 KV 中缓存 TTL 的一半，保证返回的 URL 至少还有半程有效期；
// 同时递增下载计数并记录 download 事件.
func (s *ImageService) DownloadURL(ctx context.Context, actor *model.User, imageID string) (*types.DownloadURLResponse, error) {
	img, _, err := s.requireImageAccess(ctx, actor, imageID)
	if err != nil {
		return nil, err
	}

	cfg := configs.GetConfig()
	ttl := cfg.Upload.GetSignedURLTTL()

	signer := func() (string, error) {
		return s.obj.SignedDownloadURL(ctx, img.StorageKey, ttl)
	}

	var url string
	if s.kv != nil {
		url, err = cache.GetOrSet(ctx, cache.NewCache(s.kv.KVStore), downloadURLCacheKey(img.StorageKey), signer, ttl/2)
	} else {
		url, err = signer()
	}

	if err != nil {
		if errors.Is(err, objstore.ErrObjectNotFound) {
			return nil, apperr.NotFound("image object")
		}

		return nil, apperr.StorageUnavailable(err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Image{}).
		Where("id = ?", imageID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		// 计数失败不影响下载
		nlog.Logger().Warn().Err(err).Str("image", imageID).Msg("递增下载计数失败")
	}

	s.analytics.recordEvent(ctx, queue.AnalyticsEventPayload{
		UserID:       actor.ID,
		EventType:    string(model.EventDownload),
		ImageID:      img.ID,
		CollectionID: img.CollectionID,
	})

	return &types.DownloadURLResponse{
		URL:       url,
		ExpiresIn: cfg.Upload.SignedURLTTLSeconds,
	}, nil
}
