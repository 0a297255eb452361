package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/access"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// ImageService 图片上传/下载编排服务.
type ImageService struct {
	clients

	collections *CollectionService
	analytics   *AnalyticsService
}

func NewImageService(c context.Context) *ImageService {
	return &ImageService{
		clients:     clientsFromContext(c),
		collections: NewCollectionService(c),
		analytics:   NewAnalyticsService(c),
	}
}

// loadImage 加载图片元数据，未找到返回 NotFound.
func (s *ImageService) loadImage(ctx context.Context, imageID string) (*model.Image, error) {
	var img model.Image
	if err := s.db.WithContext(ctx).First(&img, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("image")
		}

		return nil, apperr.Internal(err)
	}

	return &img, nil
}

// requireImageAccess 加载图片并校验所属集合的读取权限.
func (s *ImageService) requireImageAccess(ctx context.Context, actor *model.User, imageID string) (*model.Image, *model.Collection, error) {
	img, err := s.loadImage(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}

	coll, err := s.collections.requireAccess(ctx, actor, img.CollectionID)
	if err != nil {
		return nil, nil, err
	}

	return img, coll, nil
}

// List 列出集合内图片，按上传时间倒序，访问受控.
func (s *ImageService) List(ctx context.Context, actor *model.User, collectionID string) (*types.ListImagesResponse, error) {
	if _, err := s.collections.requireAccess(ctx, actor, collectionID); err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Image{}).
		Where("collection_id = ?", collectionID).
		Count(&total).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	var images []*model.Image
	if err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("uploaded_at DESC, id DESC").
		Find(&images).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &types.ListImagesResponse{Images: images, Total: total}, nil
}

// Get 获取图片详情，访问受控，原子递增查看计数并记录 view 事件.
func (s *ImageService) Get(ctx context.Context, actor *model.User, imageID string) (*model.Image, error) {
	img, _, err := s.requireImageAccess(ctx, actor, imageID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.Image{}).
		Where("id = ?", imageID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		// 计数失败不影响读取
		nlog.Logger().Warn().Err(err).Str("image", imageID).Msg("递增查看计数失败")
	} else {
		img.ViewCount++
	}

	s.analytics.recordEvent(ctx, queue.AnalyticsEventPayload{
		UserID:       actor.ID,
		EventType:    string(model.EventView),
		ImageID:      img.ID,
		CollectionID: img.CollectionID,
	})

	return img, nil
}

// Delete 删除图片：先尝试远端删除，无论成败都清理元数据.
// 远端删除失败的对象由孤儿清理任务兜底.
func (s *ImageService) Delete(ctx context.Context, actor *model.User, imageID string) error {
	img, err := s.loadImage(ctx, imageID)
	if err != nil {
		return err
	}

	coll, err := s.collections.loadCollection(ctx, img.CollectionID)
	if err != nil && !apperr.IsCode(err, apperr.CodeNotFound) {
		return err
	}

	if !access.CanModifyImage(actor, img, coll) {
		return apperr.Forbidden("cannot delete this image")
	}

	remoteFailed := false
	if err := s.obj.Delete(ctx, img.StorageKey); err != nil {
		remoteFailed = true

		nlog.Logger().Warn().Err(err).
			Str("key", img.StorageKey).
			Msg("远端对象删除失败，仍然清理元数据")
	}

	if err := s.db.WithContext(ctx).Delete(&model.Image{}, "id = ?", imageID).Error; err != nil {
		return apperr.Internal(err)
	}

	s.publishObjectDeleted(ctx, img, remoteFailed)

	return nil
}

// publishObjectDeleted 发布对象删除事件，MQ 不可用时忽略.
func (s *ImageService) publishObjectDeleted(ctx context.Context, img *model.Image, remoteFailed bool) {
	cfg := configs.GetConfig()
	if s.mq == nil || !cfg.Events.Enabled || !cfg.Events.Object.Deleted {
		return
	}

	payload := queue.ObjectDeletedPayload{
		Object:       queue.ObjectRef{ObjectKey: img.StorageKey, Size: img.SizeBytes, ContentType: img.ContentType},
		ImageID:      img.ID,
		CollectionID: img.CollectionID,
		RemoteFailed: remoteFailed,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicObjectDeleted, payload, queue.WithProducer(configs.AppName))
	if err == nil {
		err = s.mq.Publish(ctx, queue.TopicObjectDeleted, msg)
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Str("key", img.StorageKey).Msg("发布对象删除事件失败")
	}
}
