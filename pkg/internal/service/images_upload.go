package service

import (
	"context"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// UploadFile 单个待上传文件.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadSingle 上传单个文件：校验 → 写对象 → 落元数据.
// 元数据落库失败时删除已写入的对象做补偿，避免产生孤儿.
func (s *ImageService) UploadSingle(ctx context.Context, actor *model.User, collectionID string, file *UploadFile) (*model.Image, error) {
	if _, err := s.collections.requireAccess(ctx, actor, collectionID); err != nil {
		return nil, err
	}

	return s.storeFile(ctx, actor, collectionID, file)
}

// storeFile 执行单文件的校验、对象写入与元数据落库.
func (s *ImageService) storeFile(ctx context.Context, actor *model.User, collectionID string, file *UploadFile) (*model.Image, error) {
	cfg := configs.GetConfig()

	if err := validateUploadFile(file.Name, file.Size, cfg.Upload.MaxSizeBytes, file.ContentType); err != nil {
		return nil, err
	}

	key := buildStorageKey(collectionID, file.Name)

	if err := s.obj.Store(ctx, key, file.Reader, file.Size, file.ContentType); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	img := &model.Image{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		FileName:     path.Base(key),
		OriginalName: file.Name,
		StorageKey:   key,
		ContentType:  strings.ToLower(file.ContentType),
		SizeBytes:    file.Size,
		UploadedBy:   actor.ID,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(img).Error; err != nil {
		// 元数据落库失败，补偿删除已写入的对象
		if delErr := s.obj.Delete(ctx, key); delErr != nil {
			nlog.Logger().Error().Err(delErr).
				Str("key", key).
				Msg("补偿删除对象失败，等待孤儿清理")
		}

		return nil, apperr.Internal(err)
	}

	s.publishObjectStored(ctx, img)

	return img, nil
}

// UploadBatch 批量上传，尽力而为：单个文件失败不终止其余文件.
// 并发度受配置限制，结果中逐条标记失败原因.
func (s *ImageService) UploadBatch(ctx context.Context, actor *model.User, collectionID string, files []*UploadFile) (*types.BatchUploadResponse, error) {
	cfg := configs.GetConfig()

	if len(files) == 0 {
		return nil, apperr.Validation("no files provided")
	}

	if len(files) > cfg.Upload.BatchMax {
		return nil, apperr.Validation("too many files in one batch")
	}

	if _, err := s.collections.requireAccess(ctx, actor, collectionID); err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		resp types.BatchUploadResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Upload.Concurrency)

	for _, file := range files {
		g.Go(func() error {
			img, err := s.storeFile(gctx, actor, collectionID, file)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				resp.Failed = append(resp.Failed, types.FailedUploadItem{
					FileName: file.Name,
					Reason:   apperr.From(err).Message,
				})

				// 单文件失败不中断批次
				return nil
			}

			resp.Uploaded = append(resp.Uploaded, img)

			return nil
		})
	}

	// goroutine 均返回 nil，此处仅等待完成
	_ = g.Wait()

	resp.FailedCount = len(resp.Failed)

	return &resp, nil
}

// publishObjectStored 发布对象写入事件，MQ 不可用时忽略.
func (s *ImageService) publishObjectStored(ctx context.Context, img *model.Image) {
	cfg := configs.GetConfig()
	if s.mq == nil || !cfg.Events.Enabled || !cfg.Events.Object.Stored {
		return
	}

	payload := queue.ObjectStoredPayload{
		Object:       queue.ObjectRef{ObjectKey: img.StorageKey, Size: img.SizeBytes, ContentType: img.ContentType},
		ImageID:      img.ID,
		CollectionID: img.CollectionID,
		UploadedBy:   img.UploadedBy,
		FileName:     img.OriginalName,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicObjectStored, payload, queue.WithProducer(configs.AppName))
	if err == nil {
		err = s.mq.Publish(ctx, queue.TopicObjectStored, msg)
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Str("key", img.StorageKey).Msg("发布对象写入事件失败")
	}
}
