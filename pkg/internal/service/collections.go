package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/access"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// CollectionService 集合管理服务.
// 访问关系的唯一事实来源是 collection_access 表，任何"用户侧列表"均由此查询得出.
type CollectionService struct {
	clients
}

func NewCollectionService(c context.Context) *CollectionService {
	return &CollectionService{clients: clientsFromContext(c)}
}

// loadCollection 加载集合，未找到返回 NotFound.
func (s *CollectionService) loadCollection(ctx context.Context, id string) (*model.Collection, error) {
	var coll model.Collection
	if err := s.db.WithContext(ctx).First(&coll, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("collection")
		}

		return nil, apperr.Internal(err)
	}

	return &coll, nil
}

// accessUserIDs 查询集合的授权用户 ID 列表.
func (s *CollectionService) accessUserIDs(ctx context.Context, collectionID string) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.CollectionAccess{}).
		Where("collection_id = ?", collectionID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return ids, nil
}

// requireAccess 加载集合并校验读取权限.
func (s *CollectionService) requireAccess(ctx context.Context, actor *model.User, collectionID string) (*model.Collection, error) {
	coll, err := s.loadCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	ids, err := s.accessUserIDs(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if !access.CanAccessCollection(actor, coll, ids) {
		return nil, apperr.Forbidden("no access to this collection")
	}

	return coll, nil
}

// view 组装集合视图.
func (s *CollectionService) view(ctx context.Context, coll *model.Collection) (*types.CollectionView, error) {
	ids, err := s.accessUserIDs(ctx, coll.ID)
	if err != nil {
		return nil, err
	}

	var imageCount int64
	if err := s.db.WithContext(ctx).Model(&model.Image{}).
		Where("collection_id = ?", coll.ID).
		Count(&imageCount).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &types.CollectionView{
		Collection:        coll,
		AccessibleUserIDs: ids,
		ImageCount:        imageCount,
	}, nil
}

// Create 创建集合，创建者即 CreatedBy.
func (s *CollectionService) Create(ctx context.Context, actor *model.User, req *types.CreateCollectionRequest) (*types.CollectionView, error) {
	coll := &model.Collection{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor.ID,
	}

	if err := s.db.WithContext(ctx).Create(coll).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &types.CollectionView{Collection: coll, AccessibleUserIDs: []string{}}, nil
}

// List 列出用户可见的集合：管理员可见全部，其他用户可见自己创建或被授权的.
func (s *CollectionService) List(ctx context.Context, actor *model.User) ([]*types.CollectionView, error) {
	q := s.db.WithContext(ctx).Model(&model.Collection{}).Order("created_at DESC")

	if !actor.IsAdmin() {
		q = q.Where(
			"created_by = ? OR id IN (?)",
			actor.ID,
			s.db.WithContext(ctx).Model(&model.CollectionAccess{}).
				Select("collection_id").
				Where("user_id = ?", actor.ID),
		)
	}

	var colls []*model.Collection
	if err := q.Find(&colls).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	views := make([]*types.CollectionView, 0, len(colls))

	for _, coll := range colls {
		v, err := s.view(ctx, coll)
		if err != nil {
			return nil, err
		}

		views = append(views, v)
	}

	return views, nil
}

// Get 获取集合详情，访问受控.
func (s *CollectionService) Get(ctx context.Context, actor *model.User, collectionID string) (*types.CollectionView, error) {
	coll, err := s.requireAccess(ctx, actor, collectionID)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, coll)
}

// Update 更新集合，仅管理员或创建者.
func (s *CollectionService) Update(ctx context.Context, actor *model.User, collectionID string, req *types.UpdateCollectionRequest) (*types.CollectionView, error) {
	coll, err := s.loadCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if !access.CanModifyCollection(actor, coll) {
		return nil, apperr.Forbidden("cannot modify this collection")
	}

	updates := map[string]any{}

	if req.Name != "" {
		updates["name"] = req.Name
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.CoverImageID != nil {
		if *req.CoverImageID != "" {
			var count int64
			if err := s.db.WithContext(ctx).Model(&model.Image{}).
				Where("id = ? AND collection_id = ?", *req.CoverImageID, collectionID).
				Count(&count).Error; err != nil {
				return nil, apperr.Internal(err)
			}

			if count == 0 {
				return nil, apperr.Validation("cover image does not belong to this collection")
			}
		}

		updates["cover_image_id"] = req.CoverImageID
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(coll).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	coll, err = s.loadCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, coll)
}

// Delete 删除集合：元数据与授权关系在事务内清理，远端对象尽力删除.
// 远端删除失败不阻断，由孤儿清理任务兜底.
func (s *CollectionService) Delete(ctx context.Context, actor *model.User, collectionID string) error {
	coll, err := s.loadCollection(ctx, collectionID)
	if err != nil {
		return err
	}

	if !access.CanModifyCollection(actor, coll) {
		return apperr.Forbidden("cannot delete this collection")
	}

	var images []*model.Image
	if err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Find(&images).Error; err != nil {
		return apperr.Internal(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collectionID).Delete(&model.Image{}).Error; err != nil {
			return err
		}

		if err := tx.Where("collection_id = ?", collectionID).Delete(&model.CollectionAccess{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Collection{}, "id = ?", collectionID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	// 事务提交后再尽力清理远端对象
	for _, img := range images {
		if err := s.obj.Delete(ctx, img.StorageKey); err != nil {
			nlog.Logger().Warn().Err(err).
				Str("key", img.StorageKey).
				Msg("删除集合时远端对象删除失败，等待孤儿清理")
			s.publishObjectDeleted(ctx, img, true)

			continue
		}

		s.publishObjectDeleted(ctx, img, false)
	}

	return nil
}

// SetAccess 授权或撤销用户对集合的访问，只写 collection_access 表.
func (s *CollectionService) SetAccess(ctx context.Context, actor *model.User, collectionID string, req *types.CollectionAccessRequest) (*types.CollectionView, error) {
	coll, err := s.loadCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if !access.CanModifyCollection(actor, coll) {
		return nil, apperr.Forbidden("cannot manage access of this collection")
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}

		return nil, apperr.Internal(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Action == "grant" {
			var count int64
			if err := tx.Model(&model.CollectionAccess{}).
				Where("collection_id = ? AND user_id = ?", collectionID, req.UserID).
				Count(&count).Error; err != nil {
				return err
			}

			// 重复授权幂等
			if count > 0 {
				return nil
			}

			return tx.Create(&model.CollectionAccess{
				CollectionID: collectionID,
				UserID:       req.UserID,
				GrantedBy:    actor.ID,
			}).Error
		}

		return tx.Where("collection_id = ? AND user_id = ?", collectionID, req.UserID).
			Delete(&model.CollectionAccess{}).Error
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return s.view(ctx, coll)
}

// publishObjectDeleted 发布对象删除事件，MQ 不可用时忽略.
func (s *CollectionService) publishObjectDeleted(ctx context.Context, img *model.Image, remoteFailed bool) {
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
