package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// dashboardWindow 总览统计中事件计数的时间窗口.
const dashboardWindow = 30 * 24 * time.Hour

// AnalyticsService 行为分析服务.
type AnalyticsService struct {
	clients
}

func NewAnalyticsService(c context.Context) *AnalyticsService {
	return &AnalyticsService{clients: clientsFromContext(c)}
}

// Record 将行为事件写入数据库.
func (s *AnalyticsService) Record(ctx context.Context, payload queue.AnalyticsEventPayload) error {
	if !model.EventType(payload.EventType).Valid() {
		return apperr.Validation("invalid event type: " + payload.EventType)
	}

	event := &model.AnalyticsEvent{
		ID:        uuid.NewString(),
		UserID:    payload.UserID,
		EventType: model.EventType(payload.EventType),
		Metadata:  payload.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	if payload.ImageID != "" {
		event.ImageID = &payload.ImageID
	}

	if payload.CollectionID != "" {
		event.CollectionID = &payload.CollectionID
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// recordEvent 尽力记录行为事件：优先发布到 MQ 由消费端落库，MQ 不可用时直接落库.
// 事件记录失败只打日志，绝不影响主流程.
func (s *AnalyticsService) recordEvent(ctx context.Context, payload queue.AnalyticsEventPayload) {
	cfg := configs.GetConfig()
	if !cfg.Events.Enabled {
		return
	}

	if s.mq != nil {
		if topic := queue.AnalyticsTopicFor(payload.EventType); topic != "" {
			msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(configs.AppName))
			if err == nil {
				if err = s.mq.Publish(ctx, topic, msg); err == nil {
					return
				}
			}

			nlog.Logger().Warn().Err(err).Str("event", payload.EventType).Msg("发布行为事件失败，回退直接落库")
		}
	}

	if err := s.Record(ctx, payload); err != nil {
		nlog.Logger().Warn().Err(err).Str("event", payload.EventType).Msg("行为事件落库失败")
	}
}

// Dashboard 返回总览统计.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*types.DashboardResponse, error) {
	resp := &types.DashboardResponse{EventsByType: map[string]int64{}}

	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Count(&resp.TotalUsers).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if err := db.Model(&model.Collection{}).Count(&resp.TotalCollections).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if err := db.Model(&model.Image{}).Count(&resp.TotalImages).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	var storage struct{ Total int64 }
	if err := db.Model(&model.Image{}).
		Select("COALESCE(SUM(size_bytes),0) AS total").
		Scan(&storage).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	resp.StorageBytes = storage.Total

	since := time.Now().UTC().Add(-dashboardWindow)

	var rows []struct {
		EventType string
		Count     int64
	}

	if err := db.Model(&model.AnalyticsEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	for _, r := range rows {
		resp.EventsByType[r.EventType] = r.Count
	}

	return resp, nil
}

// listEvents 按类型列出最近的事件.
func (s *AnalyticsService) listEvents(ctx context.Context, eventType model.EventType, userID string, limit int) (*types.EventListResponse, error) {
	const defaultLimit = 100

	if limit <= 0 || limit > 1000 {
		limit = defaultLimit
	}

	q := s.db.WithContext(ctx).Model(&model.AnalyticsEvent{})
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	var events []*model.AnalyticsEvent
	if err := q.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &types.EventListResponse{Events: events, Total: total}, nil
}

// Logins 最近登录事件.
func (s *AnalyticsService) Logins(ctx context.Context, limit int) (*types.EventListResponse, error) {
	return s.listEvents(ctx, model.EventLogin, "", limit)
}

// Downloads 最近下载事件.
func (s *AnalyticsService) Downloads(ctx context.Context, limit int) (*types.EventListResponse, error) {
	return s.listEvents(ctx, model.EventDownload, "", limit)
}

// UserActivity 指定用户的全部行为事件.
func (s *AnalyticsService) UserActivity(ctx context.Context, userID string, limit int) (*types.EventListResponse, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}

		return nil, apperr.Internal(err)
	}

	return s.listEvents(ctx, "", userID, limit)
}

// PruneOlderThan 删除早于给定时间的事件，返回删除行数，供定时任务调用.
func (s *AnalyticsService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.AnalyticsEvent{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}

	return res.RowsAffected, nil
}
