package types

import "github.com/yeisme/photovault/pkg/internal/model"

// DashboardResponse 总览统计.
type DashboardResponse struct {
	TotalUsers       int64            `json:"totalUsers"`
	TotalCollections int64            `json:"totalCollections"`
	TotalImages      int64            `json:"totalImages"`
	StorageBytes     int64            `json:"storageBytes"`
	EventsByType     map[string]int64 `json:"eventsByType"` // 最近 30 天
}

// EventListResponse 行为事件列表.
type EventListResponse struct {
	Events []*model.AnalyticsEvent `json:"events"`
	Total  int64                   `json:"total"`
}
