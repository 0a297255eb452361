package model

import (
	"time"
)

// EventType 行为事件类型.
type EventType string

const (
	EventLogin    EventType = "login"
	EventDownload EventType = "download"
	EventView     EventType = "view"
)

// Valid 检查事件类型是否合法.
func (t EventType) Valid() bool {
	return t == EventLogin || t == EventDownload || t == EventView
}

// AnalyticsEvent 用户行为事件.
type AnalyticsEvent struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;index"      json:"userId"`
	EventType    EventType `gorm:"size:16;index"      json:"eventType"`
	ImageID      *string   `gorm:"size:36;index"      json:"imageId,omitempty"`
	CollectionID *string   `gorm:"size:36;index"      json:"collectionId,omitempty"`
	// Metadata 以 JSON 字符串形式存储附加信息
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"index"     json:"createdAt"`
}
