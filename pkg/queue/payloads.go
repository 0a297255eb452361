package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 对象存储领域 --------------------------

// ObjectRef 标识对象存储中的一个对象.
type ObjectRef struct {
	Bucket      string `json:"bucket,omitempty"`
	ObjectKey   string `json:"object_key"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ObjectStoredPayload 对象已写入存储（含基础元数据）.
type ObjectStoredPayload struct {
	Object       ObjectRef `json:"object"`
	ImageID      string    `json:"image_id,omitempty"`
	CollectionID string    `json:"collection_id,omitempty"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
}

// ObjectDeletedPayload 对象被删除.
// RemoteFailed 标记远端删除失败、元数据已清理的情况，供对账任务使用.
type ObjectDeletedPayload struct {
	Object       ObjectRef `json:"object"`
	ImageID      string    `json:"image_id,omitempty"`
	CollectionID string    `json:"collection_id,omitempty"`
	RemoteFailed bool      `json:"remote_failed,omitempty"`
}

// -------------------------- 行为分析领域 --------------------------

// AnalyticsEventPayload 用户行为事件负载，消费端落库.
type AnalyticsEventPayload struct {
	UserID       string `json:"user_id"`
	EventType    string `json:"event_type"` // login | view | download
	ImageID      string `json:"image_id,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
	Metadata     string `json:"metadata,omitempty"` // 附加 JSON 字符串
}
