package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishObjectStored 发布 pv.object.stored 事件。
// 对象写入存储并同步元数据到数据库后，通知下游流程（如对账、统计）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishObjectStored(pub message.Publisher, payload ObjectStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicObjectStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicObjectStored, msg)
}

// ParseObjectStored 将 Watermill 消息解析为强类型 Envelope（ObjectStoredPayload）。
func ParseObjectStored(msg *message.Message) (Message[ObjectStoredPayload], error) {
	return ParseWatermillMessage[ObjectStoredPayload](msg)
}

// PublishObjectDeleted 发布 pv.object.deleted 事件。
func PublishObjectDeleted(pub message.Publisher, payload ObjectDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicObjectDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicObjectDeleted, msg)
}

// ParseObjectDeleted 将 Watermill 消息解析为强类型 Envelope（ObjectDeletedPayload）。
func ParseObjectDeleted(msg *message.Message) (Message[ObjectDeletedPayload], error) {
	return ParseWatermillMessage[ObjectDeletedPayload](msg)
}

// AnalyticsTopicFor 根据事件类型返回对应的主题，未知类型返回空串.
func AnalyticsTopicFor(eventType string) string {
	switch eventType {
	case "login":
		return TopicAnalyticsLogin
	case "view":
		return TopicAnalyticsView
	case "download":
		return TopicAnalyticsDownload
	default:
		return ""
	}
}

// PublishAnalyticsEvent 发布行为分析事件到对应主题。
func PublishAnalyticsEvent(pub message.Publisher, payload AnalyticsEventPayload, opts ...func(*EventHeader)) error {
	topic := AnalyticsTopicFor(payload.EventType)
	if topic == "" {
		return nil
	}

	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseAnalyticsEvent 将 Watermill 消息解析为强类型 Envelope（AnalyticsEventPayload）。
func ParseAnalyticsEvent(msg *message.Message) (Message[AnalyticsEventPayload], error) {
	return ParseWatermillMessage[AnalyticsEventPayload](msg)
}
