package queue_test

import (
	"testing"

	"github.com/yeisme/photovault/pkg/queue"
)

func TestAnalyticsTopicFor(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		want      string
	}{
		{"登录事件", "login", queue.TopicAnalyticsLogin},
		{"查看事件", "view", queue.TopicAnalyticsView},
		{"下载事件", "download", queue.TopicAnalyticsDownload},
		{"未知事件", "signup", ""},
		{"空类型", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := queue.AnalyticsTopicFor(tt.eventType); got != tt.want {
				t.Errorf("AnalyticsTopicFor(%q) = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestAnalyticsEventRoundTrip(t *testing.T) {
	payload := queue.AnalyticsEventPayload{
		UserID:       "user-1",
		EventType:    "download",
		ImageID:      "img-1",
		CollectionID: "col-1",
	}

	msg, err := queue.NewWatermillMessage(queue.TopicAnalyticsDownload, payload, queue.WithProducer("photovault"))
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	if msg.Metadata.Get("topic") != queue.TopicAnalyticsDownload {
		t.Errorf("topic metadata = %q", msg.Metadata.Get("topic"))
	}

	parsed, err := queue.ParseAnalyticsEvent(msg)
	if err != nil {
		t.Fatalf("ParseAnalyticsEvent: %v", err)
	}

	if parsed.Payload != payload {
		t.Errorf("payload = %+v, want %+v", parsed.Payload, payload)
	}

	if parsed.Header.Topic != queue.TopicAnalyticsDownload || parsed.Header.Producer != "photovault" {
		t.Errorf("header = %+v", parsed.Header)
	}

	if parsed.Header.OccurredAt.IsZero() {
		t.Error("occurredAt should be set")
	}
}
