// Package mq 实现业务消息的消费端：订阅行为事件主题并异步落库。
// MQ 未启用时不启动任何消费者，发布端会直接落库，行为不变.
package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
	nlog "github.com/yeisme/photovault/pkg/log"
	"github.com/yeisme/photovault/pkg/queue"
)

// StartConsumers 订阅全部行为事件主题并持久化到数据库.
// ctx 取消时各消费协程随订阅通道关闭而退出.
func StartConsumers(ctx context.Context, mgr *storage.Manager) error {
	mqc := mgr.GetMQClient()
	if mqc == nil {
		nlog.Logger().Info().Msg("MQ 未启用，跳过消费者启动")
		return nil
	}

	// service 依赖从 context 取 storage manager
	baseCtx := ctxPkg.WithStorageManager(ctx, mgr)

	for _, topic := range queue.AnalyticsTopics {
		ch, err := mqc.Subscribe(baseCtx, topic)
		if err != nil {
			return err
		}

		go consumeAnalytics(baseCtx, topic, ch)
	}

	return nil
}

// consumeAnalytics 消费单个主题的行为事件.
// 解析失败直接 Ack 丢弃（毒消息不重投），落库失败 Nack 等待重投.
func consumeAnalytics(ctx context.Context, topic string, ch <-chan *message.Message) {
	l := nlog.Logger().With().Str("topic", topic).Logger()

	svc := service.NewAnalyticsService(ctx)

	for msg := range ch {
		ev, err := queue.ParseAnalyticsEvent(msg)
		if err != nil {
			l.Warn().Err(err).Str("msg", msg.UUID).Msg("解析行为事件失败，丢弃")
			msg.Ack()

			continue
		}

		if err := svc.Record(ctx, ev.Payload); err != nil {
			l.Error().Err(err).Str("msg", msg.UUID).Msg("行为事件落库失败")
			msg.Nack()

			continue
		}

		msg.Ack()
	}

	l.Info().Msg("行为事件消费者退出")
}
