package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// publisher go-redis 客户端中用到的部分，测试可替换
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier 通过 Redis PUBLISH 推送通知，频道为 <prefix>:<order_id>
type RedisNotifier struct {
	client        publisher
	channelPrefix string
	now           func() time.Time
}

// Message 推送到频道的 JSON 内容
type Message struct {
	OrderID int64     `json:"order_id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

func NewRedisNotifier(client *redis.Client, channelPrefix string) *RedisNotifier {
	return newRedisNotifier(client, channelPrefix)
}

func newRedisNotifier(client publisher, channelPrefix string) *RedisNotifier {
	return &RedisNotifier{
		client:        client,
		channelPrefix: channelPrefix,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// NewRedisClient 按配置创建客户端
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (n *RedisNotifier) Channel(orderID int64) string {
	return fmt.Sprintf("%s:%d", n.channelPrefix, orderID)
}

func (n *RedisNotifier) Notify(ctx context.Context, orderID int64, message string) error {
	body, err := json.Marshal(Message{OrderID: orderID, Message: message, SentAt: n.now()})
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.Channel(orderID), body).Err(); err != nil {
		return fmt.Errorf("publish notification for order %d: %w", orderID, err)
	}
	return nil
}

var _ Notifier = (*RedisNotifier)(nil)
