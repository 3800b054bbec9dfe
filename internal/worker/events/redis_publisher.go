package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Outcome is the event published once per finished job.
type Outcome struct {
	VideoID       string    `json:"video_id"`
	Status        string    `json:"status"`
	ProcessedPath string    `json:"processed_path,omitempty"`
	ErrorText     string    `json:"error_text,omitempty"`
	DurationMS    int64     `json:"duration_ms"`
	FinishedAt    time.Time `json:"finished_at"`
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Publish sends the outcome on the channel (PUBLISH). Subscribers that are
// not connected miss it; this is a notification, not a queue.
func (p *RedisPublisher) Publish(ctx context.Context, o Outcome) error {
	body, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, body).Err()
}
