package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, "vidmark:outcomes")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	pub := NewRedisPublisher(rdb, "vidmark:outcomes")
	err := pub.Publish(ctx, Outcome{
		VideoID:       "v1",
		Status:        "done",
		ProcessedPath: "v1/out.mp4",
		FinishedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got Outcome
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.VideoID != "v1" || got.Status != "done" || got.ProcessedPath != "v1/out.mp4" {
			t.Errorf("unexpected outcome %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published outcome")
	}
}

func TestPublishServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	if err := NewRedisPublisher(rdb, "c").Publish(context.Background(), Outcome{VideoID: "v1"}); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
