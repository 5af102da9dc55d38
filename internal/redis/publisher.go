package redis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/airpong/backend/internal/game"
	"github.com/redis/go-redis/v9"
)

// publishQueueSize bounds how many events may wait for Redis before new ones are dropped.
const publishQueueSize = 128

// Publisher pushes match events onto a pub/sub channel for external
// scoreboards. Nothing is stored; events nobody is subscribed to are lost.
type Publisher struct {
	rdb     *redis.Client
	channel string
	queue   chan game.MatchEvent
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{
		rdb:     rdb,
		channel: channel,
		queue:   make(chan game.MatchEvent, publishQueueSize),
	}
}

// Publish queues an event without blocking the caller. It is safe to pass
// as a Runner event hook.
func (p *Publisher) Publish(ev game.MatchEvent) {
	select {
	case p.queue <- ev:
	default:
		log.Printf("[REDIS] Publish queue full, dropping %s event for match %s", ev.Type, ev.MatchID)
	}
}

// Start runs the publishing worker until ctx is cancelled.
func (p *Publisher) Start(ctx context.Context) {
	log.Printf("[REDIS] Match event publisher started on channel %s", p.channel)
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("[REDIS] Match event publisher stopping")
				return
			case ev := <-p.queue:
				p.send(ctx, ev)
			}
		}
	}()
}

func (p *Publisher) send(ctx context.Context, ev game.MatchEvent) {
	b, err := encodeEvent(ev)
	if err != nil {
		log.Printf("[REDIS] Failed to encode %s event: %v", ev.Type, err)
		return
	}
	n, err := p.rdb.Publish(ctx, p.channel, b).Result()
	if err != nil {
		log.Printf("[REDIS] publish failed: match=%s type=%s err=%v", ev.MatchID, ev.Type, err)
		return
	}
	log.Printf("[REDIS] published: match=%s type=%s subscribers=%d", ev.MatchID, ev.Type, n)
}

func encodeEvent(ev game.MatchEvent) ([]byte, error) {
	return json.Marshal(ev)
}
