package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-etf-arbitrage/src/model"
)

// EventBus is the Redis-backed latest-snapshot store plus pub/sub
// channel fan-out. Each algo run owns a bus instance of its own, so two
// runs on the same symbol never share a channel handler. At most one
// handler is active per channel per bus.
type EventBus struct {
	RDB *redis.Client
	Ctx *context.Context

	pubsub        *redis.PubSub
	subscriptions map[string]func(message []byte)
	mutex         sync.Mutex
}

func (b *EventBus) GetInav(symbol string) (*model.InavUpdate, error) {
	res, err := b.RDB.Get(*b.Ctx, fmt.Sprintf("inav:%s", symbol)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, errors.New(fmt.Sprintf("No inav data found for symbol: %s", symbol))
	}

	if err != nil {
		return nil, err
	}

	var update model.InavUpdate
	err = json.Unmarshal([]byte(res), &update)

	if err != nil {
		return nil, err
	}

	return &update, nil
}

func (b *EventBus) SetInav(update model.InavUpdate) {
	encoded, err := json.Marshal(update)

	if err != nil {
		return
	}

	b.RDB.Set(*b.Ctx, fmt.Sprintf("inav:%s", update.Symbol), string(encoded), 0)
}

func (b *EventBus) Publish(channel string, payload interface{}) {
	encoded, err := json.Marshal(payload)

	if err != nil {
		log.Printf("[%s] Could not encode payload: %s", channel, err.Error())

		return
	}

	b.RDB.Publish(*b.Ctx, channel, string(encoded))
}

func (b *EventBus) Subscribe(channel string, handler func(message []byte)) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.subscriptions == nil {
		b.subscriptions = make(map[string]func(message []byte))
	}

	if b.pubsub == nil {
		b.pubsub = b.RDB.Subscribe(*b.Ctx, channel)
	} else {
		_ = b.pubsub.Subscribe(*b.Ctx, channel)
	}

	b.subscriptions[channel] = handler
}

func (b *EventBus) Unsubscribe(channel string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.pubsub != nil {
		_ = b.pubsub.Unsubscribe(*b.Ctx, channel)
	}

	delete(b.subscriptions, channel)
}

// Listen drains the pubsub connection and dispatches messages to the
// channel handlers one at a time, in arrival order. It returns when the
// context is cancelled or the bus is closed.
func (b *EventBus) Listen(ctx context.Context) {
	b.mutex.Lock()
	pubsub := b.pubsub
	b.mutex.Unlock()

	if pubsub == nil {
		return
	}

	messages := pubsub.Channel()

	for {
		select {
		case message, ok := <-messages:
			if !ok {
				return
			}

			b.mutex.Lock()
			handler := b.subscriptions[message.Channel]
			b.mutex.Unlock()

			if handler != nil {
				handler([]byte(message.Payload))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *EventBus) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.pubsub != nil {
		_ = b.pubsub.Close()
	}
}
