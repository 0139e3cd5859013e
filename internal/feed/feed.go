// Package feed publishes store state changes over watermill.
//
// A feed is just another store listener: on every notification it reads the
// current state, encodes it as JSON and publishes it to a topic. Consumers on
// the other side of the transport decode messages with Decode or Watch.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/five82/clicker/internal/store"
)

// SeqMetadataKey carries the per-feed publish sequence number.
const SeqMetadataKey = "seq"

// Attach subscribes a publishing listener to s and returns the function that
// detaches it. Publish failures are logged; they never fail the dispatch.
func Attach[S any](s *store.Store[S], pub message.Publisher, topic string, logger *slog.Logger) (detach func()) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "feed"), slog.String("topic", topic))

	var seq atomic.Uint64
	return s.Subscribe(func() {
		n := seq.Add(1)
		msg, err := Encode(s.GetState(), n)
		if err != nil {
			logger.Error("could not encode state", slog.String("err", err.Error()))
			return
		}
		if err := pub.Publish(topic, msg); err != nil {
			logger.Error("could not publish state", slog.Uint64("seq", n), slog.String("err", err.Error()))
			return
		}
		logger.Debug("published state", slog.Uint64("seq", n))
	})
}

// Encode wraps state in a watermill message stamped with seq.
func Encode[S any](state S, seq uint64) (*message.Message, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("could not marshal state: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(SeqMetadataKey, strconv.FormatUint(seq, 10))
	return msg, nil
}

// Decode extracts the state and sequence number from a feed message.
func Decode[S any](msg *message.Message) (S, uint64, error) {
	var state S
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		return state, 0, fmt.Errorf("could not unmarshal state: %w", err)
	}
	seq, err := strconv.ParseUint(msg.Metadata.Get(SeqMetadataKey), 10, 64)
	if err != nil {
		return state, 0, fmt.Errorf("bad %s metadata: %w", SeqMetadataKey, err)
	}
	return state, seq, nil
}

// Watch subscribes to topic and calls fn for every decoded state until ctx is
// done or the subscription closes. Messages that fail to decode are acked and
// logged so they are not redelivered forever.
func Watch[S any](ctx context.Context, sub message.Subscriber, topic string, logger *slog.Logger, fn func(state S, seq uint64)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("could not subscribe to %s: %w", topic, err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				state, seq, err := Decode[S](msg)
				if err != nil {
					logger.Warn("dropping undecodable feed message", slog.String("uuid", msg.UUID), slog.String("err", err.Error()))
					msg.Ack()
					continue
				}
				fn(state, seq)
				msg.Ack()
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
