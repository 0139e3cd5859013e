package feed

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"

	"github.com/five82/clicker/internal/config"
)

// Transport is a publisher plus, for in-process transports, the matching
// subscriber. Subscriber is nil for transports consumed elsewhere.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes the publisher (and the subscriber, when distinct).
func (t Transport) Close() error {
	var err error
	if t.Publisher != nil {
		err = t.Publisher.Close()
	}
	if t.Subscriber != nil && any(t.Subscriber) != any(t.Publisher) {
		if subErr := t.Subscriber.Close(); err == nil {
			err = subErr
		}
	}
	return err
}

// NewTransport builds the transport named in cfg.
func NewTransport(cfg config.Feed, logger watermill.LoggerAdapter) (Transport, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	switch cfg.Transport {
	case config.TransportGoChannel:
		pubSub := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            64,
			Persistent:                     false,
			BlockPublishUntilSubscriberAck: false,
		}, logger.With(watermill.LogFields{"component": "feed.gochannel"}))
		return Transport{Publisher: pubSub, Subscriber: pubSub}, nil

	case config.TransportNATS:
		pub, err := wnats.NewPublisher(
			wnats.PublisherConfig{
				URL:         cfg.NATSURL,
				NatsOptions: []nats.Option{nats.Name("clicker")},
				JetStream: wnats.JetStreamConfig{
					Disabled: true,
				},
			},
			logger.With(watermill.LogFields{"url": cfg.NATSURL, "component": "feed.publisher"}),
		)
		if err != nil {
			return Transport{}, fmt.Errorf("failed to create nats publisher: %w", err)
		}
		return Transport{Publisher: pub}, nil

	default:
		return Transport{}, fmt.Errorf("feed transport %q has no publisher", cfg.Transport)
	}
}
