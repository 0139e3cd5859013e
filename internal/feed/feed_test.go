package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/clicker/internal/config"
	"github.com/five82/clicker/internal/counter"
	"github.com/five82/clicker/internal/feed"
	"github.com/five82/clicker/internal/store"
)

const topic = "clicker.state"

type received struct {
	state counter.State
	seq   uint64
}

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            16,
		Persistent:                     false,
		BlockPublishUntilSubscriberAck: false,
	}, watermill.NopLogger{})
	t.Cleanup(func() {
		err := pubSub.Close()
		assert.NoError(t, err)
	})

	return pubSub
}

func TestAttach_PublishesEveryDispatch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pubSub := newPubSub(t)
	got := make(chan received, 8)
	err := feed.Watch(ctx, pubSub, topic, nil, func(state counter.State, seq uint64) {
		got <- received{state: state, seq: seq}
	})
	require.NoError(t, err)

	s, err := counter.NewStore(nil)
	require.NoError(t, err)
	detach := feed.Attach(s, pubSub, topic, nil)
	t.Cleanup(detach)

	for i := 0; i < 3; i++ {
		_, err := s.Dispatch(counter.IncreaseCount{})
		require.NoError(t, err)
	}
	_, err = s.Dispatch(store.Type("UNKNOWN"))
	require.NoError(t, err)

	bySeq := map[uint64]counter.State{}
	for len(bySeq) < 4 {
		select {
		case r := <-got:
			bySeq[r.seq] = r.state
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d messages", len(bySeq))
		}
	}

	assert.Equal(t, counter.State{Clicks: 1}, bySeq[1])
	assert.Equal(t, counter.State{Clicks: 2}, bySeq[2])
	assert.Equal(t, counter.State{Clicks: 3}, bySeq[3])
	assert.Equal(t, counter.State{Clicks: 3}, bySeq[4], "unknown action still publishes the unchanged state")
}

func TestAttach_DetachStopsPublishing(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	s, err := counter.NewStore(nil)
	require.NoError(t, err)

	detach := feed.Attach(s, pub, topic, nil)
	_, err = s.Dispatch(counter.IncreaseCount{})
	require.NoError(t, err)
	detach()
	detach()
	_, err = s.Dispatch(counter.IncreaseCount{})
	require.NoError(t, err)

	assert.Len(t, pub.published, 1)
	assert.Equal(t, 0, s.ListenerCount())
}

func TestAttach_PublishErrorDoesNotFailDispatch(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{err: errors.New("broker down")}
	s, err := counter.NewStore(nil)
	require.NoError(t, err)
	feed.Attach(s, pub, topic, nil)

	_, err = s.Dispatch(counter.IncreaseCount{})
	require.NoError(t, err)
	assert.Equal(t, counter.State{Clicks: 1}, s.GetState())
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	msg, err := feed.Encode(counter.State{Clicks: 7}, 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clicks":7}`, string(msg.Payload))

	state, seq, err := feed.Decode[counter.State](msg)
	require.NoError(t, err)
	assert.Equal(t, counter.State{Clicks: 7}, state)
	assert.Equal(t, uint64(42), seq)
}

func TestDecode_RejectsBadMessages(t *testing.T) {
	t.Parallel()

	_, _, err := feed.Decode[counter.State](message.NewMessage(watermill.NewUUID(), []byte("{")))
	assert.Error(t, err)

	noSeq := message.NewMessage(watermill.NewUUID(), []byte(`{"clicks":1}`))
	_, _, err = feed.Decode[counter.State](noSeq)
	assert.ErrorContains(t, err, "seq")
}

func TestNewTransport(t *testing.T) {
	t.Parallel()

	tr, err := feed.NewTransport(config.Feed{Transport: config.TransportGoChannel}, nil)
	require.NoError(t, err)
	assert.NotNil(t, tr.Publisher)
	assert.NotNil(t, tr.Subscriber)
	assert.NoError(t, tr.Close())

	_, err = feed.NewTransport(config.Feed{Transport: config.TransportNone}, nil)
	assert.Error(t, err)
}

type recordingPublisher struct {
	err       error
	published []*message.Message
}

func (p *recordingPublisher) Publish(_ string, messages ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, messages...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
