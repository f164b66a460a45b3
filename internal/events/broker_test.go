package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func assertNoEvent(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_FiltersByWorkspace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroker()
	b.Start(ctx)

	one, cancelOne := b.Subscribe(1)
	defer cancelOne()
	two, cancelTwo := b.Subscribe(2)
	defer cancelTwo()
	all, cancelAll := b.Subscribe(0)
	defer cancelAll()

	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 1}))

	ev := receive(t, one)
	assert.Equal(t, 1, ev.WorkspaceID)
	assert.Equal(t, int64(1), ev.SequenceID)
	assert.False(t, ev.Timestamp.IsZero())

	ev = receive(t, all)
	assert.Equal(t, 1, ev.WorkspaceID)

	assertNoEvent(t, two)
}

func TestBroker_OwnerSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroker()
	b.Start(ctx)

	ch, unsubscribe := b.SubscribeOwner("user_1", 1)
	defer unsubscribe()

	// todo writes in another workspace carry no owner and stay out
	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 2}))
	// another user's workspace events stay out
	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 3, OwnerID: "user_2"}))
	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 1}))
	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceDeleted, WorkspaceID: 4, OwnerID: "user_1"}))

	ev := receive(t, ch)
	assert.Equal(t, 1, ev.WorkspaceID)
	ev = receive(t, ch)
	assert.Equal(t, 4, ev.WorkspaceID)
	assert.Equal(t, EventWorkspaceDeleted, ev.Type)
	assertNoEvent(t, ch)
}

func TestBroker_SequenceIncreases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroker()
	b.Start(ctx)
	ch, unsubscribe := b.Subscribe(0)
	defer unsubscribe()

	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 3}))
	require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 4}))

	first := receive(t, ch)
	second := receive(t, ch)
	assert.Less(t, first.SequenceID, second.SequenceID)
}

func TestBroker_SlowSubscriberDrops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroker(WithSubscriberBuffer(1))
	b.Start(ctx)
	_, unsubscribe := b.Subscribe(0)
	defer unsubscribe()

	for i := 0; i < 5; i++ {
		require.NoError(t, b.SendEvent(Event{Type: EventWorkspaceChanged, WorkspaceID: 1}))
	}

	assert.Eventually(t, func() bool {
		return b.Metrics().GetSnapshot().EventsDropped == 4
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), b.Metrics().GetSnapshot().EventsSent)
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe(1)
	assert.Equal(t, int32(1), b.Metrics().GetSnapshot().Subscribers)

	unsubscribe()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, int32(0), b.Metrics().GetSnapshot().Subscribers)
}

func TestBroker_Shutdown(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe(0)

	b.Shutdown()
	b.Shutdown()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
	assert.ErrorIs(t, b.SendEvent(Event{Type: EventWorkspaceChanged}), ErrBrokerClosed)

	late, _ := b.Subscribe(0)
	_, ok = <-late
	assert.False(t, ok)
}

func TestBroker_ContextCancelShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker()
	b.Start(ctx)
	ch, _ := b.Subscribe(0)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber not closed after context cancel")
	}
}
