package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

type memActivities struct {
	mu      sync.Mutex
	entries []domain.Activity
	failFor string
	block   chan struct{}
}

func (r *memActivities) Insert(_ context.Context, a *domain.Activity) error {
	if r.block != nil {
		<-r.block
	}
	if a.EntityID == r.failFor {
		return errors.New("write failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = fmt.Sprintf("a%d", len(r.entries)+1)
	r.entries = append(r.entries, *a)
	return nil
}

func (r *memActivities) Recent(context.Context, int) ([]*domain.Activity, error) { return nil, nil }

func (r *memActivities) snapshot() []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Activity{}, r.entries...)
}

type memPublisher struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (p *memPublisher) Publish(_ context.Context, a *domain.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, a.ID)
	return p.err
}

func entry(entityID, action string) domain.Activity {
	return domain.Activity{Action: action, EntityType: domain.EntityNews, EntityID: entityID}
}

func stop(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
}

func TestDispatcher_PersistsAndPublishes(t *testing.T) {
	store := &memActivities{}
	pub := &memPublisher{}
	d := NewDispatcher(4, 16, store, pub, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 10; i++ {
		d.Record(entry(fmt.Sprintf("n%d", i), domain.ActionCreate))
	}
	stop(t, d)

	assert.Len(t, store.snapshot(), 10)
	assert.Len(t, pub.ids, 10)
}

func TestDispatcher_KeepsPerEntityOrder(t *testing.T) {
	store := &memActivities{}
	d := NewDispatcher(4, 64, store, nil, zerolog.Nop())
	d.Start(context.Background())

	actions := []string{domain.ActionCreate, domain.ActionUpdate, domain.ActionPublish, domain.ActionUnpublish, domain.ActionDelete}
	for _, a := range actions {
		d.Record(entry("same", a))
		d.Record(entry("other", a))
	}
	stop(t, d)

	var got []string
	for _, e := range store.snapshot() {
		if e.EntityID == "same" {
			got = append(got, e.Action)
		}
	}
	assert.Equal(t, actions, got)
}

func TestDispatcher_FailuresDoNotStopWorkers(t *testing.T) {
	store := &memActivities{failFor: "bad"}
	pub := &memPublisher{err: errors.New("broker down")}
	d := NewDispatcher(1, 8, store, pub, zerolog.Nop())
	d.Start(context.Background())

	d.Record(entry("bad", domain.ActionCreate))
	d.Record(entry("good", domain.ActionCreate))
	stop(t, d)

	entries := store.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].EntityID)
	assert.Len(t, pub.ids, 1, "failed inserts are not published")
}

func TestDispatcher_DropsWhenFullOrStopped(t *testing.T) {
	store := &memActivities{block: make(chan struct{})}
	d := NewDispatcher(1, 1, store, nil, zerolog.Nop())
	d.Start(context.Background())

	// the worker holds the first entry, the buffer holds the second
	d.Record(entry("e", "1"))
	require.Eventually(t, func() bool { return len(d.workers[0]) == 0 }, time.Second, time.Millisecond)
	d.Record(entry("e", "2"))
	d.Record(entry("e", "3"))

	close(store.block)
	stop(t, d)
	d.Record(entry("e", "4"))

	assert.Len(t, store.snapshot(), 2)
}

func TestDispatcher_StopHonoursDeadline(t *testing.T) {
	store := &memActivities{block: make(chan struct{})}
	d := NewDispatcher(1, 4, store, nil, zerolog.Nop())
	d.Start(context.Background())
	d.Record(entry("e", "1"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)

	close(store.block)
	stop(t, d)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, 1, &memActivities{}, nil, zerolog.Nop())
	for _, id := range []string{"", "a", "profile-123"} {
		idx := d.shardIndex(id)
		assert.Equal(t, idx, d.shardIndex(id))
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
	}
}
