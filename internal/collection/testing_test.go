package collection_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/backlog/internal/collection"
	"github.com/calvinalkan/backlog/internal/game"
	"github.com/calvinalkan/backlog/internal/kv"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances one second per call so every stamp is distinct.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: baseTime}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

// seqIDs returns ids g001, g002, ...
func seqIDs() game.IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)

	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()

		n++

		return fmt.Sprintf("g%03d", n), nil
	}
}

type fixture struct {
	Store *collection.Store
	KV    kv.Store
	Clock *fakeClock
}

// newFixture returns a loaded store over an empty in-memory kv.
func newFixture(t *testing.T, opts ...collection.Option) *fixture {
	t.Helper()

	return newFixtureWithKV(t, kv.NewMemory(), opts...)
}

func newFixtureWithKV(t *testing.T, store kv.Store, opts ...collection.Option) *fixture {
	t.Helper()

	clock := newFakeClock()

	all := append([]collection.Option{
		collection.WithClock(clock.Now),
		collection.WithIDGenerator(seqIDs()),
	}, opts...)

	s := collection.New(store, all...)
	s.Load(t.Context())

	return &fixture{Store: s, KV: store, Clock: clock}
}

// mustAdd adds a draft and fails the test on error.
func (f *fixture) mustAdd(t *testing.T, d game.Draft) game.Record {
	t.Helper()

	rec, err := f.Store.Add(d)
	require.NoError(t, err)

	return rec
}

// persisted flushes pending writes and decodes what the kv holds.
func (f *fixture) persisted(t *testing.T) []game.Record {
	t.Helper()

	require.NoError(t, f.Store.Flush(t.Context()))

	data, err := f.KV.Get(t.Context(), collection.SnapshotKey)
	require.NoError(t, err)

	records, skipped, err := collection.DecodeSnapshot(data)
	require.NoError(t, err)
	require.Empty(t, skipped)

	return records
}

func ids(records []game.Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID
	}

	return out
}

var errInjected = errors.New("injected failure")

// failingKV fails every call.
type failingKV struct {
	mu   sync.Mutex
	sets int
}

func (*failingKV) Get(context.Context, string) ([]byte, error) { return nil, errInjected }

func (f *failingKV) Set(context.Context, string, []byte) error {
	f.mu.Lock()
	f.sets++
	f.mu.Unlock()

	return errInjected
}

func (*failingKV) Close() error { return nil }

func (f *failingKV) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sets
}
