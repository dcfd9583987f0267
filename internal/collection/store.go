// Package collection owns the game collection: the canonical records, the
// session filter and sort, and the snapshot written to a durable store after
// every change.
//
// Mutations apply to memory first and are visible to the next read as soon as
// the call returns. The durable write happens in the background; callers that
// need it finished (a CLI about to exit, a test) call [Store.Flush].
package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/calvinalkan/backlog/internal/game"
	"github.com/calvinalkan/backlog/internal/kv"
	"github.com/calvinalkan/backlog/internal/logger"
)

// Store is the collection state manager. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records []game.Record
	filter  game.Filter
	sort    game.SortOrder
	gen     uint64

	loading atomic.Bool
	loaded  bool

	now    func() time.Time
	newID  game.IDGenerator
	locale language.Tag
	log    *logger.Logger

	persist *persister
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how new record ids are minted.
func WithIDGenerator(gen game.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLocale sets the language used for title ordering.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) {
		s.locale = tag
	}
}

// WithKey overrides the durable store key. Defaults to SnapshotKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.persist.key = key
		}
	}
}

// WithWriteTimeout bounds each background write. Zero means no timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.persist.timeout = d
	}
}

// WithSort sets the initial sort order.
func WithSort(o game.SortOrder) Option {
	return func(s *Store) {
		if o.IsValid() {
			s.sort = o
		}
	}
}

// New returns an empty store backed by store. Call Load before use.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		records: []game.Record{},
		filter:  game.FilterAll,
		sort:    game.SortPriority,
		now:     time.Now,
		newID:   game.NewID,
		locale:  language.Und,
		log:     logger.Nop(),
		persist: &persister{store: store, key: SnapshotKey},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With("component", "collection")
	s.persist.log = s.log

	return s
}

// Load reads the snapshot from the durable store and replaces the records.
//
// A missing key or an unreadable snapshot leaves the collection empty; the
// failure is logged, never returned. Only the first call does anything: the
// loading to ready transition happens once.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}

	s.loading.Store(true)

	defer func() {
		s.loaded = true
		s.loading.Store(false)
	}()

	data, err := s.persist.store.Get(ctx, s.persist.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.log.Debug("no saved games", "key", s.persist.key)

			return
		}

		s.log.Error("loading games failed", "key", s.persist.key, "error", err)

		return
	}

	records, skipped, err := DecodeSnapshot(data)
	if err != nil {
		s.log.Error("loading games failed", "key", s.persist.key, "error", err)

		return
	}

	for _, skipErr := range skipped {
		s.log.Warn("skipping saved game", "error", skipErr)
	}

	s.records = records

	s.log.Debug("games loaded", "count", len(records))
}

// Loading reports whether Load is in progress.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Ready reports whether Load has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

// Flush waits for every background write scheduled so far.
func (s *Store) Flush(ctx context.Context) error {
	err := s.persist.wait(ctx)
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Records returns copies of all records in stored order.
func (s *Store) Records() []game.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(s.records)
}

// IDs returns the ids of all records in stored order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.records))
	for i := range s.records {
		ids[i] = s.records[i].ID
	}

	return ids
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (game.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return game.Record{}, false
	}

	return s.records[i].Clone(), true
}

// Filter returns the active filter.
func (s *Store) Filter() game.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter
}

// Sort returns the active sort order.
func (s *Store) Sort() game.SortOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sort
}

// indexOf returns the position of id in records, or -1. Caller holds mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r game.Record) bool { return r.ID == id })
}

// stamp returns the current time at the millisecond precision the snapshot
// format keeps.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// scheduleSave encodes the current records and hands them to the persister.
// Caller holds mu.
func (s *Store) scheduleSave() {
	data, err := EncodeSnapshot(s.records)
	if err != nil {
		s.log.Error("saving games failed", "error", err)

		return
	}

	s.gen++
	s.persist.schedule(s.gen, data)
}

func cloneAll(records []game.Record) []game.Record {
	out := make([]game.Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}

	return out
}
