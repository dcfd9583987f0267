package collection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/calvinalkan/backlog/internal/game"
)

// Add validates draft, assigns an id and timestamps, and appends the record.
// Validation errors are returned before anything changes or is written.
func (s *Store) Add(draft game.Draft) (game.Record, error) {
	draft = draft.Normalize()

	err := draft.Validate()
	if err != nil {
		return game.Record{}, err
	}

	id, err := s.newID()
	if err != nil {
		return game.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := draft.Record(id, s.stamp())
	s.records = append(s.records, rec)

	s.scheduleSave()

	return rec.Clone(), nil
}

// Update replaces the record with rec.ID.
//
// CreatedAt is kept from the stored record and UpdatedAt is set to now, so
// whatever timestamps rec carries are ignored. An id not in the collection is
// a no-op and returns ok=false.
func (s *Store) Update(rec game.Record) (game.Record, bool, error) {
	draft := rec.Draft()
	draft.Title = strings.TrimSpace(draft.Title)

	err := draft.Validate()
	if err != nil {
		return game.Record{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(rec.ID)
	if i < 0 {
		return game.Record{}, false, nil
	}

	return s.replaceLocked(i, &draft), true, nil
}

// SetStatus changes only the status of the record with id. The read and the
// write happen under one lock so a concurrent Update is never reverted.
func (s *Store) SetStatus(id string, status game.Status) (game.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return game.Record{}, false, nil
	}

	draft := s.records[i].Draft()
	draft.Status = status

	err := draft.Validate()
	if err != nil {
		return game.Record{}, false, err
	}

	return s.replaceLocked(i, &draft), true, nil
}

// replaceLocked rebuilds records[i] from draft, keeping its id and createdAt.
// Caller holds mu.
func (s *Store) replaceLocked(i int, draft *game.Draft) game.Record {
	id := s.records[i].ID
	createdAt := s.records[i].CreatedAt

	updatedAt := s.stamp()
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	next := draft.Record(id, createdAt)
	next.UpdatedAt = updatedAt
	s.records[i] = next

	s.scheduleSave()

	return next.Clone()
}

// Delete removes the record with id. Deleting an absent id is not an error.
// A snapshot is written either way.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i >= 0 {
		s.records = slices.Delete(s.records, i, i+1)
	}

	s.scheduleSave()

	return i >= 0
}

// SetFilter sets the status filter used by FilteredView. Not persisted.
func (s *Store) SetFilter(f game.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", game.ErrInvalidFilter, f)
	}

	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	return nil
}

// SetSort sets the order used by FilteredView. Not persisted.
func (s *Store) SetSort(o game.SortOrder) error {
	if !o.IsValid() {
		return fmt.Errorf("%w: %q", game.ErrInvalidSort, o)
	}

	s.mu.Lock()
	s.sort = o
	s.mu.Unlock()

	return nil
}
