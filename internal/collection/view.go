package collection

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/calvinalkan/backlog/internal/game"
)

// FilteredView returns the records matching the active filter, ordered by the
// active sort. It is recomputed on every call.
//
// All orders are stable, so records that compare equal keep their stored
// (insertion) order:
//   - priority: highest first
//   - name: title ascending, compared by the configured locale
//   - dateAdded: newest CreatedAt first
//   - estimatedTime: fewest hours first, a missing estimate counts as 0
func (s *Store) FilteredView() []game.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return view(s.records, s.filter, s.sort, s.locale)
}

// View is FilteredView with an explicit filter and sort, leaving the session
// state untouched.
func (s *Store) View(f game.Filter, o game.SortOrder) []game.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return view(s.records, f, o, s.locale)
}

func view(records []game.Record, f game.Filter, o game.SortOrder, locale language.Tag) []game.Record {
	out := make([]game.Record, 0, len(records))

	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i].Clone())
		}
	}

	switch o {
	case game.SortPriority:
		slices.SortStableFunc(out, func(a, b game.Record) int {
			return cmp.Compare(b.Priority, a.Priority)
		})
	case game.SortName:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(locale)

		slices.SortStableFunc(out, func(a, b game.Record) int {
			return col.CompareString(a.Title, b.Title)
		})
	case game.SortDateAdded:
		slices.SortStableFunc(out, func(a, b game.Record) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case game.SortEstimatedTime:
		slices.SortStableFunc(out, func(a, b game.Record) int {
			return cmp.Compare(a.Hours(), b.Hours())
		})
	}

	return out
}

// StatusHistogram counts records per status. Every status is present, with 0
// when no record has it; a status outside the known four is not counted.
func (s *Store) StatusHistogram() map[game.Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return histogram(s.records)
}

func histogram(records []game.Record) map[game.Status]int {
	counts := make(map[game.Status]int, len(game.Statuses))
	for _, st := range game.Statuses {
		counts[st] = 0
	}

	for i := range records {
		if _, ok := counts[records[i].Status]; ok {
			counts[records[i].Status]++
		}
	}

	return counts
}

// Recommendation returns the backlog record with the highest priority.
//
// Ties go to the record stored first, which is the one added earliest (loaded
// records keep their snapshot order). ok is false when the backlog is empty.
func (s *Store) Recommendation() (game.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := -1

	for i := range s.records {
		if s.records[i].Status != game.StatusBacklog {
			continue
		}

		if best < 0 || s.records[i].Priority > s.records[best].Priority {
			best = i
		}
	}

	if best < 0 {
		return game.Record{}, false
	}

	return s.records[best].Clone(), true
}
