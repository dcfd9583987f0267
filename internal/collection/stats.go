package collection

import (
	"cmp"
	"math"
	"slices"

	"github.com/calvinalkan/backlog/internal/game"
)

// TopN is how many genres and platforms Stats ranks.
const TopN = 5

// Count is a name with the number of records carrying it.
type Count struct {
	Name  string
	Count int
}

// Stats summarizes the whole collection, ignoring the active filter.
type Stats struct {
	Total     int
	Completed int

	// CompletionPercent is Completed/Total*100 rounded to one decimal, 0 when empty.
	CompletionPercent float64

	// TotalEstimatedHours sums every estimate; missing estimates count as 0.
	TotalEstimatedHours int

	// AveragePriority is rounded to one decimal, 0 when empty.
	AveragePriority float64

	// TopGenres and TopPlatforms hold at most TopN entries, most common first.
	// Equal counts keep the order in which the names first appear. Records
	// with no genre or platform are not counted.
	TopGenres    []Count
	TopPlatforms []Count

	ByStatus map[game.Status]int
}

// Stats computes the summary over the current records.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Total:    len(s.records),
		ByStatus: histogram(s.records),
	}

	st.Completed = st.ByStatus[game.StatusCompleted]

	prioritySum := 0

	for i := range s.records {
		st.TotalEstimatedHours += s.records[i].Hours()
		prioritySum += s.records[i].Priority
	}

	if st.Total > 0 {
		st.CompletionPercent = roundTenth(float64(st.Completed) / float64(st.Total) * 100)
		st.AveragePriority = roundTenth(float64(prioritySum) / float64(st.Total))
	}

	st.TopGenres = top(s.records, func(r *game.Record) string { return r.Genre })
	st.TopPlatforms = top(s.records, func(r *game.Record) string { return r.Platform })

	return st
}

func top(records []game.Record, field func(*game.Record) string) []Count {
	var counts []Count

	index := make(map[string]int)

	for i := range records {
		name := field(&records[i])
		if name == "" {
			continue
		}

		j, ok := index[name]
		if !ok {
			j = len(counts)
			index[name] = j
			counts = append(counts, Count{Name: name})
		}

		counts[j].Count++
	}

	slices.SortStableFunc(counts, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(counts) > TopN {
		counts = counts[:TopN]
	}

	return counts
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
