package game

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder selects how a filtered view is ordered.
type SortOrder string

// SortOrders lists every valid sort order.
var SortOrders = []SortOrder{SortPriority, SortName, SortDateAdded, SortEstimatedTime}

// IsValid reports whether o is a known sort order.
func (o SortOrder) IsValid() bool {
	return slices.Contains(SortOrders, o)
}

// ParseSortOrder converts user input to a SortOrder.
func ParseSortOrder(raw string) (SortOrder, error) {
	o := SortOrder(strings.TrimSpace(raw))
	if !o.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}

	return o, nil
}

// Filter restricts a view to one status, or to none with FilterAll.
type Filter string

// FilterFor returns the filter that keeps only records with status s.
func FilterFor(s Status) Filter {
	return Filter(s)
}

// IsValid reports whether f is FilterAll or a valid status.
func (f Filter) IsValid() bool {
	return f == FilterAll || Status(f).IsValid()
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r *Record) bool {
	return f == FilterAll || Status(f) == r.Status
}

// ParseFilter converts user input to a Filter.
func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.TrimSpace(raw))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}

	return f, nil
}
