package game

import "errors"

// Status constants.
const (
	StatusBacklog   Status = "backlog"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Sort order constants.
const (
	SortPriority      SortOrder = "priority"
	SortName          SortOrder = "name"
	SortDateAdded     SortOrder = "dateAdded"
	SortEstimatedTime SortOrder = "estimatedTime"
)

// FilterAll matches every status.
const FilterAll Filter = "all"

// Error variables for record validation.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrIDRequired         = errors.New("game ID is required")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority (must be 1-5)")
	ErrInvalidHours       = errors.New("estimated hours cannot be negative")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrInvalidSort        = errors.New("invalid sort order")
	ErrIDGenerationFailed = errors.New("cannot generate game ID")
)
