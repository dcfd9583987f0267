package game

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a time-ordered UUIDv7 string.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIDGenerationFailed, err)
	}

	return id.String(), nil
}

// IDGenerator mints record ids. Tests inject a deterministic one.
type IDGenerator func() (string, error)

// ResolveID accepts a full id or an unambiguous prefix of one of ids.
// It returns ok=false if nothing or more than one id matches.
func ResolveID(ids []string, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	match := ""

	for _, id := range ids {
		if id == raw {
			return id, true
		}

		if len(raw) < len(id) && id[:len(raw)] == raw {
			if match != "" {
				return "", false
			}

			match = id
		}
	}

	return match, match != ""
}
