package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/calvinalkan/backlog/internal/game"
)

// EncodeSnapshot serializes records as a JSON array in the given order.
func EncodeSnapshot(records []game.Record) ([]byte, error) {
	if records == nil {
		records = []game.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return data, nil
}

// DecodeSnapshot parses a JSON array of records.
//
// A JSON null or an empty value decodes to an empty collection. Records without
// an id, later records repeating an earlier id, and records that would fail
// validation on Add are dropped and reported in skipped.
func DecodeSnapshot(data []byte) (records []game.Record, skipped []error, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []game.Record{}, nil, nil
	}

	var raw []game.Record

	err = json.Unmarshal(trimmed, &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errSnapshotDecode, err)
	}

	records = make([]game.Record, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for i := range raw {
		rec := raw[i]

		if rec.ID == "" {
			skipped = append(skipped, fmt.Errorf("%w: index %d", errEmptyIDInSnapshot, i))

			continue
		}

		if seen[rec.ID] {
			skipped = append(skipped, fmt.Errorf("%w: %s", errDuplicateID, rec.ID))

			continue
		}

		err := validSaved(&rec)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%w %s: %w", errInvalidSnapshotRecord, rec.ID, err))

			continue
		}

		seen[rec.ID] = true

		records = append(records, rec)
	}

	return records, skipped, nil
}

// validSaved holds a loaded record to the same rules as Add and Update.
func validSaved(rec *game.Record) error {
	draft := rec.Draft()

	err := draft.Validate()
	if err != nil {
		return err
	}

	if rec.UpdatedAt.Before(rec.CreatedAt) {
		return errUpdatedBeforeCreated
	}

	return nil
}
