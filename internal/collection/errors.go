package collection

import "errors"

// SnapshotKey is the durable store key the whole collection is written under.
const SnapshotKey = "games"

var (
	errSnapshotDecode    = errors.New("decode snapshot")
	errDuplicateID       = errors.New("duplicate id in snapshot")
	errEmptyIDInSnapshot = errors.New("record without id in snapshot")

	errInvalidSnapshotRecord = errors.New("invalid saved game")
	errUpdatedBeforeCreated  = errors.New("updatedAt before createdAt")
)
