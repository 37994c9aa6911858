package mongo

import "errors"

// Sentinels for commit-time guard failures. Services map these onto the
// error-code contract; handlers never see them directly.
var (
	// ErrNotOpen: the target job/drive exists but is not accepting
	// candidates (Paused or Closed).
	ErrNotOpen = errors.New("not open")

	// ErrDuplicate: the unique (candidate, target) index rejected a second
	// apply/join.
	ErrDuplicate = errors.New("duplicate")

	// ErrCapacityFull: attendees == slots at the moment of commit.
	ErrCapacityFull = errors.New("capacity full")
)
