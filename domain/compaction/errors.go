package compaction

import "github.com/pkg/errors"

// ErrChecksumMismatch is returned when the setsum of a compaction's inputs
// differs from the merged setsums of its outputs and garbage.
var ErrChecksumMismatch = errors.New("compaction checksum mismatch")
