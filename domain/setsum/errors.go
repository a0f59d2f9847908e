package setsum

import "github.com/pkg/errors"

// ErrMalformedDigest is returned when parsing a digest whose length or
// characters don't match the canonical encoding. Parsing errors wrap it, so
// test for it with errors.Is.
var ErrMalformedDigest = errors.New("malformed setsum digest")
