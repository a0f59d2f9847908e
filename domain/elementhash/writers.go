package elementhash

import (
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashWriter is used to incrementally hash an element without concatenating all of its data to a single buffer.
// It exposes an io.Writer api and a Finalize function to get the resulting lane vector.
// HashWriter.Write(element).Finalize() == Hash(element)
type HashWriter struct {
	hash.Hash
}

// NewHashWriter returns a new HashWriter keyed with the element hashing domain
func NewHashWriter() HashWriter {
	blake, err := blake2b.New256(domainKey)
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %d bytes is a valid blake2b key size", len(domainKey)))
	}
	return HashWriter{blake}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the lane vector of everything written so far
func (h HashWriter) Finalize() LaneVector {
	var sum [Size]byte
	// Sum appends into sum's backing array since blake2b-256 output is exactly Size bytes.
	copy(sum[:], h.Sum(sum[:0]))
	return FromBytes(&sum)
}
