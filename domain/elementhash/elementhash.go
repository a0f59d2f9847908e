// Package elementhash maps arbitrary byte strings to fixed-width lane vectors.
//
// Every element is hashed with blake2b-256 keyed by a constant that belongs to
// this package alone, so element hashes never coincide with any other blake2b
// use of the same bytes. The 32 byte output is read as LaneCount little-endian
// uint64 lanes.
package elementhash

import (
	"encoding/binary"
)

const (
	// LaneCount is the number of lanes in a LaneVector.
	LaneCount = 4

	// LaneSize is the size of a single lane in bytes.
	LaneSize = 8

	// Size is the size of a serialized LaneVector in bytes.
	Size = LaneCount * LaneSize
)

// domainKey keys the blake2b instance used for element hashing.
var domainKey = []byte("SetsumElementHash")

// LaneVector is a fixed-length vector of uint64 lanes.
type LaneVector [LaneCount]uint64

// Hash returns the lane vector of the given element. Any byte string,
// including an empty one, is a valid element.
func Hash(element []byte) LaneVector {
	writer := NewHashWriter()
	writer.InfallibleWrite(element)
	return writer.Finalize()
}

// FromBytes reads a LaneVector from its little-endian serialization.
func FromBytes(serialized *[Size]byte) LaneVector {
	var vector LaneVector
	for i := range vector {
		vector[i] = binary.LittleEndian.Uint64(serialized[i*LaneSize:])
	}
	return vector
}

// Bytes returns the little-endian serialization of the vector.
func (vector LaneVector) Bytes() [Size]byte {
	var serialized [Size]byte
	for i, lane := range vector {
		binary.LittleEndian.PutUint64(serialized[i*LaneSize:], lane)
	}
	return serialized
}
