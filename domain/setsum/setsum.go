// Package setsum implements an order-independent, invertible multiset
// checksum.
//
// A Setsum is a vector of elementhash.LaneCount uint64 lanes. Inserting an
// element adds the element's lane vector to the Setsum lane by lane, modulo
// 2^64, and removing it subtracts the same vector. Because lane addition is
// commutative and associative, the value of a Setsum depends only on the
// multiset of elements inserted minus the multiset of elements removed, never
// on the order of the calls.
//
// Setsum is a multiset checksum: inserting the same element twice yields a
// different value than inserting it once. Removing an element that was never
// inserted is not detected; it produces a valid but meaningless value that
// only returns to a meaningful one once the element is inserted.
//
// Setsum detects accidental divergence between data sets, such as the drift
// between a database and its replica. It is not a cryptographic
// commitment: the group operation is plain modular addition, so anyone who can
// choose the inserted elements can steer the checksum towards a chosen value.
//
// A Setsum is a plain value with no shared state. Distinct Setsums may be used
// from distinct goroutines freely, but concurrent mutation of a single Setsum
// must be synchronized by the caller. Per-goroutine Setsums merged at the end
// (see SumParallel) avoid the synchronization altogether.
package setsum

import (
	"io"

	"github.com/kaspanet/setsum/domain/elementhash"
	"github.com/pkg/errors"
)

// Setsum is the running checksum of a multiset of elements. The zero value is
// the checksum of the empty multiset.
type Setsum struct {
	lanes elementhash.LaneVector
}

// New returns the Setsum of the empty multiset.
func New() *Setsum {
	return &Setsum{}
}

// FromLanes returns a Setsum with the given lanes.
func FromLanes(lanes elementhash.LaneVector) *Setsum {
	return &Setsum{lanes: lanes}
}

// Lanes returns the lanes of s.
func (s *Setsum) Lanes() elementhash.LaneVector {
	return s.lanes
}

// Insert adds a single element to s.
func (s *Setsum) Insert(element []byte) {
	s.add(elementhash.Hash(element))
}

// InsertAll adds every given element to s.
func (s *Setsum) InsertAll(elements ...[]byte) {
	for _, element := range elements {
		s.Insert(element)
	}
}

// InsertReader adds a single element, read from r until EOF, to s. The
// element is all of r's bytes, however r splits them into reads. s is left
// unchanged if reading fails.
func (s *Setsum) InsertReader(r io.Reader) error {
	lanes, err := hashReader(r)
	if err != nil {
		return err
	}
	s.add(lanes)
	return nil
}

// Remove subtracts a single element from s. It is the exact inverse of Insert
// with the same element.
func (s *Setsum) Remove(element []byte) {
	s.sub(elementhash.Hash(element))
}

// RemoveAll subtracts every given element from s.
func (s *Setsum) RemoveAll(elements ...[]byte) {
	for _, element := range elements {
		s.Remove(element)
	}
}

// RemoveReader subtracts a single element, read from r until EOF, from s. s
// is left unchanged if reading fails.
func (s *Setsum) RemoveReader(r io.Reader) error {
	lanes, err := hashReader(r)
	if err != nil {
		return err
	}
	s.sub(lanes)
	return nil
}

// Merge adds other to s in place, as if every element of other had been
// inserted into s.
func (s *Setsum) Merge(other *Setsum) {
	s.add(other.lanes)
}

// Unmerge subtracts other from s in place. It is the inverse of Merge.
func (s *Setsum) Unmerge(other *Setsum) {
	s.sub(other.lanes)
}

// Equal returns whether s and other have the same value.
func (s *Setsum) Equal(other *Setsum) bool {
	return s.lanes == other.lanes
}

// IsIdentity returns whether s is the checksum of the empty multiset.
func (s *Setsum) IsIdentity() bool {
	return s.lanes == elementhash.LaneVector{}
}

// Clone returns a copy of s.
func (s *Setsum) Clone() *Setsum {
	clone := *s
	return &clone
}

// Merge returns the sum of all the given Setsums. The arguments are not
// modified. Merge with no arguments returns the identity.
func Merge(setsums ...*Setsum) *Setsum {
	result := New()
	for _, setsum := range setsums {
		result.Merge(setsum)
	}
	return result
}

// Unmerge returns a new Setsum with the value of a minus b.
func Unmerge(a, b *Setsum) *Setsum {
	result := a.Clone()
	result.Unmerge(b)
	return result
}

func (s *Setsum) add(lanes elementhash.LaneVector) {
	for i := range s.lanes {
		s.lanes[i] += lanes[i]
	}
}

func (s *Setsum) sub(lanes elementhash.LaneVector) {
	for i := range s.lanes {
		s.lanes[i] -= lanes[i]
	}
}

func hashReader(r io.Reader) (elementhash.LaneVector, error) {
	writer := elementhash.NewHashWriter()
	_, err := io.Copy(writer, r)
	if err != nil {
		return elementhash.LaneVector{}, errors.Wrap(err, "failed reading element")
	}
	return writer.Finalize(), nil
}
