// Package replication keeps a running setsum over a stream of transactions.
//
// Each transaction replaces a set of rows (its pre-images) with a new set of
// rows (its post-images). Applying a transaction removes the pre-images from
// the stream's setsum and inserts the post-images, so the setsum always
// equals the setsum of the rows currently in the table. Two replicas that
// applied the same transactions have equal setsums, regardless of the order
// in which non-conflicting transactions were applied.
package replication

import (
	"sync"

	"github.com/kaspanet/setsum/domain/setsum"
	"github.com/pkg/errors"
)

// Transaction is a single change to a replicated table.
type Transaction struct {
	// PreImages are the rows as they were before the transaction. Rows the
	// transaction creates have no pre-image.
	PreImages [][]byte

	// PostImages are the rows as they are after the transaction. Rows the
	// transaction deletes have no post-image.
	PostImages [][]byte
}

// Stream is the running setsum of a replicated table. It is safe for
// concurrent use.
type Stream struct {
	mtx     sync.RWMutex
	setsum  *setsum.Setsum
	applied uint64
}

// NewStream returns a Stream of an empty table.
func NewStream() *Stream {
	return &Stream{setsum: setsum.New()}
}

// ResumeStream returns a Stream that continues from a checkpoint previously
// returned by Checkpoint. Every transaction applied after the checkpoint was
// taken must be applied to the resumed Stream.
func ResumeStream(checkpoint string) (*Stream, error) {
	resumed, err := setsum.FromString(checkpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid checkpoint")
	}
	log.Debugf("Resumed replication stream from checkpoint %s", checkpoint)
	return &Stream{setsum: resumed}, nil
}

// Apply applies a transaction to the stream.
func (s *Stream) Apply(transaction *Transaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.setsum.RemoveAll(transaction.PreImages...)
	s.setsum.InsertAll(transaction.PostImages...)
	s.applied++
	log.Tracef("Applied transaction with %d pre-images and %d post-images",
		len(transaction.PreImages), len(transaction.PostImages))
}

// Checkpoint returns the digest of the stream. Passing it to ResumeStream
// recovers the stream without replaying its history.
func (s *Stream) Checkpoint() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.setsum.String()
}

// Setsum returns a copy of the stream's setsum.
func (s *Stream) Setsum() *setsum.Setsum {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.setsum.Clone()
}

// Applied returns the number of transactions applied since the stream was
// created or resumed.
func (s *Stream) Applied() uint64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.applied
}

// Matches returns whether the stream's setsum equals the digest of another
// replica.
func (s *Stream) Matches(replicaDigest string) (bool, error) {
	replica, err := setsum.FromString(replicaDigest)
	if err != nil {
		return false, errors.Wrap(err, "invalid replica digest")
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	matches := s.setsum.Equal(replica)
	if !matches {
		log.Warnf("Replica digest %s diverged from local digest %s", replicaDigest, s.setsum)
	}
	return matches, nil
}
