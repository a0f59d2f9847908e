// Package compaction verifies compactions with setsums.
//
// A compaction reads a set of input records and writes every one of them
// either to an output or to garbage. If no record was lost or invented, the
// setsum of the inputs equals the merged setsums of the outputs and the
// garbage. Any difference means the compaction is broken or the data it read
// was corrupt.
package compaction

import (
	"github.com/kaspanet/setsum/domain/setsum"
	"github.com/pkg/errors"
)

// Verifier accumulates the setsums of a compaction's inputs, outputs and
// garbage. A Verifier is not safe for concurrent use.
type Verifier struct {
	inputs  *setsum.Setsum
	outputs *setsum.Setsum
	garbage *setsum.Setsum
}

// NewVerifier returns a Verifier with no records.
func NewVerifier() *Verifier {
	return &Verifier{
		inputs:  setsum.New(),
		outputs: setsum.New(),
		garbage: setsum.New(),
	}
}

// AddInput records a record read by the compaction.
func (v *Verifier) AddInput(record []byte) {
	v.inputs.Insert(record)
}

// AddOutput records a record written by the compaction.
func (v *Verifier) AddOutput(record []byte) {
	v.outputs.Insert(record)
}

// AddGarbage records a record dropped by the compaction.
func (v *Verifier) AddGarbage(record []byte) {
	v.garbage.Insert(record)
}

// AddInputSetsum merges the setsum of a whole input, such as a file whose
// setsum is already known, into the inputs.
func (v *Verifier) AddInputSetsum(s *setsum.Setsum) {
	v.inputs.Merge(s)
}

// AddOutputSetsum merges the setsum of a whole output into the outputs.
func (v *Verifier) AddOutputSetsum(s *setsum.Setsum) {
	v.outputs.Merge(s)
}

// AddGarbageSetsum merges the setsum of dropped data into the garbage.
func (v *Verifier) AddGarbageSetsum(s *setsum.Setsum) {
	v.garbage.Merge(s)
}

// Inputs returns a copy of the accumulated input setsum.
func (v *Verifier) Inputs() *setsum.Setsum {
	return v.inputs.Clone()
}

// Outputs returns a copy of the accumulated output setsum.
func (v *Verifier) Outputs() *setsum.Setsum {
	return v.outputs.Clone()
}

// Garbage returns a copy of the accumulated garbage setsum.
func (v *Verifier) Garbage() *setsum.Setsum {
	return v.garbage.Clone()
}

// Discrepancy returns inputs - (outputs + garbage). It is the identity for a
// correct compaction. Otherwise it is the setsum of the records that were
// lost, minus the setsum of the records that were invented.
func (v *Verifier) Discrepancy() *setsum.Setsum {
	return setsum.Unmerge(v.inputs, setsum.Merge(v.outputs, v.garbage))
}

// Verify returns an error matching ErrChecksumMismatch unless the recorded
// compaction preserved every input record.
func (v *Verifier) Verify() error {
	return Verify(v.inputs, v.outputs, v.garbage)
}

// Verify checks that inputs == merge(outputs, garbage).
func Verify(inputs, outputs, garbage *setsum.Setsum) error {
	accounted := setsum.Merge(outputs, garbage)
	if !inputs.Equal(accounted) {
		log.Warnf("Compaction checksum mismatch: inputs %s, outputs %s, garbage %s",
			inputs, outputs, garbage)
		return errors.Wrapf(ErrChecksumMismatch, "inputs %s != outputs %s + garbage %s",
			inputs, outputs, garbage)
	}
	log.Debugf("Compaction verified: inputs %s, outputs %s, garbage %s", inputs, outputs, garbage)
	return nil
}

// VerifyDigests is Verify for hex digests. Malformed digests produce an error
// matching setsum.ErrMalformedDigest.
func VerifyDigests(inputs, outputs, garbage string) error {
	inputsSetsum, err := setsum.FromString(inputs)
	if err != nil {
		return errors.Wrap(err, "invalid inputs digest")
	}
	outputsSetsum, err := setsum.FromString(outputs)
	if err != nil {
		return errors.Wrap(err, "invalid outputs digest")
	}
	garbageSetsum, err := setsum.FromString(garbage)
	if err != nil {
		return errors.Wrap(err, "invalid garbage digest")
	}
	return Verify(inputsSetsum, outputsSetsum, garbageSetsum)
}
