package setsum

import (
	"encoding/hex"

	"github.com/kaspanet/setsum/domain/elementhash"
	"github.com/pkg/errors"
)

const (
	// Size is the size of a binary digest in bytes.
	Size = elementhash.Size

	// StringSize is the length of a hex digest.
	StringSize = Size * 2
)

// Digest returns the binary digest of s: every lane, in order, as 8
// little-endian bytes.
func (s *Setsum) Digest() [Size]byte {
	return s.lanes.Bytes()
}

// Serialize returns the binary digest of s as a slice.
func (s *Setsum) Serialize() []byte {
	digest := s.Digest()
	return digest[:]
}

// String returns the lowercase hex encoding of the binary digest of s.
func (s *Setsum) String() string {
	return hex.EncodeToString(s.Serialize())
}

// FromBytes parses a binary digest as returned by Serialize.
func FromBytes(digestBytes []byte) (*Setsum, error) {
	if len(digestBytes) != Size {
		return nil, errors.Wrapf(ErrMalformedDigest, "digest is %d bytes long, while it should be %d",
			len(digestBytes), Size)
	}
	var digest [Size]byte
	copy(digest[:], digestBytes)
	return &Setsum{lanes: elementhash.FromBytes(&digest)}, nil
}

// FromString parses a hex digest as returned by String. Only the canonical
// encoding is accepted: exactly StringSize characters, all of them in
// [0-9a-f].
func FromString(digest string) (*Setsum, error) {
	if len(digest) != StringSize {
		return nil, errors.Wrapf(ErrMalformedDigest, "digest string length is %d, while it should be %d",
			len(digest), StringSize)
	}
	for i := 0; i < len(digest); i++ {
		if !isLowerHex(digest[i]) {
			return nil, errors.Wrapf(ErrMalformedDigest, "invalid character %q at position %d of digest string",
				digest[i], i)
		}
	}
	digestBytes, err := hex.DecodeString(digest)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedDigest, "couldn't decode digest hex: %s", err)
	}
	return FromBytes(digestBytes)
}

func isLowerHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

// MarshalText implements encoding.TextMarshaler.
func (s *Setsum) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. s is left unchanged on
// error.
func (s *Setsum) UnmarshalText(text []byte) error {
	parsed, err := FromString(string(text))
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Setsum) MarshalBinary() ([]byte, error) {
	return s.Serialize(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. s is left unchanged
// on error.
func (s *Setsum) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
