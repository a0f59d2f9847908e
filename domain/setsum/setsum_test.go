package setsum

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/setsum/domain/elementhash"
	"github.com/pkg/errors"
)

const (
	identityDigest = "0000000000000000000000000000000000000000000000000000000000000000"
	abcDigest      = "734ba9b4ebc399cb35fda4858f39ae128d04c331592c83afb7b7d09e0afb96c0"
	sevenDigest    = "53f4fbef493590fdcd6df3ba788613c467c391b06051a9ba5b414880fd1dff04"
)

var sevenValues = [][]byte{
	[]byte("this is the first value"),
	[]byte("this is the second value"),
	[]byte("this is the third value"),
	[]byte("this is the fourth value"),
	[]byte("this is the fifth value"),
	[]byte("this is the sixth value"),
	[]byte("this is the seventh value"),
}

func randomElements(r *rand.Rand, count int) [][]byte {
	elements := make([][]byte, count)
	for i := range elements {
		elements[i] = make([]byte, r.Intn(100))
		r.Read(elements[i])
	}
	return elements
}

func TestIdentity(t *testing.T) {
	identity := New()
	if identity.String() != identityDigest {
		t.Fatalf("unexpected identity digest %s", identity)
	}
	if !identity.IsIdentity() {
		t.Fatalf("New() is expected to be the identity")
	}
	var zero Setsum
	if !zero.Equal(identity) {
		t.Fatalf("the zero value is expected to equal New()")
	}
	if !Merge(New(), New()).Equal(identity) {
		t.Fatalf("merge(identity, identity) is expected to be the identity")
	}
	if !Merge().IsIdentity() {
		t.Fatalf("Merge with no arguments is expected to return the identity")
	}

	s := New()
	s.InsertAll()
	if !s.IsIdentity() {
		t.Fatalf("inserting nothing is expected to leave the identity unchanged")
	}
}

func TestInsertOrderIndependence(t *testing.T) {
	forward := New()
	forward.Insert([]byte("A"))
	forward.Insert([]byte("B"))
	forward.Insert([]byte("C"))

	backward := New()
	backward.Insert([]byte("C"))
	backward.Insert([]byte("B"))
	backward.Insert([]byte("A"))

	if forward.String() != abcDigest {
		t.Fatalf("unexpected digest for {A, B, C}. Want: %s, got: %s", abcDigest, forward)
	}
	if !forward.Equal(backward) {
		t.Fatalf("insertion order changed the digest: %s != %s", forward, backward)
	}

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([][]byte(nil), sevenValues...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		s := New()
		s.InsertAll(shuffled...)
		if s.String() != sevenDigest {
			t.Fatalf("permutation %d: unexpected digest. Want: %s, got: %s", i, sevenDigest, s)
		}
	}
}

func TestRemoveInvertsInsert(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	s := New()
	s.InsertAll(randomElements(r, 20)...)

	for _, element := range randomElements(r, 100) {
		before := s.Clone()
		s.Insert(element)
		if s.Equal(before) {
			t.Fatalf("inserting %x did not change the setsum", element)
		}
		s.Remove(element)
		if !s.Equal(before) {
			t.Fatalf("remove(insert(S, %x), %x) != S: %s != %s", element, element, s, before)
		}
	}

	s = New()
	s.InsertAll(sevenValues...)
	s.RemoveAll(sevenValues...)
	if !s.IsIdentity() {
		t.Fatalf("removing every inserted value is expected to return to the identity, got %s", s)
	}
}

func TestRemoveBeforeInsert(t *testing.T) {
	s := New()
	s.Remove([]byte("A"))

	expected := "4392e33062e2870039a73e37bc1c503c0b751cca6b1fd497cfce277ab02e934f"
	if s.String() != expected {
		t.Fatalf("unexpected digest after removing a value that was never inserted. Want: %s, got: %s",
			expected, s)
	}
	s.Insert([]byte("A"))
	if !s.IsIdentity() {
		t.Fatalf("inserting the removed value is expected to return to the identity, got %s", s)
	}
}

func TestMultisetSemantics(t *testing.T) {
	once := New()
	once.Insert([]byte("A"))

	twice := New()
	twice.Insert([]byte("A"))
	twice.Insert([]byte("A"))

	if once.Equal(twice) {
		t.Fatalf("inserting an element twice is expected to differ from inserting it once")
	}
	expected := "7adb389e3b3bf0fe8eb1829187c65f87ea15c76b28c157d06262b00b9fa2d960"
	if twice.String() != expected {
		t.Fatalf("unexpected digest for {A, A}. Want: %s, got: %s", expected, twice)
	}

	twice.Remove([]byte("A"))
	if !twice.Equal(once) {
		t.Fatalf("removing one of two copies is expected to leave one copy: %s != %s", twice, once)
	}
}

func TestMergeIsUnionOfDisjointMultisets(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	elements := randomElements(r, 200)

	for _, split := range []int{0, 1, 57, 199, 200} {
		whole := New()
		whole.InsertAll(elements...)

		left, right := New(), New()
		left.InsertAll(elements[:split]...)
		right.InsertAll(elements[split:]...)

		merged := Merge(left, right)
		if !merged.Equal(whole) {
			t.Errorf("split %d: merge(A, B) != insert_all(A ∪ B): %s != %s", split, merged, whole)
		}
		if merged.String() != whole.String() {
			t.Errorf("split %d: merged digest %s differs from %s", split, merged, whole)
		}

		inPlace := left.Clone()
		inPlace.Merge(right)
		if !inPlace.Equal(whole) {
			t.Errorf("split %d: in place Merge differs from Merge", split)
		}
	}

	first, second := New(), New()
	first.InsertAll(sevenValues[:4]...)
	second.InsertAll(sevenValues[4:]...)
	if Merge(first, second).String() != sevenDigest {
		t.Fatalf("merging the two halves of the seven values is expected to yield %s", sevenDigest)
	}
}

func TestMergeDoesNotModifyArguments(t *testing.T) {
	a, b := New(), New()
	a.Insert([]byte("A"))
	b.Insert([]byte("B"))
	aBefore, bBefore := a.Clone(), b.Clone()

	Merge(a, b)
	Unmerge(a, b)

	if !a.Equal(aBefore) || !b.Equal(bBefore) {
		t.Fatalf("Merge and Unmerge are expected to leave their arguments unchanged")
	}
}

func TestUnmerge(t *testing.T) {
	all := New()
	all.InsertAll(sevenValues...)

	first, second := New(), New()
	first.InsertAll(sevenValues[:4]...)
	second.InsertAll(sevenValues[4:]...)

	if !Unmerge(all, first).Equal(second) {
		t.Fatalf("unmerge(all, first) is expected to equal second")
	}
	if !Unmerge(Unmerge(all, first), second).IsIdentity() {
		t.Fatalf("all - first - second is expected to be the identity")
	}

	inPlace := all.Clone()
	inPlace.Unmerge(second)
	if !inPlace.Equal(first) {
		t.Fatalf("in place Unmerge(all, second) is expected to equal first")
	}
	inPlace.Merge(second)
	if !inPlace.Equal(all) {
		t.Fatalf("Merge is expected to undo Unmerge")
	}
}

func TestLanesWrapAround(t *testing.T) {
	maxLanes := FromLanes(elementhash.LaneVector{math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64})
	one := FromLanes(elementhash.LaneVector{1, 1, 1, 1})

	sum := Merge(maxLanes, one)
	if !sum.IsIdentity() {
		t.Fatalf("MaxUint64 + 1 is expected to wrap to zero in every lane, got %s", spew.Sdump(sum.Lanes()))
	}

	difference := Unmerge(New(), one)
	if difference.Lanes() != maxLanes.Lanes() {
		t.Fatalf("0 - 1 is expected to wrap to MaxUint64 in every lane, got %s", spew.Sdump(difference.Lanes()))
	}
}

func TestInsertIsLaneAddition(t *testing.T) {
	s := New()
	s.Insert([]byte("A"))
	s.Insert([]byte("B"))

	a, b := elementhash.Hash([]byte("A")), elementhash.Hash([]byte("B"))
	var expected elementhash.LaneVector
	for i := range expected {
		expected[i] = a[i] + b[i]
	}
	if s.Lanes() != expected {
		t.Fatalf("unexpected lanes. Want: %s, got: %s", spew.Sdump(expected), spew.Sdump(s.Lanes()))
	}
}

func TestEndToEndScenario(t *testing.T) {
	inOrder := New()
	inOrder.InsertAll([]byte("A"), []byte("B"), []byte("C"))

	reversed := New()
	reversed.InsertAll([]byte("C"), []byte("B"), []byte("A"))

	ac, b := New(), New()
	ac.InsertAll([]byte("A"), []byte("C"))
	b.Insert([]byte("B"))
	merged := Merge(ac, b)

	for name, s := range map[string]*Setsum{"reversed": reversed, "merged": merged} {
		if s.String() != inOrder.String() {
			t.Errorf("%s: digest %s differs from in order digest %s", name, s, inOrder)
		}
	}
	if inOrder.String() != abcDigest {
		t.Errorf("unexpected digest. Want: %s, got: %s", abcDigest, inOrder)
	}
}

func TestSingleByteDifferenceChangesEveryLane(t *testing.T) {
	upper, lower := New(), New()
	upper.Insert([]byte("A"))
	lower.Insert([]byte("a"))

	upperLanes, lowerLanes := upper.Lanes(), lower.Lanes()
	for i := range upperLanes {
		if upperLanes[i] == lowerLanes[i] {
			t.Errorf("lane %d is equal for \"A\" and \"a\"", i)
		}
	}
}

func TestInsertReader(t *testing.T) {
	element := bytes.Repeat([]byte("0123456789"), 10000)

	fromBytes := New()
	fromBytes.Insert(element)

	fromReader := New()
	if err := fromReader.InsertReader(bytes.NewReader(element)); err != nil {
		t.Fatalf("InsertReader: %s", err)
	}
	if !fromReader.Equal(fromBytes) {
		t.Fatalf("InsertReader differs from Insert: %s != %s", fromReader, fromBytes)
	}

	if err := fromReader.RemoveReader(bytes.NewReader(element)); err != nil {
		t.Fatalf("RemoveReader: %s", err)
	}
	if !fromReader.IsIdentity() {
		t.Fatalf("RemoveReader is expected to undo InsertReader")
	}
}

func TestInsertReaderIgnoresReadChunking(t *testing.T) {
	content := strings.Repeat("x", 100*1024)
	expected := New()
	expected.Insert([]byte(content))

	readers := []struct {
		name   string
		reader io.Reader
	}{
		{"strings reader", strings.NewReader(content)},
		{"small buffered reader", bufio.NewReaderSize(strings.NewReader(content), 16)},
		{"one byte reader", iotest.OneByteReader(strings.NewReader(content))},
		{"half reader", iotest.HalfReader(strings.NewReader(content))},
		{"multi reader", io.MultiReader(strings.NewReader(content[:1000]), strings.NewReader(content[1000:]))},
	}
	for _, test := range readers {
		s := New()
		if err := s.InsertReader(test.reader); err != nil {
			t.Fatalf("%s: InsertReader: %s", test.name, err)
		}
		if !s.Equal(expected) {
			t.Errorf("%s: the same bytes read in different chunks gave a different setsum. Want: %s, got: %s",
				test.name, expected, s)
		}
	}
}

type failingReader struct{}

var errReadFailed = errors.New("read failed")

func (failingReader) Read([]byte) (int, error) {
	return 0, errReadFailed
}

func TestInsertReaderFailure(t *testing.T) {
	s := New()
	s.Insert([]byte("A"))
	before := s.Clone()

	err := s.InsertReader(failingReader{})
	if !errors.Is(err, errReadFailed) {
		t.Fatalf("InsertReader is expected to fail with %s, got %v", errReadFailed, err)
	}
	err = s.RemoveReader(failingReader{})
	if !errors.Is(err, errReadFailed) {
		t.Fatalf("RemoveReader is expected to fail with %s, got %v", errReadFailed, err)
	}
	if !s.Equal(before) {
		t.Fatalf("a failed read is expected to leave the setsum unchanged")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := New()
	original.Insert([]byte("A"))
	clone := original.Clone()
	clone.Insert([]byte("B"))

	if original.Equal(clone) {
		t.Fatalf("modifying a clone is expected to leave the original unchanged")
	}

	copied := *original
	copied.Insert([]byte("C"))
	if original.Equal(&copied) {
		t.Fatalf("modifying a value copy is expected to leave the original unchanged")
	}
}
