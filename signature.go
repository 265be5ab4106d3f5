package ecsim

import (
	"encoding/binary"
	"sort"
)

// SignatureHash is a content-addressable identity for a Signature: two
// signatures built via different With/Without paths but holding the same
// component identifiers produce identical hashes. It is safe as a map key.
type SignatureHash string

// Signature is the sorted, duplicate-free set of component identifiers
// that defines an archetype. A Signature never mutates after construction;
// With and Without return new values.
type Signature struct {
	ids []uint32
}

// EmptySignature is the signature of the archetype that holds newly
// committed entities before any component has been added.
var EmptySignature = Signature{}

// NewSignature builds a Signature from an arbitrary set of component
// identifiers, sorting them. It fails if any identifier repeats.
func NewSignature(ids ...uint32) (Signature, error) {
	sorted := append([]uint32(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Signature{}, DuplicateSignatureComponentError{Component: sorted[i]}
		}
	}
	return Signature{ids: sorted}, nil
}

// Len returns the number of components in the signature.
func (s Signature) Len() int { return len(s.ids) }

// At returns the component identifier at sorted position i.
func (s Signature) At(i int) uint32 { return s.ids[i] }

// IDs returns the signature's identifiers in sorted order. Callers must
// not mutate the returned slice.
func (s Signature) IDs() []uint32 { return s.ids }

// insertionPoint returns the sorted position c occupies, and whether c is
// already present at that position.
func (s Signature) insertionPoint(c uint32) (pos int, found bool) {
	lo, hi := 0, len(s.ids)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.ids[mid] < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(s.ids) && s.ids[lo] == c
}

// Contains reports whether c is a member of the signature.
func (s Signature) Contains(c uint32) bool {
	_, found := s.insertionPoint(c)
	return found
}

// IndexOf returns the sorted position of c, or -1 if absent.
func (s Signature) IndexOf(c uint32) int {
	pos, found := s.insertionPoint(c)
	if !found {
		return -1
	}
	return pos
}

// With returns a new signature with c inserted at its sort position.
// It fails with DuplicateSignatureComponentError if c is already present.
func (s Signature) With(c uint32) (Signature, error) {
	pos, found := s.insertionPoint(c)
	if found {
		return Signature{}, DuplicateSignatureComponentError{Component: c}
	}
	next := make([]uint32, len(s.ids)+1)
	copy(next, s.ids[:pos])
	next[pos] = c
	copy(next[pos+1:], s.ids[pos:])
	return Signature{ids: next}, nil
}

// Without returns a new signature with c removed. It fails with
// MissingSignatureComponentError if c is absent.
func (s Signature) Without(c uint32) (Signature, error) {
	pos, found := s.insertionPoint(c)
	if !found {
		return Signature{}, MissingSignatureComponentError{Component: c}
	}
	next := make([]uint32, len(s.ids)-1)
	copy(next, s.ids[:pos])
	copy(next[pos:], s.ids[pos+1:])
	return Signature{ids: next}, nil
}

// Equal reports whether two signatures hold the same identifiers.
func (s Signature) Equal(other Signature) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for i, id := range s.ids {
		if other.ids[i] != id {
			return false
		}
	}
	return true
}

// Hash returns the signature's content-addressable identity.
func (s Signature) Hash() SignatureHash {
	buf := make([]byte, 4*len(s.ids))
	for i, id := range s.ids {
		binary.LittleEndian.PutUint32(buf[i*4:], id)
	}
	return SignatureHash(buf)
}
