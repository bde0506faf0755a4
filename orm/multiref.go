package orm

import (
	"bytes"

	"github.com/iov-one/trust/errors"
	amino "github.com/tendermint/go-amino"
)

// MultiRef is a sorted set of references kept under a single index key.
type MultiRef struct {
	Refs [][]byte `json:"refs"`
}

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef creates a MultiRef with any number of initial references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts this reference in the sorted array. Adding a reference that
// is already present is an error.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the sorted array.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the index of the reference, or the position where it
// should be inserted.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	for i, r := range m.Refs {
		switch bytes.Compare(ref, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	return len(m.Refs), false
}

// Copy does a shallow copy of the slice of refs and creates a new
// MultiRef.
func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	copy(refs, m.Refs)
	return &MultiRef{Refs: refs}
}

// Validate just returns an error if empty.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}

// Marshal serializes the references.
func (m *MultiRef) Marshal() ([]byte, error) {
	bz, err := amino.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// Unmarshal loads references serialized with Marshal.
func (m *MultiRef) Unmarshal(raw []byte) error {
	if err := amino.UnmarshalBinaryBare(raw, m); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
