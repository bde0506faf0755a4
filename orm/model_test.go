package orm

import (
	"github.com/iov-one/trust/errors"
	amino "github.com/tendermint/go-amino"
)

// Thing is a model used by the tests of this package.
type Thing struct {
	Name string
	Tags []string
}

var _ Model = (*Thing)(nil)

func (t *Thing) Validate() error {
	if t.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func (t *Thing) Copy() CloneableData {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	return &Thing{Name: t.Name, Tags: tags}
}

func (t *Thing) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(t)
}

func (t *Thing) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, t)
}

func thingByName(obj Object) ([]byte, error) {
	t, ok := obj.Value().(*Thing)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return []byte(t.Name), nil
}

func thingByTags(obj Object) ([][]byte, error) {
	t, ok := obj.Value().(*Thing)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	keys := make([][]byte, len(t.Tags))
	for i, tag := range t.Tags {
		keys[i] = []byte(tag)
	}
	return keys, nil
}
