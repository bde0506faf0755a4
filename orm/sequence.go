package orm

import (
	"encoding/binary"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// Sequence maintains a counter, and generates a series of keys. Each key is
// greater than the last, any []byte is a valid value. The counter is stored
// in the database, so it survives restarts and is never reused.
type Sequence struct {
	id []byte
}

// NewSequence creates a sequence with this id.
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its current value as bytes.
func (s Sequence) NextVal(db trust.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its current value.
func (s Sequence) NextInt(db trust.KVStore) (uint64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Curr returns the current value without incrementing it. Zero means no
// value was allocated yet.
func (s Sequence) Curr(db trust.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return decodeSequence(raw)
}

func (s Sequence) increment(db trust.KVStore, inc uint64) (uint64, []byte, error) {
	val, err := s.Curr(db)
	if err != nil {
		return 0, nil, err
	}
	if val+inc < val {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	val += inc
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, err
	}
	return val, raw, nil
}

// EncodeSequence returns the 8 byte big endian representation of a
// sequence value. Keys created this way sort in allocation order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// DecodeSequence reverts EncodeSequence.
func DecodeSequence(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

func decodeSequence(raw []byte) (uint64, error) {
	if raw == nil {
		return 0, nil
	}
	return DecodeSequence(raw)
}
