package orm

import (
	"github.com/iov-one/trust"
)

// Object is what is stored in the bucket.
// Key is joined with the prefix to set the full key.
// Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() trust.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an interface that the data stored in an Object must
// implement.
type CloneableData interface {
	trust.Persistent
	Validate() error
	Copy() CloneableData
}

// Model is implemented by all entities stored with a ModelBucket.
type Model = CloneableData
