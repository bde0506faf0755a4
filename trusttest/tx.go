package trusttest

import "github.com/iov-one/trust"

// Tx represents a single message that is to be processed within a
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg trust.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ trust.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (trust.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a request with a configurable path.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ trust.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
