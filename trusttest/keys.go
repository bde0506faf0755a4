package trusttest

import (
	"testing"

	"github.com/iov-one/trust"
	"github.com/tendermint/tendermint/crypto/ed25519"
)

// NewCondition returns a signature condition of a freshly generated
// ed25519 key.
func NewCondition() trust.Condition {
	pub := ed25519.GenPrivKey().PubKey()
	return trust.NewCondition("sigs", "ed25519", pub.Bytes())
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) trust.Address {
	t.Helper()

	addr, err := trust.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
