package cash

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the coins owned by a single address. The address is the key
// the wallet is stored under.
type Wallet struct {
	Metadata trust.Metadata `json:"metadata"`
	Coins    coin.Coins     `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// NewWallet returns an empty wallet with the current schema set.
func NewWallet() *Wallet {
	return &Wallet{Metadata: trust.Metadata{Schema: 1}}
}

// Validate requires the coins to be normalized.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(w.Coins.Validate(), "coins")
}

// Copy makes a new wallet with the same coins.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata,
		Coins:    w.Coins.Clone(),
	}
}

func (w *Wallet) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, w)
}

// NewBucket returns a bucket storing wallets under their owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// loadWallet returns the wallet stored under given address, or an empty
// one if none exists.
func loadWallet(db trust.ReadOnlyKVStore, b orm.ModelBucket, addr trust.Address) (*Wallet, error) {
	w := NewWallet()
	switch err := b.One(db, addr, w); {
	case err == nil:
		return w, nil
	case errors.ErrNotFound.Is(err):
		return NewWallet(), nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
