package cash

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address trust.Address `json:"address"`
	Coins   []coin.Coin   `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ trust.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts trust.Options, db trust.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		coins, err := coin.CombineCoins(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d coins", i)
		}
		if !coins.IsNonNegative() {
			return errors.Wrapf(errors.ErrAmount, "account #%d: negative balance", i)
		}
		w := NewWallet()
		w.Coins = coins
		if _, err := bucket.Put(db, acct.Address, w); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
