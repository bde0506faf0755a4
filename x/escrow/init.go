package escrow

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/orm"
	"github.com/iov-one/trust/x/cash"
)

// GenesisDeal is a deal declared in the genesis file. Deals are created in
// the declared order, so the n-th deal gets ID n.
type GenesisDeal struct {
	Sender   trust.Address `json:"sender"`
	Receiver trust.Address `json:"receiver"`
	Arbiter  trust.Address `json:"arbiter"`
	Amount   coin.Coin     `json:"amount"`
	// Funded deals require the deal account to already hold the amount,
	// minted by the cash genesis.
	Funded bool `json:"funded"`
}

// Initializer fulfils the Initializer interface to load deals from the
// genesis file.
type Initializer struct {
	// Bank is used to verify the balance of funded deals.
	Bank cash.Balancer
}

var _ trust.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial deals from genesis and save them in the
// database.
func (i *Initializer) FromGenesis(opts trust.Options, db trust.KVStore) error {
	var deals []GenesisDeal
	if err := opts.ReadOptions("escrow", &deals); err != nil {
		return err
	}

	ctrl := NewController(nil)
	for n, gd := range deals {
		if err := validAmount(gd.Amount); err != nil {
			return errors.Wrapf(err, "deal #%d amount", n)
		}
		id, err := ctrl.createDeal(db, gd.Sender, gd.Receiver, gd.Arbiter, gd.Amount)
		if err != nil {
			return errors.Wrapf(err, "deal #%d", n)
		}
		if !gd.Funded {
			continue
		}

		if i.Bank == nil {
			return errors.Wrapf(errors.ErrHuman, "deal #%d: cannot verify funding without a bank", n)
		}
		held, err := i.Bank.Balance(db, DealAddress(id))
		if err != nil {
			return errors.Wrapf(err, "deal #%d balance", n)
		}
		if !held.Contains(gd.Amount) {
			return errors.Wrapf(errors.ErrAmount, "deal #%d account %s does not hold %s", n, DealAddress(id), gd.Amount)
		}
		deal, err := ctrl.GetDeal(db, id)
		if err != nil {
			return err
		}
		deal.Balance = gd.Amount
		deal.State = DealFunded
		if _, err := ctrl.bucket.Put(db, orm.EncodeSequence(id), deal); err != nil {
			return errors.Wrapf(err, "deal #%d", n)
		}
	}
	return nil
}
