package cash

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. The operation is atomic: on error no
	// balance was changed.
	MoveCoins(db trust.KVStore, src, dest trust.Address, amount coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	CoinMint(db trust.KVStore, dest trust.Address, amount coin.Coin) error
}

// Balancer is an interface to query the amount of coins.
type Balancer interface {
	Balance(db trust.ReadOnlyKVStore, addr trust.Address) (coin.Coins, error)
}

// Controller is the functionality needed by other extensions to interact
// with the cash.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address. An unknown address
// holds nothing.
func (c BaseController) Balance(db trust.ReadOnlyKVStore, addr trust.Address) (coin.Coins, error) {
	w, err := loadWallet(db, c.bucket, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db trust.KVStore, src, dest trust.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := loadWallet(db, c.bucket, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}

	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "sender")
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "recipient")
	}

	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
//
// Note the amount may also be negative, but the wallet balance can never
// go below zero.
func (c BaseController) CoinMint(db trust.KVStore, dest trust.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	w, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	if _, err := c.bucket.Put(db, dest, w); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
