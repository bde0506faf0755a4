package escrow

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/gconf"
	"github.com/iov-one/trust/orm"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/x/cash"
)

// Controller keeps the deal registry and applies the funding, voting and
// settlement rules.
//
// Every state changing method is all or nothing: changes are collected in a
// cache wrap over the given store and written only on success. Calls
// against the same deal must be serialized by the caller, see Engine.
type Controller struct {
	bucket orm.ModelBucket
	bank   cash.CoinMover
}

// NewController returns a controller moving funds with given bank.
func NewController(bank cash.CoinMover) Controller {
	return Controller{
		bucket: NewDealBucket(),
		bank:   bank,
	}
}

// CreateDeal registers a new deal and returns its ID. IDs are never reused,
// the first one is 1. Participants do not have to be distinct.
func (c Controller) CreateDeal(ctx trust.Context, db trust.KVStore, sender, receiver, arbiter trust.Address, amount coin.Coin) (uint64, error) {
	var id uint64
	err := atomically(db, func(db trust.KVStore) error {
		var err error
		id, err = c.createDeal(db, sender, receiver, arbiter, amount)
		return err
	})
	if err != nil {
		return 0, err
	}
	trust.GetLogger(ctx).Debug("deal created", "deal", id, "sender", sender, "amount", amount)
	return id, nil
}

func (c Controller) createDeal(db trust.KVStore, sender, receiver, arbiter trust.Address, amount coin.Coin) (uint64, error) {
	id, err := dealSeq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire deal ID")
	}
	deal := &Deal{
		Metadata: trust.Metadata{Schema: 1},
		ID:       id,
		Sender:   sender,
		Receiver: receiver,
		Arbiter:  arbiter,
		Amount:   amount,
		Balance:  coin.Coin{Ticker: amount.Ticker},
		State:    DealCreated,
	}
	if _, err := c.bucket.Put(db, orm.EncodeSequence(id), deal); err != nil {
		return 0, errors.Wrap(err, "cannot store deal")
	}
	return id, nil
}

// GetDeal returns the deal with given ID or ErrNotFound.
func (c Controller) GetDeal(db trust.ReadOnlyKVStore, id uint64) (*Deal, error) {
	var deal Deal
	if err := c.bucket.One(db, orm.EncodeSequence(id), &deal); err != nil {
		return nil, errors.Wrapf(err, "deal %d", id)
	}
	return &deal, nil
}

// Fund accepts the deposit of the sender. The amount must be exactly the
// deal amount and a deal can be funded only once.
func (c Controller) Fund(ctx trust.Context, db trust.KVStore, id uint64, caller trust.Address, amount coin.Coin) error {
	return atomically(db, func(db trust.KVStore) error {
		deal, err := c.GetDeal(db, id)
		if err != nil {
			return err
		}
		if !deal.Sender.Equals(caller) {
			return errors.Wrap(errors.ErrUnauthorized, "only the sender can fund")
		}
		if !amount.Equals(deal.Amount) {
			return errors.Wrapf(ErrAmountMismatch, "want %s, got %s", deal.Amount, amount)
		}
		if deal.State != DealCreated {
			return errors.Wrapf(ErrAlreadyFunded, "deal is %s", deal.State)
		}

		if err := c.bank.MoveCoins(db, caller, deal.Address(), amount); err != nil {
			return errors.Wrap(ErrTransferFailed, err.Error())
		}
		deal.Balance = amount
		deal.State = DealFunded
		if _, err := c.bucket.Put(db, orm.EncodeSequence(id), deal); err != nil {
			return errors.Wrap(err, "cannot store deal")
		}

		trust.GetLogger(ctx).Info("deal funded",
			"deal", id,
			"sender", deal.Sender,
			"amount", amount)
		return nil
	})
}

// Vote records the choice of a participant and settles the deal once two
// participants agree. The returned deal reflects the state after the vote.
//
// A participant can vote only once unless the configuration allows to
// change a vote. An address holding more than one role votes in its first
// role, in the sender, receiver, arbiter order.
func (c Controller) Vote(ctx trust.Context, db trust.KVStore, id uint64, caller trust.Address, choice VoteOption) (*Deal, error) {
	if choice != VoteRelease && choice != VoteRefund {
		return nil, errors.Wrapf(errors.ErrInput, "cannot vote %s", choice)
	}

	var deal *Deal
	err := atomically(db, func(db trust.KVStore) error {
		var err error
		if deal, err = c.GetDeal(db, id); err != nil {
			return err
		}
		if deal.State != DealFunded {
			return errors.Wrapf(ErrNotFunded, "deal is %s", deal.State)
		}
		slot := deal.slot(caller)
		if slot == nil {
			return errors.Wrap(errors.ErrUnauthorized, "not a participant")
		}
		if *slot != VoteUnset {
			if *slot == choice {
				return errors.Wrapf(ErrAlreadyVoted, "already voted %s", choice)
			}
			conf, err := loadConf(db)
			if err != nil {
				return err
			}
			if !conf.AllowVoteChange {
				return errors.Wrapf(ErrAlreadyVoted, "cannot change %s vote", *slot)
			}
		}
		*slot = choice

		if decision := deal.Votes.Decision(); decision != VoteUnset {
			return c.settle(ctx, db, deal, decision)
		}
		if _, err := c.bucket.Put(db, orm.EncodeSequence(id), deal); err != nil {
			return errors.Wrap(err, "cannot store deal")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// settle closes the deal and pays the whole balance to the receiver on
// release or back to the sender on refund. The deal is stored as settled
// before the transfer, so that a transfer calling back into the controller
// sees a closed deal.
func (c Controller) settle(ctx trust.Context, db trust.KVStore, deal *Deal, decision VoteOption) error {
	recipient := deal.Receiver
	if decision == VoteRefund {
		recipient = deal.Sender
	}
	payout := deal.Balance
	deal.Balance = coin.Coin{Ticker: payout.Ticker}
	deal.State = DealSettled
	deal.Refunded = decision == VoteRefund
	if _, err := c.bucket.Put(db, orm.EncodeSequence(deal.ID), deal); err != nil {
		return errors.Wrap(err, "cannot store deal")
	}

	if err := c.bank.MoveCoins(db, deal.Address(), recipient, payout); err != nil {
		return errors.Wrap(ErrTransferFailed, err.Error())
	}

	trust.GetLogger(ctx).Info("deal settled",
		"deal", deal.ID,
		"sender", deal.Sender,
		"recipient", recipient,
		"amount", payout,
		"refunded", deal.Refunded)
	return nil
}

// VoteOf returns the vote weight of the account: 1 for release, -1 for
// refund and 0 if no vote was cast or the account is not a participant.
func (c Controller) VoteOf(db trust.ReadOnlyKVStore, id uint64, account trust.Address) (int, error) {
	deal, err := c.GetDeal(db, id)
	if err != nil {
		return 0, err
	}
	return deal.VoteOf(account), nil
}

// Refunded returns true if the deal was settled by returning the funds to
// the sender.
func (c Controller) Refunded(db trust.ReadOnlyKVStore, id uint64) (bool, error) {
	deal, err := c.GetDeal(db, id)
	if err != nil {
		return false, err
	}
	return deal.Refunded, nil
}

// DealsByParty returns all deals where given address plays given role,
// ordered by ID.
func (c Controller) DealsByParty(db trust.ReadOnlyKVStore, role Role, addr trust.Address) ([]*Deal, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	var deals []*Deal
	if _, err := c.bucket.ByIndex(db, string(role), addr, &deals); err != nil {
		return nil, errors.Wrapf(err, "deals by %s", role)
	}
	return deals, nil
}

// loadConf returns the stored configuration, or the defaults if none was
// stored.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{Metadata: trust.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

const packageName = "escrow"

// atomically runs fn over a cache wrap of db. Changes are written back only
// if fn succeeds.
func atomically(db trust.KVStore, fn func(trust.KVStore) error) error {
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
