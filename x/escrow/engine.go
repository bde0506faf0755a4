package escrow

import (
	"strconv"
	"sync"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/x/cash"
)

// Engine gives safe access to the escrow from many goroutines.
//
// Each deal is guarded by its own lock, together with the wallets the call
// moves funds from or to. Only the allocation of deal IDs is serialized.
// Every call runs in a cache wrap that is written under a single store lock
// on success and discarded on failure, so a failed call leaves no trace.
type Engine struct {
	db    *store.Synchronized
	ctrl  Controller
	bank  cash.Controller
	locks *keyedLocks

	// create guards the ID sequence and the participant indexes.
	create sync.Mutex
}

// NewEngine returns an engine operating on given store. The store must not
// be modified by other means while the engine is in use.
func NewEngine(db trust.KVStore) *Engine {
	bank := cash.NewController(cash.NewBucket())
	return &Engine{
		db:    store.NewSynchronized(db),
		ctrl:  NewController(bank),
		bank:  bank,
		locks: newKeyedLocks(),
	}
}

// Mint adds funds to an account.
func (e *Engine) Mint(ctx trust.Context, addr trust.Address, amount coin.Coin) error {
	unlock := e.locks.Lock(accountLock(addr))
	defer unlock()
	return e.inCache(func(db trust.KVStore) error {
		return e.bank.CoinMint(db, addr, amount)
	})
}

// CreateDeal registers a new deal and returns its ID.
func (e *Engine) CreateDeal(ctx trust.Context, sender, receiver, arbiter trust.Address, amount coin.Coin) (uint64, error) {
	e.create.Lock()
	defer e.create.Unlock()

	var id uint64
	err := e.inCache(func(db trust.KVStore) error {
		var err error
		id, err = e.ctrl.CreateDeal(ctx, db, sender, receiver, arbiter, amount)
		return err
	})
	return id, err
}

// Fund deposits the sender funds into the deal.
func (e *Engine) Fund(ctx trust.Context, id uint64, caller trust.Address, amount coin.Coin) error {
	// Participants never change, so they can be read before locking.
	deal, err := e.ctrl.GetDeal(e.db, id)
	if err != nil {
		return err
	}
	unlock := e.locks.Lock(dealLock(id), accountLock(deal.Sender))
	defer unlock()

	return e.inCache(func(db trust.KVStore) error {
		return e.ctrl.Fund(ctx, db, id, caller, amount)
	})
}

// Vote records the vote of the caller and settles the deal on majority.
func (e *Engine) Vote(ctx trust.Context, id uint64, caller trust.Address, choice VoteOption) (*Deal, error) {
	deal, err := e.ctrl.GetDeal(e.db, id)
	if err != nil {
		return nil, err
	}
	unlock := e.locks.Lock(dealLock(id), accountLock(deal.Sender), accountLock(deal.Receiver))
	defer unlock()

	var res *Deal
	err = e.inCache(func(db trust.KVStore) error {
		var err error
		res, err = e.ctrl.Vote(ctx, db, id, caller, choice)
		return err
	})
	return res, err
}

// GetDeal returns a snapshot of the deal.
func (e *Engine) GetDeal(id uint64) (*Deal, error) {
	return e.ctrl.GetDeal(e.db, id)
}

// VoteOf returns the vote weight of the account in given deal.
func (e *Engine) VoteOf(id uint64, account trust.Address) (int, error) {
	return e.ctrl.VoteOf(e.db, id, account)
}

// Refunded returns true if the deal funds were returned to the sender.
func (e *Engine) Refunded(id uint64) (bool, error) {
	return e.ctrl.Refunded(e.db, id)
}

// DealsByParty returns all deals where the address plays given role.
func (e *Engine) DealsByParty(role Role, addr trust.Address) ([]*Deal, error) {
	return e.ctrl.DealsByParty(e.db, role, addr)
}

// Balance returns the funds held by an account.
func (e *Engine) Balance(addr trust.Address) (coin.Coins, error) {
	return e.bank.Balance(e.db, addr)
}

func (e *Engine) inCache(fn func(trust.KVStore) error) error {
	cache := e.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

func dealLock(id uint64) string {
	return "deal:" + strconv.FormatUint(id, 10)
}

func accountLock(addr trust.Address) string {
	return "account:" + string(addr)
}
