package app

import (
	"context"
	"sync"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Application processes transactions against a committed store. All calls
// are serialized, a transaction is always delivered against the state left
// by the previous one.
type Application struct {
	mu sync.Mutex

	name    string
	store   *CommitStore
	handler trust.Handler
	init    trust.Initializer
	logger  log.Logger
	// debug includes full error details in the responses.
	debug bool

	chainID string
	height  int64
}

// NewApplication returns an application resuming from the latest version
// of given store. The initializer is run by InitChain.
func NewApplication(name string, kv trust.CommitKVStore, handler trust.Handler, init trust.Initializer, debug bool) (*Application, error) {
	cs, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	return &Application{
		name:    name,
		store:   cs,
		handler: handler,
		init:    init,
		logger:  log.NewNopLogger(),
		debug:   debug,
		chainID: chainID,
		height:  info.Version,
	}, nil
}

// WithLogger sets the logger used by all handlers.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger = logger
	return a
}

// ChainID returns the chain id set by the genesis, or an empty string
// before InitChain.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// InitChain stores the chain id and runs the initializer over the genesis
// state. A chain can be initialized only once. Nothing is stored if any
// initializer fails.
func (a *Application) InitChain(gen *Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", a.chainID)
	}

	cache := a.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if a.init != nil {
		if err := a.init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// CheckTx validates a transaction against the check state. Changes made
// while checking never reach the committed state.
func (a *Application) CheckTx(tx trust.Tx, signers ...trust.Condition) abci.ResponseCheckTx {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.context("check_tx", tx, signers)
	res, err := a.handler.Check(ctx, a.store.CheckStore(), tx)
	if err != nil {
		code, desc := errors.ABCIInfo(err, a.debug)
		return abci.ResponseCheckTx{Code: code, Log: desc}
	}
	return abci.ResponseCheckTx{Data: res.Data, Log: res.Log}
}

// DeliverTx executes a transaction against the deliver state.
func (a *Application) DeliverTx(tx trust.Tx, signers ...trust.Condition) abci.ResponseDeliverTx {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.context("deliver_tx", tx, signers)
	res, err := a.handler.Deliver(ctx, a.store.DeliverStore(), tx)
	if err != nil {
		code, desc := errors.ABCIInfo(err, a.debug)
		return abci.ResponseDeliverTx{Code: code, Log: desc}
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log}
}

// Commit persists all delivered transactions and returns the state hash.
// A failure to commit leaves the state undefined, so it panics.
func (a *Application) Commit() abci.ResponseCommit {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		panic(errors.Wrap(err, "commit"))
	}
	a.height = id.Version
	a.logger.Debug("state committed", "height", id.Version, "hash", id.Hash)
	return abci.ResponseCommit{Data: id.Hash}
}

// Info returns the name of the application and the last committed state.
func (a *Application) Info() abci.ResponseInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, err := a.store.CommitInfo()
	if err != nil {
		panic(errors.Wrap(err, "commit info"))
	}
	return abci.ResponseInfo{
		Data:             a.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (a *Application) context(call string, tx trust.Tx, signers []trust.Condition) trust.Context {
	ctx := trust.WithLogger(context.Background(), a.logger)
	if a.chainID != "" {
		ctx = trust.WithChainID(ctx, a.chainID)
	}
	ctx = trust.WithHeight(ctx, a.height+1)
	ctx = WithSigners(ctx, signers...)
	return trust.WithLogInfo(ctx, "call", call, "path", trust.GetPath(tx))
}
