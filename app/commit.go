package app

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// CommitStore keeps separate cache wraps of the committed state for
// checking and for delivering transactions.
type CommitStore struct {
	committed trust.CommitKVStore
	deliver   trust.KVCacheWrap
	check     trust.KVCacheWrap
}

// NewCommitStore loads the latest version of given store.
func NewCommitStore(kv trust.CommitKVStore) (*CommitStore, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: kv,
		deliver:   kv.CacheWrap(),
		check:     kv.CacheWrap(),
	}, nil
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (trust.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the delivered changes, persists a new version and resets
// both caches. Changes made while checking are dropped.
func (cs *CommitStore) Commit() (trust.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return trust.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return id, nil
}

// CheckStore returns the store used while checking transactions.
func (cs *CommitStore) CheckStore() trust.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the store used while delivering transactions.
func (cs *CommitStore) DeliverStore() trust.CacheableKVStore {
	return cs.deliver
}

// _tr: prefixes internal application data.
const chainIDKey = "_tr:chainID"

func loadChainID(db trust.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID stores the chain id. It can be set only once.
func saveChainID(db trust.KVStore, chainID string) error {
	if !trust.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	key := []byte(chainIDKey)
	switch exists, err := db.Has(key); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	if err := db.Set(key, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
