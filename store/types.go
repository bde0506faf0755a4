/*
Package store provides the key value stores the escrow engine runs on: an in
memory btree store, btree cache wraps giving all or nothing writes, and a
synchronized store for hosts that call the engine from many goroutines.
*/
package store

import "github.com/iov-one/trust"

// Aliases of the root interfaces, so implementations in this package and
// its callers can use the short names.
type (
	ReadOnlyKVStore  = trust.ReadOnlyKVStore
	SetDeleter       = trust.SetDeleter
	KVStore          = trust.KVStore
	CacheableKVStore = trust.CacheableKVStore
	KVCacheWrap      = trust.KVCacheWrap
	CommitKVStore    = trust.CommitKVStore
	CommitID         = trust.CommitID
)

// Batch can write multiple ops atomically to an underlying store.
type Batch interface {
	SetDeleter
	Write() error
}
