package gconf

import (
	"sort"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// Initializer loads the configuration of all registered packages from the
// "conf" section of the genesis file. A package without an entry keeps no
// configuration in the database.
type Initializer struct {
	// Confs maps a package name to an empty instance of its
	// configuration.
	Confs map[string]Configuration
}

var _ trust.Initializer = Initializer{}

// FromGenesis stores every declared configuration.
func (i Initializer) FromGenesis(opts trust.Options, db trust.KVStore) error {
	pkgs := make([]string, 0, len(i.Confs))
	for pkg := range i.Confs {
		pkgs = append(pkgs, pkg)
	}
	// Deterministic order so that the first error is always the same.
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		err := InitConfig(db, opts, pkg, i.Confs[pkg])
		if err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
	}
	return nil
}
