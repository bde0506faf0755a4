package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/app"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store/iavl"
	"github.com/iov-one/trust/x/cash"
	"github.com/iov-one/trust/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

// dbName is the name of the database kept in the home directory.
const dbName = "trust"

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new state from a genesis file (JSON or YAML) and commit it as
the first version.
`+"\n")
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", env("TRUST_HOME", os.ExpandEnv("$HOME")+"/.trust"), "state directory")
		genesisFl = fl.String("genesis", "genesis.json", "genesis file path")
		debugFl   = fl.Bool("debug", false, "log every processed message")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	kv, err := iavl.NewCommitStore(*homeFl, dbName)
	if err != nil {
		return err
	}
	defer kv.Close()

	a, err := app.NewTrustApplication(kv, *debugFl)
	if err != nil {
		return err
	}
	if *debugFl {
		a.WithLogger(log.NewTMLogger(log.NewSyncWriter(os.Stderr)))
	}
	if err := a.InitChain(gen); err != nil {
		return errors.Wrap(err, "init chain")
	}
	res := a.Commit()
	fmt.Fprintf(output, "chain %s initialized, hash %X\n", gen.ChainID, res.Data)
	return nil
}

func cmdInfo(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the chain id and the last committed version of the state.
`+"\n")
		fl.PrintDefaults()
	}
	homeFl := fl.String("home", env("TRUST_HOME", os.ExpandEnv("$HOME")+"/.trust"), "state directory")
	fl.Parse(args)

	kv, err := iavl.NewCommitStore(*homeFl, dbName)
	if err != nil {
		return err
	}
	defer kv.Close()

	a, err := app.NewTrustApplication(kv, false)
	if err != nil {
		return err
	}
	info := a.Info()
	return writeJSON(output, struct {
		Name    string `json:"name"`
		ChainID string `json:"chain_id"`
		Height  int64  `json:"height"`
		Hash    string `json:"hash"`
	}{
		Name:    info.Data,
		ChainID: a.ChainID(),
		Height:  info.LastBlockHeight,
		Hash:    fmt.Sprintf("%X", info.LastBlockAppHash),
	})
}

func cmdDeal(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a single deal. Deal ID is the only argument.
`+"\n")
		fl.PrintDefaults()
	}
	homeFl := fl.String("home", env("TRUST_HOME", os.ExpandEnv("$HOME")+"/.trust"), "state directory")
	fl.Parse(args)

	if fl.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "deal ID argument is required")
	}
	id, err := strconv.ParseUint(fl.Arg(0), 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "deal ID: %s", err)
	}

	return withState(*homeFl, func(db trust.ReadOnlyKVStore) error {
		deal, err := escrow.NewController(nil).GetDeal(db, id)
		if err != nil {
			return err
		}
		return writeJSON(output, deal)
	})
}

func cmdDeals(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List all deals in which given address plays given role.
`+"\n")
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", env("TRUST_HOME", os.ExpandEnv("$HOME")+"/.trust"), "state directory")
		roleFl = fl.String("role", string(escrow.RoleSender), "sender, receiver or arbiter")
		addrFl = fl.String("addr", "", "hex or bech32 encoded address")
	)
	fl.Parse(args)

	role := escrow.Role(*roleFl)
	if err := role.Validate(); err != nil {
		return err
	}
	addr, err := parseAddress(*addrFl)
	if err != nil {
		return err
	}

	return withState(*homeFl, func(db trust.ReadOnlyKVStore) error {
		deals, err := escrow.NewController(nil).DealsByParty(db, role, addr)
		if err != nil {
			return err
		}
		if deals == nil {
			deals = []*escrow.Deal{}
		}
		return writeJSON(output, deals)
	})
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an account. A deal account is selected with -deal.
`+"\n")
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", env("TRUST_HOME", os.ExpandEnv("$HOME")+"/.trust"), "state directory")
		addrFl = fl.String("addr", "", "hex or bech32 encoded address")
		dealFl = fl.Uint64("deal", 0, "deal ID, used instead of the address")
	)
	fl.Parse(args)

	var addr trust.Address
	if *dealFl != 0 {
		addr = escrow.DealAddress(*dealFl)
	} else {
		a, err := parseAddress(*addrFl)
		if err != nil {
			return err
		}
		addr = a
	}

	return withState(*homeFl, func(db trust.ReadOnlyKVStore) error {
		coins, err := cash.NewController(cash.NewBucket()).Balance(db, addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(output, coins.String())
		return nil
	})
}

// withState calls fn with the last committed state stored in home.
func withState(home string, fn func(trust.ReadOnlyKVStore) error) error {
	kv, err := iavl.NewCommitStore(home, dbName)
	if err != nil {
		return err
	}
	defer kv.Close()
	if err := kv.LoadLatestVersion(); err != nil {
		return err
	}
	if id, _ := kv.LatestVersion(); id.Version == 0 {
		return errors.Wrapf(errors.ErrState, "no state in %s, run init first", home)
	}
	return fn(kv.Adapter())
}

func parseAddress(enc string) (trust.Address, error) {
	addr, err := trust.ParseAddress(enc)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	return addr, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(err, "serialize")
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
