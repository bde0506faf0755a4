package coin

import (
	"strings"

	"github.com/iov-one/trust/errors"
)

// Coins is a set of coins of different currencies, sorted by ticker, with at
// most one coin per ticker and no zero value coins.
type Coins []Coin

// CombineCoins creates a Coins containing all given coins. It will sort
// them and combine duplicates to produce a normalized array.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Clone returns a copy that can be modified independently.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// Add adds a coin to the set and returns the new set. The receiver is not
// modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}

	has, i := cs.findCoin(c.Ticker)
	res := cs.Clone()
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = sum
		return res, nil
	}

	res = append(res, Coin{})
	copy(res[i+1:], res[i:])
	res[i] = c
	return res, nil
}

// Subtract removes the coin value from the set. The result may contain a
// negative value, use IsNonNegative to check.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.Ticker)
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// Balance returns the amount of given currency held, a zero coin if none.
func (cs Coins) Balance(ticker string) Coin {
	if has, _ := cs.findCoin(ticker); has != nil {
		return *has
	}
	return Coin{Ticker: ticker}
}

// findCoin returns the coin with given ticker and its index, or nil and
// the index where it should be inserted.
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	for i := range cs {
		switch strings.Compare(ticker, cs[i].Ticker) {
		case -1:
			return nil, i
		case 0:
			return &cs[i], i
		}
	}
	return nil, len(cs)
}

// IsEmpty returns if nothing is there.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative returns true if all coins are positive. An empty set is
// non negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are in alphabetical order, there are no
// duplicates, no zero values and every coin is valid.
func (cs Coins) Validate() error {
	var last string
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrCurrency, "not sorted or not unique")
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrCurrency, "zero coins")
		}
		last = c.Ticker
	}
	return nil
}

// String returns a human readable list of coins.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
