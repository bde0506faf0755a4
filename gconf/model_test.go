package gconf

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	amino "github.com/tendermint/go-amino"
)

type myconfig struct {
	Owner trust.Address
	Num   int64
	Str   string
	Cn    coin.Coin
}

var _ OwnedConfig = (*myconfig)(nil)

func (c *myconfig) GetOwner() trust.Address {
	return c.Owner
}

func (c *myconfig) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if !c.Cn.IsZero() {
		errs = errors.AppendField(errs, "Cn", c.Cn.Validate())
	}
	if c.Num < 0 {
		errs = errors.AppendField(errs, "Num", errors.ErrInput)
	}
	return errs
}

func (c *myconfig) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(c)
}

func (c *myconfig) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, c)
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ trust.Msg = (*myconfigMsg)(nil)

func (m *myconfigMsg) Path() string {
	return "test/update_configuration"
}

func (m *myconfigMsg) Validate() error {
	if m.Patch == nil {
		return nil
	}
	return m.Patch.Validate()
}

func (m *myconfigMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *myconfigMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}
