package cash

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	amino "github.com/tendermint/go-amino"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source to the destination account.
type SendMsg struct {
	Metadata    trust.Metadata `json:"metadata"`
	Source      trust.Address  `json:"source"`
	Destination trust.Address  `json:"destination"`
	Amount      coin.Coin      `json:"amount"`
	Memo        string         `json:"memo,omitempty"`
}

var _ trust.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	errs := errors.AppendField(nil, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrapf(errors.ErrAmount, "non-positive: %s", m.Amount))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}
