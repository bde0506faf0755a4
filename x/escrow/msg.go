package escrow

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	pathCreateDealMsg          = "escrow/create"
	pathFundDealMsg            = "escrow/fund"
	pathVoteMsg                = "escrow/vote"
	pathUpdateConfigurationMsg = "escrow/update_configuration"
)

// CreateDealMsg registers a new deal. The main signer of the transaction is
// the sender.
type CreateDealMsg struct {
	Metadata trust.Metadata `json:"metadata"`
	Receiver trust.Address  `json:"receiver"`
	Arbiter  trust.Address  `json:"arbiter"`
	Amount   coin.Coin      `json:"amount"`
}

var _ trust.Msg = (*CreateDealMsg)(nil)

func (CreateDealMsg) Path() string {
	return pathCreateDealMsg
}

func (m *CreateDealMsg) Validate() error {
	errs := errors.AppendField(nil, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	errs = errors.AppendField(errs, "Arbiter", m.Arbiter.Validate())
	return errors.AppendField(errs, "Amount", validAmount(m.Amount))
}

func (m *CreateDealMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *CreateDealMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// FundDealMsg deposits the amount of a deal. The main signer of the
// transaction must be the deal sender.
type FundDealMsg struct {
	Metadata trust.Metadata `json:"metadata"`
	DealID   uint64         `json:"deal_id"`
	Amount   coin.Coin      `json:"amount"`
}

var _ trust.Msg = (*FundDealMsg)(nil)

func (FundDealMsg) Path() string {
	return pathFundDealMsg
}

func (m *FundDealMsg) Validate() error {
	errs := errors.AppendField(nil, "Metadata", m.Metadata.Validate())
	if m.DealID == 0 {
		errs = errors.AppendField(errs, "DealID", errors.ErrEmpty)
	}
	return errors.AppendField(errs, "Amount", validAmount(m.Amount))
}

func (m *FundDealMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *FundDealMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// VoteMsg casts the vote of the main signer of the transaction.
type VoteMsg struct {
	Metadata trust.Metadata `json:"metadata"`
	DealID   uint64         `json:"deal_id"`
	Vote     VoteOption     `json:"vote"`
}

var _ trust.Msg = (*VoteMsg)(nil)

func (VoteMsg) Path() string {
	return pathVoteMsg
}

func (m *VoteMsg) Validate() error {
	errs := errors.AppendField(nil, "Metadata", m.Metadata.Validate())
	if m.DealID == 0 {
		errs = errors.AppendField(errs, "DealID", errors.ErrEmpty)
	}
	if m.Vote != VoteRelease && m.Vote != VoteRefund {
		errs = errors.AppendField(errs, "Vote", errors.Wrapf(errors.ErrInput, "cannot vote %s", m.Vote))
	}
	return errs
}

func (m *VoteMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *VoteMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// UpdateConfigurationMsg patches the escrow configuration. Zero value fields
// of the patch are ignored.
type UpdateConfigurationMsg struct {
	Metadata trust.Metadata `json:"metadata"`
	Patch    *Configuration `json:"patch"`
}

var _ trust.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	errs := errors.AppendField(nil, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	return errs
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

func validAmount(c coin.Coin) error {
	if !c.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", c)
	}
	return c.Validate()
}
