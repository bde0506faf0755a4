package escrow

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/gconf"
	"github.com/iov-one/trust/orm"
	"github.com/iov-one/trust/x"
	"github.com/iov-one/trust/x/cash"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r trust.Registry, auth x.Authenticator, bank cash.CoinMover) {
	ctrl := NewController(bank)
	r.Handle(pathCreateDealMsg, CreateDealHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathFundDealMsg, FundDealHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathVoteMsg, VoteHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// caller returns the address of the main signer.
func caller(ctx trust.Context, auth x.Authenticator) (trust.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer.Address(), nil
}

// CreateDealHandler registers deals sent by the main signer.
type CreateDealHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ trust.Handler = CreateDealHandler{}

// Check just verifies it is properly formed.
func (h CreateDealHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &trust.CheckResult{}, nil
}

// Deliver stores the deal and returns its encoded ID as the result data.
func (h CreateDealHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateDeal(ctx, db, sender, msg.Receiver, msg.Arbiter, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &trust.DeliverResult{Data: orm.EncodeSequence(id)}, nil
}

func (h CreateDealHandler) validate(ctx trust.Context, tx trust.Tx) (*CreateDealMsg, trust.Address, error) {
	var msg CreateDealMsg
	if err := trust.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// FundDealHandler deposits the sender funds into a deal.
type FundDealHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ trust.Handler = FundDealHandler{}

// Check verifies the deal exists and the signer is its sender.
func (h FundDealHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deal, err := h.ctrl.GetDeal(db, msg.DealID)
	if err != nil {
		return nil, err
	}
	if !deal.Sender.Equals(sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the sender can fund")
	}
	return &trust.CheckResult{}, nil
}

// Deliver moves the funds into the deal account.
func (h FundDealHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Fund(ctx, db, msg.DealID, sender, msg.Amount); err != nil {
		return nil, err
	}
	return &trust.DeliverResult{}, nil
}

func (h FundDealHandler) validate(ctx trust.Context, tx trust.Tx) (*FundDealMsg, trust.Address, error) {
	var msg FundDealMsg
	if err := trust.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// VoteHandler records votes of the main signer.
type VoteHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ trust.Handler = VoteHandler{}

// Check verifies the deal exists and the signer is a participant.
func (h VoteHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	msg, voter, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deal, err := h.ctrl.GetDeal(db, msg.DealID)
	if err != nil {
		return nil, err
	}
	if deal.slot(voter) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not a participant")
	}
	return &trust.CheckResult{}, nil
}

// Deliver records the vote. The result log tells if the vote settled the
// deal.
func (h VoteHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	msg, voter, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deal, err := h.ctrl.Vote(ctx, db, msg.DealID, voter, msg.Vote)
	if err != nil {
		return nil, err
	}
	res := &trust.DeliverResult{Log: "vote recorded"}
	if deal.Closed() {
		res.Log = "deal released"
		if deal.Refunded {
			res.Log = "deal refunded"
		}
	}
	return res, nil
}

func (h VoteHandler) validate(ctx trust.Context, tx trust.Tx) (*VoteMsg, trust.Address, error) {
	var msg VoteMsg
	if err := trust.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	voter, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, voter, nil
}
