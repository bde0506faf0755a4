package escrow

import (
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/trusttest/assert"
)

func TestCreateDealMsgValidate(t *testing.T) {
	receiver := trusttest.NewCondition().Address()
	arbiter := trusttest.NewCondition().Address()

	cases := map[string]struct {
		msg      *CreateDealMsg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &CreateDealMsg{
				Metadata: trust.Metadata{Schema: 1},
				Receiver: receiver,
				Arbiter:  arbiter,
				Amount:   coin.NewCoin(1, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Receiver": nil,
				"Arbiter":  nil,
				"Amount":   nil,
			},
		},
		"everything missing": {
			msg: &CreateDealMsg{},
			wantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrModel,
				"Receiver": errors.ErrEmpty,
				"Arbiter":  errors.ErrEmpty,
				"Amount":   errors.ErrAmount,
			},
		},
		"negative amount": {
			msg: &CreateDealMsg{
				Metadata: trust.Metadata{Schema: 1},
				Receiver: receiver,
				Arbiter:  arbiter,
				Amount:   coin.NewCoin(-1, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
		"invalid ticker": {
			msg: &CreateDealMsg{
				Metadata: trust.Metadata{Schema: 1},
				Receiver: receiver,
				Arbiter:  arbiter,
				Amount:   coin.NewCoin(1, 0, "x"),
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrCurrency,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestFundDealMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      *FundDealMsg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &FundDealMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1, Amount: unit},
			wantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"DealID":   nil,
				"Amount":   nil,
			},
		},
		"missing deal": {
			msg: &FundDealMsg{Metadata: trust.Metadata{Schema: 1}, Amount: unit},
			wantErrs: map[string]*errors.Error{
				"DealID": errors.ErrEmpty,
			},
		},
		"zero amount": {
			msg: &FundDealMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1, Amount: coin.Coin{Ticker: "IOV"}},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestVoteMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      *VoteMsg
		wantErrs map[string]*errors.Error
	}{
		"release": {
			msg:      &VoteMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1, Vote: VoteRelease},
			wantErrs: map[string]*errors.Error{"DealID": nil, "Vote": nil},
		},
		"refund": {
			msg:      &VoteMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1, Vote: VoteRefund},
			wantErrs: map[string]*errors.Error{"Vote": nil},
		},
		"unset": {
			msg:      &VoteMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1},
			wantErrs: map[string]*errors.Error{"Vote": errors.ErrInput},
		},
		"unknown option": {
			msg:      &VoteMsg{Metadata: trust.Metadata{Schema: 1}, DealID: 1, Vote: 3},
			wantErrs: map[string]*errors.Error{"Vote": errors.ErrInput},
		},
		"missing deal": {
			msg:      &VoteMsg{Metadata: trust.Metadata{Schema: 1}, Vote: VoteRefund},
			wantErrs: map[string]*errors.Error{"DealID": errors.ErrEmpty, "Metadata": nil},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	msg := &UpdateConfigurationMsg{Metadata: trust.Metadata{Schema: 1}}
	assert.FieldError(t, msg.Validate(), "Patch", errors.ErrEmpty)

	msg.Patch = &Configuration{Owner: trust.Address{0x1}}
	assert.FieldError(t, msg.Validate(), "Patch.Owner", errors.ErrInput)

	msg.Patch = &Configuration{AllowVoteChange: true}
	assert.Nil(t, msg.Validate())
}
