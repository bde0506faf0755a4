package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/x/cash"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDealLifecycle(t *testing.T) {
	Convey("Given a deal of 1 IOV between sender, receiver and arbiter", t, func() {
		ctx := context.Background()
		db := store.MemStore()
		bank := cash.NewController(cash.NewBucket())
		ctrl := NewController(bank)

		sender := trusttest.NewCondition().Address()
		receiver := trusttest.NewCondition().Address()
		arbiter := trusttest.NewCondition().Address()
		So(bank.CoinMint(db, sender, unit), ShouldBeNil)

		id, err := ctrl.CreateDeal(ctx, db, sender, receiver, arbiter, unit)
		So(err, ShouldBeNil)

		balance := func(addr []byte) coin.Coin {
			coins, err := bank.Balance(db, addr)
			So(err, ShouldBeNil)
			return coins.Balance("IOV")
		}

		Convey("Votes are rejected before funding", func() {
			_, err := ctrl.Vote(ctx, db, id, arbiter, VoteRelease)
			So(ErrNotFunded.Is(err), ShouldBeTrue)
		})

		Convey("When the sender funds it", func() {
			So(ctrl.Fund(ctx, db, id, sender, unit), ShouldBeNil)
			So(balance(sender).IsZero(), ShouldBeTrue)
			So(balance(DealAddress(id)), ShouldResemble, unit)

			Convey("Receiver and sender agree on a refund", func() {
				_, err := ctrl.Vote(ctx, db, id, receiver, VoteRefund)
				So(err, ShouldBeNil)
				deal, err := ctrl.Vote(ctx, db, id, sender, VoteRefund)
				So(err, ShouldBeNil)

				So(deal.Closed(), ShouldBeTrue)
				So(deal.Balance.IsZero(), ShouldBeTrue)
				So(balance(sender), ShouldResemble, unit)

				refunded, err := ctrl.Refunded(db, id)
				So(err, ShouldBeNil)
				So(refunded, ShouldBeTrue)

				Convey("The arbiter cannot vote anymore", func() {
					_, err := ctrl.Vote(ctx, db, id, arbiter, VoteRelease)
					So(ErrNotFunded.Is(err), ShouldBeTrue)
				})
			})

			Convey("The arbiter breaks a disagreement", func() {
				_, err := ctrl.Vote(ctx, db, id, sender, VoteRefund)
				So(err, ShouldBeNil)
				_, err = ctrl.Vote(ctx, db, id, receiver, VoteRelease)
				So(err, ShouldBeNil)

				deal, err := ctrl.GetDeal(db, id)
				So(err, ShouldBeNil)
				So(deal.State, ShouldEqual, DealFunded)

				deal, err = ctrl.Vote(ctx, db, id, arbiter, VoteRelease)
				So(err, ShouldBeNil)
				So(deal.Closed(), ShouldBeTrue)
				So(deal.Refunded, ShouldBeFalse)
				So(balance(receiver), ShouldResemble, unit)
				So(balance(sender).IsZero(), ShouldBeTrue)

				vote, err := ctrl.VoteOf(db, id, sender)
				So(err, ShouldBeNil)
				So(vote, ShouldEqual, -1)
			})

			Convey("A second deposit is rejected", func() {
				err := ctrl.Fund(ctx, db, id, sender, unit)
				So(ErrAlreadyFunded.Is(err), ShouldBeTrue)
			})

			Convey("A stranger cannot vote", func() {
				_, err := ctrl.Vote(ctx, db, id, trusttest.NewCondition().Address(), VoteRelease)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})
		})
	})
}
