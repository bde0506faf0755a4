package escrow

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/trusttest/assert"
	"golang.org/x/sync/errgroup"
)

func TestEngineManyDeals(t *testing.T) {
	const deals = 40

	engine := NewEngine(store.MemStore())
	ctx := context.Background()
	sender := trusttest.NewCondition().Address()
	receiver := trusttest.NewCondition().Address()
	arbiter := trusttest.NewCondition().Address()
	assert.Nil(t, engine.Mint(ctx, sender, coin.NewCoin(deals, 0, "IOV")))

	var g errgroup.Group
	ids := make([]uint64, deals)
	for i := 0; i < deals; i++ {
		i := i
		g.Go(func() error {
			id, err := engine.CreateDeal(ctx, sender, receiver, arbiter, unit)
			if err != nil {
				return err
			}
			ids[i] = id
			if err := engine.Fund(ctx, id, sender, unit); err != nil {
				return err
			}
			// Even deals are released, odd ones refunded.
			choice := VoteRelease
			if i%2 == 1 {
				choice = VoteRefund
			}
			if _, err := engine.Vote(ctx, id, arbiter, choice); err != nil {
				return err
			}
			_, err = engine.Vote(ctx, id, sender, choice)
			return err
		})
	}
	assert.Nil(t, g.Wait())

	seen := make(map[uint64]bool)
	for i, id := range ids {
		if seen[id] {
			t.Fatalf("deal ID %d allocated twice", id)
		}
		seen[id] = true

		deal, err := engine.GetDeal(id)
		assert.Nil(t, err)
		assert.Equal(t, DealSettled, deal.State)
		assert.Equal(t, i%2 == 1, deal.Refunded)
		refunded, err := engine.Refunded(id)
		assert.Nil(t, err)
		assert.Equal(t, deal.Refunded, refunded)
	}

	coins, err := engine.Balance(sender)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(deals/2, 0, "IOV"), coins.Balance("IOV"))
	coins, err = engine.Balance(receiver)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(deals/2, 0, "IOV"), coins.Balance("IOV"))

	byArbiter, err := engine.DealsByParty(RoleArbiter, arbiter)
	assert.Nil(t, err)
	assert.Equal(t, deals, len(byArbiter))
	assert.Equal(t, 0, engine.locks.size())
}

func TestEngineConcurrentVotesPayOnce(t *testing.T) {
	for round := 0; round < 10; round++ {
		engine := NewEngine(store.MemStore())
		ctx := context.Background()
		sender := trusttest.NewCondition().Address()
		receiver := trusttest.NewCondition().Address()
		arbiter := trusttest.NewCondition().Address()
		assert.Nil(t, engine.Mint(ctx, sender, unit))

		id, err := engine.CreateDeal(ctx, sender, receiver, arbiter, unit)
		assert.Nil(t, err)
		assert.Nil(t, engine.Fund(ctx, id, sender, unit))

		var (
			g        errgroup.Group
			accepted int32
			late     int32
		)
		for _, voter := range []trust.Address{sender, receiver, arbiter} {
			voter := voter
			g.Go(func() error {
				_, err := engine.Vote(ctx, id, voter, VoteRelease)
				switch {
				case err == nil:
					atomic.AddInt32(&accepted, 1)
				case ErrNotFunded.Is(err):
					atomic.AddInt32(&late, 1)
				default:
					return err
				}
				return nil
			})
		}
		assert.Nil(t, g.Wait())

		// The second vote settles the deal, the third comes too late.
		assert.Equal(t, int32(2), accepted)
		assert.Equal(t, int32(1), late)

		coins, err := engine.Balance(receiver)
		assert.Nil(t, err)
		assert.Equal(t, unit, coins.Balance("IOV"))
		coins, err = engine.Balance(DealAddress(id))
		assert.Nil(t, err)
		assert.Equal(t, true, coins.IsEmpty())
		assert.Equal(t, 0, engine.locks.size())
	}
}

func TestEngineConcurrentFunding(t *testing.T) {
	engine := NewEngine(store.MemStore())
	ctx := context.Background()
	sender := trusttest.NewCondition().Address()
	receiver := trusttest.NewCondition().Address()
	assert.Nil(t, engine.Mint(ctx, sender, coin.NewCoin(5, 0, "IOV")))

	id, err := engine.CreateDeal(ctx, sender, receiver, receiver, unit)
	assert.Nil(t, err)

	var (
		g      errgroup.Group
		funded int32
	)
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			switch err := engine.Fund(ctx, id, sender, unit); {
			case err == nil:
				atomic.AddInt32(&funded, 1)
			case !ErrAlreadyFunded.Is(err):
				return err
			}
			return nil
		})
	}
	assert.Nil(t, g.Wait())

	assert.Equal(t, int32(1), funded)
	coins, err := engine.Balance(sender)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(4, 0, "IOV"), coins.Balance("IOV"))
}

func TestEngineFailedCallsLeaveNoTrace(t *testing.T) {
	engine := NewEngine(store.MemStore())
	ctx := context.Background()
	sender := trusttest.NewCondition().Address()
	receiver := trusttest.NewCondition().Address()

	assert.IsErr(t, errors.ErrNotFound, engine.Fund(ctx, 1, sender, unit))

	id, err := engine.CreateDeal(ctx, sender, receiver, receiver, unit)
	assert.Nil(t, err)
	assert.IsErr(t, ErrTransferFailed, engine.Fund(ctx, id, sender, unit))

	deal, err := engine.GetDeal(id)
	assert.Nil(t, err)
	assert.Equal(t, DealCreated, deal.State)

	_, err = engine.Vote(ctx, id, receiver, VoteRelease)
	assert.IsErr(t, ErrNotFunded, err)
	vote, err := engine.VoteOf(id, receiver)
	assert.Nil(t, err)
	assert.Equal(t, 0, vote)

	assert.IsErr(t, errors.ErrAmount, engine.Mint(ctx, sender, coin.NewCoin(-1, 0, "IOV")))
	coins, err := engine.Balance(sender)
	assert.Nil(t, err)
	assert.Equal(t, true, coins.IsEmpty())
}
