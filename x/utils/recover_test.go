package utils

import (
	"context"
	"testing"

	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	h := &trusttest.Handler{Panic: "deal corrupted"}
	ctx := context.Background()
	db := store.MemStore()

	assert.Panics(t, func() { _, _ = h.Check(ctx, db, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, db, nil) })

	_, err := NewRecovery().Check(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deal corrupted")

	_, err = NewRecovery().Deliver(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryPassesResults(t *testing.T) {
	h := &trusttest.Handler{DeliverErr: errors.ErrUnauthorized}
	h.DeliverResult.Log = "ignored"

	_, err := NewRecovery().Deliver(context.Background(), store.MemStore(), nil, h)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, h.DeliverCallCount())
}
