package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/trusttest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  *trusttest.Handler
		deliver  bool
		wantErr  *errors.Error
		wantLogs []string
	}{
		"delivered": {
			handler:  &trusttest.Handler{DeliverResult: trust.DeliverResult{Log: "deal released"}},
			deliver:  true,
			wantLogs: []string{"I[", "deal released", "path=escrow/vote", "duration="},
		},
		"failed delivery": {
			handler:  &trusttest.Handler{DeliverErr: errors.ErrUnauthorized},
			deliver:  true,
			wantErr:  errors.ErrUnauthorized,
			wantLogs: []string{"E[", "path=escrow/vote", "err="},
		},
		"checked": {
			handler:  &trusttest.Handler{CheckResult: trust.CheckResult{Log: "looks fine"}},
			wantLogs: []string{"D[", "looks fine"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := trust.WithLogger(context.Background(), log.NewTMLogger(&buf))
			tx := &trusttest.Tx{Msg: &trusttest.Msg{RoutePath: "escrow/vote"}}

			var err error
			if tc.deliver {
				_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, tc.handler)
			} else {
				_, err = NewLogging().Check(ctx, store.MemStore(), tx, tc.handler)
			}
			assert.IsErr(t, tc.wantErr, err)

			out := buf.String()
			for _, want := range tc.wantLogs {
				if !strings.Contains(out, want) {
					t.Errorf("log %q does not contain %q", out, want)
				}
			}
		})
	}
}
