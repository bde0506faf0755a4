package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"panic is redacted": {
			err:      ErrPanic.New("secret"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"error list uses the first code": {
			err:      Append(ErrEmpty, ErrAmount),
			wantLog:  "value is empty; invalid amount",
			wantCode: ErrEmpty.code,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			// Debug logs may carry a stack trace after the message.
			if tc.debug && !strings.HasPrefix(log, tc.wantLog) {
				t.Errorf("want %q log prefix, got %q", tc.wantLog, log)
			}
			if !tc.debug && log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic.New("oops"), false); ErrPanic.Is(err) {
		t.Error("panic must be redacted")
	}
	if err := Redact(io.EOF, false); err.Error() != "internal error" {
		t.Errorf("stdlib error must be redacted, got %q", err)
	}
	if err := Redact(io.EOF, true); err != io.EOF {
		t.Error("debug mode must not redact")
	}
	if err := Redact(ErrUnauthorized, false); err != ErrUnauthorized {
		t.Error("registered error must be kept")
	}
}
