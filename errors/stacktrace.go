package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format implements fmt.Formatter. %+v prints the message followed by the
// stack trace, trimmed of the wrapping and runtime frames.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, e.Error())
		for _, f := range trimInternal(stackTrace(e)) {
			fmt.Fprintf(s, "\n%+v", f)
		}
		return
	}
	io.WriteString(s, e.Error())
}

// trimInternal removes the frames of this package and of the runtime from
// the top and the bottom of the stack.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && isInternalFrame(st[0]) {
		st = st[1:]
	}
	for len(st) > 0 && isRuntimeFrame(st[len(st)-1]) {
		st = st[:len(st)-1]
	}
	return st
}

func isInternalFrame(f errors.Frame) bool {
	name := fmt.Sprintf("%n", f)
	file := fmt.Sprintf("%+s", f)
	if strings.HasSuffix(file, "_test.go") {
		return false
	}
	switch name {
	case "Wrap", "Wrapf", "(*Error).New", "(*Error).Newf", "Field":
		return strings.Contains(file, "/errors/")
	}
	return isRuntimeFrame(f)
}

func isRuntimeFrame(f errors.Frame) bool {
	return strings.Contains(fmt.Sprintf("%+s", f), "/runtime/")
}
