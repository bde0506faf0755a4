package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. If only
// one non nil error is given, it is returned as is.
//
// The result code is the code of the first error.
func Append(errs ...error) error {
	var list multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			list = append(list, m...)
		} else {
			list = append(list, err)
		}
	}

	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	return list
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, err := range m {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode returns the code of the first error, consistent with a fail fast
// approach.
func (m multiErr) ABCICode() uint32 {
	return ABCICode(m[0])
}

// Unpack returns all the errors contained.
func (m multiErr) Unpack() []error {
	return m
}
