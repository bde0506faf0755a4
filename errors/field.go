package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of the invalid attribute to err. Nested attributes
// use dot notation, for example Amount.Ticker. A nil err gives nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, cause: err}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
	}
	return fmt.Sprintf("field %q: %s", e.name, e.cause)
}

func (e *fieldError) Cause() error  { return e.cause }
func (e *fieldError) Field() string { return e.name }

// FieldErrors collects every error reported for the named field. Multi
// errors are searched recursively and wrapping errors are unwrapped.
func FieldErrors(err error, name string) []error {
	for !isNilErr(err) {
		switch e := err.(type) {
		case interface{ Field() string }:
			if e.Field() == name {
				return []error{err}
			}
		case unpacker:
			var found []error
			for _, inner := range e.Unpack() {
				found = append(found, FieldErrors(inner, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
