package trust

import (
	"reflect"

	"github.com/iov-one/trust/errors"
)

// assignMsg copies the message referenced by msg into the destination
// pointer. Both must be of the same type.
func assignMsg(msg Msg, destination interface{}) error {
	src := reflect.ValueOf(msg)
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if src.Type() != dst.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dst.Elem().Type(), msg)
	}
	dst.Elem().Set(src)
	return nil
}

// ValidatePath returns an error if the message path is not well formatted.
func ValidatePath(path string) error {
	if !isPath(path) {
		return errors.Wrapf(errors.ErrInput, "path %q", path)
	}
	return nil
}
