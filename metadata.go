package trust

import (
	"github.com/iov-one/trust/errors"
)

// Metadata is carried by every persisted model and message. Schema declares
// the version of the data format and must be at least 1.
type Metadata struct {
	Schema int32 `json:"schema"`
}

// Validate returns an error if the metadata does not declare a schema.
func (m Metadata) Validate() error {
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrModel, "schema version must be at least 1")
	}
	return nil
}
