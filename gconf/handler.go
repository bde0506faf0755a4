package gconf

import (
	"reflect"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/x"
)

// OwnedConfig must have an Owner field. A configuration update message must
// be signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() trust.Address
}

// UpdateConfigurationHandler applies a configuration patch message. The
// message must have a "Patch" field holding a pointer to the configuration
// type.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
	auth   x.Authenticator
}

var _ trust.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the current
// configuration owner. A configuration that was not created via genesis
// cannot be created by this handler.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trust.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trust.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx trust.Context, db trust.KVStore, tx trust.Tx) error {
	// Handlers are shared, work on a copy.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)

	switch err := Load(db, h.pkg, config); {
	case err == nil:
		owner := config.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
	case errors.ErrNotFound.Is(err):
		return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
	default:
		return errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

// patch copies all non zero fields of the payload into the config.
func patch(config OwnedConfig, payload interface{}) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrMsg, "patch of type %s does not match configuration %s", pType, cType)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field
// pointing to a configuration. Content of this field is returned.
func patchPayload(tx trust.Tx) (interface{}, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" pointer field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	return field.Interface(), nil
}
