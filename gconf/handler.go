package gconf

import (
	"reflect"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// AdminFunc returns the address allowed to change a configuration.
type AdminFunc func(bazaar.ReadOnlyKVStore) (bazaar.Address, error)

// UpdateConfigurationHandler applies a configuration patch message. The
// message must be a pointer to a struct with a "Patch" field of the same
// type as the configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config Configuration
	auth   x.Authenticator
	admin  AdminFunc
}

var _ bazaar.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the address
// returned by admin. Usually this is the current governance account. A
// configuration that does not exist yet can be created the same way.
func NewUpdateConfigurationHandler(
	pkg string,
	config Configuration,
	auth x.Authenticator,
	admin AdminFunc,
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
		admin:  admin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) error {
	admin, err := h.admin(store)
	if err != nil {
		return errors.Wrap(err, "get admin")
	}
	if admin.IsEmpty() {
		return errors.Wrap(errors.ErrUnauthorized, "no configuration admin")
	}
	if !h.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}

	switch err := Load(store, h.pkg, h.config); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// Configuration was not initialized via the genesis and will be
		// created for the first time now.
		h.config.Reset()
	default:
		return errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	if err := Save(store, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config Configuration, payload Configuration) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrMsg, "patch %T does not match configuration %T", payload, config)
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
// holding a configuration. Content of this field is extracted and returned.
func patchPayload(tx bazaar.Tx) (Configuration, error) {
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
		return nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(Configuration)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
