package bazaartest

import "github.com/iov-one/bazaar"

// Tx represents a single message that is to be processed, signed by given
// conditions.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg bazaar.Msg
	// Signers are returned by GetSigners.
	Signers []bazaar.Condition
	// Err if set is returned by any method call.
	Err error
}

var _ bazaar.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetSigners() []bazaar.Condition {
	return tx.Signers
}

// Msg represents a message with no content.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ bazaar.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
