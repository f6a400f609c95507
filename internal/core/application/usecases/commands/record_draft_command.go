package commands

import (
	"errors"

	"storefront/internal/core/domain/model/draft"
	"storefront/internal/pkg/guard"
)

var (
	ErrRecordDraftCommandIsNotConstructed = errors.New(
		"RecordDraftCommand must be created via NewRecordDraftCommand constructor",
	)
	ErrSessionIDIsRequired = errors.New("session ID is required")
)

// RecordDraftCommand represents one debounced checkout-form snapshot for a
// browser session. Every field except the session key may be empty; the
// customer might have typed only a phone number so far.
type RecordDraftCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	fields    draft.Fields
	cartJSON  string

	guard guard.ConstructorGuard
}

// NewRecordDraftCommand creates a command to record a checkout draft.
// Validates that the session ID is not empty.
func NewRecordDraftCommand(sessionID string, fields draft.Fields, cartJSON string) (RecordDraftCommand, error) {
	if sessionID == "" {
		return RecordDraftCommand{}, ErrSessionIDIsRequired
	}

	return RecordDraftCommand{
		sessionID: sessionID,
		fields:    fields,
		cartJSON:  cartJSON,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDraftCommand) Validate() error {
	return c.guard.Validate(ErrRecordDraftCommandIsNotConstructed)
}

// SessionID returns the browser session key.
func (c RecordDraftCommand) SessionID() string {
	return c.sessionID
}

// Fields returns the captured form values.
func (c RecordDraftCommand) Fields() draft.Fields {
	return c.fields
}

// CartJSON returns the serialized cart snapshot.
func (c RecordDraftCommand) CartJSON() string {
	return c.cartJSON
}
