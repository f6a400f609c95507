// Package draft provides the IncompleteOrder aggregate: a best-effort,
// session-keyed snapshot of an in-progress checkout. Drafts exist so an
// abandoned checkout can be resumed or followed up on; they convert to a
// real order exactly once and are never mutated afterwards.
package draft

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrDraftIsNotConstructed is returned when a Draft was not created via NewDraft or RestoreDraft.
var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft or RestoreDraft")

// Fields are the partially-entered checkout form values carried by a draft.
// Any of them may be empty; the customer might have typed only a phone number.
type Fields struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// Draft is a provisional checkout snapshot keyed by a browser session
// identifier. Every meaningful form change overwrites the mutable fields and
// bumps the update timestamp; conversion is one-shot and final.
type Draft struct {
	sessionID string
	fields    Fields
	cartJSON  string

	converted bool
	orderID   *kernel.UUID

	createdAt     time.Time
	lastUpdatedAt time.Time

	isConstructed bool
}

// NewDraft creates a draft for a checkout session.
func NewDraft(sessionID string, fields Fields, cartJSON string, now time.Time) (*Draft, error) {
	if sessionID == "" {
		return nil, errs.NewValueIsRequiredError("session ID")
	}

	return &Draft{
		sessionID:     sessionID,
		fields:        fields,
		cartJSON:      cartJSON,
		createdAt:     now,
		lastUpdatedAt: now,
		isConstructed: true,
	}, nil
}

// RestoreDraft reconstructs a draft from persistence.
func RestoreDraft(
	sessionID string, fields Fields, cartJSON string,
	converted bool, orderID *kernel.UUID,
	createdAt, lastUpdatedAt time.Time,
) (*Draft, error) {
	d, err := NewDraft(sessionID, fields, cartJSON, createdAt)
	if err != nil {
		return nil, err
	}

	if orderID != nil {
		if idErr := orderID.Validate(); idErr != nil {
			return nil, idErr
		}
	}

	d.converted = converted
	d.orderID = orderID
	d.lastUpdatedAt = lastUpdatedAt
	return d, nil
}

// Validate ensures the draft was built through a constructor.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

// SessionID returns the browser session key.
func (d *Draft) SessionID() string { return d.sessionID }

// Fields returns the captured form values.
func (d *Draft) Fields() Fields { return d.fields }

// CartJSON returns the serialized cart snapshot.
func (d *Draft) CartJSON() string { return d.cartJSON }

// IsConverted reports whether the draft already produced an order.
func (d *Draft) IsConverted() bool { return d.converted }

// OrderID returns the back-reference to the produced order, nil before conversion.
func (d *Draft) OrderID() *kernel.UUID { return d.orderID }

// CreatedAt returns the first-write timestamp.
func (d *Draft) CreatedAt() time.Time { return d.createdAt }

// LastUpdatedAt returns the last-write timestamp.
func (d *Draft) LastUpdatedAt() time.Time { return d.lastUpdatedAt }

// Apply overwrites the mutable fields with the latest form state and bumps
// the update timestamp. A converted draft is frozen: the write is silently
// skipped, because a late debounce flush after checkout must not error.
func (d *Draft) Apply(fields Fields, cartJSON string, now time.Time) {
	if d.converted {
		return
	}

	d.fields = fields
	d.cartJSON = cartJSON
	d.lastUpdatedAt = now
}

// Convert marks the draft converted and links the produced order, exactly
// once. Converting an already-converted draft is a no-op, not an error.
func (d *Draft) Convert(orderID kernel.UUID, now time.Time) error {
	if d.converted {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	d.converted = true
	d.orderID = &orderID
	d.lastUpdatedAt = now
	return nil
}
