package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/draft"
)

// DraftRepository defines the persistence contract for checkout drafts.
// Drafts are keyed by browser session and written on every form change,
// so the store favors upsert semantics over strict add/update separation.
type DraftRepository interface {
	// Upsert persists a draft, inserting it on first contact for the
	// session and overwriting the stored snapshot on every later call.
	Upsert(ctx context.Context, aggregate *draft.Draft) error

	// GetBySession retrieves the draft recorded for a browser session.
	GetBySession(ctx context.Context, sessionID string) (*draft.Draft, error)

	// PurgeUnconvertedBefore deletes unconverted drafts whose last update
	// is older than the cutoff. Converted drafts are kept for reporting.
	// Returns the number of drafts removed.
	PurgeUnconvertedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
