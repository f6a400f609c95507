package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/draft"
	"storefront/internal/pkg/errs"
)

// RecordDraftCommandHandler upserts the checkout draft for a session.
// The first snapshot for a session inserts a draft; every later snapshot
// overwrites the stored fields and bumps the update timestamp. Snapshots
// arriving after the draft converted to an order are silently dropped.
type RecordDraftCommandHandler struct {
	uowFactory DraftUoWFactory
}

// NewRecordDraftCommandHandler creates a handler for draft recording.
func NewRecordDraftCommandHandler(uowFactory DraftUoWFactory) RecordDraftCommandHandler {
	return RecordDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one draft snapshot.
func (h RecordDraftCommandHandler) Handle(ctx context.Context, cmd RecordDraftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	draftRepo := uow.DraftRepository()

	d, err := draftRepo.GetBySession(ctx, cmd.SessionID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		d, err = draft.NewDraft(cmd.SessionID(), cmd.Fields(), cmd.CartJSON(), now)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		d.Apply(cmd.Fields(), cmd.CartJSON(), now)
	}

	if err = draftRepo.Upsert(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
