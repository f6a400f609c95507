package draftrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/draft"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDraftRepository implements DraftRepository using GORM.
type GormDraftRepository struct {
	db *gorm.DB
}

// NewGormDraftRepository creates a new GORM draft repository.
func NewGormDraftRepository(db *gorm.DB) *GormDraftRepository {
	return &GormDraftRepository{db: db}
}

// Upsert inserts the draft on first contact for the session and overwrites
// the stored snapshot on conflict. The conflict target is the session key.
func (r *GormDraftRepository) Upsert(ctx context.Context, aggregate *draft.Draft) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "phone", "address", "city", "cart_json",
			"converted", "order_id", "last_updated_at",
		}),
	}).Create(&dto).Error
}

// GetBySession retrieves the draft recorded for a browser session.
func (r *GormDraftRepository) GetBySession(ctx context.Context, sessionID string) (*draft.Draft, error) {
	if sessionID == "" {
		return nil, errs.NewValueIsRequiredError("session ID")
	}

	var dto DraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkout draft", sessionID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// PurgeUnconvertedBefore deletes unconverted drafts last touched before the
// cutoff and returns the number of rows removed.
func (r *GormDraftRepository) PurgeUnconvertedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("converted = ?", false).
		Where("last_updated_at < ?", cutoff).
		Delete(&DraftDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
