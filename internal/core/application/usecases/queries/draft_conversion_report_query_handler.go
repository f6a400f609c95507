package queries

import (
	"context"

	"gorm.io/gorm"
)

// DraftConversionReportQueryHandler aggregates checkout drafts per day.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type DraftConversionReportQueryHandler struct {
	db *gorm.DB
}

// NewDraftConversionReportQueryHandler creates a handler for the funnel report.
// Requires a GORM database connection for query execution.
func NewDraftConversionReportQueryHandler(db *gorm.DB) DraftConversionReportQueryHandler {
	return DraftConversionReportQueryHandler{db: db}
}

// Handle executes the report query. Days without drafts produce no row.
func (h DraftConversionReportQueryHandler) Handle(
	ctx context.Context,
	query DraftConversionReportQuery,
) ([]DraftConversionReportRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			DATE_TRUNC('day', created_at) AS day,
			COUNT(*) AS drafts,
			COUNT(*) FILTER (WHERE converted) AS converted
		FROM checkout_drafts
		WHERE created_at >= ? AND created_at < ?
		GROUP BY day
		ORDER BY day
	`, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]DraftConversionReportRow, 0)
	for rows.Next() {
		var row DraftConversionReportRow
		if err = rows.Scan(&row.Day, &row.Drafts, &row.Converted); err != nil {
			return nil, err
		}

		if row.Drafts > 0 {
			row.ConversionRate = float64(row.Converted) / float64(row.Drafts) * 100
		}
		report = append(report, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
