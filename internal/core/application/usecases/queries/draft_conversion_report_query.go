package queries

import (
	"errors"
	"time"

	"storefront/internal/pkg/guard"
)

var (
	ErrDraftConversionReportQueryIsNotConstructed = errors.New(
		"DraftConversionReportQuery must be created via NewDraftConversionReportQuery constructor",
	)
	ErrDateRangeIsInvalid = errors.New("from must be before to")
)

// DraftConversionReportQuery retrieves the day-bucketed checkout funnel:
// how many drafts were recorded and how many converted to orders.
type DraftConversionReportQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewDraftConversionReportQuery creates a report query for the half-open
// interval [from, to).
func NewDraftConversionReportQuery(from, to time.Time) (DraftConversionReportQuery, error) {
	if !from.Before(to) {
		return DraftConversionReportQuery{}, ErrDateRangeIsInvalid
	}

	return DraftConversionReportQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DraftConversionReportQuery) Validate() error {
	return q.guard.Validate(ErrDraftConversionReportQueryIsNotConstructed)
}

// From returns the inclusive start of the reporting interval.
func (q DraftConversionReportQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the reporting interval.
func (q DraftConversionReportQuery) To() time.Time {
	return q.to
}

// DraftConversionReportRow is one day of the checkout funnel read model.
type DraftConversionReportRow struct {
	Day            time.Time
	Drafts         int
	Converted      int
	ConversionRate float64
}
