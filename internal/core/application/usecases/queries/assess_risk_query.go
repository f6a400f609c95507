// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrAssessRiskQueryIsNotConstructed = errors.New(
	"AssessRiskQuery must be created via NewAssessRiskQuery constructor",
)

// AssessRiskQuery retrieves the advisory risk classification for a customer
// phone number before an order is confirmed.
//
// Example:
//
//	query, err := NewAssessRiskQuery("+8801712345678")
//	if err != nil {
//	    return err
//	}
//
//	assessment, _ := handler.Handle(ctx, query)
//	fmt.Printf("%s: %s (%.0f%%)\n", assessment.Phone, assessment.Tier, assessment.SuccessRatio)
type AssessRiskQuery struct {
	phone string

	guard guard.ConstructorGuard
}

// NewAssessRiskQuery creates a risk lookup for a phone number.
// The phone is normalized to the local digit format so cache keys and
// upstream lookups agree on one spelling.
func NewAssessRiskQuery(phone string) (AssessRiskQuery, error) {
	normalized, err := kernel.NewPhone(phone)
	if err != nil {
		return AssessRiskQuery{}, err
	}

	return AssessRiskQuery{
		phone: normalized.String(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AssessRiskQuery) Validate() error {
	return q.guard.Validate(ErrAssessRiskQueryIsNotConstructed)
}

// Phone returns the normalized phone number to assess.
func (q AssessRiskQuery) Phone() string {
	return q.phone
}
