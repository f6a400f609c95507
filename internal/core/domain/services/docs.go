// Package services contains domain services: stateless operations that span
// aggregates or encode carrier-facing business rules that do not belong to a
// single entity.
//
// The package currently provides the ConsignmentBuilder, which turns a
// dispatch-eligible order into a sanitized courier booking request.
package services
