// Package kernel provides core domain primitives shared across the
// fulfillment domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Phone: a customer phone number normalized to the local carrier format
//
// These primitives are immutable value objects. They enforce their own
// invariants so the aggregates that embed them never carry malformed
// identifiers or contact data.
package kernel
