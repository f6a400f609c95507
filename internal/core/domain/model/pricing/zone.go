package pricing

// DeliveryZone is a read-only snapshot of a delivery zone row: a named
// shipping region with a flat charge, an optional free-delivery threshold,
// and an estimated transit time.
//
// The engine never waives the charge on its own even when the threshold is
// met; waiving is an explicit caller decision (Request.WaiveDeliveryCharge).
type DeliveryZone struct {
	Name                  string
	Charge                int64
	FreeDeliveryThreshold *int64
	TransitDays           int
}

// QualifiesForFreeDelivery reports whether the zone defines a free-delivery
// threshold and the subtotal meets it.
func (z DeliveryZone) QualifiesForFreeDelivery(subtotal int64) bool {
	return z.FreeDeliveryThreshold != nil && subtotal >= *z.FreeDeliveryThreshold
}
