// Package risk provides the advisory risk classification of a customer
// phone number based on aggregated historical delivery outcomes reported by
// external couriers. Risk scoring is advisory only: it degrades to an
// inconclusive result on any upstream failure and never blocks an order.
package risk

// Tier is the derived risk classification for a phone number.
type Tier string

const (
	// TierNew means no delivery history exists, or the lookup was inconclusive.
	TierNew Tier = "new"

	// TierSafe means at least 80% of historical parcels were delivered.
	TierSafe Tier = "safe"

	// TierCaution means 50-79% of historical parcels were delivered.
	TierCaution Tier = "caution"

	// TierRisky means fewer than half of historical parcels were delivered.
	TierRisky Tier = "risky"
)

// Classification thresholds on the success ratio, in percent.
const (
	safeThreshold    = 80.0
	cautionThreshold = 50.0
)

// CourierHistory is one courier's aggregated delivery record for a phone number.
type CourierHistory struct {
	Name      string
	Total     int
	Success   int
	Cancelled int
}

// Assessment is the aggregated, classified delivery history for one phone
// number. It is derived on demand and cached per admin session, never
// persisted as a first-class row.
type Assessment struct {
	Phone        string
	TotalParcels int
	Successful   int
	Cancelled    int
	SuccessRatio float64
	Tier         Tier
	PerCourier   []CourierHistory

	// Inconclusive marks an assessment produced from a failed or malformed
	// lookup. The tier is TierNew in that case.
	Inconclusive bool
}

// Assess aggregates per-courier history into a classified assessment.
func Assess(phone string, perCourier []CourierHistory) Assessment {
	a := Assessment{
		Phone:      phone,
		PerCourier: perCourier,
	}

	for _, c := range perCourier {
		a.TotalParcels += c.Total
		a.Successful += c.Success
		a.Cancelled += c.Cancelled
	}

	if a.TotalParcels == 0 {
		a.Tier = TierNew
		return a
	}

	a.SuccessRatio = float64(a.Successful) / float64(a.TotalParcels) * 100

	switch {
	case a.SuccessRatio >= safeThreshold:
		a.Tier = TierSafe
	case a.SuccessRatio >= cautionThreshold:
		a.Tier = TierCaution
	default:
		a.Tier = TierRisky
	}

	return a
}

// Inconclusive builds the degraded assessment used when the external lookup
// is unreachable, times out, or returns a malformed payload.
func Inconclusive(phone string) Assessment {
	return Assessment{
		Phone:        phone,
		Tier:         TierNew,
		Inconclusive: true,
	}
}
