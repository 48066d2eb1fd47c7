package plans

import "time"

// Plan is a subscription tier. Rows are reference data: new plans may be
// added, but a plan referenced by a transaction is never deleted.
type Plan struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Duration       string    `json:"duration"`
	DurationMonths int       `json:"durationMonths"`
	PriceInCents   int       `json:"priceInCents"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
