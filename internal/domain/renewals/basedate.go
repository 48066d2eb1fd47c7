package renewals

import "time"

// BaseDate picks the date the renewal duration is added to. A member renewing
// before their current expiry keeps the unused time (extend from activeUntil);
// a lapsed member starts over from the payment's transfer date, so late
// renewal does not backdate coverage.
func BaseDate(now, activeUntil, transferDate time.Time) time.Time {
	if now.After(activeUntil) {
		return transferDate
	}
	return activeUntil
}
