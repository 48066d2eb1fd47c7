package transactions

import (
	"time"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

type Type string

const (
	TypeRegistration Type = "registration"
	TypeRenewal      Type = "renewal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Transaction is a recorded payment claim. Immutable after creation except
// for the status transition fields.
type Transaction struct {
	ID               string     `json:"id"`
	MemberID         string     `json:"memberId"`
	Type             Type       `json:"type"`
	PlanID           string     `json:"planId"`
	AmountInCents    int        `json:"amountInCents"`
	TransferDate     time.Time  `json:"transferDate"`
	TransferProofURL string     `json:"transferProofUrl"`
	Status           Status     `json:"status"`
	VerifiedAt       *time.Time `json:"verifiedAt"`
	VerifiedBy       string     `json:"verifiedBy"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type WithPlan struct {
	Transaction
	Plan plans.Plan `json:"plan"`
}
