package renewals

import (
	"time"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// RenewalRequest asks to extend a member's subscription under a (possibly
// different) plan. Approved and rejected are terminal states.
type RenewalRequest struct {
	ID               string     `json:"id"`
	MemberID         string     `json:"memberId"`
	RequestedPlanID  string     `json:"requestedPlanId"`
	TransferDate     time.Time  `json:"transferDate"`
	TransferProofURL string     `json:"transferProofUrl"`
	Status           Status     `json:"status"`
	ProcessedBy      string     `json:"processedBy"`
	ProcessedAt      *time.Time `json:"processedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// MemberSummary is the slice of the member row shown on the pending queue.
type MemberSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DealerName  string    `json:"dealerName"`
	ActiveUntil time.Time `json:"activeUntil"`
	Status      string    `json:"status"`
}

type WithDetails struct {
	RenewalRequest
	Member MemberSummary `json:"member"`
	Plan   plans.Plan    `json:"plan"`
}

type SubmitInput struct {
	MemberID         string
	RequestedPlanID  string
	TransferDate     time.Time
	TransferProofURL string
}
