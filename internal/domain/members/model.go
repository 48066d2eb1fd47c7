package members

import (
	"time"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

type MemberType string

const (
	TypeDealer MemberType = "dealer"
	TypeAhass  MemberType = "ahass"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusRejected Status = "rejected"
)

type Member struct {
	ID               string     `json:"id"`
	MemberType       MemberType `json:"memberType"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	AvatarURL        string     `json:"avatarUrl"`
	AhassNumber      string     `json:"ahassNumber"`
	DealerCode       string     `json:"dealerCode"`
	DealerName       string     `json:"dealerName"`
	DealerCity       string     `json:"dealerCity"`
	PICPhoneNumber   string     `json:"picPhoneNumber"`
	MembershipPlanID string     `json:"membershipPlanId"`
	ActiveUntil      time.Time  `json:"activeUntil"`
	Status           Status     `json:"status"`
	JoinedAt         time.Time  `json:"joinedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// WithPlan carries the member together with its current plan for list and
// detail responses. Plan is nil when the plan reference is dangling.
type WithPlan struct {
	Member
	Plan *plans.Plan `json:"plan"`
}

type CreateInput struct {
	MemberType       MemberType
	Name             string
	Email            string
	AhassNumber      string
	DealerCode       string
	DealerName       string
	DealerCity       string
	PICPhoneNumber   string
	MembershipPlanID string
	TransferDate     time.Time
	TransferProofURL string
}

// UpdateInput holds the admin-editable profile fields; nil means unchanged.
type UpdateInput struct {
	Name           *string
	Email          *string
	AhassNumber    *string
	DealerCode     *string
	DealerName     *string
	DealerCity     *string
	PICPhoneNumber *string
	Status         *Status
}

type Filters struct {
	Status string // all | active | expired | pending
	Search string
	Page   int
	Limit  int
}

type Page struct {
	Data       []WithPlan `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

// TotalPages computes the page count for an offset-paginated listing.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
	Pending int `json:"pending"`
}
