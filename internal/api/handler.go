package api

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awass-id/awass-backend/internal/domain/admins"
	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/plans"
	"github.com/awass-id/awass-backend/internal/domain/renewals"
	"github.com/awass-id/awass-backend/internal/domain/transactions"
)

type PlanStore interface {
	ListActive(ctx context.Context) ([]plans.Plan, error)
	GetByID(ctx context.Context, id string) (*plans.Plan, error)
}

type MemberStore interface {
	Register(ctx context.Context, in members.CreateInput) (*members.Member, error)
	GetByID(ctx context.Context, id string) (*members.WithPlan, error)
	Activate(ctx context.Context, id string) (*members.Member, error)
	UpdateProfile(ctx context.Context, id string, in members.UpdateInput) (*members.Member, error)
	List(ctx context.Context, f members.Filters) (*members.Page, error)
	SweepExpired(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*members.Stats, error)
}

type TransactionStore interface {
	Verify(ctx context.Context, id, verifierID string) (*transactions.Transaction, error)
	Reject(ctx context.Context, id, verifierID string) (*transactions.Transaction, error)
	ListByMember(ctx context.Context, memberID string) ([]transactions.WithPlan, error)
}

type RenewalStore interface {
	Submit(ctx context.Context, in renewals.SubmitInput) (*renewals.RenewalRequest, error)
	ListPending(ctx context.Context) ([]renewals.WithDetails, error)
	Approve(ctx context.Context, id, adminID string) (time.Time, error)
	Reject(ctx context.Context, id, adminID string) (*renewals.RenewalRequest, error)
}

type AdminStore interface {
	VerifyPIN(ctx context.Context, pin string) (*admins.Admin, error)
	SeedPIN(ctx context.Context, pin string) (*admins.Admin, error)
}

type Uploader interface {
	Save(src io.Reader, size int64) (string, error)
}

type Notifier interface {
	MemberRegistered(name, planID string)
	RenewalSubmitted(memberID, planID string)
}

type Handler struct {
	log          *slog.Logger
	plans        PlanStore
	members      MemberStore
	transactions TransactionStore
	renewals     RenewalStore
	admins       AdminStore
	uploads      Uploader
	notify       Notifier
	seedSecret   string
	dev          bool
}

type Deps struct {
	Log          *slog.Logger
	Plans        PlanStore
	Members      MemberStore
	Transactions TransactionStore
	Renewals     RenewalStore
	Admins       AdminStore
	Uploads      Uploader
	Notify       Notifier
	SeedSecret   string
	Dev          bool
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		log:          d.Log,
		plans:        d.Plans,
		members:      d.Members,
		transactions: d.Transactions,
		renewals:     d.Renewals,
		admins:       d.Admins,
		uploads:      d.Uploads,
		notify:       d.Notify,
		seedSecret:   d.SeedSecret,
		dev:          d.Dev,
	}
}

// Routes wires the /api surface. Registration, renewal submission, the plan
// catalog and PIN endpoints are public; everything else is admin-gated.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/plans", h.listPlans)
	r.Get("/plans/{id}", h.getPlan)
	r.Post("/members/register", h.registerMember)
	r.Post("/renewals", h.submitRenewal)
	r.Post("/admin/verify-pin", h.verifyPIN)
	r.Post("/admin/seed-pin", h.seedPIN)

	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin)

		r.Get("/members", h.listMembers)
		r.Get("/members/export/csv", h.exportMembersCSV)
		r.Get("/members/export/xlsx", h.exportMembersXLSX)
		r.Get("/members/{id}", h.getMember)
		r.Patch("/members/{id}", h.updateMember)
		r.Post("/members/{id}/activate", h.activateMember)

		r.Get("/transactions/member/{memberID}", h.listMemberTransactions)
		r.Patch("/transactions/{id}/verify", h.verifyTransaction)
		r.Patch("/transactions/{id}/reject", h.rejectTransaction)

		r.Get("/renewals", h.listPendingRenewals)
		r.Patch("/renewals/{id}/approve", h.approveRenewal)
		r.Patch("/renewals/{id}/reject", h.rejectRenewal)

		r.Get("/admin/stats", h.adminStats)
		r.Post("/admin/sweep-expired", h.sweepExpired)
	})

	return r
}
