package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/awass-id/awass-backend/internal/domain/admins"
	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/plans"
	"github.com/awass-id/awass-backend/internal/domain/renewals"
	"github.com/awass-id/awass-backend/internal/domain/transactions"
)

type stubPlans struct {
	list []plans.Plan
	err  error
}

func (s *stubPlans) ListActive(context.Context) ([]plans.Plan, error) { return s.list, s.err }

func (s *stubPlans) GetByID(_ context.Context, id string) (*plans.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.list {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, plans.ErrNotFound
}

type stubMembers struct {
	registerIn  []members.CreateInput
	registerErr error
	member      *members.Member
	detail      *members.WithPlan
	page        *members.Page
	listIn      members.Filters
	updateIn    members.UpdateInput
	swept       int64
	stats       *members.Stats
	err         error
}

func (s *stubMembers) Register(_ context.Context, in members.CreateInput) (*members.Member, error) {
	s.registerIn = append(s.registerIn, in)
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.member, nil
}

func (s *stubMembers) GetByID(context.Context, string) (*members.WithPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubMembers) Activate(context.Context, string) (*members.Member, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.member, nil
}

func (s *stubMembers) UpdateProfile(_ context.Context, _ string, in members.UpdateInput) (*members.Member, error) {
	s.updateIn = in
	if s.err != nil {
		return nil, s.err
	}
	return s.member, nil
}

func (s *stubMembers) List(_ context.Context, f members.Filters) (*members.Page, error) {
	s.listIn = f
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubMembers) SweepExpired(context.Context) (int64, error) { return s.swept, s.err }

func (s *stubMembers) Stats(context.Context) (*members.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

type stubTransactions struct {
	tx   *transactions.Transaction
	list []transactions.WithPlan
	err  error
}

func (s *stubTransactions) Verify(context.Context, string, string) (*transactions.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}

func (s *stubTransactions) Reject(context.Context, string, string) (*transactions.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}

func (s *stubTransactions) ListByMember(context.Context, string) ([]transactions.WithPlan, error) {
	return s.list, s.err
}

type stubRenewals struct {
	submitted  []renewals.SubmitInput
	submitErr  error
	request    *renewals.RenewalRequest
	pending    []renewals.WithDetails
	approveBy  string
	approveErr error
	newUntil   time.Time
	rejectErr  error
}

func (s *stubRenewals) Submit(_ context.Context, in renewals.SubmitInput) (*renewals.RenewalRequest, error) {
	s.submitted = append(s.submitted, in)
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.request, nil
}

func (s *stubRenewals) ListPending(context.Context) ([]renewals.WithDetails, error) {
	return s.pending, nil
}

func (s *stubRenewals) Approve(_ context.Context, _ string, adminID string) (time.Time, error) {
	s.approveBy = adminID
	if s.approveErr != nil {
		return time.Time{}, s.approveErr
	}
	return s.newUntil, nil
}

func (s *stubRenewals) Reject(context.Context, string, string) (*renewals.RenewalRequest, error) {
	if s.rejectErr != nil {
		return nil, s.rejectErr
	}
	return s.request, nil
}

type stubAdmins struct {
	admin   *admins.Admin
	pinErr  error
	seedErr error
}

func (s *stubAdmins) VerifyPIN(context.Context, string) (*admins.Admin, error) {
	if s.pinErr != nil {
		return nil, s.pinErr
	}
	return s.admin, nil
}

func (s *stubAdmins) SeedPIN(context.Context, string) (*admins.Admin, error) {
	if s.seedErr != nil {
		return nil, s.seedErr
	}
	return s.admin, nil
}

type stubUploader struct {
	url   string
	err   error
	saves int
}

func (s *stubUploader) Save(io.Reader, int64) (string, error) {
	s.saves++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubNotifier struct {
	registered int
	renewals   int
}

func (s *stubNotifier) MemberRegistered(string, string) { s.registered++ }
func (s *stubNotifier) RenewalSubmitted(string, string) { s.renewals++ }

type testEnv struct {
	handler      *Handler
	plans        *stubPlans
	members      *stubMembers
	transactions *stubTransactions
	renewals     *stubRenewals
	admins       *stubAdmins
	uploads      *stubUploader
	notify       *stubNotifier
}

func newTestEnv() *testEnv {
	e := &testEnv{
		plans:        &stubPlans{},
		members:      &stubMembers{},
		transactions: &stubTransactions{},
		renewals:     &stubRenewals{},
		admins:       &stubAdmins{},
		uploads:      &stubUploader{url: "/uploads/proof.png"},
		notify:       &stubNotifier{},
	}
	e.handler = NewHandler(Deps{
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Plans:        e.plans,
		Members:      e.members,
		Transactions: e.transactions,
		Renewals:     e.renewals,
		Admins:       e.admins,
		Uploads:      e.uploads,
		Notify:       e.notify,
		SeedSecret:   "s3cret",
	})
	return e
}

// pngStub is enough payload for the upload field; the stub uploader does not
// inspect it.
var pngStub = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartBody(t *testing.T, fields map[string]string, withProof bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withProof {
		fw, err := w.CreateFormFile("transferProof", "proof.png")
		require.NoError(t, err)
		_, err = fw.Write(pngStub)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
