package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awass-id/awass-backend/internal/domain/admins"
	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/plans"
)

func TestVerifyPIN(t *testing.T) {
	e := newTestEnv()
	e.admins.admin = &admins.Admin{ID: "adm-1", Role: admins.RoleSuperAdmin}

	req := httptest.NewRequest(http.MethodPost, "/admin/verify-pin", strings.NewReader(`{"pin":"123456"}`))
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Akses admin berhasil")
}

func TestVerifyPINMissing(t *testing.T) {
	e := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/admin/verify-pin", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PIN wajib diisi")
}

func TestVerifyPINWrong(t *testing.T) {
	e := newTestEnv()
	e.admins.pinErr = admins.ErrInvalidPIN

	req := httptest.NewRequest(http.MethodPost, "/admin/verify-pin", strings.NewReader(`{"pin":"000000"}`))
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "PIN salah")
}

func TestSeedPINWrongSecret(t *testing.T) {
	e := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/admin/seed-pin",
		strings.NewReader(`{"pin":"123456","secret":"wrong"}`))
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Akses ditolak")
}

func TestSeedPINAlreadySeeded(t *testing.T) {
	e := newTestEnv()
	e.admins.seedErr = admins.ErrExists

	req := httptest.NewRequest(http.MethodPost, "/admin/seed-pin",
		strings.NewReader(`{"pin":"123456","secret":"s3cret"}`))
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin sudah ada")
}

func TestAdminStats(t *testing.T) {
	e := newTestEnv()
	e.members.stats = &members.Stats{Total: 10, Active: 6, Expired: 3, Pending: 1}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("X-Admin-Id", "adm-1")
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats members.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 6, stats.Active)
}

func TestSweepExpiredEndpoint(t *testing.T) {
	e := newTestEnv()
	e.members.swept = 4

	req := httptest.NewRequest(http.MethodPost, "/admin/sweep-expired", nil)
	req.Header.Set("X-Admin-Id", "adm-1")
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":4`)
}

func TestGetPlanFormatsPrice(t *testing.T) {
	e := newTestEnv()
	e.plans.list = []plans.Plan{{ID: "monthly", Label: "Bulanan", PriceInCents: 9000000}}

	req := httptest.NewRequest(http.MethodGet, "/plans/monthly", nil)
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"Rp 90.000"`)
}

func TestGetPlanNotFound(t *testing.T) {
	e := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/plans/weekly", nil)
	rec := httptest.NewRecorder()
	e.handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paket tidak ditemukan")
}
