package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/awass-id/awass-backend/internal/domain/admins"
	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/plans"
	"github.com/awass-id/awass-backend/internal/domain/renewals"
	"github.com/awass-id/awass-backend/internal/domain/transactions"
	"github.com/awass-id/awass-backend/internal/infra/storage"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondData(w http.ResponseWriter, code int, v any) {
	writeJSON(w, code, v)
}

func respondSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, successEnvelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorEnvelope{Error: msg})
}

// respondDomainErr maps domain errors to status codes per the error taxonomy:
// missing entities 404, processed-twice conflicts and validation failures 400,
// bad credentials 401, everything else 500 with the detail suppressed outside
// dev mode.
func (h *Handler) respondDomainErr(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, plans.ErrNotFound):
		respondError(w, http.StatusNotFound, "Paket tidak ditemukan")
	case errors.Is(err, members.ErrNotFound):
		respondError(w, http.StatusNotFound, "Member tidak ditemukan")
	case errors.Is(err, members.ErrPlanNotFound), errors.Is(err, renewals.ErrPlanNotFound):
		respondError(w, http.StatusNotFound, "Paket membership tidak ditemukan")
	case errors.Is(err, transactions.ErrNotFound):
		respondError(w, http.StatusNotFound, "Transaksi tidak ditemukan")
	case errors.Is(err, renewals.ErrNotFound):
		respondError(w, http.StatusNotFound, "Pengajuan tidak ditemukan")
	case errors.Is(err, renewals.ErrAlreadyProcessed):
		respondError(w, http.StatusBadRequest, "Pengajuan sudah diproses")
	case errors.Is(err, members.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "Email sudah terdaftar")
	case errors.Is(err, admins.ErrInvalidPIN):
		respondError(w, http.StatusUnauthorized, "PIN salah")
	case errors.Is(err, admins.ErrExists):
		respondError(w, http.StatusBadRequest, "Admin sudah ada")
	case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(fallback, "err", err)
		msg := fallback
		if h.dev {
			msg = err.Error()
		}
		respondError(w, http.StatusInternalServerError, msg)
	}
}
