package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awass-id/awass-backend/internal/domain/renewals"
	"github.com/awass-id/awass-backend/internal/infra/storage"
)

func (h *Handler) submitRenewal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize + 1<<20); err != nil {
		respondError(w, http.StatusBadRequest, "Form tidak valid")
		return
	}

	file, header, err := r.FormFile("transferProof")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Bukti transfer wajib dilampirkan")
		return
	}
	defer func() { _ = file.Close() }()

	memberID := r.FormValue("memberId")
	planID := r.FormValue("membershipPlanId")
	if memberID == "" || planID == "" {
		respondError(w, http.StatusBadRequest, "Kolom memberId dan membershipPlanId wajib diisi")
		return
	}

	transferDate, err := parseDate(r.FormValue("transferDate"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Tanggal transfer tidak valid (format YYYY-MM-DD)")
		return
	}

	proofURL, err := h.uploads.Save(file, header.Size)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal menyimpan bukti transfer")
		return
	}

	renewal, err := h.renewals.Submit(r.Context(), renewals.SubmitInput{
		MemberID:         memberID,
		RequestedPlanID:  planID,
		TransferDate:     transferDate,
		TransferProofURL: proofURL,
	})
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengajukan perpanjangan")
		return
	}

	h.notify.RenewalSubmitted(renewal.MemberID, renewal.RequestedPlanID)
	respondSuccess(w, http.StatusCreated,
		"Pengajuan perpanjangan berhasil dikirim. Menunggu verifikasi admin.", renewal)
}

func (h *Handler) listPendingRenewals(w http.ResponseWriter, r *http.Request) {
	list, err := h.renewals.ListPending(r.Context())
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data pengajuan")
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *Handler) approveRenewal(w http.ResponseWriter, r *http.Request) {
	newActiveUntil, err := h.renewals.Approve(r.Context(), chi.URLParam(r, "id"), adminID(r))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal menyetujui perpanjangan")
		return
	}
	renewalDecisionsTotal.WithLabelValues("approved").Inc()
	respondSuccess(w, http.StatusOK, "Perpanjangan berhasil disetujui", map[string]string{
		"newActiveUntil": newActiveUntil.Format("2006-01-02"),
	})
}

func (h *Handler) rejectRenewal(w http.ResponseWriter, r *http.Request) {
	_, err := h.renewals.Reject(r.Context(), chi.URLParam(r, "id"), adminID(r))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal menolak pengajuan")
		return
	}
	renewalDecisionsTotal.WithLabelValues("rejected").Inc()
	respondSuccess(w, http.StatusOK, "Pengajuan ditolak", nil)
}
