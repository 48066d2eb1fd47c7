package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listMemberTransactions(w http.ResponseWriter, r *http.Request) {
	history, err := h.transactions.ListByMember(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil riwayat transaksi")
		return
	}
	respondData(w, http.StatusOK, history)
}

func (h *Handler) verifyTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.Verify(r.Context(), chi.URLParam(r, "id"), adminID(r))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal memverifikasi transaksi")
		return
	}
	transactionsResolvedTotal.WithLabelValues("verified").Inc()
	respondSuccess(w, http.StatusOK, "Transaksi berhasil diverifikasi", t)
}

func (h *Handler) rejectTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.Reject(r.Context(), chi.URLParam(r, "id"), adminID(r))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal menolak transaksi")
		return
	}
	transactionsResolvedTotal.WithLabelValues("rejected").Inc()
	respondSuccess(w, http.StatusOK, "Transaksi ditolak", t)
}
