package api

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) verifyPIN(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PIN == "" {
		respondError(w, http.StatusBadRequest, "PIN wajib diisi")
		return
	}

	admin, err := h.admins.VerifyPIN(r.Context(), body.PIN)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal verifikasi PIN")
		return
	}
	respondSuccess(w, http.StatusOK, "Akses admin berhasil", admin)
}

func (h *Handler) seedPIN(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PIN    string `json:"pin"`
		Secret string `json:"secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PIN == "" {
		respondError(w, http.StatusBadRequest, "PIN wajib diisi")
		return
	}
	if h.seedSecret == "" || body.Secret != h.seedSecret {
		respondError(w, http.StatusForbidden, "Akses ditolak")
		return
	}

	if _, err := h.admins.SeedPIN(r.Context(), body.PIN); err != nil {
		h.respondDomainErr(w, err, "Gagal membuat admin")
		return
	}
	respondSuccess(w, http.StatusOK, "Admin PIN berhasil dibuat", nil)
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.members.Stats(r.Context())
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil statistik")
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (h *Handler) sweepExpired(w http.ResponseWriter, r *http.Request) {
	n, err := h.members.SweepExpired(r.Context())
	if err != nil {
		h.respondDomainErr(w, err, "Gagal memperbarui status member")
		return
	}
	membersSweptTotal.Add(float64(n))
	respondSuccess(w, http.StatusOK, "Status member kedaluwarsa diperbarui", map[string]int64{
		"updated": n,
	})
}
