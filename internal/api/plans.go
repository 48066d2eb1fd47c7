package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

type planResponse struct {
	plans.Plan
	Price string `json:"price"`
}

func toPlanResponse(p plans.Plan) planResponse {
	return planResponse{Plan: p, Price: FormatRupiah(p.PriceInCents)}
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	list, err := h.plans.ListActive(r.Context())
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data paket")
		return
	}

	out := make([]planResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	respondData(w, http.StatusOK, out)
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.plans.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data paket")
		return
	}
	respondData(w, http.StatusOK, toPlanResponse(*p))
}
