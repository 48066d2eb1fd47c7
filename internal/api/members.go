package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/transactions"
	"github.com/awass-id/awass-backend/internal/infra/storage"
)

const exportLimit = 10000

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (h *Handler) registerMember(w http.ResponseWriter, r *http.Request) {
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

	memberType := members.MemberType(r.FormValue("memberType"))
	if memberType != members.TypeDealer && memberType != members.TypeAhass {
		respondError(w, http.StatusBadRequest, "Tipe member harus dealer atau ahass")
		return
	}

	required := map[string]string{
		"name":             r.FormValue("name"),
		"email":            r.FormValue("email"),
		"ahassNumber":      r.FormValue("ahassNumber"),
		"dealerName":       r.FormValue("dealerName"),
		"dealerCity":       r.FormValue("dealerCity"),
		"picPhoneNumber":   r.FormValue("picPhoneNumber"),
		"membershipPlanId": r.FormValue("membershipPlanId"),
	}
	for field, v := range required {
		if v == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Kolom %s wajib diisi", field))
			return
		}
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

	member, err := h.members.Register(r.Context(), members.CreateInput{
		MemberType:       memberType,
		Name:             required["name"],
		Email:            required["email"],
		AhassNumber:      required["ahassNumber"],
		DealerCode:       r.FormValue("dealerCode"),
		DealerName:       required["dealerName"],
		DealerCity:       required["dealerCity"],
		PICPhoneNumber:   required["picPhoneNumber"],
		MembershipPlanID: required["membershipPlanId"],
		TransferDate:     transferDate,
		TransferProofURL: proofURL,
	})
	if err != nil {
		h.respondDomainErr(w, err, "Gagal melakukan registrasi")
		return
	}

	registrationsTotal.Inc()
	h.notify.MemberRegistered(member.Name, member.MembershipPlanID)
	respondSuccess(w, http.StatusCreated,
		"Registrasi berhasil dikirim. Menunggu verifikasi admin.", member)
}

func filtersFromQuery(r *http.Request) members.Filters {
	q := r.URL.Query()
	f := members.Filters{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if f.Status == "" {
		f.Status = "all"
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	return f
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	page, err := h.members.List(r.Context(), filtersFromQuery(r))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data member")
		return
	}
	respondData(w, http.StatusOK, page)
}

func (h *Handler) exportMembersCSV(w http.ResponseWriter, r *http.Request) {
	f := filtersFromQuery(r)
	f.Page, f.Limit = 1, exportLimit

	page, err := h.members.List(r.Context(), f)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengekspor data")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="Awass_Members_%s.csv"`, time.Now().Format("2006-01-02")))
	_, _ = w.Write([]byte(members.RenderCSV(page.Data)))
}

func (h *Handler) exportMembersXLSX(w http.ResponseWriter, r *http.Request) {
	f := filtersFromQuery(r)
	f.Page, f.Limit = 1, exportLimit

	page, err := h.members.List(r.Context(), f)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengekspor data")
		return
	}

	book, err := members.RenderXLSX(page.Data)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengekspor data")
		return
	}
	defer func() { _ = book.Close() }()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="Awass_Members_%s.xlsx"`, time.Now().Format("2006-01-02")))
	if err := book.Write(w); err != nil {
		h.log.Error("xlsx export write failed", "err", err)
	}
}

type memberDetail struct {
	members.WithPlan
	Transactions []transactions.WithPlan `json:"transactions"`
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	member, err := h.members.GetByID(r.Context(), id)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data member")
		return
	}
	history, err := h.transactions.ListByMember(r.Context(), id)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengambil data member")
		return
	}
	respondData(w, http.StatusOK, memberDetail{WithPlan: *member, Transactions: history})
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name           *string `json:"name"`
		Email          *string `json:"email"`
		AhassNumber    *string `json:"ahassNumber"`
		DealerCode     *string `json:"dealerCode"`
		DealerName     *string `json:"dealerName"`
		DealerCity     *string `json:"dealerCity"`
		PICPhoneNumber *string `json:"picPhoneNumber"`
		Status         *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Body tidak valid")
		return
	}

	in := members.UpdateInput{
		Name:           body.Name,
		Email:          body.Email,
		AhassNumber:    body.AhassNumber,
		DealerCode:     body.DealerCode,
		DealerName:     body.DealerName,
		DealerCity:     body.DealerCity,
		PICPhoneNumber: body.PICPhoneNumber,
	}
	if body.Status != nil {
		s := members.Status(*body.Status)
		switch s {
		case members.StatusPending, members.StatusActive, members.StatusExpired, members.StatusRejected:
			in.Status = &s
		default:
			respondError(w, http.StatusBadRequest, "Status tidak valid")
			return
		}
	}

	member, err := h.members.UpdateProfile(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengubah data member")
		return
	}
	respondSuccess(w, http.StatusOK, "", member)
}

func (h *Handler) activateMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondDomainErr(w, err, "Gagal mengaktifkan member")
		return
	}
	respondSuccess(w, http.StatusOK, "Member berhasil diaktifkan", member)
}
