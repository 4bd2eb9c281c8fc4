package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritchasorn/lendger/internal/debt"
	"github.com/kritchasorn/lendger/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.exportCSV)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter := debt.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		st := debt.Status(s)
		filter.Status = &st
	}

	if r.URL.Query().Get("hide_paid") == "true" {
		filter.HidePaid = true
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="lendger.csv"`)

	if err := h.svc.Export(r.Context(), filter, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
