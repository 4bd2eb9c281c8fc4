package debt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kritchasorn/lendger/internal/debt"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/payments", h.listPayments)
}

func isValidationErr(err error) bool {
	return errors.Is(err, debt.ErrBorrowerRequired) ||
		errors.Is(err, debt.ErrDueDateMissing) ||
		errors.Is(err, debt.ErrDueDateRequired) ||
		errors.Is(err, debt.ErrNegativeAmount) ||
		errors.Is(err, debt.ErrEmptyPayment)
}

type createDebtRequest struct {
	BorrowerName    string          `json:"borrower_name"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	DueDate         string          `json:"due_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Create(r.Context(), debt.CreateParams{
		BorrowerName:    req.BorrowerName,
		PrincipalAmount: req.PrincipalAmount,
		InterestAmount:  req.InterestAmount,
		DueDate:         dueDate,
	})
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := debt.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		st := debt.Status(s)
		filter.Status = &st
	}

	if r.URL.Query().Get("hide_paid") == "true" {
		filter.HidePaid = true
	}

	debts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(debts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debt.ErrNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateDebtRequest struct {
	BorrowerName    *string          `json:"borrower_name,omitempty"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty"`
	DueDate         *string          `json:"due_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debt.ErrNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.BorrowerName != nil {
		d.BorrowerName = *req.BorrowerName
	}

	if req.PrincipalAmount != nil {
		d.PrincipalAmount = *req.PrincipalAmount
	}

	if req.InterestAmount != nil {
		d.InterestAmount = *req.InterestAmount
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			http.Error(w, "invalid due_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		d.DueDate = dueDate
	}

	if err := h.svc.Update(r.Context(), d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	PrincipalPayment decimal.Decimal `json:"principal_payment"`
	InterestPayment  decimal.Decimal `json:"interest_payment"`
	NewDueDate       *string         `json:"new_due_date,omitempty"`
}

type recordPaymentResponse struct {
	Debt    debtResponse    `json:"debt"`
	Payment paymentResponse `json:"payment"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := debt.RecordPaymentParams{
		Principal: req.PrincipalPayment,
		Interest:  req.InterestPayment,
	}

	if req.NewDueDate != nil {
		newDueDate, err := time.Parse(time.DateOnly, *req.NewDueDate)
		if err != nil {
			http.Error(w, "invalid new_due_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.NewDueDate = &newDueDate
	}

	d, p, err := h.svc.RecordPayment(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, debt.ErrNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := recordPaymentResponse{
		Debt:    toResponse(d),
		Payment: toPaymentResponse(p),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debt.ErrNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	payments := make([]paymentResponse, 0, len(d.Payments))
	for _, p := range d.Payments {
		payments = append(payments, toPaymentResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
