package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kritchasorn/lendger/internal/debt"
)

type debtResponse struct {
	ID                   uuid.UUID         `json:"id"`
	BorrowerName         string            `json:"borrower_name"`
	PrincipalAmount      decimal.Decimal   `json:"principal_amount"`
	InterestAmount       decimal.Decimal   `json:"interest_amount"`
	PaidPrincipal        decimal.Decimal   `json:"paid_principal"`
	PaidInterest         decimal.Decimal   `json:"paid_interest"`
	DueDate              string            `json:"due_date"`
	CreatedDate          string            `json:"created_date"`
	InterestOnlyPayments int               `json:"interest_only_payments"`
	RemainingPrincipal   decimal.Decimal   `json:"remaining_principal"`
	RemainingInterest    decimal.Decimal   `json:"remaining_interest"`
	TotalInterestDue     decimal.Decimal   `json:"total_interest_due"`
	TotalAmount          decimal.Decimal   `json:"total_amount"`
	Status               debt.Status       `json:"status"`
	Overdue              bool              `json:"overdue"`
	Payments             []paymentResponse `json:"payments"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            *time.Time        `json:"updated_at,omitempty"`
}

type paymentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	DebtID             uuid.UUID       `json:"debt_id"`
	Date               string          `json:"date"`
	PrincipalPayment   decimal.Decimal `json:"principal_payment"`
	InterestPayment    decimal.Decimal `json:"interest_payment"`
	TotalPayment       decimal.Decimal `json:"total_payment"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

func toResponse(d *debt.Debt) debtResponse {
	resp := debtResponse{
		ID:                   d.ID,
		BorrowerName:         d.BorrowerName,
		PrincipalAmount:      d.PrincipalAmount,
		InterestAmount:       d.InterestAmount,
		PaidPrincipal:        d.PaidPrincipal,
		PaidInterest:         d.PaidInterest,
		DueDate:              d.DueDate.Format(time.DateOnly),
		CreatedDate:          d.CreatedDate.Format(time.DateOnly),
		InterestOnlyPayments: d.InterestOnlyPayments,
		RemainingPrincipal:   d.RemainingPrincipal(),
		RemainingInterest:    d.RemainingInterest(),
		TotalInterestDue:     d.TotalInterestDue(),
		TotalAmount:          d.TotalAmount(),
		Status:               d.Status(),
		Overdue:              d.IsOverdue(time.Now()),
		Payments:             make([]paymentResponse, 0, len(d.Payments)),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}

	for _, p := range d.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}

	return resp
}

func toPaymentResponse(p *debt.Payment) paymentResponse {
	return paymentResponse{
		ID:                 p.ID,
		DebtID:             p.DebtID,
		Date:               p.Date.Format(time.DateOnly),
		PrincipalPayment:   p.PrincipalPayment,
		InterestPayment:    p.InterestPayment,
		TotalPayment:       p.TotalPayment,
		RemainingPrincipal: p.RemainingPrincipal,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
	}
}

func toResponseList(debts []*debt.Debt) []debtResponse {
	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toResponse(d)
	}

	return resp
}
