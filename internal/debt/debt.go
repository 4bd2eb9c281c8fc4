package debt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the derived payment state of a debt. It is never stored; it is
// recomputed from the paid amounts and the interest-only counter.
type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

var (
	ErrNotFound = errors.New("debt not found")

	// Validation errors. Nothing is written when one of these is returned.
	ErrBorrowerRequired = errors.New("borrower name is required")
	ErrDueDateMissing   = errors.New("due date is required")
	ErrDueDateRequired  = errors.New("new due date is required for an interest-only payment")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyPayment     = errors.New("payment must credit principal or interest")
)

// Debt represents money lent to a single borrower: a principal plus a flat
// interest fee agreed at creation. Paid amounts accumulate as payments are
// recorded; InterestOnlyPayments counts rollover cycles (see accrual.go).
type Debt struct {
	ID                   uuid.UUID
	BorrowerName         string
	PrincipalAmount      decimal.Decimal
	InterestAmount       decimal.Decimal
	PaidPrincipal        decimal.Decimal
	PaidInterest         decimal.Decimal
	DueDate              time.Time // date-only
	CreatedDate          time.Time // date-only
	InterestOnlyPayments int
	Payments             []*Payment // chronological
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Payment is one repayment event. It is written once and never mutated.
// RemainingPrincipal is the principal owed immediately after this payment,
// frozen at write time; unlike the live balance it is not clamped and can go
// negative when the payment overshot the principal.
type Payment struct {
	ID                 uuid.UUID
	DebtID             uuid.UUID
	Date               time.Time // date-only
	PrincipalPayment   decimal.Decimal
	InterestPayment    decimal.Decimal
	TotalPayment       decimal.Decimal
	RemainingPrincipal decimal.Decimal
	Notes              string
	CreatedAt          time.Time
}
