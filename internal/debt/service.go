package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	ListDebts(ctx context.Context) ([]*Debt, error)
	GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error)
	CreateDebt(ctx context.Context, d *Debt) error
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, id uuid.UUID) error

	// RecordPayment persists the updated debt balances and the new payment
	// row in a single transaction.
	RecordPayment(ctx context.Context, d *Debt, p *Payment) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	BorrowerName    string
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	DueDate         time.Time
}

type RecordPaymentParams struct {
	Principal  decimal.Decimal
	Interest   decimal.Decimal
	NewDueDate *time.Time
}

type ListFilter struct {
	Status   *Status
	HidePaid bool
}

// List returns all debts with payments attached. Status filtering happens
// here rather than in SQL because status is derived, not stored.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Debt, error) {
	debts, err := s.repo.ListDebts(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Status == nil && !filter.HidePaid {
		return debts, nil
	}

	filtered := make([]*Debt, 0, len(debts))

	for _, d := range debts {
		status := d.Status()

		if filter.HidePaid && status == StatusPaid {
			continue
		}

		if filter.Status != nil && status != *filter.Status {
			continue
		}

		filtered = append(filtered, d)
	}

	return filtered, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Debt, error) {
	if params.BorrowerName == "" {
		return nil, ErrBorrowerRequired
	}

	if params.PrincipalAmount.IsNegative() || params.InterestAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if params.DueDate.IsZero() {
		return nil, ErrDueDateMissing
	}

	d := &Debt{
		BorrowerName:    params.BorrowerName,
		PrincipalAmount: params.PrincipalAmount,
		InterestAmount:  params.InterestAmount,
		PaidPrincipal:   decimal.Zero,
		PaidInterest:    decimal.Zero,
		DueDate:         truncateDay(params.DueDate),
		CreatedDate:     truncateDay(s.now()),
	}

	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Debt, error) {
	return s.repo.GetDebt(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Debt) error {
	return s.repo.UpdateDebt(ctx, d)
}

// Delete removes the debt and, through cascade ownership, all of its
// payments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDebt(ctx, id)
}

// RecordPayment applies the accrual transition to the stored debt and
// persists the result. Validation failures surface before anything is
// written; the debt update and payment insert commit together.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, params RecordPaymentParams) (*Debt, *Payment, error) {
	d, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	p, err := d.ApplyPayment(params.Principal, params.Interest, s.now(), params.NewDueDate)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.RecordPayment(ctx, d, p); err != nil {
		return nil, nil, fmt.Errorf("recording payment: %w", err)
	}

	return d, p, nil
}
