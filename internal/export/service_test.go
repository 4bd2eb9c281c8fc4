package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kritchasorn/lendger/internal/debt"
)

// Mock Repository
type mockRepo struct {
	listDebtsFunc func(ctx context.Context) ([]*debt.Debt, error)
}

func (m *mockRepo) ListDebts(ctx context.Context) ([]*debt.Debt, error) {
	if m.listDebtsFunc != nil {
		return m.listDebtsFunc(ctx)
	}

	return nil, nil
}

func (m *mockRepo) GetDebt(ctx context.Context, id uuid.UUID) (*debt.Debt, error) { return nil, nil }
func (m *mockRepo) CreateDebt(ctx context.Context, d *debt.Debt) error            { return nil }
func (m *mockRepo) UpdateDebt(ctx context.Context, d *debt.Debt) error            { return nil }
func (m *mockRepo) DeleteDebt(ctx context.Context, id uuid.UUID) error            { return nil }
func (m *mockRepo) RecordPayment(ctx context.Context, d *debt.Debt, p *debt.Payment) error {
	return nil
}

func TestService_Export(t *testing.T) {
	debtID := uuid.New()
	dueDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	createdDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	d := &debt.Debt{
		ID:              debtID,
		BorrowerName:    "Somchai",
		PrincipalAmount: decimal.NewFromInt(1000),
		InterestAmount:  decimal.NewFromInt(250),
		PaidPrincipal:   decimal.NewFromInt(400),
		PaidInterest:    decimal.NewFromInt(250),
		DueDate:         dueDate,
		CreatedDate:     createdDate,
		Payments: []*debt.Payment{
			{
				ID:                 uuid.New(),
				DebtID:             debtID,
				Date:               time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
				PrincipalPayment:   decimal.NewFromInt(400),
				InterestPayment:    decimal.NewFromInt(250),
				TotalPayment:       decimal.NewFromInt(650),
				RemainingPrincipal: decimal.NewFromInt(600),
			},
		},
	}

	repo := &mockRepo{
		listDebtsFunc: func(ctx context.Context) ([]*debt.Debt, error) {
			return []*debt.Debt{d}, nil
		},
	}

	svc := NewService(debt.NewService(repo))

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), debt.ListFilter{}, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}

	// Header + one debt row + one payment row.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	debtRow := records[1]
	if debtRow[0] != "debt" {
		t.Errorf("expected debt row, got %q", debtRow[0])
	}

	if debtRow[2] != "Somchai" {
		t.Errorf("expected borrower Somchai, got %q", debtRow[2])
	}

	if debtRow[8] != "600.00" {
		t.Errorf("expected remaining principal 600.00, got %q", debtRow[8])
	}

	if debtRow[12] != "partial" {
		t.Errorf("expected status partial, got %q", debtRow[12])
	}

	paymentRow := records[2]
	if paymentRow[0] != "payment" {
		t.Errorf("expected payment row, got %q", paymentRow[0])
	}

	if paymentRow[3] != "2025-05-15" {
		t.Errorf("expected payment date 2025-05-15, got %q", paymentRow[3])
	}

	if paymentRow[4] != "400.00" {
		t.Errorf("expected principal payment 400.00, got %q", paymentRow[4])
	}
}

func TestService_ExportEmpty(t *testing.T) {
	svc := NewService(debt.NewService(&mockRepo{}))

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), debt.ListFilter{}, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected header only, got %d records", len(records))
	}
}
