package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kritchasorn/lendger/internal/debt"
)

// Service writes the debt ledger as CSV: one row per debt followed by one
// row per payment, so the full repayment history survives the export.
type Service struct {
	debts *debt.Service
}

func NewService(debtService *debt.Service) *Service {
	return &Service{debts: debtService}
}

var header = []string{
	"record_type", "debt_id", "borrower_name", "date",
	"principal", "interest", "paid_principal", "paid_interest",
	"remaining_principal", "remaining_interest", "interest_only_payments",
	"due_date", "status", "notes",
}

// Export writes all debts matching the filter to w.
func (s *Service) Export(ctx context.Context, filter debt.ListFilter, w io.Writer) error {
	debts, err := s.debts.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing debts: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, d := range debts {
		row := []string{
			"debt",
			d.ID.String(),
			d.BorrowerName,
			d.CreatedDate.Format(time.DateOnly),
			d.PrincipalAmount.StringFixed(2),
			d.InterestAmount.StringFixed(2),
			d.PaidPrincipal.StringFixed(2),
			d.PaidInterest.StringFixed(2),
			d.RemainingPrincipal().StringFixed(2),
			d.RemainingInterest().StringFixed(2),
			fmt.Sprintf("%d", d.InterestOnlyPayments),
			d.DueDate.Format(time.DateOnly),
			string(d.Status()),
			"",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing debt row: %w", err)
		}

		for _, p := range d.Payments {
			row := []string{
				"payment",
				d.ID.String(),
				d.BorrowerName,
				p.Date.Format(time.DateOnly),
				p.PrincipalPayment.StringFixed(2),
				p.InterestPayment.StringFixed(2),
				"",
				"",
				p.RemainingPrincipal.StringFixed(2),
				"",
				"",
				"",
				"",
				p.Notes,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing payment row: %w", err)
			}
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// ExportToFile writes the ledger to path, creating or truncating the file.
func (s *Service) ExportToFile(ctx context.Context, filter debt.ListFilter, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := s.Export(ctx, filter, f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
