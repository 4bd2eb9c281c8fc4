package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kritchasorn/lendger/internal/debt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDebtColumns = `
	id, borrower_name, principal_amount, interest_amount, paid_principal, paid_interest,
	due_date, created_date, interest_only_payments, created_at, updated_at
`

const selectPaymentColumns = `
	id, debt_id, date, principal_payment, interest_payment, total_payment,
	remaining_principal, notes, created_at
`

// scanDebt reads a debt row. Expected column order: selectDebtColumns.
// Money columns are numeric(12,2); they scan through strings into decimals.
func scanDebt(s scanner) (*debt.Debt, error) {
	var d debt.Debt

	var principal, interest, paidPrincipal, paidInterest string

	if err := s.Scan(
		&d.ID, &d.BorrowerName, &principal, &interest, &paidPrincipal, &paidInterest,
		&d.DueDate, &d.CreatedDate, &d.InterestOnlyPayments, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error

	if d.PrincipalAmount, err = decimal.NewFromString(principal); err != nil {
		return nil, fmt.Errorf("parsing principal_amount: %w", err)
	}

	if d.InterestAmount, err = decimal.NewFromString(interest); err != nil {
		return nil, fmt.Errorf("parsing interest_amount: %w", err)
	}

	if d.PaidPrincipal, err = decimal.NewFromString(paidPrincipal); err != nil {
		return nil, fmt.Errorf("parsing paid_principal: %w", err)
	}

	if d.PaidInterest, err = decimal.NewFromString(paidInterest); err != nil {
		return nil, fmt.Errorf("parsing paid_interest: %w", err)
	}

	return &d, nil
}

func scanPayment(s scanner) (*debt.Payment, error) {
	var p debt.Payment

	var principal, interest, total, remaining string

	var notes sql.NullString

	if err := s.Scan(
		&p.ID, &p.DebtID, &p.Date, &principal, &interest, &total,
		&remaining, &notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error

	if p.PrincipalPayment, err = decimal.NewFromString(principal); err != nil {
		return nil, fmt.Errorf("parsing principal_payment: %w", err)
	}

	if p.InterestPayment, err = decimal.NewFromString(interest); err != nil {
		return nil, fmt.Errorf("parsing interest_payment: %w", err)
	}

	if p.TotalPayment, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parsing total_payment: %w", err)
	}

	if p.RemainingPrincipal, err = decimal.NewFromString(remaining); err != nil {
		return nil, fmt.Errorf("parsing remaining_principal: %w", err)
	}

	p.Notes = notes.String

	return &p, nil
}

// ListDebts returns every debt newest-first with its payments attached in
// chronological order.
func (s *Store) ListDebts(ctx context.Context) ([]*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt

	byID := make(map[uuid.UUID]*debt.Debt)

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
		byID[d.ID] = d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	paymentQuery := `SELECT ` + selectPaymentColumns + `
		FROM payments
		ORDER BY created_at ASC`

	paymentRows, err := s.db.QueryContext(ctx, paymentQuery)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer paymentRows.Close()

	for paymentRows.Next() {
		p, err := scanPayment(paymentRows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		if d, ok := byID[p.DebtID]; ok {
			d.Payments = append(d.Payments, p)
		}
	}

	if err := paymentRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return debts, nil
}

func (s *Store) GetDebt(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts
		WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, debt.ErrNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	paymentQuery := `SELECT ` + selectPaymentColumns + `
		FROM payments
		WHERE debt_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, paymentQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		d.Payments = append(d.Payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (borrower_name, principal_amount, interest_amount, paid_principal, paid_interest,
			due_date, created_date, interest_only_payments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.BorrowerName,
		d.PrincipalAmount,
		d.InterestAmount,
		d.PaidPrincipal,
		d.PaidInterest,
		d.DueDate,
		d.CreatedDate,
		d.InterestOnlyPayments,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) UpdateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE debts
		SET borrower_name = $1, principal_amount = $2, interest_amount = $3, paid_principal = $4,
			paid_interest = $5, due_date = $6, interest_only_payments = $7, updated_at = NOW()
		WHERE id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		d.BorrowerName,
		d.PrincipalAmount,
		d.InterestAmount,
		d.PaidPrincipal,
		d.PaidInterest,
		d.DueDate,
		d.InterestOnlyPayments,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}

	return nil
}

// DeleteDebt removes the debt; the payments foreign key cascades, so no
// orphaned payment rows survive.
func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM debts WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	return nil
}

// RecordPayment writes the updated debt balances and inserts the payment row.
// Both writes are wrapped in a database transaction so a payment can never be
// recorded without its balance update, or vice versa.
func (s *Store) RecordPayment(ctx context.Context, d *debt.Debt, p *debt.Payment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	debtQuery := `
		UPDATE debts
		SET paid_principal = $1, paid_interest = $2, due_date = $3, interest_only_payments = $4, updated_at = NOW()
		WHERE id = $5
	`

	if _, err := dbTx.ExecContext(ctx, debtQuery,
		d.PaidPrincipal,
		d.PaidInterest,
		d.DueDate,
		d.InterestOnlyPayments,
		d.ID,
	); err != nil {
		return fmt.Errorf("updating debt balances: %w", err)
	}

	paymentQuery := `
		INSERT INTO payments (debt_id, date, principal_payment, interest_payment, total_payment, remaining_principal, notes)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at
	`

	if err := dbTx.QueryRowContext(ctx, paymentQuery,
		p.DebtID,
		p.Date,
		p.PrincipalPayment,
		p.InterestPayment,
		p.TotalPayment,
		p.RemainingPrincipal,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}
