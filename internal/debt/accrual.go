package debt

import (
	"time"

	"github.com/shopspring/decimal"
)

// interestOnlyNote is attached to payments that credit interest without
// touching principal.
const interestOnlyNote = "interest-only payment - principal still outstanding"

// RemainingPrincipal returns the principal still owed, floored at zero.
func (d *Debt) RemainingPrincipal() decimal.Decimal {
	return decimal.Max(decimal.Zero, d.PrincipalAmount.Sub(d.PaidPrincipal))
}

// TotalInterestDue returns the interest owed over the debt's lifetime so far:
// the agreed flat fee plus one extra increment per interest-only cycle.
func (d *Debt) TotalInterestDue() decimal.Decimal {
	return d.InterestAmount.Mul(decimal.NewFromInt(int64(1 + d.InterestOnlyPayments)))
}

// RemainingInterest returns the interest still owed under the current cycle,
// floored at zero.
func (d *Debt) RemainingInterest() decimal.Decimal {
	return decimal.Max(decimal.Zero, d.TotalInterestDue().Sub(d.PaidInterest))
}

// TotalAmount returns the originally agreed total, principal plus the initial
// interest fee. Interest added by interest-only cycles is deliberately not
// included; after any rollover this undercounts the true amount owed. That
// matches the recorded agreement and is kept as-is (TotalInterestDue exposes
// the real figure).
func (d *Debt) TotalAmount() decimal.Decimal {
	return d.PrincipalAmount.Add(d.InterestAmount)
}

// Status derives the three-state payment status. Paid strictly means both
// remainders are exhausted; any credited amount short of that is Partial.
func (d *Debt) Status() Status {
	if d.RemainingPrincipal().Add(d.RemainingInterest()).IsZero() {
		return StatusPaid
	}

	if d.PaidPrincipal.IsPositive() || d.PaidInterest.IsPositive() {
		return StatusPartial
	}

	return StatusUnpaid
}

// IsOverdue reports whether today is past the due date. Dates compare
// calendar-day only; time of day is ignored.
func (d *Debt) IsOverdue(today time.Time) bool {
	return truncateDay(today).After(truncateDay(d.DueDate))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyPayment is the single stateful transition on a debt. It validates the
// amounts, updates the paid balances (and, for interest-only payments, the
// due date and rollover counter), appends the resulting Payment to the debt
// and returns it.
//
// A payment is interest-only iff principal == 0 and interest > 0. Such a
// payment requires newDueDate: the principal stays outstanding and the debt
// rolls into a new cycle, which adds one full interest increment on top of
// what will be owed next. The increment takes effect from the next
// computation of RemainingInterest, not in the clamp applied to this payment.
//
// Normal payments clamp both paid balances: excess principal is silently
// discarded against PrincipalAmount, excess interest against the
// pre-rollover TotalInterestDue.
func (d *Debt) ApplyPayment(principal, interest decimal.Decimal, date time.Time, newDueDate *time.Time) (*Payment, error) {
	if principal.IsNegative() || interest.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if principal.IsZero() && interest.IsZero() {
		return nil, ErrEmptyPayment
	}

	interestOnly := principal.IsZero() && interest.IsPositive()
	if interestOnly && newDueDate == nil {
		return nil, ErrDueDateRequired
	}

	p := &Payment{
		DebtID:           d.ID,
		Date:             truncateDay(date),
		PrincipalPayment: principal,
		InterestPayment:  interest,
		TotalPayment:     principal.Add(interest),
		// Frozen historical fact: unclamped, negative on overpayment.
		RemainingPrincipal: d.PrincipalAmount.Sub(d.PaidPrincipal.Add(principal)),
	}

	if interestOnly {
		d.PaidInterest = d.PaidInterest.Add(interest)
		d.InterestOnlyPayments++
		d.DueDate = truncateDay(*newDueDate)
		p.Notes = interestOnlyNote
	} else {
		d.PaidPrincipal = decimal.Min(d.PrincipalAmount, d.PaidPrincipal.Add(principal))
		// Clamp ceiling uses the current counter, one cycle behind after
		// any rollover. Kept faithful to the recorded accrual sequence.
		d.PaidInterest = decimal.Min(d.TotalInterestDue(), d.PaidInterest.Add(interest))
	}

	d.Payments = append(d.Payments, p)

	return p, nil
}
