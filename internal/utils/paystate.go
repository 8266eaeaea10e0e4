package utils

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
)

// PaymentState is the effective financial state of a single loan, derived
// from the full payment ledger at read time. It is the counterpart to the
// persisted status field: the stored status is a write-time snapshot, the
// calculator always reflects accumulated partials.
type PaymentState struct {
	TotalPaid         float64
	Remaining         float64
	IsEffectivelyPaid bool
	EffectivePaidAt   *time.Time
	// OnTimeVsLate is LoanStatusOnTime or LoanStatusLate when the loan is
	// effectively paid and both a settlement date and a due date exist.
	// Empty otherwise; a classification is never fabricated.
	OnTimeVsLate domain.LoanStatus
}

// CalculatePaymentState computes the effective state of one loan without
// mutating it. A set repaidAt is authoritative: the loan counts as 100%
// paid regardless of what the ledger sums to. Otherwise partial and
// adjustment entries are summed and capped at the principal.
func CalculatePaymentState(loan *domain.Loan) PaymentState {
	if loan == nil {
		return PaymentState{}
	}

	amount := decimal.NewFromFloat(loan.Amount)

	var ledgerSum decimal.Decimal
	var latestPaidAt *time.Time
	for _, entry := range loan.PaymentHistory {
		if entry.Type != domain.PaymentTypePartial && entry.Type != domain.PaymentTypeAdjustment {
			continue
		}
		ledgerSum = ledgerSum.Add(decimal.NewFromFloat(entry.Amount))
		if !entry.PaidAt.IsZero() && (latestPaidAt == nil || entry.PaidAt.After(*latestPaidAt)) {
			paidAt := entry.PaidAt
			latestPaidAt = &paidAt
		}
	}

	totalPaid := decimal.Min(ledgerSum, amount)
	if loan.RepaidAt != nil {
		totalPaid = amount
	}
	remaining := amount.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	effectivePaidAt := loan.RepaidAt
	if effectivePaidAt == nil {
		effectivePaidAt = latestPaidAt
	}
	isPaid := loan.RepaidAt != nil || remaining.IsZero()

	var classification domain.LoanStatus
	if isPaid && effectivePaidAt != nil && !loan.DueDate.IsZero() {
		// Settlement classification uses full timestamps, due date inclusive.
		if !effectivePaidAt.After(loan.DueDate) {
			classification = domain.LoanStatusOnTime
		} else {
			classification = domain.LoanStatusLate
		}
	}

	return PaymentState{
		TotalPaid:         totalPaid.InexactFloat64(),
		Remaining:         remaining.InexactFloat64(),
		IsEffectivelyPaid: isPaid,
		EffectivePaidAt:   effectivePaidAt,
		OnTimeVsLate:      classification,
	}
}
