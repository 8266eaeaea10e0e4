package utils

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
)

// DueSoonWindowDays is how far ahead a due date counts as "due soon".
const DueSoonWindowDays = 7

// PortfolioTotals are the money aggregates across a set of loans.
type PortfolioTotals struct {
	Total     float64
	Paid      float64
	Remaining float64
}

// PortfolioSummary is the portfolio-wide view computed from an in-memory
// loan snapshot. Late and due-soon counts are disjoint: a loan lands in at
// most one of the two.
type PortfolioSummary struct {
	Totals          PortfolioTotals
	LateCount       int
	DueSoonCount    int
	ProgressPercent int
	NextDue         *domain.Loan
}

// Summarize computes totals, overdue/due-soon counts, repayment progress
// and the next loan due over all non-trashed loans, as of the given day.
func Summarize(loans []domain.Loan, today time.Time) PortfolioSummary {
	today = DateOnly(today)
	horizon := today.AddDate(0, 0, DueSoonWindowDays)

	var total, paid, remaining decimal.Decimal
	summary := PortfolioSummary{}

	for i := range loans {
		loan := &loans[i]
		if loan.IsTrashed() {
			continue
		}
		state := CalculatePaymentState(loan)
		total = total.Add(decimal.NewFromFloat(loan.Amount))
		paid = paid.Add(decimal.NewFromFloat(state.TotalPaid))
		remaining = remaining.Add(decimal.NewFromFloat(state.Remaining))

		if state.IsEffectivelyPaid {
			continue
		}
		dueOnly := DateOnly(loan.DueDate)
		switch {
		case loan.DueDate.IsZero():
			// No due date, nothing to classify.
		case dueOnly.Before(today) || loan.Status == domain.LoanStatusLate:
			summary.LateCount++
		case !dueOnly.After(horizon):
			summary.DueSoonCount++
		}
		if !loan.DueDate.IsZero() &&
			(summary.NextDue == nil || loan.DueDate.Before(summary.NextDue.DueDate)) {
			summary.NextDue = loan
		}
	}

	summary.Totals = PortfolioTotals{
		Total:     total.InexactFloat64(),
		Paid:      paid.InexactFloat64(),
		Remaining: remaining.InexactFloat64(),
	}
	summary.ProgressPercent = ProgressPercent(summary.Totals.Paid, summary.Totals.Total)
	return summary
}

// ProgressPercent is round(100*paid/total) clamped to [0,100], and 0 for an
// empty portfolio.
func ProgressPercent(paid, total float64) int {
	if total == 0 {
		return 0
	}
	pct := int(math.Round(100 * paid / total))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// EffectiveDisplayStatus is the status a loan presents as: a pending loan
// whose due date has passed displays as late even before the lateness sweep
// has written anything.
func EffectiveDisplayStatus(loan *domain.Loan, today time.Time) domain.LoanStatus {
	if loan.Status == domain.LoanStatusPending &&
		!loan.DueDate.IsZero() && DateOnly(loan.DueDate).Before(DateOnly(today)) {
		return domain.LoanStatusLate
	}
	return loan.Status
}

// Loan list filters.
const (
	FilterAll     = "all"
	FilterPending = "pending"
	FilterLate    = "late"
	FilterOnTime  = "on-time"
	FilterPaid    = "paid"
)

// FilterLoans returns the loans matching a list filter. "late" includes
// pending loans that are past due; "paid" means the stored status has
// reached a terminal value.
func FilterLoans(loans []domain.Loan, filter string, today time.Time) []domain.Loan {
	filter = strings.ToLower(filter)
	if filter == "" || filter == FilterAll {
		return loans
	}
	var out []domain.Loan
	for _, loan := range loans {
		switch filter {
		case FilterPending:
			if loan.Status == domain.LoanStatusPending {
				out = append(out, loan)
			}
		case FilterLate:
			if loan.Status == domain.LoanStatusLate ||
				EffectiveDisplayStatus(&loan, today) == domain.LoanStatusLate {
				out = append(out, loan)
			}
		case FilterOnTime:
			if loan.Status == domain.LoanStatusOnTime {
				out = append(out, loan)
			}
		case FilterPaid:
			if loan.Status == domain.LoanStatusOnTime || loan.Status == domain.LoanStatusLate {
				out = append(out, loan)
			}
		}
	}
	return out
}

// SearchLoans matches borrower name (case-insensitive substring) or phone
// (substring).
func SearchLoans(loans []domain.Loan, term string) []domain.Loan {
	if term == "" {
		return loans
	}
	lower := strings.ToLower(term)
	var out []domain.Loan
	for _, loan := range loans {
		if strings.Contains(strings.ToLower(loan.BorrowerName), lower) ||
			(loan.Phone != "" && strings.Contains(loan.Phone, term)) {
			out = append(out, loan)
		}
	}
	return out
}

// SortByCreatedDesc orders a snapshot newest first, the default list order.
func SortByCreatedDesc(loans []domain.Loan) {
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].CreatedAt.After(loans[j].CreatedAt)
	})
}

// Paginate returns the given 1-based page of loans.
func Paginate(loans []domain.Loan, page, perPage int) []domain.Loan {
	if perPage <= 0 || page <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(loans) {
		return nil
	}
	end := start + perPage
	if end > len(loans) {
		end = len(loans)
	}
	return loans[start:end]
}
