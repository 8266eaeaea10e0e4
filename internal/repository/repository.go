package repository

import (
	"context"
	"errors"
	"time"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
)

// ErrLoanNotFound is returned when a loan id does not resolve to a document.
var ErrLoanNotFound = errors.New("loan not found")

// LoanPatch is a partial update to a single loan document. Nil pointer
// fields are left untouched. The store distinguishes a null field from an
// absent one: restore writes deletedAt=null (so the active query, which
// filters on null, matches again), while clearing repaidAt removes the
// field outright.
type LoanPatch struct {
	BorrowerName *string
	Phone        *string // empty string stores null
	PhoneCountry *string // empty string stores null
	Amount       *float64
	Currency     *string
	TakenAt      *time.Time
	DueDate      *time.Time

	// OriginalDueDate is only ever written once, on the first extension.
	OriginalDueDate *time.Time
	// AppendExtension appends to the extension history without rewriting it.
	AppendExtension *domain.Extension

	Status   *domain.LoanStatus
	RepaidAt *time.Time
	// ClearRepaidAt removes the repaidAt field (field-deletion marker).
	ClearRepaidAt bool

	// PaymentHistory replaces the ledger wholesale when set.
	PaymentHistory *[]domain.PaymentEntry

	DeletedAt *time.Time
	// ClearDeletedAt writes deletedAt back to null (restore from trash).
	ClearDeletedAt bool
}

// IsEmpty reports whether the patch would write nothing.
func (p *LoanPatch) IsEmpty() bool {
	return p == nil || (p.BorrowerName == nil && p.Phone == nil && p.PhoneCountry == nil &&
		p.Amount == nil && p.Currency == nil && p.TakenAt == nil && p.DueDate == nil &&
		p.OriginalDueDate == nil && p.AppendExtension == nil && p.Status == nil &&
		p.RepaidAt == nil && !p.ClearRepaidAt && p.PaymentHistory == nil &&
		p.DeletedAt == nil && !p.ClearDeletedAt)
}

// LoanRepository is the store contract for loan documents. Watch methods
// deliver a complete snapshot on every change (not deltas); callers must
// replace their previous view wholesale and call the returned stop function
// when the viewing session ends.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	Update(ctx context.Context, id string, patch *LoanPatch) error
	Delete(ctx context.Context, id string) error

	// ListOverduePending fetches pending, non-trashed loans whose due date
	// is before asOf. An empty ownerUID spans all owners (sweep job).
	ListOverduePending(ctx context.Context, ownerUID string, asOf time.Time) ([]domain.Loan, error)
	// MarkLate sets status=late on the given loans in one batched write.
	MarkLate(ctx context.Context, ids []string) error

	WatchActive(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error)
	WatchTrash(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error)
}
