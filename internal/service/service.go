// Package service implements the loan lifecycle on top of the repository:
// creation, repayments, due-date extensions, trash handling, and the
// lateness sweep. Every mutating operation authenticates the caller's ID
// token and checks ownership of the target loan before touching the store.
package service

import (
	"context"
	"time"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
)

// CreateLoanInput carries the fields for a new loan record.
type CreateLoanInput struct {
	BorrowerName string    `validate:"required"`
	Phone        string    `validate:"omitempty"`
	PhoneCountry string    `validate:"omitempty,iso3166_1_alpha2"`
	Amount       float64   `validate:"required,gt=0"`
	Currency     string    `validate:"required,iso4217"`
	TakenAt      time.Time `validate:"required"`
	DueDate      time.Time `validate:"required"`
}

// EditLoanInput carries the editable fields of an existing loan. TotalPaid
// rewrites the loan's paid figure; the service reconciles the ledger and
// settlement state around the new value.
type EditLoanInput struct {
	BorrowerName string    `validate:"required"`
	Phone        string    `validate:"omitempty"`
	PhoneCountry string    `validate:"omitempty,iso3166_1_alpha2"`
	Amount       float64   `validate:"required,gt=0"`
	Currency     string    `validate:"required,iso4217"`
	TakenAt      time.Time `validate:"required"`
	DueDate      time.Time `validate:"required"`
	TotalPaid    float64   `validate:"gte=0"`
}

// LoanService is the application-facing API. Every method that targets a
// specific loan enforces that the authenticated user owns it.
type LoanService interface {
	// Authenticate verifies an ID token and returns the caller's uid.
	Authenticate(ctx context.Context, idToken string) (string, error)

	Create(ctx context.Context, ownerUID string, input CreateLoanInput) (*domain.Loan, error)
	Get(ctx context.Context, ownerUID, loanID string) (*domain.Loan, error)
	Edit(ctx context.Context, ownerUID, loanID string, input EditLoanInput) (*domain.Loan, error)

	// RecordPartialPayment appends a partial entry; a payment that exactly
	// clears the remaining balance settles the loan.
	RecordPartialPayment(ctx context.Context, ownerUID, loanID string, amount float64, paidAt time.Time) (*domain.Loan, error)
	// RecordFullPayment settles the loan outright at the given time.
	RecordFullPayment(ctx context.Context, ownerUID, loanID string, paidAt time.Time) (*domain.Loan, error)

	// ExtendDueDate moves the due date forward, preserving the pre-extension
	// due date as originalDueDate on the first extension only.
	ExtendDueDate(ctx context.Context, ownerUID, loanID string, newDueDate time.Time) (*domain.Loan, error)

	Trash(ctx context.Context, ownerUID, loanID string) error
	Restore(ctx context.Context, ownerUID, loanID string) error
	PermanentlyDelete(ctx context.Context, ownerUID, loanID string) error

	// MarkLateLoans flips overdue pending loans to late and returns how many
	// were updated. An empty ownerUID sweeps every owner.
	MarkLateLoans(ctx context.Context, ownerUID string) (int, error)

	WatchActive(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error)
	WatchTrash(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error)
}
