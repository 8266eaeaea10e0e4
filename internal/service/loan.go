package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/auth"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/reference"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/utils"
)

var (
	// ErrNotAuthenticated is returned when no valid caller identity exists.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotOwner is returned when a caller targets another user's loan.
	ErrNotOwner = errors.New("loan belongs to a different user")
	// ErrInvalidAmount is returned for a non-positive payment amount.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrOverpayment is returned when a partial payment exceeds the
	// remaining balance.
	ErrOverpayment = errors.New("partial amount exceeds remaining balance")
	// ErrAlreadySettled is returned when a payment targets a settled loan.
	ErrAlreadySettled = errors.New("loan is already settled")
	// ErrMissingDueDate is returned when an extension carries no new date.
	ErrMissingDueDate = errors.New("a new due date is required")
)

type loanService struct {
	loans    repository.LoanRepository
	verifier auth.TokenVerifier
	validate *validator.Validate
}

// NewLoanService wires the repository and token verifier into the
// application service.
func NewLoanService(loans repository.LoanRepository, verifier auth.TokenVerifier) LoanService {
	return &loanService{
		loans:    loans,
		verifier: verifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *loanService) Authenticate(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", ErrNotAuthenticated
	}
	uid, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return uid, nil
}

// requireOwned fetches a loan and checks the caller owns it.
func (s *loanService) requireOwned(ctx context.Context, ownerUID, loanID string) (*domain.Loan, error) {
	if ownerUID == "" {
		return nil, ErrNotAuthenticated
	}
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.OwnerUID != ownerUID {
		return nil, ErrNotOwner
	}
	return loan, nil
}

func (s *loanService) Create(ctx context.Context, ownerUID string, input CreateLoanInput) (*domain.Loan, error) {
	if ownerUID == "" {
		return nil, ErrNotAuthenticated
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("validating loan input: %w", err)
	}
	country := reference.CountryByCode(input.PhoneCountry)
	if err := reference.ValidatePhone(country, input.Phone); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		OwnerUID:     ownerUID,
		BorrowerName: input.BorrowerName,
		Phone:        input.Phone,
		PhoneCountry: input.PhoneCountry,
		Amount:       input.Amount,
		Currency:     input.Currency,
		TakenAt:      input.TakenAt,
		DueDate:      input.DueDate,
		Status:       domain.LoanStatusPending,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info("loan created", "loan_id", loan.ID, "owner", ownerUID)
	return loan, nil
}

func (s *loanService) Get(ctx context.Context, ownerUID, loanID string) (*domain.Loan, error) {
	return s.requireOwned(ctx, ownerUID, loanID)
}

func (s *loanService) RecordPartialPayment(ctx context.Context, ownerUID, loanID string, amount float64, paidAt time.Time) (*domain.Loan, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	loan, err := s.requireOwned(ctx, ownerUID, loanID)
	if err != nil {
		return nil, err
	}
	state := utils.CalculatePaymentState(loan)
	if state.IsEffectivelyPaid {
		return nil, ErrAlreadySettled
	}
	if decimal.NewFromFloat(amount).GreaterThan(decimal.NewFromFloat(state.Remaining)) {
		return nil, ErrOverpayment
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	entry := domain.PaymentEntry{
		ID:     uuid.NewString(),
		Type:   domain.PaymentTypePartial,
		Amount: amount,
		PaidAt: paidAt,
	}
	history := append(append([]domain.PaymentEntry{}, loan.PaymentHistory...), entry)

	patch := &repository.LoanPatch{PaymentHistory: &history}
	settles := decimal.NewFromFloat(amount).Equal(decimal.NewFromFloat(state.Remaining))
	if settles {
		status := settlementStatus(paidAt, loan.DueDate)
		patch.Status = &status
		patch.RepaidAt = &paidAt
	}
	if err := s.loans.Update(ctx, loanID, patch); err != nil {
		return nil, err
	}

	loan.PaymentHistory = history
	if settles {
		loan.Status = *patch.Status
		loan.RepaidAt = &paidAt
	}
	logger.Info("partial payment recorded",
		"loan_id", loanID, "amount", amount, "settled", settles)
	return loan, nil
}

func (s *loanService) RecordFullPayment(ctx context.Context, ownerUID, loanID string, paidAt time.Time) (*domain.Loan, error) {
	loan, err := s.requireOwned(ctx, ownerUID, loanID)
	if err != nil {
		return nil, err
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	// Marking an already settled loan overwrites the settlement date and
	// reclassifies against the due date.
	status := settlementStatus(paidAt, loan.DueDate)
	patch := &repository.LoanPatch{Status: &status, RepaidAt: &paidAt}
	if err := s.loans.Update(ctx, loanID, patch); err != nil {
		return nil, err
	}

	loan.Status = status
	loan.RepaidAt = &paidAt
	logger.Info("loan settled", "loan_id", loanID, "status", status)
	return loan, nil
}

func (s *loanService) ExtendDueDate(ctx context.Context, ownerUID, loanID string, newDueDate time.Time) (*domain.Loan, error) {
	if newDueDate.IsZero() {
		return nil, ErrMissingDueDate
	}
	loan, err := s.requireOwned(ctx, ownerUID, loanID)
	if err != nil {
		return nil, err
	}

	extension := domain.Extension{
		ExtendedFrom: loan.DueDate,
		ExtendedTo:   newDueDate,
		ExtendedAt:   time.Now(),
	}
	patch := &repository.LoanPatch{
		DueDate:         &newDueDate,
		AppendExtension: &extension,
	}
	// The pre-extension due date is captured once; later extensions keep it.
	if loan.OriginalDueDate == nil {
		original := loan.DueDate
		patch.OriginalDueDate = &original
	}
	if err := s.loans.Update(ctx, loanID, patch); err != nil {
		return nil, err
	}

	if loan.OriginalDueDate == nil {
		loan.OriginalDueDate = patch.OriginalDueDate
	}
	loan.DueDate = newDueDate
	loan.ExtensionHistory = append(loan.ExtensionHistory, extension)
	logger.Info("due date extended",
		"loan_id", loanID, "from", extension.ExtendedFrom, "to", newDueDate)
	return loan, nil
}

func (s *loanService) Edit(ctx context.Context, ownerUID, loanID string, input EditLoanInput) (*domain.Loan, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("validating loan input: %w", err)
	}
	country := reference.CountryByCode(input.PhoneCountry)
	if err := reference.ValidatePhone(country, input.Phone); err != nil {
		return nil, err
	}
	loan, err := s.requireOwned(ctx, ownerUID, loanID)
	if err != nil {
		return nil, err
	}

	paid := decimal.NewFromFloat(input.TotalPaid)
	amount := decimal.NewFromFloat(input.Amount)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	if paid.GreaterThan(amount) {
		paid = amount
	}
	remaining := amount.Sub(paid)

	patch := &repository.LoanPatch{
		BorrowerName: &input.BorrowerName,
		Phone:        &input.Phone,
		PhoneCountry: &input.PhoneCountry,
		Amount:       &input.Amount,
		Currency:     &input.Currency,
		TakenAt:      &input.TakenAt,
		DueDate:      &input.DueDate,
	}

	switch {
	case remaining.IsZero():
		// Fully paid after the edit. An existing settlement date is kept so
		// editing a settled loan cannot silently reclassify it.
		repaidAt := time.Now()
		if loan.RepaidAt != nil {
			repaidAt = *loan.RepaidAt
		}
		status := settlementStatus(repaidAt, input.DueDate)
		history := domain.ReplaceAdjustment(loan.PaymentHistory, domain.PaymentEntry{
			ID:     uuid.NewString(),
			Amount: paid.InexactFloat64(),
			PaidAt: repaidAt,
		})
		patch.Status = &status
		patch.RepaidAt = &repaidAt
		patch.PaymentHistory = &history
	case paid.IsPositive():
		status := domain.LoanStatusPending
		history := domain.ReplaceAdjustment(loan.PaymentHistory, domain.PaymentEntry{
			ID:     uuid.NewString(),
			Amount: paid.InexactFloat64(),
			PaidAt: time.Now(),
		})
		patch.Status = &status
		patch.ClearRepaidAt = true
		patch.PaymentHistory = &history
	default:
		status := domain.LoanStatusPending
		empty := []domain.PaymentEntry{}
		patch.Status = &status
		patch.ClearRepaidAt = true
		patch.PaymentHistory = &empty
	}

	if err := s.loans.Update(ctx, loanID, patch); err != nil {
		return nil, err
	}
	logger.Info("loan edited", "loan_id", loanID)
	return s.loans.GetByID(ctx, loanID)
}

func (s *loanService) Trash(ctx context.Context, ownerUID, loanID string) error {
	if _, err := s.requireOwned(ctx, ownerUID, loanID); err != nil {
		return err
	}
	now := time.Now()
	if err := s.loans.Update(ctx, loanID, &repository.LoanPatch{DeletedAt: &now}); err != nil {
		return err
	}
	logger.Info("loan moved to trash", "loan_id", loanID)
	return nil
}

func (s *loanService) Restore(ctx context.Context, ownerUID, loanID string) error {
	if _, err := s.requireOwned(ctx, ownerUID, loanID); err != nil {
		return err
	}
	if err := s.loans.Update(ctx, loanID, &repository.LoanPatch{ClearDeletedAt: true}); err != nil {
		return err
	}
	logger.Info("loan restored from trash", "loan_id", loanID)
	return nil
}

func (s *loanService) PermanentlyDelete(ctx context.Context, ownerUID, loanID string) error {
	if _, err := s.requireOwned(ctx, ownerUID, loanID); err != nil {
		return err
	}
	if err := s.loans.Delete(ctx, loanID); err != nil {
		return err
	}
	logger.Info("loan permanently deleted", "loan_id", loanID)
	return nil
}

func (s *loanService) MarkLateLoans(ctx context.Context, ownerUID string) (int, error) {
	// Overdue means the due date falls strictly before today, date-only.
	overdue, err := s.loans.ListOverduePending(ctx, ownerUID, utils.Today())
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(overdue))
	for i := range overdue {
		ids = append(ids, overdue[i].ID)
	}
	if err := s.loans.MarkLate(ctx, ids); err != nil {
		return 0, err
	}
	logger.Info("overdue loans marked late", "count", len(ids), "owner", ownerUID)
	return len(ids), nil
}

func (s *loanService) WatchActive(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	if ownerUID == "" {
		return nil, nil, ErrNotAuthenticated
	}
	return s.loans.WatchActive(ctx, ownerUID)
}

func (s *loanService) WatchTrash(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	if ownerUID == "" {
		return nil, nil, ErrNotAuthenticated
	}
	return s.loans.WatchTrash(ctx, ownerUID)
}

// settlementStatus classifies a settlement against the due date using the
// full timestamps, due date inclusive.
func settlementStatus(paidAt, dueDate time.Time) domain.LoanStatus {
	if !paidAt.After(dueDate) {
		return domain.LoanStatusOnTime
	}
	return domain.LoanStatusLate
}
