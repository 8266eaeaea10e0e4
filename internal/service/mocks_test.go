package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/domain"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository"
)

type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) Update(ctx context.Context, id string, patch *repository.LoanPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLoanRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLoanRepo) ListOverduePending(ctx context.Context, ownerUID string, asOf time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, ownerUID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) MarkLate(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockLoanRepo) WatchActive(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	args := m.Called(ctx, ownerUID)
	ch, _ := args.Get(0).(<-chan []domain.Loan)
	stop, _ := args.Get(1).(func())
	return ch, stop, args.Error(2)
}

func (m *MockLoanRepo) WatchTrash(ctx context.Context, ownerUID string) (<-chan []domain.Loan, func(), error) {
	args := m.Called(ctx, ownerUID)
	ch, _ := args.Get(0).(<-chan []domain.Loan)
	stop, _ := args.Get(1).(func())
	return ch, stop, args.Error(2)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}
