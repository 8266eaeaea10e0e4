package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/config"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/service"
)

type stubLoanService struct {
	service.LoanService

	calls  int
	owners []string
	count  int
	err    error
	panics bool
}

func (s *stubLoanService) MarkLateLoans(ctx context.Context, ownerUID string) (int, error) {
	s.calls++
	s.owners = append(s.owners, ownerUID)
	if s.panics {
		panic("boom")
	}
	return s.count, s.err
}

func TestMarkLateLoansJob(t *testing.T) {
	cfg := &config.Config{}

	t.Run("SweepsAllOwners", func(t *testing.T) {
		stub := &stubLoanService{count: 3}
		jr := NewJobRunner(stub, cfg)

		jr.MarkLateLoans()

		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, []string{""}, stub.owners)
	})

	t.Run("SwallowsErrors", func(t *testing.T) {
		stub := &stubLoanService{err: errors.New("store down")}
		jr := NewJobRunner(stub, cfg)

		assert.NotPanics(t, func() { jr.MarkLateLoans() })
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("RecoversFromPanic", func(t *testing.T) {
		stub := &stubLoanService{panics: true}
		jr := NewJobRunner(stub, cfg)

		assert.NotPanics(t, func() { jr.MarkLateLoans() })
	})
}
