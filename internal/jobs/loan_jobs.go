package jobs

import (
	"context"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
)

// MarkLateLoans flips pending loans whose due date has passed to late.
// It spans every owner; per-user sweeps run at session start instead.
func (jr *JobRunner) MarkLateLoans() {
	jr.runWithRecovery("MarkLateLoans", func() {
		ctx := context.Background()

		count, err := jr.loans.MarkLateLoans(ctx, "")
		if err != nil {
			logger.Error("Failed to mark late loans", "error", err)
			return
		}

		if count == 0 {
			logger.Info("No overdue loans found")
			return
		}
		logger.Info("Marked overdue loans as late", "count", count)
	})
}
