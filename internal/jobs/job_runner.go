package jobs

import (
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/config"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	loans  service.LoanService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(loans service.LoanService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		loans:  loans,
		config: cfg,
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
