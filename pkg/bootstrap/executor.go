package bootstrap

import (
	"context"

	"github.com/dd0wney/pgbootstrap/pkg/logging"
)

// Executor walks a plan in order, in either mode. Both modes visit the same
// Step values in the same order; only whether mutation happens differs.
type Executor struct {
	logger logging.Logger
}

// NewExecutor creates an executor. A nil logger is replaced with a no-op.
func NewExecutor(logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Executor{logger: logger}
}

// Run walks the steps. In simulate mode every step is reported and nothing
// is invoked, not even IsApplied. In execute mode a step whose IsApplied
// reports true is skipped; the first Apply failure stops the run
// immediately, with the failing step recorded in the report.
func (e *Executor) Run(ctx context.Context, steps []Step, mode Mode) *Report {
	report := &Report{}

	for _, step := range steps {
		if mode == ModeSimulate {
			e.logger.Info("would apply", logging.Step(step.Description))
			report.Planned = append(report.Planned, step.Description)
			continue
		}

		if step.IsApplied != nil {
			applied, err := step.IsApplied(ctx)
			if err != nil {
				report.Failed = step.Description
				report.Err = &StepApplyError{Step: step.Description, Cause: err}
				return report
			}
			if applied {
				e.logger.Info("already applied, skipping", logging.Step(step.Description))
				report.Skipped = append(report.Skipped, step.Description)
				continue
			}
		}

		if err := step.Apply(ctx); err != nil {
			e.logger.Error("step failed", logging.Step(step.Description), logging.Error(err))
			report.Failed = step.Description
			report.Err = &StepApplyError{Step: step.Description, Cause: err}
			return report
		}
		e.logger.Info("applied", logging.Step(step.Description))
		report.Succeeded = append(report.Succeeded, step.Description)
	}

	return report
}
