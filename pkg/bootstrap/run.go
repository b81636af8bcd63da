package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dd0wney/pgbootstrap/pkg/console"
	"github.com/dd0wney/pgbootstrap/pkg/env"
	"github.com/dd0wney/pgbootstrap/pkg/logging"
	"github.com/dd0wney/pgbootstrap/pkg/metrics"
	"github.com/dd0wney/pgbootstrap/pkg/pgadmin"
	"github.com/dd0wney/pgbootstrap/pkg/pgconf"
	"github.com/dd0wney/pgbootstrap/pkg/repmgr"
)

// Exit codes for the CLI entry points.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Deps are the execute-mode collaborators. Simulate runs never touch them.
type Deps struct {
	Admin     pgadmin.Admin
	Registrar Registrar
	Owner     Owner
}

// Options configures a run. Zero values pick sensible production defaults;
// tests override the seams.
type Options struct {
	Mode                Mode
	TuningOverridesPath string
	// SkipConfirm suppresses the interactive prompt (the --yes flag)
	SkipConfirm bool

	Stdin  io.Reader
	Stdout io.Writer
	Logger logging.Logger

	// Loader resolves the environment context; nil uses the real process
	// environment
	Loader *env.Loader
	// NewDeps builds the execute-mode collaborators; nil builds the real
	// ones (pgx admin, repmgr subprocess client, service-account owner)
	NewDeps func(envctx *env.Context, logger logging.Logger) (*Deps, error)
}

func (o *Options) fillDefaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logging.NewDefaultLogger()
	}
	if o.Loader == nil {
		o.Loader = env.NewLoader()
	}
	if o.NewDeps == nil {
		o.NewDeps = newRuntimeDeps
	}
}

// newRuntimeDeps wires the production collaborators.
func newRuntimeDeps(envctx *env.Context, logger logging.Logger) (*Deps, error) {
	account, err := repmgr.LookupServiceAccount(envctx.ServiceUser)
	if err != nil {
		return nil, err
	}
	connString := fmt.Sprintf("host=%s port=%d user=%s dbname=postgres",
		envctx.Host, envctx.Port, envctx.ServiceUser)
	runner := &repmgr.ExecRunner{Account: account}
	client := repmgr.NewClient(runner, envctx.RepmgrPath, envctx.RegistrationConfPath, logger)
	return &Deps{
		Admin:     pgadmin.NewPGAdmin(connString),
		Registrar: client,
		Owner:     account,
	}, nil
}

// Run is the whole workflow for one role: load and validate the
// environment, gate on preconditions, build the plan, confirm, walk the
// plan, and report. It returns the process exit code.
func Run(ctx context.Context, role env.NodeRole, opts Options) int {
	opts.fillDefaults()

	logger := opts.Logger.With(
		logging.RunID(uuid.NewString()),
		logging.Role(string(role)),
		logging.Mode(opts.Mode.String()),
	)

	envctx, err := opts.Loader.Load(role)
	if err != nil {
		logger.Error("environment context invalid", logging.Error(err))
		return ExitFailure
	}
	logger.Info("environment context resolved",
		logging.Path(envctx.DataDirectory),
		logging.NodeID(role.NodeID()),
	)

	// Both modes refuse to proceed on an already-configured node.
	if err := CheckPreconditions(envctx); err != nil {
		logger.Error("precondition check failed", logging.Error(err))
		return ExitFailure
	}

	tuning := pgconf.DefaultTuning()
	if opts.TuningOverridesPath != "" {
		overrides, err := pgconf.LoadOverrides(opts.TuningOverridesPath)
		if err != nil {
			logger.Error("tuning overrides invalid", logging.Error(err))
			return ExitFailure
		}
		tuning = tuning.Merge(overrides)
	}

	deps := &Deps{Owner: NopOwner{}}
	if opts.Mode == ModeExecute {
		deps, err = opts.NewDeps(envctx, logger)
		if err != nil {
			logger.Error("dependency setup failed", logging.Error(err))
			return ExitFailure
		}
		defer deps.Admin.Close(ctx)
	}

	planner := &Planner{
		Env:       envctx,
		Tuning:    tuning,
		Admin:     deps.Admin,
		Registrar: deps.Registrar,
		Owner:     deps.Owner,
	}
	steps := planner.Plan()

	items := make([]console.PlanItem, len(steps))
	for i, step := range steps {
		items[i] = console.PlanItem{Description: step.Description, Detail: step.Detail}
	}
	heading := fmt.Sprintf("pgbootstrap %s plan (%s, %d steps)", role, opts.Mode, len(steps))
	console.RenderPlan(opts.Stdout, heading, items)

	if opts.Mode == ModeExecute && !opts.SkipConfirm {
		proceed, err := console.Confirm(opts.Stdin, opts.Stdout,
			fmt.Sprintf("Configure this node as %s?", role))
		if err != nil {
			logger.Error("confirmation failed", logging.Error(err))
			return ExitFailure
		}
		if !proceed {
			logger.Info("declined by operator, nothing done")
			return ExitOK
		}
	}

	report := NewExecutor(logger).Run(ctx, steps, opts.Mode)
	console.RenderOutcome(opts.Stdout, report.Succeeded, report.Skipped, report.Failed)

	if opts.Mode == ModeExecute && envctx.TextfileDir != "" {
		job := metrics.NewJobMetrics(string(role))
		job.Record(len(report.Succeeded), len(report.Skipped), report.Err != nil)
		if err := job.WriteTextfile(envctx.TextfileDir); err != nil {
			// Metrics are best-effort; never fail a provisioning run on them.
			logger.Warn("metrics textfile not written", logging.Error(err))
		}
	}

	if report.Err != nil {
		logger.Error("run aborted",
			logging.Step(report.Failed),
			logging.Error(report.Err),
			logging.Int("steps_succeeded", len(report.Succeeded)),
		)
		return ExitFailure
	}

	logger.Info("run complete",
		logging.Int("steps_succeeded", len(report.Succeeded)),
		logging.Int("steps_skipped", len(report.Skipped)),
		logging.Int("steps_planned", len(report.Planned)),
	)
	return ExitOK
}
