package jobs

import (
	"context"
	"log/slog"
	"time"

	"routeplanner/internal/core/application/usecases/commands"
	"routeplanner/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultRefineSchedule runs the refinement once a minute.
const DefaultRefineSchedule = "0 * * * * *"

// RefineRoundJob gives tours cut off by the solver time budget a second, longer try.
// Each run that improves at least one tour saves the round under a new ID.
type RefineRoundJob struct {
	handler  commands.RefineRoundCommandHandler
	schedule string
	budget   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRefineRoundJob creates the job. schedule is a six-field cron expression
// (seconds first); budget is the solver time limit of every refinement.
func NewRefineRoundJob(
	handler commands.RefineRoundCommandHandler,
	schedule string,
	budget time.Duration,
	logger *slog.Logger,
) *RefineRoundJob {
	return &RefineRoundJob{
		handler:  handler,
		schedule: schedule,
		budget:   budget,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "refine_round_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *RefineRoundJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refine round job started", "schedule", j.schedule, "budget", j.budget)
	return nil
}

// Run performs one refinement and returns how many tours were replaced.
func (j *RefineRoundJob) Run(ctx context.Context) int {
	cmd, err := commands.NewRefineRoundCommand(kernel.NewUUID(), j.budget)
	if err != nil {
		j.logger.ErrorContext(ctx, "Refine round job misconfigured", "error", err)
		return 0
	}

	replaced, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Refine round job failed", "error", err)
	}
	if replaced > 0 {
		j.logger.InfoContext(ctx, "Tours refined", "round", cmd.RoundID().String(), "replaced", replaced)
	}

	return replaced
}

// Stop stops the scheduler and waits for a running refinement to finish.
func (j *RefineRoundJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Refine round job stopped")
}
