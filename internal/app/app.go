package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"leetcode-export/internal/domain/ports"
)

// Job is a single export run.
type Job interface {
	Run(ctx context.Context) error
}

// App runs the export once, or repeatedly on a cron schedule.
type App struct {
	cron     *cron.Cron
	job      Job
	logger   ports.Logger
	schedule string
}

// New constructs an App instance. An empty schedule means a single run.
func New(job Job, logger ports.Logger, schedule string) *App {
	return &App{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cronLogger{logger: logger}),
		)),
		job:      job,
		logger:   logger,
		schedule: schedule,
	}
}

// Run executes the export immediately. Without a schedule its result is
// returned; with one, the App keeps exporting until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.schedule == "" {
		return a.job.Run(ctx)
	}

	if err := a.scheduleJob(ctx); err != nil {
		return err
	}

	a.logger.Info(ctx, "running first export immediately")
	if err := a.job.Run(ctx); err != nil {
		a.logger.Error(ctx, "initial export failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJob(ctx context.Context) error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		if err := a.job.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled export failed", "error", err)
		}
	})
	return err
}

// cronLogger routes scheduler diagnostics through ports.Logger.
type cronLogger struct {
	logger ports.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(context.Background(), msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(context.Background(), msg, append(keysAndValues, "error", err)...)
}
