// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"

	"github.com/shivamkr/orderpipe/internal/pipeline"
	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// PipelineJob runs the full batch pipeline on a schedule.
type PipelineJob struct {
	runner *pipeline.Runner
	config *config.Config
	logger *logger.Logger
}

// NewPipelineJob creates a pipeline job.
func NewPipelineJob(runner *pipeline.Runner, cfg *config.Config, log *logger.Logger) *PipelineJob {
	return &PipelineJob{
		runner: runner,
		config: cfg,
		logger: log,
	}
}

// Name returns the job name.
func (j *PipelineJob) Name() string {
	return "pipeline"
}

// Schedule returns the configured cron expression, by default nightly.
func (j *PipelineJob) Schedule() string {
	return j.config.Scheduler.PipelineCron
}

// Run executes the full pipeline.
func (j *PipelineJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled pipeline run")
	return j.runner.Run(ctx)
}
