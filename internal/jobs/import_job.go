package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ImportJobName is the name of the scheduled spreadsheet import job
const ImportJobName = "spreadsheet_import"

// DefaultImportTimeout bounds one scheduled import run. Directory imports are
// sequential, so the ceiling only matters when the source has stalled.
const DefaultImportTimeout = 30 * time.Minute

// DirectoryImporter runs a full import pass over the configured source.
// The interface keeps the job decoupled from the importer package.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context) (summaryRows int, failedRows int, err error)
}

// ImportJob runs the spreadsheet import on a schedule.
type ImportJob struct {
	importer DirectoryImporter
	logger   *zap.Logger
	timeout  time.Duration
}

// NewImportJob creates a scheduled import job.
// The timeout controls how long one import run is allowed to take.
func NewImportJob(importer DirectoryImporter, logger *zap.Logger, timeout time.Duration) *ImportJob {
	if timeout <= 0 {
		timeout = DefaultImportTimeout
	}
	return &ImportJob{
		importer: importer,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes one import pass. Called by the scheduler according to the
// configured cron expression.
func (j *ImportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting scheduled spreadsheet import")

	processed, failed, err := j.importer.ImportDirectory(ctx)
	if err != nil {
		j.logger.Error("scheduled spreadsheet import failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("scheduled spreadsheet import finished",
		zap.Int("rows_processed", processed),
		zap.Int("rows_failed", failed),
		zap.Duration("duration", time.Since(start)))
}
