package jobs_test

import (
	"context"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerAddRemove(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("import", "@hourly", func() {})
	require.NoError(t, err)

	// Duplicate names are rejected
	err = s.AddJob("import", "@hourly", func() {})
	assert.Error(t, err)

	assert.Equal(t, []string{"import"}, s.GetJobNames())

	require.NoError(t, s.RemoveJob("import"))
	assert.Empty(t, s.GetJobNames())
	assert.Error(t, s.RemoveJob("import"))
}

func TestSchedulerRejectsBadExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	err := s.AddJob("import", "not a cron expr", func() {})
	assert.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	require.NoError(t, s.AddJob("import", "@every 1h", func() {}))

	s.Start()
	<-s.Stop().Done()
}

func TestImportJobRunsImporter(t *testing.T) {
	ran := make(chan struct{}, 1)
	job := jobs.NewImportJob(importerFunc(func(ctx context.Context) (int, int, error) {
		ran <- struct{}{}
		return 3, 0, nil
	}), zap.NewNop(), 0)

	job.Run()
	select {
	case <-ran:
	default:
		t.Fatal("importer was not invoked")
	}
}

type importerFunc func(ctx context.Context) (int, int, error)

func (f importerFunc) ImportDirectory(ctx context.Context) (int, int, error) {
	return f(ctx)
}
