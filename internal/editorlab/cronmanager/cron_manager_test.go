package cronmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobs(t *testing.T) {
	runs := make(chan struct{}, 10)
	cm := NewCronManager(JobRegistry{
		"history_cleanup": {Schedule: "@every 1s", Func: func(ctx context.Context) error {
			runs <- struct{}{}
			return nil
		}},
	})
	require.NoError(t, cm.LoadJobs())
	assert.Equal(t, []string{"history_cleanup"}, cm.Jobs())

	cm.Start()
	defer cm.Stop()

	select {
	case <-runs:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	cm.RemoveJob("history_cleanup")
	assert.Empty(t, cm.Jobs())
}

func TestLoadJobsBadSchedule(t *testing.T) {
	cm := NewCronManager(JobRegistry{
		"broken": {Schedule: "every minute", Func: func(context.Context) error { return nil }},
	})
	assert.Error(t, cm.LoadJobs())
	assert.Empty(t, cm.Jobs())
}

func TestRun(t *testing.T) {
	failure := errors.New("db is gone")
	cm := NewCronManager(JobRegistry{
		"ok":   {Schedule: "@hourly", Func: func(context.Context) error { return nil }},
		"fail": {Schedule: "@hourly", Func: func(context.Context) error { return failure }},
		"ctx": {Schedule: "@hourly", Func: func(ctx context.Context) error {
			return ctx.Err()
		}},
	})

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, cm.Run("ok"))
	})
	t.Run("error is returned", func(t *testing.T) {
		assert.ErrorIs(t, cm.Run("fail"), failure)
	})
	t.Run("unknown job", func(t *testing.T) {
		assert.Error(t, cm.Run("missing"))
	})
	t.Run("context cancelled after stop", func(t *testing.T) {
		require.NoError(t, cm.Run("ctx"))
		cm.Start()
		cm.Stop()
		assert.ErrorIs(t, cm.Run("ctx"), context.Canceled)
	})
}
