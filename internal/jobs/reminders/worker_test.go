package reminders

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type countingDispatcher struct {
	calls int32
	limit int32
	err   error
}

func (d *countingDispatcher) DispatchDue(ctx context.Context, limit int) (int, error) {
	atomic.AddInt32(&d.calls, 1)
	atomic.StoreInt32(&d.limit, int32(limit))
	return 1, d.err
}

func TestWorker_RunOnce(t *testing.T) {
	t.Run("passes batch size", func(t *testing.T) {
		d := &countingDispatcher{}
		w := NewWorker(d, "@every 1h", 25, logger.NewNop())

		w.RunOnce(context.Background())

		assert.Equal(t, int32(1), atomic.LoadInt32(&d.calls))
		assert.Equal(t, int32(25), atomic.LoadInt32(&d.limit))
	})

	t.Run("dispatch error is logged, not panicked", func(t *testing.T) {
		d := &countingDispatcher{err: errors.New("db down")}
		w := NewWorker(d, "@every 1h", 10, logger.NewNop())

		assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
	})

	t.Run("cancelled context skips the run", func(t *testing.T) {
		d := &countingDispatcher{}
		w := NewWorker(d, "@every 1h", 10, logger.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w.RunOnce(ctx)

		assert.Equal(t, int32(0), atomic.LoadInt32(&d.calls))
	})
}

func TestWorker_StartStop(t *testing.T) {
	d := &countingDispatcher{}
	w := NewWorker(d, "@every 1s", 10, logger.NewNop())

	w.Start(context.Background())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&d.calls) > 0
	}, 3*time.Second, 50*time.Millisecond)
	w.Stop()

	calls := atomic.LoadInt32(&d.calls)
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, calls, atomic.LoadInt32(&d.calls))
}

func TestWorker_InvalidScheduleFallsBack(t *testing.T) {
	w := NewWorker(&countingDispatcher{}, "not a cron spec", 10, logger.NewNop())

	assert.NotPanics(t, func() {
		w.Start(context.Background())
		w.Stop()
	})
}
