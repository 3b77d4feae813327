package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecotrack-service/internal/worker"
)

// blockingWorker runs until stopped; failWith makes Start return at once.
type blockingWorker struct {
	*worker.BaseWorker
	failWith error
}

func newBlockingWorker(name string, failWith error) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, "test-group", zap.NewNop()),
		failWith:   failWith,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	if w.failWith != nil {
		return w.failWith
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestManager_StartWithoutWorkers(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestManager_StartStop(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	a := newBlockingWorker("a", nil)
	b := newBlockingWorker("b", nil)
	require.NoError(t, m.Register(a))
	require.NoError(t, m.Register(b))

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Start(context.Background()), "second start")
	assert.Error(t, m.Register(newBlockingWorker("late", nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestManager_StopReportsWorkerFailure(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	require.NoError(t, m.Register(newBlockingWorker("broken", errors.New("redis unavailable"))))
	require.NoError(t, m.Register(newBlockingWorker("healthy", nil)))
	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := m.Stop(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker broken")
}

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := worker.NewBaseWorker("idle", "group", zap.NewNop())
	assert.False(t, w.IsStopped())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
	assert.Equal(t, "idle", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
}
