package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manager запускает зарегистрированные воркеры и останавливает их вместе
type Manager struct {
	workers []Worker
	logger  *zap.Logger
	group   errgroup.Group
	mu      sync.Mutex
	started bool
}

// NewManager создает новый Manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register регистрирует воркер; после Start регистрация не допускается
func (m *Manager) Register(w Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return fmt.Errorf("worker %s registered after start", w.Name())
	}
	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
	return nil
}

// Start runs every worker in its own goroutine and returns immediately.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return fmt.Errorf("no workers registered")
	}
	if m.started {
		return fmt.Errorf("workers already started")
	}
	m.started = true

	m.logger.Info("Starting workers", zap.Int("count", len(m.workers)))

	for _, w := range m.workers {
		w := w
		m.group.Go(func() error {
			m.logger.Info("Starting worker", zap.String("name", w.Name()))
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
				return fmt.Errorf("worker %s: %w", w.Name(), err)
			}
			return nil
		})
	}

	return nil
}

// Stop сигнализирует всем воркерам и ждёт их завершения не дольше, чем
// позволяет ctx. Возвращает первую ошибку воркера, если она была.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("name", w.Name()), zap.Error(err))
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- m.group.Wait()
	}()

	select {
	case err := <-done:
		m.logger.Info("All workers stopped gracefully")
		return err
	case <-ctx.Done():
		m.logger.Warn("Workers shutdown timed out, some batches may be redelivered")
		return fmt.Errorf("workers shutdown: %w", ctx.Err())
	}
}
