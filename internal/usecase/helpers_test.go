package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/repository/sqlstore/testhelpers"
	"github.com/ecotrack-service/internal/usecase"
)

// MockStatsRecorder is a mock of StatsRecorder
type MockStatsRecorder struct {
	mock.Mock
}

func (m *MockStatsRecorder) RecordReport(ctx context.Context, report *domain.EnvironmentalReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// MockActivityRecorder is a mock of ActivityRecorder
type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(ctx context.Context, event domain.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func directRecorder(t *testing.T, tdb *testhelpers.TestDB) usecase.ActivityRecorder {
	t.Helper()
	rec, err := usecase.NewActivityRecorder(config.ActivityConfig{Mode: config.ActivityModeDirect}, tdb.Store, nil)
	require.NoError(t, err)
	return rec
}

func configFor(mode string) config.ActivityConfig {
	return config.ActivityConfig{Mode: mode, Stream: domain.StreamActivityLog}
}

func ptr[T any](v T) *T {
	return &v
}

func activityActions(t *testing.T, tdb *testhelpers.TestDB) []string {
	t.Helper()
	entries, err := tdb.Store.Repos().Activity.List(context.Background(), domain.ActivityFilter{})
	require.NoError(t, err)

	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.ActionType)
	}
	return actions
}
