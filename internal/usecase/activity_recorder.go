package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"go.uber.org/zap"
)

// ActivityRecorder appends entries to the activity log. Callers treat
// failures as non-fatal.
type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// directRecorder пишет запись сразу в БД
type directRecorder struct {
	store repository.Store
}

func (r *directRecorder) Record(ctx context.Context, event domain.ActivityEvent) error {
	if err := r.store.Repos().Activity.Create(ctx, event.ToLog()); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// streamRecorder публикует событие в Redis Stream, запись делает воркер
type streamRecorder struct {
	stream repository.StreamRepository
	name   string
}

func (r *streamRecorder) Record(ctx context.Context, event domain.ActivityEvent) error {
	if err := r.stream.PublishToStream(ctx, r.name, event); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// NewActivityRecorder picks the recorder for cfg.Mode. Stream mode needs a
// stream repository.
func NewActivityRecorder(
	cfg config.ActivityConfig,
	store repository.Store,
	stream repository.StreamRepository,
) (ActivityRecorder, error) {
	switch cfg.Mode {
	case config.ActivityModeDirect, "":
		return &directRecorder{store: store}, nil
	case config.ActivityModeStream:
		if stream == nil {
			return nil, fmt.Errorf("activity mode %q requires a stream repository", cfg.Mode)
		}
		name := cfg.Stream
		if name == "" {
			name = domain.StreamActivityLog
		}
		return &streamRecorder{stream: stream, name: name}, nil
	default:
		return nil, fmt.Errorf("unsupported activity mode %q", cfg.Mode)
	}
}

// recordActivity builds and records an entry, logging instead of failing.
func recordActivity(
	ctx context.Context,
	rec ActivityRecorder,
	logger *zap.Logger,
	userID *int64,
	action, description, ip string,
) {
	if rec == nil {
		return
	}
	event := domain.ActivityEvent{
		UserID:      userID,
		ActionType:  action,
		Description: description,
		IPAddress:   optional(ip),
		OccurredAt:  time.Now().UTC(),
	}
	if err := rec.Record(ctx, event); err != nil {
		logger.Warn("Failed to record activity",
			zap.String("action", action),
			zap.Error(err))
	}
}

func actorID(actor *domain.Identity) *int64 {
	if actor == nil {
		return nil
	}
	id := actor.UserID
	return &id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
