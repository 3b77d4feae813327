package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	pkgerrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/worker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultRetryDelay   = 500 * time.Millisecond
	defaultClaimMinIdle = time.Minute
	errorPause          = time.Second // пауза при ошибке чтения
)

// ActivityLogWorker переносит события журнала из Redis Stream в БД
type ActivityLogWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	store        repository.Store
	stream       string
	consumerName string
	batchSize    int64
	readTimeout  time.Duration
	maxRetries   int
	retryDelay   time.Duration
	claimMinIdle time.Duration
	lastClaim    time.Time
}

// pendingEntry - распарсенное событие и ID его сообщения
type pendingEntry struct {
	id    string
	entry *domain.ActivityLog
}

// NewActivityLogWorker создает новый ActivityLogWorker
func NewActivityLogWorker(
	streamRepo repository.StreamRepository,
	store repository.Store,
	stream string,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *ActivityLogWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%s", hostname, uuid.NewString()[:8])

	if stream == "" {
		stream = domain.StreamActivityLog
	}
	batchSize := int64(cfg.BatchSize)
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	claimMinIdle := cfg.ClaimMinIdle
	if claimMinIdle <= 0 {
		claimMinIdle = defaultClaimMinIdle
	}

	return &ActivityLogWorker{
		BaseWorker:   worker.NewBaseWorker("activity-log", cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		store:        store,
		stream:       stream,
		consumerName: consumerName,
		batchSize:    batchSize,
		readTimeout:  cfg.StreamReadTimeout,
		maxRetries:   maxRetries,
		retryDelay:   defaultRetryDelay,
		claimMinIdle: claimMinIdle,
	}
}

// Start запускает воркер и блокируется до Stop или отмены ctx
func (w *ActivityLogWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ActivityLogWorker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			if time.Since(w.lastClaim) >= w.claimMinIdle {
				if _, err := w.reclaim(ctx); err != nil {
					logger.Error("Failed to reclaim pending messages", zap.Error(err))
				}
			}
			if _, err := w.processBatch(ctx); err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.pause(ctx, errorPause)
			}
		}
	}
}

// reclaim забирает сообщения, которые висят неподтвержденными дольше
// claimMinIdle (упавший consumer или неудачная запись), и пишет их заново.
func (w *ActivityLogWorker) reclaim(ctx context.Context) (int, error) {
	w.lastClaim = time.Now()

	messages, err := w.streamRepo.ClaimPending(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.claimMinIdle, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending messages: %w", err)
	}
	return len(messages), w.handle(ctx, messages)
}

// processBatch читает пачку новых сообщений и передает их в handle.
// Возвращает число прочитанных сообщений.
func (w *ActivityLogWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.batchSize, w.readTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	return len(messages), w.handle(ctx, messages)
}

// handle stores the messages and acks every one that was stored or cannot be
// parsed. Messages that failed to store stay pending until reclaim.
func (w *ActivityLogWorker) handle(ctx context.Context, messages []domain.StreamMessage) error {
	if len(messages) == 0 {
		return nil
	}
	logger := w.Logger()

	entries := make([]pendingEntry, 0, len(messages))
	var broken []string

	for _, msg := range messages {
		entry, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			broken = append(broken, msg.ID)
			continue
		}
		entries = append(entries, pendingEntry{id: msg.ID, entry: entry})
	}

	// битые сообщения подтверждаем сразу, чтобы не застревали
	if len(broken) > 0 {
		if err := w.streamRepo.AckMessages(ctx, w.stream, w.ConsumerGroup(), broken...); err != nil {
			logger.Warn("Failed to ack broken messages", zap.Error(err))
		}
	}
	if len(entries) == 0 {
		return nil
	}

	stored, persistErr := w.persist(ctx, entries)

	if len(stored) > 0 {
		if err := w.streamRepo.AckMessages(ctx, w.stream, w.ConsumerGroup(), stored...); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	logger.Debug("Activity batch stored",
		zap.Int("entries", len(entries)),
		zap.Int("stored", len(stored)))
	return persistErr
}

// persist пишет пачку одной транзакцией. Если она не прошла, записи пишутся
// по одной, чтобы одно плохое событие не тянуло за собой остальные.
// Возвращает ID сохранённых сообщений.
func (w *ActivityLogWorker) persist(ctx context.Context, entries []pendingEntry) ([]string, error) {
	ids := make([]string, 0, len(entries))

	err := w.store.WithinTx(ctx, func(tx repository.Repositories) error {
		for _, e := range entries {
			if err := tx.Activity.Create(ctx, e.entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		for _, e := range entries {
			ids = append(ids, e.id)
		}
		return ids, nil
	}

	w.Logger().Warn("Failed to store activity batch, storing entries one by one",
		zap.Int("entries", len(entries)),
		zap.Error(err))

	for _, e := range entries {
		if err := w.persistEntry(ctx, e); err != nil {
			// остаток остается pending до следующего reclaim
			return ids, err
		}
		ids = append(ids, e.id)
	}
	return ids, nil
}

// persistEntry inserts one entry, retrying up to maxRetries times. An entry
// whose user no longer exists is stored with user_id NULL, as the user delete
// would have left it.
func (w *ActivityLogWorker) persistEntry(ctx context.Context, e pendingEntry) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		err = w.store.WithinTx(ctx, func(tx repository.Repositories) error {
			return tx.Activity.Create(ctx, e.entry)
		})
		if errors.Is(err, pkgerrors.ErrMissingReference) && e.entry.UserID != nil {
			w.Logger().Warn("Activity user is gone, storing entry without user",
				zap.String("message_id", e.id),
				zap.Int64("user_id", *e.entry.UserID))
			e.entry.UserID = nil
			err = w.store.WithinTx(ctx, func(tx repository.Repositories) error {
				return tx.Activity.Create(ctx, e.entry)
			})
		}
		if err == nil {
			return nil
		}

		w.Logger().Warn("Failed to store activity entry",
			zap.String("message_id", e.id),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(err))

		if attempt < w.maxRetries && !w.pause(ctx, w.retryDelay*time.Duration(attempt)) {
			break
		}
	}
	return fmt.Errorf("store activity entry %s after %d attempts: %w", e.id, w.maxRetries, err)
}

// pause sleeps for d unless the worker is stopped first. Returns false when
// interrupted.
func (w *ActivityLogWorker) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-w.StopChan():
		return false
	case <-ctx.Done():
		return false
	}
}

func parseMessage(msg domain.StreamMessage) (*domain.ActivityLog, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.ActivityEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.ActionType == "" {
		return nil, fmt.Errorf("event without action_type")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	return event.ToLog(), nil
}
