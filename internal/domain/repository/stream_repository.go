package repository

import (
	"context"
	"time"

	"github.com/ecotrack-service/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup creates the group (and the stream) if missing.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream JSON-encodes data into the message's "data" field.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// ConsumeBatch reads up to count new messages, waiting at most block.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error)

	// ClaimPending takes over up to count messages that were delivered to the
	// group but stayed unacknowledged for at least minIdle.
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error)

	AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error
}
