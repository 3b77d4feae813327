package worker

import (
	"context"
)

// Worker is a background processor. Start blocks until Stop is called or ctx
// is cancelled; Stop only signals and may be called more than once.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
