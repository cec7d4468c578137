package allocator

import (
	"context"

	"go.uber.org/zap"
)

// ClaimPool bounds how many vault claims run at once. Vault endpoints
// are external services and a full operator sweep happens every tick,
// so the fan-out must not grow with the operator set.
type ClaimPool interface {
	Submit(ctx context.Context, claim ClaimTask) error
	Close()
}

type ClaimTask func() error

type ClaimWorkerPool struct {
	claims chan ClaimTask
}

func NewClaimWorkerPool(workers int) *ClaimWorkerPool {
	wp := &ClaimWorkerPool{claims: make(chan ClaimTask, workers)}

	for i := 0; i < workers; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *ClaimWorkerPool) worker() {
	for claim := range wp.claims {
		if err := claim(); err != nil {
			zap.L().Error("Vault claim failed", zap.Error(err))
		}
	}
}

func (wp *ClaimWorkerPool) Submit(ctx context.Context, claim ClaimTask) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.claims <- claim:
		return nil
	}
}

func (wp *ClaimWorkerPool) Close() {
	select {
	case <-wp.claims:
	default:
		close(wp.claims)
	}
}
