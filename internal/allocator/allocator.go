// Package allocator runs the periodic treasury maintenance loop: it pulls
// realized yield from every operator vault and, when auto-optimization is
// enabled, tops delegation back up toward the policy target.
package allocator

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akarpov/coopledger/internal/config"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/metrics"
	allocservice "github.com/akarpov/coopledger/internal/service/allocservice"
)

var claimingOperators sync.Map

type AllocService interface {
	ListOperators(ctx context.Context) ([]domain.Operator, error)
	ClaimOperatorRewards(ctx context.Context, operatorID int) (int64, error)
	OptimizeAllocation(ctx context.Context) error
}

type PolicyRepo interface {
	Get(ctx context.Context) (*domain.Policy, error)
}

type Service struct {
	alloc      AllocService
	policyRepo PolicyRepo
	claimPool  ClaimPool
	interval   time.Duration
}

func New(cfg *config.Config, alloc AllocService, policyRepo PolicyRepo) *Service {
	return &Service{
		alloc:      alloc,
		policyRepo: policyRepo,
		claimPool:  NewClaimWorkerPool(cfg.AllocatorWorkers),
		interval:   cfg.AllocatorInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Allocator service started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping allocator")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	s.claimAllRewards(ctx)

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		zap.L().Error("Failed to read policy", zap.Error(err))
		metrics.AllocatorErrors.Inc()
		return
	}
	if policy.AutoOptimize {
		if err := s.alloc.OptimizeAllocation(ctx); err != nil && !errors.Is(err, allocservice.ErrInsufficientOperators) {
			zap.L().Error("Periodic optimization failed", zap.Error(err))
			metrics.AllocatorErrors.Inc()
		}
	}

	metrics.AllocatorTicks.Inc()
}

func (s *Service) claimAllRewards(ctx context.Context) {
	operators, err := s.alloc.ListOperators(ctx)
	if err != nil {
		zap.L().Error("Failed to list operators", zap.Error(err))
		metrics.AllocatorErrors.Inc()
		return
	}

	var g errgroup.Group
	for _, op := range operators {
		op := op

		if _, loaded := claimingOperators.LoadOrStore(op.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.claimPool.Submit(ctx, func() error {
				defer claimingOperators.Delete(op.ID)
				return s.claimOne(ctx, op)
			})
			if err != nil {
				claimingOperators.Delete(op.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error claiming operator rewards", zap.Error(err))
		metrics.AllocatorErrors.Inc()
	}
}

func (s *Service) claimOne(ctx context.Context, op domain.Operator) error {
	amount, err := s.alloc.ClaimOperatorRewards(ctx, op.ID)
	if err != nil {
		metrics.AllocatorErrors.Inc()
		return err
	}
	if amount > 0 {
		metrics.YieldClaimed.Add(float64(amount))
		zap.L().Info("Claimed operator yield", zap.Int("operatorID", op.ID), zap.Int64("amount", amount))
	}
	return nil
}
