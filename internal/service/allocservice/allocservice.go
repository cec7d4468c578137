package allocservice

import (
	"context"
	"errors"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"go.uber.org/zap"
)

type OperatorRepo interface {
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
	FindByID(ctx context.Context, id int) (*domain.Operator, error)
	Update(ctx context.Context, op *domain.Operator) error
	ListActiveByScore(ctx context.Context) ([]domain.Operator, error)
}

type TreasuryRepo interface {
	Get(ctx context.Context) (*domain.Treasury, error)
	GetForUpdate(ctx context.Context) (*domain.Treasury, error)
	Update(ctx context.Context, t *domain.Treasury) error
}

type PolicyRepo interface {
	Get(ctx context.Context) (*domain.Policy, error)
}

type EventRepo interface {
	Record(ctx context.Context, kind, entityType string, entityID int, payload any) error
}

// YieldDistributor routes realized vault rewards into the reward ledger.
type YieldDistributor interface {
	DistributeYield(ctx context.Context, total int64) error
}

var (
	ErrOperatorNotFound      = errors.New("operator not found")
	ErrOperatorNotActive     = errors.New("operator is not active")
	ErrOperatorHasCapital    = errors.New("operator still holds delegated capital")
	ErrInsufficientOperators = errors.New("not enough active operators to allocate")
	ErrInvalidExpectedYield  = errors.New("expected yield must be positive")
)

// maxAllocTargets caps how many operators a single optimization round
// spreads capital across.
const maxAllocTargets = 5

const (
	minScore  = 100
	maxScore  = 1000
	baseScore = 300
)

type Service struct {
	operatorRepo OperatorRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	distributor  YieldDistributor
	vault        capability.YieldVault
	txManager    pg.TXManager
}

func New(
	operatorRepo OperatorRepo,
	treasuryRepo TreasuryRepo,
	policyRepo PolicyRepo,
	eventRepo EventRepo,
	distributor YieldDistributor,
	vault capability.YieldVault,
	txManager pg.TXManager,
) *Service {
	return &Service{
		operatorRepo: operatorRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		distributor:  distributor,
		vault:        vault,
		txManager:    txManager,
	}
}

// AvailableForRestaking returns the capital that may still be delegated:
// the balance minus the emergency reserve and what is already out with
// operators, never negative.
func AvailableForRestaking(t *domain.Treasury, policy *domain.Policy) int64 {
	avail := t.Balance - policy.EmergencyReserve - t.Delegated
	if avail < 0 {
		return 0
	}
	return avail
}

// PerformanceScore folds uptime, yield delivery and slashing history into
// a single 100..1000 ranking. The yield ratio is capped at par so an
// over-delivering operator cannot buy off slashing penalties.
func PerformanceScore(uptimeBps, expectedYieldBps, actualYieldBps int64, slashingEvents int) int64 {
	score := int64(baseScore)
	score += uptimeBps * 400 / 10000

	if expectedYieldBps > 0 {
		ratio := actualYieldBps * 10000 / expectedYieldBps
		if ratio > 10000 {
			ratio = 10000
		}
		score += ratio * 300 / 10000
	}

	score -= int64(slashingEvents) * 50

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func (s *Service) ApproveOperator(ctx context.Context, name, endpoint string, expectedYieldBps int64) (*domain.Operator, error) {
	if expectedYieldBps <= 0 {
		return nil, ErrInvalidExpectedYield
	}
	op, err := s.operatorRepo.Create(ctx, &domain.Operator{
		Name:             name,
		Endpoint:         endpoint,
		Status:           domain.OperatorStatusActive,
		PerformanceScore: baseScore,
		ExpectedYieldBps: expectedYieldBps,
	})
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Record(ctx, "OPERATOR_APPROVED", "operator", op.ID, map[string]any{
		"name":               name,
		"expected_yield_bps": expectedYieldBps,
	}); err != nil {
		return nil, err
	}
	zap.L().Info("operator approved", zap.Int("operatorID", op.ID), zap.String("name", name))
	return op, nil
}

// RemoveOperator recalls an operator's capital and retires it. The vault
// call happens first; the books only change once the capital is back.
func (s *Service) RemoveOperator(ctx context.Context, operatorID int) error {
	op, err := s.operatorRepo.FindByID(ctx, operatorID)
	if err != nil {
		return err
	}
	if op == nil {
		return ErrOperatorNotFound
	}
	if op.Status != domain.OperatorStatusActive {
		return ErrOperatorNotActive
	}

	recalled := op.Delegated
	if recalled > 0 {
		// The operator cannot retire while its vault still holds treasury
		// capital. A refused recall leaves the operator active.
		if err := s.vault.Undelegate(ctx, operatorID, recalled); err != nil {
			zap.L().Error("undelegate failed during removal", zap.Int("operatorID", operatorID), zap.Error(err))
			return ErrOperatorHasCapital
		}
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if recalled > 0 {
			treasury, err := s.treasuryRepo.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			treasury.Delegated -= recalled
			if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
				return err
			}
		}
		op.Delegated = 0
		op.Status = domain.OperatorStatusRemoved
		if err := s.operatorRepo.Update(ctx, op); err != nil {
			return err
		}
		return s.eventRepo.Record(ctx, "OPERATOR_REMOVED", "operator", operatorID, map[string]int64{"recalled": recalled})
	})
}

// OptimizeAllocation tops delegation up toward the policy target, spread
// across the best-scoring operators in proportion to their scores. Each
// operator is settled independently: the books are updated in a
// transaction first, and if the vault then refuses the capital the
// delegation is rolled back with a compensating transaction.
func (s *Service) OptimizeAllocation(ctx context.Context) error {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return err
	}
	treasury, err := s.treasuryRepo.Get(ctx)
	if err != nil {
		return err
	}

	operators, err := s.operatorRepo.ListActiveByScore(ctx)
	if err != nil {
		return err
	}
	if len(operators) < policy.MinOperatorCount {
		return ErrInsufficientOperators
	}
	if len(operators) > maxAllocTargets {
		operators = operators[:maxAllocTargets]
	}

	target := treasury.Balance * policy.AllocationBps / 10000
	shortfall := target - treasury.Delegated
	if shortfall <= 0 {
		return nil
	}
	if avail := AvailableForRestaking(treasury, policy); shortfall > avail {
		shortfall = avail
	}
	if shortfall <= 0 {
		return nil
	}

	var totalScore int64
	for _, op := range operators {
		totalScore += op.PerformanceScore
	}
	if totalScore == 0 {
		return nil
	}

	for i := range operators {
		op := operators[i]
		share := shortfall * op.PerformanceScore / totalScore
		if share <= 0 {
			continue
		}
		if err := s.delegate(ctx, &op, share); err != nil {
			zap.L().Error("delegation failed, skipping operator", zap.Int("operatorID", op.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) delegate(ctx context.Context, op *domain.Operator, amount int64) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		// Re-check against the locked balance; the planning pass ran
		// without a lock.
		if amount > AvailableForRestaking(treasury, policy) {
			return ErrInsufficientOperators
		}
		treasury.Delegated += amount
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}
		op.Delegated += amount
		if err := s.operatorRepo.Update(ctx, op); err != nil {
			return err
		}
		return s.eventRepo.Record(ctx, "OPERATOR_REBALANCED", "operator", op.ID, map[string]int64{"delegated": amount})
	})
	if err != nil {
		return err
	}

	if err := s.vault.Delegate(ctx, op.ID, amount); err != nil {
		compErr := s.txManager.Begin(ctx, func(ctx context.Context) error {
			treasury, terr := s.treasuryRepo.GetForUpdate(ctx)
			if terr != nil {
				return terr
			}
			treasury.Delegated -= amount
			if terr := s.treasuryRepo.Update(ctx, treasury); terr != nil {
				return terr
			}
			op.Delegated -= amount
			return s.operatorRepo.Update(ctx, op)
		})
		if compErr != nil {
			zap.L().Error("compensating rollback failed", zap.Int("operatorID", op.ID), zap.Error(compErr))
		}
		return err
	}

	zap.L().Info("capital delegated", zap.Int("operatorID", op.ID), zap.Int64("amount", amount))
	return nil
}

// UpdateOperatorPerformance records fresh telemetry, recomputes the score
// and, when the operator has dropped below the rebalance threshold and
// auto-optimization is on, reshuffles the allocation.
func (s *Service) UpdateOperatorPerformance(ctx context.Context, operatorID int, uptimeBps, actualYieldBps int64, slashingEvents int) (*domain.Operator, error) {
	op, err := s.operatorRepo.FindByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}
	if op.Status != domain.OperatorStatusActive {
		return nil, ErrOperatorNotActive
	}

	op.UptimeBps = uptimeBps
	op.ActualYieldBps = actualYieldBps
	op.SlashingEvents = slashingEvents
	op.PerformanceScore = PerformanceScore(uptimeBps, op.ExpectedYieldBps, actualYieldBps, slashingEvents)
	if err := s.operatorRepo.Update(ctx, op); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if policy.AutoOptimize && op.PerformanceScore < policy.RebalanceThreshold {
		zap.L().Warn("operator below rebalance threshold",
			zap.Int("operatorID", operatorID),
			zap.Int64("score", op.PerformanceScore),
		)
		if err := s.OptimizeAllocation(ctx); err != nil && !errors.Is(err, ErrInsufficientOperators) {
			zap.L().Error("auto-optimization failed", zap.Error(err))
		}
	}
	return op, nil
}

// EmergencyExitAll recalls capital from every active operator. Operators
// whose vaults refuse the recall are reported and left delegated; the
// rest settle.
func (s *Service) EmergencyExitAll(ctx context.Context, reason string) (recalled int64, failed []int, err error) {
	operators, err := s.operatorRepo.ListActiveByScore(ctx)
	if err != nil {
		return 0, nil, err
	}

	for i := range operators {
		op := operators[i]
		if op.Delegated == 0 {
			continue
		}
		if err := s.vault.Undelegate(ctx, op.ID, op.Delegated); err != nil {
			zap.L().Error("emergency undelegate failed", zap.Int("operatorID", op.ID), zap.Error(err))
			failed = append(failed, op.ID)
			continue
		}
		amount := op.Delegated
		txErr := s.txManager.Begin(ctx, func(ctx context.Context) error {
			treasury, err := s.treasuryRepo.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			treasury.Delegated -= amount
			if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
				return err
			}
			op.Delegated = 0
			return s.operatorRepo.Update(ctx, &op)
		})
		if txErr != nil {
			failed = append(failed, op.ID)
			continue
		}
		recalled += amount
	}

	if err := s.eventRepo.Record(ctx, "EMERGENCY_EXIT", "treasury", 1, map[string]any{
		"reason":   reason,
		"recalled": recalled,
		"failed":   failed,
	}); err != nil {
		return recalled, failed, err
	}

	zap.L().Warn("emergency exit complete", zap.String("reason", reason), zap.Int64("recalled", recalled), zap.Ints("failed", failed))
	return recalled, failed, nil
}

// ClaimOperatorRewards pulls realized yield from one operator's vault,
// books it into the treasury and distributes it to members.
func (s *Service) ClaimOperatorRewards(ctx context.Context, operatorID int) (int64, error) {
	op, err := s.operatorRepo.FindByID(ctx, operatorID)
	if err != nil {
		return 0, err
	}
	if op == nil {
		return 0, ErrOperatorNotFound
	}
	if op.Status != domain.OperatorStatusActive {
		return 0, ErrOperatorNotActive
	}

	amount, err := s.vault.ClaimRewards(ctx, operatorID)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, nil
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		treasury.Balance += amount
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}
		op.CumulativeRewards += amount
		if err := s.operatorRepo.Update(ctx, op); err != nil {
			return err
		}
		return s.distributor.DistributeYield(ctx, amount)
	})
	if err != nil {
		return 0, err
	}

	zap.L().Info("operator rewards claimed", zap.Int("operatorID", operatorID), zap.Int64("amount", amount))
	return amount, nil
}

func (s *Service) GetOperator(ctx context.Context, operatorID int) (*domain.Operator, error) {
	op, err := s.operatorRepo.FindByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}
	return op, nil
}

func (s *Service) ListOperators(ctx context.Context) ([]domain.Operator, error) {
	return s.operatorRepo.ListActiveByScore(ctx)
}
