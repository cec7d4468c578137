package rewardservice

import (
	"context"
	"errors"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"go.uber.org/zap"
)

type RewardRepo interface {
	CreateBalance(ctx context.Context, memberID int) (*domain.RewardBalance, error)
	Get(ctx context.Context, memberID int) (*domain.RewardBalance, error)
	GetForUpdate(ctx context.Context, memberID int) (*domain.RewardBalance, error)
	Set(ctx context.Context, rb *domain.RewardBalance) error
	Add(ctx context.Context, memberID int, interest, yield int64) error
	AddToActiveMembers(ctx context.Context, interestPerMember, yieldPerMember int64) (int, error)
}

type MemberRepo interface {
	CountActive(ctx context.Context) (int, error)
	AddShareBalance(ctx context.Context, id int, delta int64) error
}

type TreasuryRepo interface {
	GetForUpdate(ctx context.Context) (*domain.Treasury, error)
	Update(ctx context.Context, t *domain.Treasury) error
}

type PolicyRepo interface {
	Get(ctx context.Context) (*domain.Policy, error)
}

type EventRepo interface {
	Record(ctx context.Context, kind, entityType string, entityID int, payload any) error
}

// Claim kinds.
const (
	ClaimInterest = "interest"
	ClaimYield    = "yield"
	ClaimAll      = "all"
)

var (
	ErrNoPendingAmount      = errors.New("no pending amount to claim")
	ErrInvalidShares        = errors.New("distribution shares must sum to 10000 bps")
	ErrInsufficientTreasury = errors.New("insufficient treasury balance")
	ErrUnknownClaimKind     = errors.New("unknown claim kind")
	ErrBalanceNotFound      = errors.New("reward balance not found")
)

type Service struct {
	rewardRepo   RewardRepo
	memberRepo   MemberRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	txManager    pg.TXManager
}

func New(rewardRepo RewardRepo, memberRepo MemberRepo, treasuryRepo TreasuryRepo, policyRepo PolicyRepo, eventRepo EventRepo, txManager pg.TXManager) *Service {
	return &Service{
		rewardRepo:   rewardRepo,
		memberRepo:   memberRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		txManager:    txManager,
	}
}

func (s *Service) CreateBalance(ctx context.Context, memberID int) error {
	if _, err := s.rewardRepo.CreateBalance(ctx, memberID); err != nil {
		zap.L().Error("failed to create reward balance", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) GetBalance(ctx context.Context, memberID int) (*domain.RewardBalance, error) {
	rb, err := s.rewardRepo.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if rb == nil {
		return nil, ErrBalanceNotFound
	}
	return rb, nil
}

// DistributeInterest splits repaid loan interest between the member,
// treasury and operational shares and credits the member share evenly
// across the members active right now. The total must already sit in the
// treasury balance; pending ledger entries only earmark it.
func (s *Service) DistributeInterest(ctx context.Context, total int64) error {
	return s.distribute(ctx, total, true)
}

// DistributeYield does the same for realized restaking yield.
func (s *Service) DistributeYield(ctx context.Context, total int64) error {
	return s.distribute(ctx, total, false)
}

func (s *Service) distribute(ctx context.Context, total int64, interest bool) error {
	if total <= 0 {
		return nil
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		if policy.MemberShareBps+policy.TreasuryShareBps+policy.OperationalShareBps != 10000 {
			return ErrInvalidShares
		}

		memberShare := total * policy.MemberShareBps / 10000
		operationalShare := total * policy.OperationalShareBps / 10000

		count, err := s.memberRepo.CountActive(ctx)
		if err != nil {
			return err
		}

		var perMember, credited int64
		if count > 0 {
			perMember = memberShare / int64(count)
			credited = perMember * int64(count)
		}
		// The floor-division remainder of the member share stays in the
		// treasury balance, as does the treasury share itself.
		if perMember > 0 {
			interestPer, yieldPer := perMember, int64(0)
			if !interest {
				interestPer, yieldPer = 0, perMember
			}
			if _, err := s.rewardRepo.AddToActiveMembers(ctx, interestPer, yieldPer); err != nil {
				return err
			}
		}

		if operationalShare > 0 {
			treasury, err := s.treasuryRepo.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			treasury.Balance -= operationalShare
			treasury.OperationalPool += operationalShare
			if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
				return err
			}
		}

		kind := "YIELD_DISTRIBUTED"
		if interest {
			kind = "INTEREST_DISTRIBUTED"
		}
		payload := map[string]int64{
			"total":      total,
			"per_member": perMember,
			"credited":   credited,
			"members":    int64(count),
		}
		if err := s.eventRepo.Record(ctx, kind, "distribution", 0, payload); err != nil {
			return err
		}

		zap.L().Info("distribution complete",
			zap.String("kind", kind),
			zap.Int64("total", total),
			zap.Int64("perMember", perMember),
			zap.Int("members", count),
		)
		return nil
	})
}

// Claim zeroes the caller's pending balance before any transfer is made,
// so a repeated claim finds nothing to pay out.
func (s *Service) Claim(ctx context.Context, memberID int, kind string) (int64, error) {
	var claimed int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		rb, err := s.rewardRepo.GetForUpdate(ctx, memberID)
		if err != nil {
			return err
		}
		if rb == nil {
			return ErrBalanceNotFound
		}

		switch kind {
		case ClaimInterest:
			claimed = rb.PendingInterest
			rb.PendingInterest = 0
		case ClaimYield:
			claimed = rb.PendingYield
			rb.PendingYield = 0
		case ClaimAll:
			claimed = rb.PendingInterest + rb.PendingYield
			rb.PendingInterest = 0
			rb.PendingYield = 0
		default:
			return ErrUnknownClaimKind
		}
		if claimed == 0 {
			return ErrNoPendingAmount
		}

		if err := s.rewardRepo.Set(ctx, rb); err != nil {
			return err
		}

		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if treasury.Balance-treasury.Delegated < claimed {
			return ErrInsufficientTreasury
		}
		treasury.Balance -= claimed
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}

		if err := s.memberRepo.AddShareBalance(ctx, memberID, claimed); err != nil {
			return err
		}

		return s.eventRepo.Record(ctx, "REWARD_CLAIMED", "member", memberID, map[string]any{
			"kind":   kind,
			"amount": claimed,
		})
	})
	if err != nil {
		return 0, err
	}
	return claimed, nil
}

// BatchClaim pays out pending balances for a list of members. A member
// whose claim fails is skipped and reported; the rest still settle.
func (s *Service) BatchClaim(ctx context.Context, memberIDs []int, kind string) (paid int64, failed []int) {
	for _, id := range memberIDs {
		amount, err := s.Claim(ctx, id, kind)
		if err != nil {
			if !errors.Is(err, ErrNoPendingAmount) {
				zap.L().Error("batch claim failed for member", zap.Int("memberID", id), zap.Error(err))
				failed = append(failed, id)
			}
			continue
		}
		paid += amount
	}
	return paid, failed
}

// Escheat zeroes an exiting member's unclaimed balances; the earmarked
// funds simply remain in the treasury. Must run inside the exit
// transaction.
func (s *Service) Escheat(ctx context.Context, memberID int) (int64, error) {
	rb, err := s.rewardRepo.GetForUpdate(ctx, memberID)
	if err != nil {
		return 0, err
	}
	if rb == nil {
		return 0, nil
	}
	forfeited := rb.PendingInterest + rb.PendingYield
	if forfeited == 0 {
		return 0, nil
	}
	rb.PendingInterest = 0
	rb.PendingYield = 0
	if err := s.rewardRepo.Set(ctx, rb); err != nil {
		return 0, err
	}
	zap.L().Info("escheated unclaimed rewards", zap.Int("memberID", memberID), zap.Int64("amount", forfeited))
	return forfeited, nil
}
