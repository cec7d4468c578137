package policyservice

import (
	"context"
	"errors"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"go.uber.org/zap"
)

type MemberRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Member, error)
	SetAdmin(ctx context.Context, id int, isAdmin bool) error
	CountAdmins(ctx context.Context) (int, error)
}

type PolicyRepo interface {
	Get(ctx context.Context) (*domain.Policy, error)
	Update(ctx context.Context, p *domain.Policy) error
}

type EventRepo interface {
	Record(ctx context.Context, kind, entityType string, entityID int, payload any) error
}

var (
	ErrAccessDenied     = errors.New("caller is not an admin")
	ErrMemberNotFound   = errors.New("member not found")
	ErrLastAdmin        = errors.New("cannot remove the last admin")
	ErrInvalidThreshold = errors.New("threshold must be between 1 and 10000 bps")
	ErrInvalidShares    = errors.New("distribution shares must sum to 10000 bps")
	ErrInvalidRates     = errors.New("rate bounds must satisfy 0 <= min <= max")
)

type Service struct {
	memberRepo MemberRepo
	policyRepo PolicyRepo
	eventRepo  EventRepo
	txManager  pg.TXManager
}

func New(memberRepo MemberRepo, policyRepo PolicyRepo, eventRepo EventRepo, txManager pg.TXManager) *Service {
	return &Service{
		memberRepo: memberRepo,
		policyRepo: policyRepo,
		eventRepo:  eventRepo,
		txManager:  txManager,
	}
}

// IsAdmin reports whether the member holds the admin role. Unknown
// members are simply not admins.
func (s *Service) IsAdmin(ctx context.Context, memberID int) (bool, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return false, err
	}
	return member != nil && member.IsAdmin, nil
}

func (s *Service) requireAdmin(ctx context.Context, callerID int) error {
	ok, err := s.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) AddAdmin(ctx context.Context, callerID, memberID int) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if err := s.memberRepo.SetAdmin(ctx, memberID, true); err != nil {
		return err
	}
	return s.eventRepo.Record(ctx, "ADMIN_ADDED", "member", memberID, map[string]int{"by": callerID})
}

// RemoveAdmin refuses to strip the last remaining admin so the
// cooperative never locks itself out of configuration.
func (s *Service) RemoveAdmin(ctx context.Context, callerID, memberID int) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		member, err := s.memberRepo.FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}
		if !member.IsAdmin {
			return nil
		}
		count, err := s.memberRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdmin
		}
		if err := s.memberRepo.SetAdmin(ctx, memberID, false); err != nil {
			return err
		}
		return s.eventRepo.Record(ctx, "ADMIN_REMOVED", "member", memberID, map[string]int{"by": callerID})
	})
}

func (s *Service) SetConsensusThresholds(ctx context.Context, callerID int, loanBps, treasuryBps int64) error {
	if loanBps < 1 || loanBps > 10000 || treasuryBps < 1 || treasuryBps > 10000 {
		return ErrInvalidThreshold
	}
	return s.updatePolicy(ctx, callerID, "CONSENSUS_THRESHOLDS_SET", func(p *domain.Policy) error {
		p.LoanThresholdBps = loanBps
		p.TreasuryThresholdBps = treasuryBps
		return nil
	})
}

func (s *Service) SetLoanPolicy(ctx context.Context, callerID int, minRateBps, maxRateBps, maxTermSecs, maxRatioBps int64) error {
	if minRateBps < 0 || minRateBps > maxRateBps {
		return ErrInvalidRates
	}
	return s.updatePolicy(ctx, callerID, "LOAN_POLICY_SET", func(p *domain.Policy) error {
		p.MinRateBps = minRateBps
		p.MaxRateBps = maxRateBps
		p.MaxLoanTermSecs = maxTermSecs
		p.MaxLoanRatioBps = maxRatioBps
		return nil
	})
}

func (s *Service) SetDistributionShares(ctx context.Context, callerID int, memberBps, treasuryBps, operationalBps int64) error {
	if memberBps+treasuryBps+operationalBps != 10000 {
		return ErrInvalidShares
	}
	return s.updatePolicy(ctx, callerID, "DISTRIBUTION_SHARES_SET", func(p *domain.Policy) error {
		p.MemberShareBps = memberBps
		p.TreasuryShareBps = treasuryBps
		p.OperationalShareBps = operationalBps
		return nil
	})
}

func (s *Service) SetRestakingParams(ctx context.Context, callerID int, allocationBps, emergencyReserve, rebalanceThreshold int64, minOperatorCount int, autoOptimize bool) error {
	if allocationBps < 0 || allocationBps > 10000 {
		return ErrInvalidThreshold
	}
	return s.updatePolicy(ctx, callerID, "RESTAKING_PARAMS_SET", func(p *domain.Policy) error {
		p.AllocationBps = allocationBps
		p.EmergencyReserve = emergencyReserve
		p.RebalanceThreshold = rebalanceThreshold
		p.MinOperatorCount = minOperatorCount
		p.AutoOptimize = autoOptimize
		return nil
	})
}

func (s *Service) SetVotingParams(ctx context.Context, callerID int, editingSecs, votingSecs, defaultWeight int64, weightedMode, privacyMode bool) error {
	return s.updatePolicy(ctx, callerID, "VOTING_PARAMS_SET", func(p *domain.Policy) error {
		p.EditingPeriodSecs = editingSecs
		p.VotingPeriodSecs = votingSecs
		p.DefaultVoteWeight = defaultWeight
		p.WeightedMode = weightedMode
		p.PrivacyMode = privacyMode
		return nil
	})
}

// SetPause flips the engine-wide pause flag. Mutating endpoints check it
// before touching any state.
func (s *Service) SetPause(ctx context.Context, callerID int, paused bool) error {
	kind := "ENGINE_UNPAUSED"
	if paused {
		kind = "ENGINE_PAUSED"
	}
	err := s.updatePolicy(ctx, callerID, kind, func(p *domain.Policy) error {
		p.Paused = paused
		return nil
	})
	if err == nil {
		zap.L().Warn("pause flag changed", zap.Bool("paused", paused), zap.Int("by", callerID))
	}
	return err
}

func (s *Service) updatePolicy(ctx context.Context, callerID int, eventKind string, mutate func(p *domain.Policy) error) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		if err := mutate(policy); err != nil {
			return err
		}
		if err := s.policyRepo.Update(ctx, policy); err != nil {
			return err
		}
		return s.eventRepo.Record(ctx, eventKind, "policy", 1, map[string]int{"by": callerID})
	})
}

func (s *Service) Get(ctx context.Context) (*domain.Policy, error) {
	return s.policyRepo.Get(ctx)
}

// Paused reports the current pause flag; used by the HTTP middleware.
func (s *Service) Paused(ctx context.Context) (bool, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	return policy.Paused, nil
}
