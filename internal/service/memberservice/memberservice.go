package memberservice

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"github.com/akarpov/coopledger/pkg/auth"
	"go.uber.org/zap"
)

type MemberRepo interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	FindByLogin(ctx context.Context, login string) (*domain.Member, error)
	FindByID(ctx context.Context, id int) (*domain.Member, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	SetAdmin(ctx context.Context, id int, isAdmin bool) error
	SetVoteWeight(ctx context.Context, id int, weight int64) error
	ListActive(ctx context.Context) ([]domain.Member, error)
	CountActive(ctx context.Context) (int, error)
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

// RewardLedger is the slice of the reward service membership needs: a
// fresh ledger row on registration and escheat on exit.
type RewardLedger interface {
	CreateBalance(ctx context.Context, memberID int) error
	Escheat(ctx context.Context, memberID int) (int64, error)
}

var (
	ErrAlreadyMember        = errors.New("login already belongs to a member")
	ErrIncorrectFee         = errors.New("payment does not match the membership fee")
	ErrHasActiveLoan        = errors.New("member has an active loan")
	ErrInsufficientTreasury = errors.New("insufficient treasury balance for exit share")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberNotActive      = errors.New("member is not active")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)

type Service struct {
	memberRepo   MemberRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	rewards      RewardLedger
	weightSource capability.VotingWeightSource
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
	txManager    pg.TXManager
}

func New(
	memberRepo MemberRepo,
	treasuryRepo TreasuryRepo,
	policyRepo PolicyRepo,
	eventRepo EventRepo,
	rewards RewardLedger,
	weightSource capability.VotingWeightSource,
	hashService auth.HashServiceInterface,
	jwtService auth.JWTServiceInterface,
	txManager pg.TXManager,
) *Service {
	return &Service{
		memberRepo:   memberRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		rewards:      rewards,
		weightSource: weightSource,
		hashService:  hashService,
		jwtService:   jwtService,
		txManager:    txManager,
	}
}

// Register admits a new member. The fee must match the policy exactly and
// becomes the member's opening contribution to the treasury. The very
// first member is made an admin so the cooperative can be configured.
func (s *Service) Register(ctx context.Context, login, password string, fee int64) (*domain.Member, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if fee != policy.MembershipFee {
		return nil, ErrIncorrectFee
	}

	existing, err := s.memberRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	var member *domain.Member
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		count, err := s.memberRepo.CountActive(ctx)
		if err != nil {
			return err
		}

		member, err = s.memberRepo.Create(ctx, &domain.Member{
			Login:        login,
			PasswordHash: hashedPassword,
			Status:       domain.MemberStatusActive,
			Contribution: fee,
			VoteWeight:   policy.DefaultVoteWeight,
		})
		if err != nil {
			return err
		}

		if count == 0 {
			if err := s.memberRepo.SetAdmin(ctx, member.ID, true); err != nil {
				return err
			}
			member.IsAdmin = true
		}

		if err := s.rewards.CreateBalance(ctx, member.ID); err != nil {
			return err
		}

		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		treasury.Balance += fee
		treasury.TotalContributions += fee
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}

		return s.eventRepo.Record(ctx, "MEMBER_ACTIVATED", "member", member.ID, map[string]int64{"fee": fee})
	})
	if err != nil {
		return nil, err
	}

	if policy.WeightedMode {
		if err := s.RefreshWeight(ctx, member.ID); err != nil {
			zap.L().Warn("could not refresh member weight", zap.Int("memberID", member.ID), zap.Error(err))
		}
	}

	zap.L().Info("member registered", zap.String("login", login), zap.Int("memberID", member.ID))
	return member, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.Member, error) {
	member, err := s.memberRepo.FindByLogin(ctx, login)
	if err != nil || member == nil {
		return nil, ErrInvalidCredentials
	}
	if member.Status != domain.MemberStatusActive {
		return nil, ErrMemberNotActive
	}
	if ok := s.hashService.ComparePassword(member.PasswordHash, password); !ok {
		return nil, ErrInvalidCredentials
	}
	return member, nil
}

func (s *Service) GenerateToken(memberID int) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(memberID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Exit pays out the member's pro-rata share of the current treasury and
// revokes the membership. Unclaimed pending rewards are forfeited back to
// the treasury. The member row is kept for audit; only the status flips.
func (s *Service) Exit(ctx context.Context, memberID int) (int64, error) {
	var exitShare int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		member, err := s.memberRepo.FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}
		if member.Status != domain.MemberStatusActive {
			return ErrMemberNotActive
		}
		if member.HasActiveLoan {
			return ErrHasActiveLoan
		}

		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		exitShare = ExitShare(treasury, member)
		if exitShare > treasury.Balance-treasury.Delegated {
			return ErrInsufficientTreasury
		}

		forfeited, err := s.rewards.Escheat(ctx, memberID)
		if err != nil {
			return err
		}

		treasury.Balance -= exitShare
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}

		if err := s.memberRepo.UpdateStatus(ctx, memberID, domain.MemberStatusInactive); err != nil {
			return err
		}

		return s.eventRepo.Record(ctx, "MEMBER_EXITED", "member", memberID, map[string]int64{
			"exit_share": exitShare,
			"forfeited":  forfeited,
		})
	})
	if err != nil {
		return 0, err
	}

	zap.L().Info("member exited", zap.Int("memberID", memberID), zap.Int64("exitShare", exitShare))
	return exitShare, nil
}

// ExitShare is the pro-rata payout for a leaving member: the current
// balance scaled by the member's share of all contributions, floored.
func ExitShare(treasury *domain.Treasury, member *domain.Member) int64 {
	if treasury.TotalContributions <= 0 {
		return 0
	}
	return treasury.Balance * member.Contribution / treasury.TotalContributions
}

// IsEligibleForLoan reports whether a member may request a loan: active,
// no outstanding loan, minimum tenure served, outside the post-loan
// cooldown window.
func IsEligibleForLoan(member *domain.Member, policy *domain.Policy, now time.Time) bool {
	if member.Status != domain.MemberStatusActive {
		return false
	}
	if member.HasActiveLoan {
		return false
	}
	if now.Sub(member.JoinedAt) < time.Duration(policy.MinMembershipSecs)*time.Second {
		return false
	}
	if !member.LastLoanAt.IsZero() && now.Sub(member.LastLoanAt) < time.Duration(policy.LoanCooldownSecs)*time.Second {
		return false
	}
	return true
}

// IsEligibleForLoan is the method form used by the proposal ledger.
func (s *Service) IsEligibleForLoan(member *domain.Member, policy *domain.Policy, now time.Time) bool {
	return IsEligibleForLoan(member, policy, now)
}

// RefreshWeight re-reads the member's voting weight from the external
// identity source. Already-cast votes keep their snapshot weights.
func (s *Service) RefreshWeight(ctx context.Context, memberID int) error {
	weight, err := s.weightSource.GetVotingWeight(ctx, memberID)
	if err != nil {
		return err
	}
	return s.memberRepo.SetVoteWeight(ctx, memberID, weight)
}

func (s *Service) GetMember(ctx context.Context, memberID int) (*domain.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *Service) ListActiveMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.ListActive(ctx)
}
