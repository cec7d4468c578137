package proposalservice

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"github.com/akarpov/coopledger/internal/service/loanservice"
	"go.uber.org/zap"
)

type ProposalRepo interface {
	CreateLoanProposal(ctx context.Context, p *domain.LoanProposal) (*domain.LoanProposal, error)
	FindLoanProposalByID(ctx context.Context, id int) (*domain.LoanProposal, error)
	FindLoanProposalByIDForUpdate(ctx context.Context, id int) (*domain.LoanProposal, error)
	UpdateLoanProposal(ctx context.Context, p *domain.LoanProposal) error
	ListLoanProposals(ctx context.Context) ([]domain.LoanProposal, error)
	CreateTreasuryProposal(ctx context.Context, p *domain.TreasuryProposal) (*domain.TreasuryProposal, error)
	FindTreasuryProposalByID(ctx context.Context, id int) (*domain.TreasuryProposal, error)
	ListTreasuryProposals(ctx context.Context) ([]domain.TreasuryProposal, error)
}

type MemberRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Member, error)
}

type TreasuryRepo interface {
	Get(ctx context.Context) (*domain.Treasury, error)
}

type PolicyRepo interface {
	Get(ctx context.Context) (*domain.Policy, error)
}

type EventRepo interface {
	Record(ctx context.Context, kind, entityType string, entityID int, payload any) error
}

var (
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrNotAuthorized       = errors.New("only the proposer may edit the proposal")
	ErrEditingPeriodEnded  = errors.New("editing period has ended")
	ErrProposalNotPending  = errors.New("proposal is already finalized")
	ErrNotEligible         = errors.New("member is not eligible for a loan")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDestination  = errors.New("destination must not be empty")
	ErrExceedsMaxLoanRatio = errors.New("requested amount exceeds the loan-to-treasury ratio cap")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberNotActive     = errors.New("member is not active")
	ErrMissingCommitment   = errors.New("private proposal requires an amount commitment")
	ErrPrivacyModeOff      = errors.New("private proposals are not enabled")
)

// Eligibility is the loan-eligibility predicate owned by the member
// registry.
type Eligibility interface {
	IsEligibleForLoan(member *domain.Member, policy *domain.Policy, now time.Time) bool
}

type Service struct {
	proposalRepo ProposalRepo
	memberRepo   MemberRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	eligibility  Eligibility
	documents    capability.DocumentRegistry
	txManager    pg.TXManager
}

func New(
	proposalRepo ProposalRepo,
	memberRepo MemberRepo,
	treasuryRepo TreasuryRepo,
	policyRepo PolicyRepo,
	eventRepo EventRepo,
	eligibility Eligibility,
	documents capability.DocumentRegistry,
	txManager pg.TXManager,
) *Service {
	return &Service{
		proposalRepo: proposalRepo,
		memberRepo:   memberRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		eligibility:  eligibility,
		documents:    documents,
		txManager:    txManager,
	}
}

// SyncLoanPhase applies the lazy editing→voting transition. Deadlines are
// compared to the clock on every touch of the proposal; there is no
// background scheduler.
func SyncLoanPhase(p *domain.LoanProposal, now time.Time) bool {
	if p.Phase == domain.ProposalPhaseEditing && now.After(p.EditingDeadline) {
		p.Phase = domain.ProposalPhaseVoting
		return true
	}
	return false
}

// CreateLoanProposal opens a loan request in the editing phase. Terms are
// priced immediately so voters can see the offer, and re-priced on every
// edit until the editing window closes.
func (s *Service) CreateLoanProposal(ctx context.Context, borrowerID int, amount int64, private bool, amountCommitment string) (*domain.LoanProposal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if private && amountCommitment == "" {
		return nil, ErrMissingCommitment
	}

	var created *domain.LoanProposal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		member, err := s.memberRepo.FindByID(ctx, borrowerID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}

		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		// A private proposal without a configured tally backend would be
		// unvotable, so refuse it at the door.
		if private && !policy.PrivacyMode {
			return ErrPrivacyModeOff
		}

		now := time.Now()
		if !s.eligibility.IsEligibleForLoan(member, policy, now) {
			return ErrNotEligible
		}

		treasury, err := s.treasuryRepo.Get(ctx)
		if err != nil {
			return err
		}
		if err := checkLoanRatio(amount, treasury.Balance, policy); err != nil {
			return err
		}

		terms, err := loanservice.CalculateTerms(amount, treasury.Balance, policy)
		if err != nil {
			return err
		}

		editingDeadline := now.Add(time.Duration(policy.EditingPeriodSecs) * time.Second)
		created, err = s.proposalRepo.CreateLoanProposal(ctx, &domain.LoanProposal{
			BorrowerID:       borrowerID,
			Amount:           amount,
			Private:          private,
			AmountCommitment: amountCommitment,
			InterestRateBps:  terms.RateBps,
			TotalRepayment:   terms.TotalRepayment,
			TermSeconds:      terms.TermSeconds,
			Phase:            domain.ProposalPhaseEditing,
			Status:           domain.ProposalStatusPending,
			EditingDeadline:  editingDeadline,
			VotingDeadline:   editingDeadline.Add(time.Duration(policy.VotingPeriodSecs) * time.Second),
		})
		if err != nil {
			return err
		}

		return s.eventRepo.Record(ctx, "PROPOSAL_CREATED", "loan_proposal", created.ID, map[string]any{
			"borrower_id": borrowerID,
			"private":     private,
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("loan proposal created", zap.Int("proposalID", created.ID), zap.Int("borrowerID", borrowerID))
	return created, nil
}

func checkLoanRatio(amount, treasuryBalance int64, policy *domain.Policy) error {
	if policy.MaxLoanRatioBps <= 0 || treasuryBalance <= 0 {
		return nil
	}
	if amount*10000/treasuryBalance > policy.MaxLoanRatioBps {
		return ErrExceedsMaxLoanRatio
	}
	return nil
}

// EditLoanProposal amends a proposal's amount while it is still in the
// editing window. Only the original proposer may edit; terms freeze the
// moment the window closes.
func (s *Service) EditLoanProposal(ctx context.Context, proposalID, callerID int, amount int64, amountCommitment string) (*domain.LoanProposal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var edited *domain.LoanProposal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		p, err := s.proposalRepo.FindLoanProposalByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProposalNotFound
		}
		if p.Status != domain.ProposalStatusPending {
			return ErrProposalNotPending
		}
		if p.BorrowerID != callerID {
			return ErrNotAuthorized
		}

		now := time.Now()
		if SyncLoanPhase(p, now) {
			// The window closed; persist the transition before refusing.
			if err := s.proposalRepo.UpdateLoanProposal(ctx, p); err != nil {
				return err
			}
			return ErrEditingPeriodEnded
		}
		if p.Phase != domain.ProposalPhaseEditing {
			return ErrEditingPeriodEnded
		}

		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		treasury, err := s.treasuryRepo.Get(ctx)
		if err != nil {
			return err
		}
		if err := checkLoanRatio(amount, treasury.Balance, policy); err != nil {
			return err
		}

		terms, err := loanservice.CalculateTerms(amount, treasury.Balance, policy)
		if err != nil {
			return err
		}

		p.Amount = amount
		if p.Private {
			if amountCommitment == "" {
				return ErrMissingCommitment
			}
			p.AmountCommitment = amountCommitment
		}
		p.InterestRateBps = terms.RateBps
		p.TotalRepayment = terms.TotalRepayment
		p.TermSeconds = terms.TermSeconds
		if err := s.proposalRepo.UpdateLoanProposal(ctx, p); err != nil {
			return err
		}
		edited = p

		return s.eventRepo.Record(ctx, "PROPOSAL_EDITED", "loan_proposal", p.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// AttachDocument stores an opaque document in the external registry and
// links its handle to the proposal. The registry call happens before any
// state is mutated.
func (s *Service) AttachDocument(ctx context.Context, proposalID, callerID int, data []byte, metadata map[string]string) (string, error) {
	p, err := s.proposalRepo.FindLoanProposalByID(ctx, proposalID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrProposalNotFound
	}
	if p.BorrowerID != callerID {
		return "", ErrNotAuthorized
	}

	handle, err := s.documents.Store(ctx, data, metadata)
	if err != nil {
		return "", err
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		p, err := s.proposalRepo.FindLoanProposalByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProposalNotFound
		}
		p.DocumentHandle = handle
		return s.proposalRepo.UpdateLoanProposal(ctx, p)
	})
	if err != nil {
		return "", err
	}
	return handle, nil
}

// CreateTreasuryProposal opens a withdrawal request. There is no editing
// phase: the voting window starts immediately.
func (s *Service) CreateTreasuryProposal(ctx context.Context, proposerID int, amount int64, destination, reason string) (*domain.TreasuryProposal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if destination == "" {
		return nil, ErrInvalidDestination
	}

	var created *domain.TreasuryProposal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		member, err := s.memberRepo.FindByID(ctx, proposerID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}
		if member.Status != domain.MemberStatusActive {
			return ErrMemberNotActive
		}

		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}

		created, err = s.proposalRepo.CreateTreasuryProposal(ctx, &domain.TreasuryProposal{
			ProposerID:     proposerID,
			Amount:         amount,
			Destination:    destination,
			Reason:         reason,
			Phase:          domain.ProposalPhaseVoting,
			Status:         domain.ProposalStatusPending,
			VotingDeadline: time.Now().Add(time.Duration(policy.VotingPeriodSecs) * time.Second),
		})
		if err != nil {
			return err
		}

		return s.eventRepo.Record(ctx, "PROPOSAL_CREATED", "treasury_proposal", created.ID, map[string]any{
			"proposer_id": proposerID,
			"amount":      amount,
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("treasury proposal created", zap.Int("proposalID", created.ID))
	return created, nil
}

// GetLoanProposal returns the proposal with the lazy phase applied to the
// view; persistence of the transition happens on the next mutating touch.
func (s *Service) GetLoanProposal(ctx context.Context, proposalID int) (*domain.LoanProposal, error) {
	p, err := s.proposalRepo.FindLoanProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProposalNotFound
	}
	SyncLoanPhase(p, time.Now())
	return p, nil
}

func (s *Service) GetTreasuryProposal(ctx context.Context, proposalID int) (*domain.TreasuryProposal, error) {
	p, err := s.proposalRepo.FindTreasuryProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProposalNotFound
	}
	return p, nil
}

func (s *Service) ListLoanProposals(ctx context.Context) ([]domain.LoanProposal, error) {
	proposals, err := s.proposalRepo.ListLoanProposals(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range proposals {
		SyncLoanPhase(&proposals[i], now)
	}
	return proposals, nil
}

func (s *Service) ListTreasuryProposals(ctx context.Context) ([]domain.TreasuryProposal, error) {
	return s.proposalRepo.ListTreasuryProposals(ctx)
}
