package votingservice

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"github.com/akarpov/coopledger/internal/service/proposalservice"
	"go.uber.org/zap"
)

//go:generate mockgen -source=votingservice.go -destination=mock_votingservice.go -package=votingservice

type ProposalRepo interface {
	FindLoanProposalByIDForUpdate(ctx context.Context, id int) (*domain.LoanProposal, error)
	UpdateLoanProposal(ctx context.Context, p *domain.LoanProposal) error
	FindTreasuryProposalByIDForUpdate(ctx context.Context, id int) (*domain.TreasuryProposal, error)
	UpdateTreasuryProposal(ctx context.Context, p *domain.TreasuryProposal) error
}

type VoteRepo interface {
	Create(ctx context.Context, vote *domain.WeightedVote) (*domain.WeightedVote, error)
	Exists(ctx context.Context, proposalKind string, proposalID, voterID int) (bool, error)
	ListByProposal(ctx context.Context, proposalKind string, proposalID int) ([]domain.WeightedVote, error)
}

type MemberRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Member, error)
	SumActiveWeight(ctx context.Context) (int64, error)
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

// LoanApprover disburses an approved loan proposal inside the voting
// transaction.
type LoanApprover interface {
	Approve(ctx context.Context, proposal *domain.LoanProposal) (*domain.Loan, error)
}

var (
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrCannotVoteOnOwnProposal = errors.New("cannot vote on own proposal")
	ErrAlreadyVoted            = errors.New("member has already voted on this proposal")
	ErrVotingNotStarted        = errors.New("proposal is still in the editing period")
	ErrVotingClosed            = errors.New("voting window has closed")
	ErrProposalFinalized       = errors.New("proposal is already finalized")
	ErrVoterNotActive          = errors.New("voter is not an active member")
	ErrInsufficientTreasury    = errors.New("insufficient treasury balance")
	ErrMissingEncryptedChoice  = errors.New("private proposal requires an encrypted choice")
	ErrUnexpectedEncryptedVote = errors.New("encrypted choice given for a public proposal")
)

type Service struct {
	proposalRepo ProposalRepo
	voteRepo     VoteRepo
	memberRepo   MemberRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	loans        LoanApprover
	weightSource capability.VotingWeightSource
	privacy      capability.PrivacyTallyBackend
	txManager    pg.TXManager
}

func New(
	proposalRepo ProposalRepo,
	voteRepo VoteRepo,
	memberRepo MemberRepo,
	treasuryRepo TreasuryRepo,
	policyRepo PolicyRepo,
	eventRepo EventRepo,
	loans LoanApprover,
	weightSource capability.VotingWeightSource,
	privacy capability.PrivacyTallyBackend,
	txManager pg.TXManager,
) *Service {
	return &Service{
		proposalRepo: proposalRepo,
		voteRepo:     voteRepo,
		memberRepo:   memberRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		loans:        loans,
		weightSource: weightSource,
		privacy:      privacy,
		txManager:    txManager,
	}
}

// RequiredWeightedVotes computes the approval bar with integer floor
// division. Floor under-counts the requirement at the boundary; that is
// the documented behavior and must not be "fixed" to round up.
func RequiredWeightedVotes(totalPossibleWeight, thresholdBps int64) int64 {
	return totalPossibleWeight * thresholdBps / 10000
}

// CastLoanVote records a weighted ballot on a loan proposal and finalizes
// the proposal the moment the weighted "for" tally reaches the required
// threshold. Approval and disbursement happen in the same transaction; if
// disbursement fails, the vote itself rolls back and the proposal stays
// Pending. A vote arriving after the voting window lazily rejects the
// proposal; the rejection commits even though the vote is refused.
func (s *Service) CastLoanVote(ctx context.Context, proposalID, voterID int, support bool, encryptedChoice []byte) error {
	lapsed := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		p, err := s.proposalRepo.FindLoanProposalByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProposalNotFound
		}

		now := time.Now()
		if proposalservice.SyncLoanPhase(p, now) {
			if err := s.proposalRepo.UpdateLoanProposal(ctx, p); err != nil {
				return err
			}
		}

		if p.Status != domain.ProposalStatusPending {
			return ErrProposalFinalized
		}
		if p.Phase == domain.ProposalPhaseEditing {
			return ErrVotingNotStarted
		}
		if now.After(p.VotingDeadline) {
			lapsed = true
			p.Status = domain.ProposalStatusRejected
			if err := s.eventRepo.Record(ctx, "PROPOSAL_REJECTED", "loan_proposal", proposalID, nil); err != nil {
				return err
			}
			return s.proposalRepo.UpdateLoanProposal(ctx, p)
		}
		if p.BorrowerID == voterID {
			return ErrCannotVoteOnOwnProposal
		}

		voter, weight, err := s.resolveVoter(ctx, voterID)
		if err != nil {
			return err
		}

		voted, err := s.voteRepo.Exists(ctx, domain.ProposalKindLoan, proposalID, voterID)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}

		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}

		totalWeight, err := s.memberRepo.SumActiveWeight(ctx)
		if err != nil {
			return err
		}
		required := RequiredWeightedVotes(totalWeight, policy.LoanThresholdBps)

		approved := false
		if p.Private {
			if len(encryptedChoice) == 0 {
				return ErrMissingEncryptedChoice
			}
			if err := s.privacy.RecordEncryptedVote(ctx, proposalID, voterID, encryptedChoice); err != nil {
				return err
			}
			// Presence-only audit record: the choice stays with the
			// privacy backend, which also answers the threshold query.
			if _, err := s.voteRepo.Create(ctx, &domain.WeightedVote{
				ProposalKind: domain.ProposalKindLoan,
				ProposalID:   proposalID,
				VoterID:      voterID,
				Support:      true,
				Weight:       weight,
			}); err != nil {
				return err
			}
			p.VotesFor++
			approved, err = s.privacy.CheckApproval(ctx, proposalID, required)
			if err != nil {
				return err
			}
		} else {
			if len(encryptedChoice) > 0 {
				return ErrUnexpectedEncryptedVote
			}
			if _, err := s.voteRepo.Create(ctx, &domain.WeightedVote{
				ProposalKind: domain.ProposalKindLoan,
				ProposalID:   proposalID,
				VoterID:      voterID,
				Support:      support,
				Weight:       weight,
			}); err != nil {
				return err
			}
			if support {
				p.VotesFor++
				p.WeightFor += weight
			} else {
				p.VotesAgainst++
				p.WeightAgainst += weight
			}
			approved = p.WeightFor >= required
		}

		if err := s.eventRepo.Record(ctx, "PROPOSAL_VOTED", "loan_proposal", proposalID, map[string]any{
			"voter_id": voter.ID,
			"weight":   weight,
		}); err != nil {
			return err
		}

		if approved {
			if _, err := s.loans.Approve(ctx, p); err != nil {
				return err
			}
			p.Status = domain.ProposalStatusApproved
			p.Phase = domain.ProposalPhaseExecuted
			if err := s.eventRepo.Record(ctx, "PROPOSAL_APPROVED", "loan_proposal", proposalID, nil); err != nil {
				return err
			}
			zap.L().Info("loan proposal approved", zap.Int("proposalID", proposalID), zap.Int64("weightFor", p.WeightFor), zap.Int64("required", required))
		}

		return s.proposalRepo.UpdateLoanProposal(ctx, p)
	})
	if err != nil {
		return err
	}
	if lapsed {
		return ErrVotingClosed
	}
	return nil
}

// CastTreasuryVote records a weighted ballot on a withdrawal proposal.
// Withdrawals use the distinct treasury threshold and execute the
// transfer the moment consensus is reached.
func (s *Service) CastTreasuryVote(ctx context.Context, proposalID, voterID int, support bool) error {
	lapsed := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		p, err := s.proposalRepo.FindTreasuryProposalByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProposalNotFound
		}

		if p.Status != domain.ProposalStatusPending {
			return ErrProposalFinalized
		}
		if time.Now().After(p.VotingDeadline) {
			lapsed = true
			p.Status = domain.ProposalStatusRejected
			if err := s.eventRepo.Record(ctx, "PROPOSAL_REJECTED", "treasury_proposal", proposalID, nil); err != nil {
				return err
			}
			return s.proposalRepo.UpdateTreasuryProposal(ctx, p)
		}
		if p.ProposerID == voterID {
			return ErrCannotVoteOnOwnProposal
		}

		_, weight, err := s.resolveVoter(ctx, voterID)
		if err != nil {
			return err
		}

		voted, err := s.voteRepo.Exists(ctx, domain.ProposalKindTreasury, proposalID, voterID)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}

		if _, err := s.voteRepo.Create(ctx, &domain.WeightedVote{
			ProposalKind: domain.ProposalKindTreasury,
			ProposalID:   proposalID,
			VoterID:      voterID,
			Support:      support,
			Weight:       weight,
		}); err != nil {
			return err
		}

		if support {
			p.VotesFor++
			p.WeightFor += weight
		} else {
			p.VotesAgainst++
			p.WeightAgainst += weight
		}

		if err := s.eventRepo.Record(ctx, "PROPOSAL_VOTED", "treasury_proposal", proposalID, map[string]any{
			"voter_id": voterID,
			"weight":   weight,
		}); err != nil {
			return err
		}

		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return err
		}
		totalWeight, err := s.memberRepo.SumActiveWeight(ctx)
		if err != nil {
			return err
		}
		required := RequiredWeightedVotes(totalWeight, policy.TreasuryThresholdBps)

		if p.WeightFor >= required {
			if err := s.executeWithdrawal(ctx, p); err != nil {
				return err
			}
			p.Status = domain.ProposalStatusApproved
			p.Phase = domain.ProposalPhaseExecuted
			if err := s.eventRepo.Record(ctx, "TREASURY_WITHDRAWAL_EXECUTED", "treasury_proposal", proposalID, map[string]any{
				"amount":      p.Amount,
				"destination": p.Destination,
			}); err != nil {
				return err
			}
			zap.L().Info("treasury withdrawal executed", zap.Int("proposalID", proposalID), zap.Int64("amount", p.Amount))
		}

		return s.proposalRepo.UpdateTreasuryProposal(ctx, p)
	})
	if err != nil {
		return err
	}
	if lapsed {
		return ErrVotingClosed
	}
	return nil
}

func (s *Service) resolveVoter(ctx context.Context, voterID int) (*domain.Member, int64, error) {
	voter, err := s.memberRepo.FindByID(ctx, voterID)
	if err != nil {
		return nil, 0, err
	}
	if voter == nil || voter.Status != domain.MemberStatusActive {
		return nil, 0, ErrVoterNotActive
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	weight := voter.VoteWeight
	if policy.WeightedMode {
		weight, err = s.weightSource.GetVotingWeight(ctx, voterID)
		if err != nil {
			return nil, 0, err
		}
	}
	return voter, weight, nil
}

// executeWithdrawal debits the treasury against the balance locked in this
// transaction; the earlier tally work never caches the balance.
func (s *Service) executeWithdrawal(ctx context.Context, p *domain.TreasuryProposal) error {
	treasury, err := s.treasuryRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	if treasury.Balance-treasury.Delegated < p.Amount {
		return ErrInsufficientTreasury
	}
	treasury.Balance -= p.Amount
	return s.treasuryRepo.Update(ctx, treasury)
}

// ListVotes returns the append-only ballot audit trail for a proposal.
func (s *Service) ListVotes(ctx context.Context, proposalKind string, proposalID int) ([]domain.WeightedVote, error) {
	return s.voteRepo.ListByProposal(ctx, proposalKind, proposalID)
}
