package loanservice

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"go.uber.org/zap"
)

type LoanRepo interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id int) (*domain.Loan, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	ListByBorrower(ctx context.Context, borrowerID int) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error)
}

type MemberRepo interface {
	SetActiveLoan(ctx context.Context, id int, hasActiveLoan bool, lastLoanAt time.Time) error
	ClearActiveLoan(ctx context.Context, id int) error
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

// InterestDistributor routes repaid interest into the reward ledger.
type InterestDistributor interface {
	DistributeInterest(ctx context.Context, total int64) error
}

var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrNotAuthorized        = errors.New("caller is not the borrower")
	ErrLoanNotActive        = errors.New("loan is not active")
	ErrIncorrectAmount      = errors.New("payment must equal total repayment")
	ErrInsufficientTreasury = errors.New("insufficient treasury balance")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

// Terms is the priced offer for a requested amount.
type Terms struct {
	RateBps        int64
	TotalRepayment int64
	TermSeconds    int64
}

type Service struct {
	loanRepo     LoanRepo
	memberRepo   MemberRepo
	treasuryRepo TreasuryRepo
	policyRepo   PolicyRepo
	eventRepo    EventRepo
	distributor  InterestDistributor
	txManager    pg.TXManager
}

func New(loanRepo LoanRepo, memberRepo MemberRepo, treasuryRepo TreasuryRepo, policyRepo PolicyRepo, eventRepo EventRepo, distributor InterestDistributor, txManager pg.TXManager) *Service {
	return &Service{
		loanRepo:     loanRepo,
		memberRepo:   memberRepo,
		treasuryRepo: treasuryRepo,
		policyRepo:   policyRepo,
		eventRepo:    eventRepo,
		distributor:  distributor,
		txManager:    txManager,
	}
}

// CalculateTerms prices a loan on a linear risk curve: the larger the loan
// relative to the treasury, the higher the rate, up to the policy ceiling.
// All divisions are floor divisions; the boundaries are load-bearing.
func CalculateTerms(amount, treasuryBalance int64, policy *domain.Policy) (Terms, error) {
	if amount <= 0 {
		return Terms{}, ErrInvalidAmount
	}
	if treasuryBalance <= 0 {
		return Terms{}, ErrInsufficientTreasury
	}

	loanRatio := amount * 10000 / treasuryBalance
	rate := policy.MinRateBps + loanRatio*(policy.MaxRateBps-policy.MinRateBps)/10000
	if rate > policy.MaxRateBps {
		rate = policy.MaxRateBps
	}

	return Terms{
		RateBps:        rate,
		TotalRepayment: amount + amount*rate/10000,
		TermSeconds:    policy.MaxLoanTermSecs,
	}, nil
}

// Approve disburses an approved loan proposal. Must run inside the caller's
// transaction: the sufficiency check is made against the freshly locked
// balance, and a failure rolls the whole approval back, leaving the
// proposal Pending.
func (s *Service) Approve(ctx context.Context, proposal *domain.LoanProposal) (*domain.Loan, error) {
	treasury, err := s.treasuryRepo.GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	if treasury.Balance-treasury.Delegated < proposal.Amount {
		return nil, ErrInsufficientTreasury
	}

	treasury.Balance -= proposal.Amount
	if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
		return nil, err
	}

	now := time.Now()
	loan, err := s.loanRepo.Create(ctx, &domain.Loan{
		ProposalID:      proposal.ID,
		BorrowerID:      proposal.BorrowerID,
		Principal:       proposal.Amount,
		InterestRateBps: proposal.InterestRateBps,
		TotalRepayment:  proposal.TotalRepayment,
		Status:          domain.LoanStatusActive,
		DueAt:           now.Add(time.Duration(proposal.TermSeconds) * time.Second),
	})
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.SetActiveLoan(ctx, proposal.BorrowerID, true, now); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Record(ctx, "LOAN_DISBURSED", "loan", loan.ID, map[string]int64{
		"principal":       loan.Principal,
		"rate_bps":        loan.InterestRateBps,
		"total_repayment": loan.TotalRepayment,
	}); err != nil {
		return nil, err
	}

	zap.L().Info("loan disbursed",
		zap.Int("loanID", loan.ID),
		zap.Int("borrowerID", loan.BorrowerID),
		zap.Int64("principal", loan.Principal),
	)
	return loan, nil
}

// Repay settles an active loan in full. The payment must match the total
// repayment exactly; the interest portion is distributed to members.
func (s *Service) Repay(ctx context.Context, loanID, callerID int, payment int64) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return ErrLoanNotFound
		}
		if loan.BorrowerID != callerID {
			return ErrNotAuthorized
		}
		if loan.Status != domain.LoanStatusActive {
			return ErrLoanNotActive
		}
		if payment != loan.TotalRepayment {
			return ErrIncorrectAmount
		}

		loan.AmountRepaid = payment
		loan.Status = domain.LoanStatusRepaid
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return err
		}

		if err := s.memberRepo.ClearActiveLoan(ctx, loan.BorrowerID); err != nil {
			return err
		}

		treasury, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		treasury.Balance += payment
		if err := s.treasuryRepo.Update(ctx, treasury); err != nil {
			return err
		}

		if interest := payment - loan.Principal; interest > 0 {
			if err := s.distributor.DistributeInterest(ctx, interest); err != nil {
				return err
			}
		}

		if err := s.eventRepo.Record(ctx, "LOAN_REPAID", "loan", loan.ID, map[string]int64{
			"payment":  payment,
			"interest": payment - loan.Principal,
		}); err != nil {
			return err
		}

		zap.L().Info("loan repaid", zap.Int("loanID", loan.ID), zap.Int64("payment", payment))
		return nil
	})
}

func (s *Service) GetLoan(ctx context.Context, loanID int) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

func (s *Service) GetLoansByBorrower(ctx context.Context, borrowerID int) ([]domain.Loan, error) {
	return s.loanRepo.ListByBorrower(ctx, borrowerID)
}

func (s *Service) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

func (s *Service) ListOverdueLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, time.Now())
}
