package votingservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mocks struct {
	proposalRepo *MockProposalRepo
	voteRepo     *MockVoteRepo
	memberRepo   *MockMemberRepo
	treasuryRepo *MockTreasuryRepo
	policyRepo   *MockPolicyRepo
	eventRepo    *MockEventRepo
	loans        *MockLoanApprover
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		proposalRepo: NewMockProposalRepo(ctrl),
		voteRepo:     NewMockVoteRepo(ctrl),
		memberRepo:   NewMockMemberRepo(ctrl),
		treasuryRepo: NewMockTreasuryRepo(ctrl),
		policyRepo:   NewMockPolicyRepo(ctrl),
		eventRepo:    NewMockEventRepo(ctrl),
		loans:        NewMockLoanApprover(ctrl),
	}
	service := New(
		m.proposalRepo, m.voteRepo, m.memberRepo, m.treasuryRepo, m.policyRepo, m.eventRepo,
		m.loans,
		capability.NewFlatWeightSource(100),
		capability.DisabledPrivacyBackend{},
		passthroughTx{},
	)
	return service, m
}

func testPolicy() *domain.Policy {
	return &domain.Policy{
		LoanThresholdBps:     5100,
		TreasuryThresholdBps: 6600,
		DefaultVoteWeight:    100,
	}
}

func pendingLoanProposal(weightFor int64) *domain.LoanProposal {
	return &domain.LoanProposal{
		ID:             1,
		BorrowerID:     1,
		Amount:         2000,
		WeightFor:      weightFor,
		Phase:          domain.ProposalPhaseVoting,
		Status:         domain.ProposalStatusPending,
		VotingDeadline: time.Now().Add(time.Hour),
	}
}

func activeVoter(id int, weight int64) *domain.Member {
	return &domain.Member{ID: id, Status: domain.MemberStatusActive, VoteWeight: weight}
}

func TestRequiredWeightedVotes(t *testing.T) {
	tests := []struct {
		name        string
		totalWeight int64
		threshold   int64
		expected    int64
	}{
		{"simple majority floor", 500, 5100, 255},
		{"supermajority", 1000, 6600, 660},
		{"tiny electorate floors down", 3, 5100, 1},
		{"remainder is dropped, never rounded up", 999, 5100, 509},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredWeightedVotes(tt.totalWeight, tt.threshold))
		})
	}
}

func TestCastLoanVote(t *testing.T) {
	t.Run("ballot below threshold leaves proposal pending", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(100)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, 2).Return(false, nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(500), nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "loan_proposal", 1, gomock.Any()).Return(nil)
		m.proposalRepo.EXPECT().UpdateLoanProposal(gomock.Any(), p).Return(nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(200), p.WeightFor)
		assert.Equal(t, domain.ProposalStatusPending, p.Status)
	})

	t.Run("crossing the threshold approves and disburses in the same call", func(t *testing.T) {
		service, m := NewMock(t)
		// 500 total weight at 51% requires 255; 200 + 100 = 300 crosses it.
		p := pendingLoanProposal(200)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 3).Return(activeVoter(3, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, 3).Return(false, nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(500), nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "loan_proposal", 1, gomock.Any()).Return(nil)
		m.loans.EXPECT().Approve(gomock.Any(), p).Return(&domain.Loan{ID: 7}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_APPROVED", "loan_proposal", 1, gomock.Any()).Return(nil)
		m.proposalRepo.EXPECT().UpdateLoanProposal(gomock.Any(), p).Return(nil)

		err := service.CastLoanVote(context.Background(), 1, 3, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusApproved, p.Status)
		assert.Equal(t, domain.ProposalPhaseExecuted, p.Phase)
	})

	t.Run("failed disbursement rolls the whole vote back", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(200)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 3).Return(activeVoter(3, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, 3).Return(false, nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(500), nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "loan_proposal", 1, gomock.Any()).Return(nil)
		m.loans.EXPECT().Approve(gomock.Any(), p).Return(nil, errors.New("insufficient treasury balance"))

		err := service.CastLoanVote(context.Background(), 1, 3, true, nil)
		assert.Error(t, err)
	})

	t.Run("proposer cannot vote on own proposal", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(0)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)

		err := service.CastLoanVote(context.Background(), 1, 1, true, nil)
		assert.ErrorIs(t, err, ErrCannotVoteOnOwnProposal)
	})

	t.Run("double voting rejected", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(100)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, 2).Return(true, nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.ErrorIs(t, err, ErrAlreadyVoted)
	})

	t.Run("lapsed voting window rejects the proposal and refuses the ballot", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(100)
		p.VotingDeadline = time.Now().Add(-time.Minute)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_REJECTED", "loan_proposal", 1, nil).Return(nil)
		m.proposalRepo.EXPECT().UpdateLoanProposal(gomock.Any(), p).Return(nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.ErrorIs(t, err, ErrVotingClosed)
		assert.Equal(t, domain.ProposalStatusRejected, p.Status)
	})

	t.Run("editing phase proposal persists the lazy transition then accepts", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(0)
		p.Phase = domain.ProposalPhaseEditing
		p.EditingDeadline = time.Now().Add(-time.Minute)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)
		m.proposalRepo.EXPECT().UpdateLoanProposal(gomock.Any(), p).Return(nil).Times(2)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, 2).Return(false, nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(500), nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "loan_proposal", 1, gomock.Any()).Return(nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalPhaseVoting, p.Phase)
	})

	t.Run("editing phase before deadline rejects the ballot", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(0)
		p.Phase = domain.ProposalPhaseEditing
		p.EditingDeadline = time.Now().Add(time.Hour)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.ErrorIs(t, err, ErrVotingNotStarted)
	})

	t.Run("finalized proposal rejects further ballots", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(300)
		p.Status = domain.ProposalStatusApproved
		p.Phase = domain.ProposalPhaseExecuted

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.ErrorIs(t, err, ErrProposalFinalized)
	})
}

func TestVoteWeightSnapshot(t *testing.T) {
	t.Run("ballot weight is captured at cast time and survives later weight changes", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingLoanProposal(0)

		voter2 := activeVoter(2, 100)
		voter3 := activeVoter(3, 500)

		var recorded []*domain.WeightedVote
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *domain.WeightedVote) (*domain.WeightedVote, error) {
				recorded = append(recorded, v)
				return v, nil
			}).Times(2)

		m.proposalRepo.EXPECT().FindLoanProposalByIDForUpdate(gomock.Any(), 1).Return(p, nil).Times(2)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(voter2, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 3).Return(voter3, nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindLoan, 1, gomock.Any()).Return(false, nil).Times(2)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(10000), nil).Times(2)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "loan_proposal", 1, gomock.Any()).Return(nil).Times(2)
		m.proposalRepo.EXPECT().UpdateLoanProposal(gomock.Any(), p).Return(nil).Times(2)

		err := service.CastLoanVote(context.Background(), 1, 2, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(100), recorded[0].Weight)
		assert.Equal(t, int64(100), p.WeightFor)

		// A weight change after the ballot is cast must not rewrite it.
		voter2.VoteWeight = 500

		err = service.CastLoanVote(context.Background(), 1, 3, true, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(100), recorded[0].Weight)
		assert.Equal(t, int64(500), recorded[1].Weight)
		assert.Equal(t, int64(600), p.WeightFor)
	})
}

func TestCastTreasuryVote(t *testing.T) {
	pendingWithdrawal := func() *domain.TreasuryProposal {
		return &domain.TreasuryProposal{
			ID:             5,
			ProposerID:     1,
			Amount:         400,
			Destination:    "grants",
			WeightFor:      600,
			Phase:          domain.ProposalPhaseVoting,
			Status:         domain.ProposalStatusPending,
			VotingDeadline: time.Now().Add(time.Hour),
		}
	}

	t.Run("crossing the treasury threshold executes the withdrawal", func(t *testing.T) {
		service, m := NewMock(t)
		// 1000 total weight at 66% requires 660; 600 + 100 = 700 crosses it.
		p := pendingWithdrawal()
		treasury := &domain.Treasury{Balance: 1000}

		m.proposalRepo.EXPECT().FindTreasuryProposalByIDForUpdate(gomock.Any(), 5).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindTreasury, 5, 2).Return(false, nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "treasury_proposal", 5, gomock.Any()).Return(nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(1000), nil)
		m.treasuryRepo.EXPECT().GetForUpdate(gomock.Any()).Return(treasury, nil)
		m.treasuryRepo.EXPECT().Update(gomock.Any(), treasury).Return(nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "TREASURY_WITHDRAWAL_EXECUTED", "treasury_proposal", 5, gomock.Any()).Return(nil)
		m.proposalRepo.EXPECT().UpdateTreasuryProposal(gomock.Any(), p).Return(nil)

		err := service.CastTreasuryVote(context.Background(), 5, 2, true)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusApproved, p.Status)
		assert.Equal(t, int64(600), treasury.Balance)
	})

	t.Run("insufficient liquid balance blocks execution", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingWithdrawal()
		treasury := &domain.Treasury{Balance: 1000, Delegated: 700}

		m.proposalRepo.EXPECT().FindTreasuryProposalByIDForUpdate(gomock.Any(), 5).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindTreasury, 5, 2).Return(false, nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "treasury_proposal", 5, gomock.Any()).Return(nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(1000), nil)
		m.treasuryRepo.EXPECT().GetForUpdate(gomock.Any()).Return(treasury, nil)

		err := service.CastTreasuryVote(context.Background(), 5, 2, true)
		assert.ErrorIs(t, err, ErrInsufficientTreasury)
	})

	t.Run("against votes never trigger execution", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingWithdrawal()

		m.proposalRepo.EXPECT().FindTreasuryProposalByIDForUpdate(gomock.Any(), 5).Return(p, nil)
		m.memberRepo.EXPECT().FindByID(gomock.Any(), 2).Return(activeVoter(2, 100), nil)
		m.policyRepo.EXPECT().Get(gomock.Any()).Return(testPolicy(), nil).AnyTimes()
		m.voteRepo.EXPECT().Exists(gomock.Any(), domain.ProposalKindTreasury, 5, 2).Return(false, nil)
		m.voteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.WeightedVote{}, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_VOTED", "treasury_proposal", 5, gomock.Any()).Return(nil)
		m.memberRepo.EXPECT().SumActiveWeight(gomock.Any()).Return(int64(1000), nil)
		m.proposalRepo.EXPECT().UpdateTreasuryProposal(gomock.Any(), p).Return(nil)

		err := service.CastTreasuryVote(context.Background(), 5, 2, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusPending, p.Status)
		assert.Equal(t, int64(100), p.WeightAgainst)
	})

	t.Run("lapsed voting window rejects the proposal", func(t *testing.T) {
		service, m := NewMock(t)
		p := pendingWithdrawal()
		p.VotingDeadline = time.Now().Add(-time.Minute)

		m.proposalRepo.EXPECT().FindTreasuryProposalByIDForUpdate(gomock.Any(), 5).Return(p, nil)
		m.eventRepo.EXPECT().Record(gomock.Any(), "PROPOSAL_REJECTED", "treasury_proposal", 5, nil).Return(nil)
		m.proposalRepo.EXPECT().UpdateTreasuryProposal(gomock.Any(), p).Return(nil)

		err := service.CastTreasuryVote(context.Background(), 5, 2, true)
		assert.ErrorIs(t, err, ErrVotingClosed)
		assert.Equal(t, domain.ProposalStatusRejected, p.Status)
	})
}
