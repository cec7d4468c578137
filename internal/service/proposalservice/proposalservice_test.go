package proposalservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProposalRepo struct {
	ProposalRepo

	created *domain.LoanProposal
}

func (f *fakeProposalRepo) CreateLoanProposal(_ context.Context, p *domain.LoanProposal) (*domain.LoanProposal, error) {
	p.ID = 1
	f.created = p
	return p, nil
}

type fakeMemberRepo struct {
	member *domain.Member
}

func (f *fakeMemberRepo) FindByID(_ context.Context, _ int) (*domain.Member, error) {
	return f.member, nil
}

type fakeTreasuryRepo struct {
	treasury *domain.Treasury
}

func (f *fakeTreasuryRepo) Get(_ context.Context) (*domain.Treasury, error) {
	return f.treasury, nil
}

type fakePolicyRepo struct {
	policy *domain.Policy
}

func (f *fakePolicyRepo) Get(_ context.Context) (*domain.Policy, error) {
	return f.policy, nil
}

type fakeEventRepo struct {
	kinds []string
}

func (f *fakeEventRepo) Record(_ context.Context, kind, _ string, _ int, _ any) error {
	f.kinds = append(f.kinds, kind)
	return nil
}

type alwaysEligible struct{}

func (alwaysEligible) IsEligibleForLoan(_ *domain.Member, _ *domain.Policy, _ time.Time) bool {
	return true
}

func TestSyncLoanPhase(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("editing proposal past its deadline moves to voting", func(t *testing.T) {
		p := &domain.LoanProposal{
			Phase:           domain.ProposalPhaseEditing,
			EditingDeadline: now.Add(-time.Minute),
		}
		assert.True(t, SyncLoanPhase(p, now))
		assert.Equal(t, domain.ProposalPhaseVoting, p.Phase)
	})

	t.Run("editing proposal before the deadline stays put", func(t *testing.T) {
		p := &domain.LoanProposal{
			Phase:           domain.ProposalPhaseEditing,
			EditingDeadline: now.Add(time.Minute),
		}
		assert.False(t, SyncLoanPhase(p, now))
		assert.Equal(t, domain.ProposalPhaseEditing, p.Phase)
	})

	t.Run("deadline boundary itself still counts as editing", func(t *testing.T) {
		p := &domain.LoanProposal{
			Phase:           domain.ProposalPhaseEditing,
			EditingDeadline: now,
		}
		assert.False(t, SyncLoanPhase(p, now))
	})

	t.Run("voting proposal is never touched", func(t *testing.T) {
		p := &domain.LoanProposal{
			Phase:           domain.ProposalPhaseVoting,
			EditingDeadline: now.Add(-time.Hour),
		}
		assert.False(t, SyncLoanPhase(p, now))
		assert.Equal(t, domain.ProposalPhaseVoting, p.Phase)
	})

	t.Run("executed proposal is never touched", func(t *testing.T) {
		p := &domain.LoanProposal{
			Phase:           domain.ProposalPhaseExecuted,
			EditingDeadline: now.Add(-time.Hour),
		}
		assert.False(t, SyncLoanPhase(p, now))
	})
}

func TestCreateLoanProposalPrivacyGate(t *testing.T) {
	newService := func(privacyMode bool) (*Service, *fakeProposalRepo) {
		proposalRepo := &fakeProposalRepo{}
		service := New(
			proposalRepo,
			&fakeMemberRepo{member: &domain.Member{ID: 1, Status: domain.MemberStatusActive}},
			&fakeTreasuryRepo{treasury: &domain.Treasury{Balance: 10000}},
			&fakePolicyRepo{policy: &domain.Policy{
				PrivacyMode:       privacyMode,
				MinRateBps:        500,
				MaxRateBps:        2000,
				MaxLoanTermSecs:   2592000,
				EditingPeriodSecs: 3600,
				VotingPeriodSecs:  86400,
			}},
			&fakeEventRepo{},
			alwaysEligible{},
			capability.NullDocumentRegistry{},
			passthroughTx{},
		)
		return service, proposalRepo
	}

	t.Run("private proposal refused while privacy mode is off", func(t *testing.T) {
		service, proposalRepo := newService(false)

		_, err := service.CreateLoanProposal(context.Background(), 1, 1000, true, "commitment")
		assert.ErrorIs(t, err, ErrPrivacyModeOff)
		assert.Nil(t, proposalRepo.created)
	})

	t.Run("private proposal accepted when privacy mode is on", func(t *testing.T) {
		service, proposalRepo := newService(true)

		p, err := service.CreateLoanProposal(context.Background(), 1, 1000, true, "commitment")
		assert.NoError(t, err)
		assert.True(t, p.Private)
		assert.NotNil(t, proposalRepo.created)
	})

	t.Run("public proposal ignores the privacy flag", func(t *testing.T) {
		service, _ := newService(false)

		p, err := service.CreateLoanProposal(context.Background(), 1, 1000, false, "")
		assert.NoError(t, err)
		assert.False(t, p.Private)
	})
}

func TestCheckLoanRatio(t *testing.T) {
	policy := &domain.Policy{MaxLoanRatioBps: 2000}

	tests := []struct {
		name        string
		amount      int64
		balance     int64
		expectedErr error
	}{
		{"under the cap", 1000, 20000, nil},
		{"exactly at the cap", 4000, 20000, nil},
		{"over the cap", 4002, 20000, ErrExceedsMaxLoanRatio},
		{"cap disabled when zero", 19999, 20000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := policy
			if tt.name == "cap disabled when zero" {
				p = &domain.Policy{MaxLoanRatioBps: 0}
			}
			err := checkLoanRatio(tt.amount, tt.balance, p)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
