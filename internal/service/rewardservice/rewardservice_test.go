package rewardservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRewardRepo struct {
	balances map[int]*domain.RewardBalance
}

func (f *fakeRewardRepo) CreateBalance(_ context.Context, memberID int) (*domain.RewardBalance, error) {
	rb := &domain.RewardBalance{MemberID: memberID}
	f.balances[memberID] = rb
	return rb, nil
}

func (f *fakeRewardRepo) Get(_ context.Context, memberID int) (*domain.RewardBalance, error) {
	return f.balances[memberID], nil
}

func (f *fakeRewardRepo) GetForUpdate(_ context.Context, memberID int) (*domain.RewardBalance, error) {
	return f.balances[memberID], nil
}

func (f *fakeRewardRepo) Set(_ context.Context, rb *domain.RewardBalance) error {
	f.balances[rb.MemberID] = rb
	return nil
}

func (f *fakeRewardRepo) Add(_ context.Context, memberID int, interest, yield int64) error {
	rb := f.balances[memberID]
	rb.PendingInterest += interest
	rb.PendingYield += yield
	return nil
}

func (f *fakeRewardRepo) AddToActiveMembers(_ context.Context, interestPerMember, yieldPerMember int64) (int, error) {
	for _, rb := range f.balances {
		rb.PendingInterest += interestPerMember
		rb.PendingYield += yieldPerMember
	}
	return len(f.balances), nil
}

type fakeMemberRepo struct {
	active        int
	shareBalances map[int]int64
}

func (f *fakeMemberRepo) CountActive(_ context.Context) (int, error) {
	return f.active, nil
}

func (f *fakeMemberRepo) AddShareBalance(_ context.Context, id int, delta int64) error {
	f.shareBalances[id] += delta
	return nil
}

type fakeTreasuryRepo struct {
	treasury *domain.Treasury
}

func (f *fakeTreasuryRepo) GetForUpdate(_ context.Context) (*domain.Treasury, error) {
	return f.treasury, nil
}

func (f *fakeTreasuryRepo) Update(_ context.Context, t *domain.Treasury) error {
	f.treasury = t
	return nil
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

type fixture struct {
	service  *Service
	rewards  *fakeRewardRepo
	members  *fakeMemberRepo
	treasury *fakeTreasuryRepo
	events   *fakeEventRepo
}

func newFixture(memberIDs ...int) *fixture {
	rewards := &fakeRewardRepo{balances: make(map[int]*domain.RewardBalance)}
	for _, id := range memberIDs {
		rewards.balances[id] = &domain.RewardBalance{MemberID: id}
	}
	members := &fakeMemberRepo{active: len(memberIDs), shareBalances: make(map[int]int64)}
	treasury := &fakeTreasuryRepo{treasury: &domain.Treasury{Balance: 10000}}
	policy := &fakePolicyRepo{policy: &domain.Policy{
		MemberShareBps:      7000,
		TreasuryShareBps:    2000,
		OperationalShareBps: 1000,
	}}
	events := &fakeEventRepo{}
	return &fixture{
		service:  New(rewards, members, treasury, policy, events, passthroughTx{}),
		rewards:  rewards,
		members:  members,
		treasury: treasury,
		events:   events,
	}
}

func TestDistributeInterest(t *testing.T) {
	t.Run("splits by shares and floors the per-member amount", func(t *testing.T) {
		f := newFixture(1, 2, 3)

		err := f.service.DistributeInterest(context.Background(), 1000)
		assert.NoError(t, err)

		// member share 700 over 3 members = 233 each, remainder stays put
		for _, id := range []int{1, 2, 3} {
			assert.Equal(t, int64(233), f.rewards.balances[id].PendingInterest)
			assert.Equal(t, int64(0), f.rewards.balances[id].PendingYield)
		}
		// operational share 100 leaves the balance for the pool
		assert.Equal(t, int64(9900), f.treasury.treasury.Balance)
		assert.Equal(t, int64(100), f.treasury.treasury.OperationalPool)
		assert.Contains(t, f.events.kinds, "INTEREST_DISTRIBUTED")
	})

	t.Run("yield goes to the yield column", func(t *testing.T) {
		f := newFixture(1, 2)

		err := f.service.DistributeYield(context.Background(), 1000)
		assert.NoError(t, err)
		assert.Equal(t, int64(350), f.rewards.balances[1].PendingYield)
		assert.Equal(t, int64(0), f.rewards.balances[1].PendingInterest)
		assert.Contains(t, f.events.kinds, "YIELD_DISTRIBUTED")
	})

	t.Run("misconfigured shares are rejected", func(t *testing.T) {
		f := newFixture(1)
		f.service.policyRepo.(*fakePolicyRepo).policy.MemberShareBps = 5000

		err := f.service.DistributeInterest(context.Background(), 1000)
		assert.ErrorIs(t, err, ErrInvalidShares)
	})

	t.Run("zero total is a no-op", func(t *testing.T) {
		f := newFixture(1)
		assert.NoError(t, f.service.DistributeInterest(context.Background(), 0))
		assert.Empty(t, f.events.kinds)
	})
}

func TestClaim(t *testing.T) {
	t.Run("claim pays out and a repeat claim finds nothing", func(t *testing.T) {
		f := newFixture(1)
		f.rewards.balances[1].PendingInterest = 100
		f.rewards.balances[1].PendingYield = 50

		claimed, err := f.service.Claim(context.Background(), 1, ClaimAll)
		assert.NoError(t, err)
		assert.Equal(t, int64(150), claimed)
		assert.Equal(t, int64(9850), f.treasury.treasury.Balance)
		assert.Equal(t, int64(150), f.members.shareBalances[1])

		_, err = f.service.Claim(context.Background(), 1, ClaimAll)
		assert.ErrorIs(t, err, ErrNoPendingAmount)
	})

	t.Run("claiming one kind leaves the other untouched", func(t *testing.T) {
		f := newFixture(1)
		f.rewards.balances[1].PendingInterest = 100
		f.rewards.balances[1].PendingYield = 50

		claimed, err := f.service.Claim(context.Background(), 1, ClaimInterest)
		assert.NoError(t, err)
		assert.Equal(t, int64(100), claimed)
		assert.Equal(t, int64(50), f.rewards.balances[1].PendingYield)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		f := newFixture(1)
		f.rewards.balances[1].PendingInterest = 100

		_, err := f.service.Claim(context.Background(), 1, "bogus")
		assert.ErrorIs(t, err, ErrUnknownClaimKind)
	})

	t.Run("missing ledger row is reported", func(t *testing.T) {
		f := newFixture(1)

		_, err := f.service.Claim(context.Background(), 99, ClaimAll)
		assert.ErrorIs(t, err, ErrBalanceNotFound)
	})
}

func TestBatchClaim(t *testing.T) {
	f := newFixture(1, 2)
	f.rewards.balances[1].PendingInterest = 100
	f.rewards.balances[2].PendingInterest = 200

	// member 3 has no ledger row and must not sink the batch
	paid, failed := f.service.BatchClaim(context.Background(), []int{1, 3, 2}, ClaimInterest)
	assert.Equal(t, int64(300), paid)
	assert.Equal(t, []int{3}, failed)
}

func TestEscheat(t *testing.T) {
	f := newFixture(1)
	f.rewards.balances[1].PendingInterest = 70
	f.rewards.balances[1].PendingYield = 30

	forfeited, err := f.service.Escheat(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), forfeited)
	assert.Equal(t, int64(0), f.rewards.balances[1].PendingInterest)
	assert.Equal(t, int64(0), f.rewards.balances[1].PendingYield)
	// funds never leave the treasury on escheat
	assert.Equal(t, int64(10000), f.treasury.treasury.Balance)

	forfeited, err = f.service.Escheat(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), forfeited)
}
