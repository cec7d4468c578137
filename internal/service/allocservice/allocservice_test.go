package allocservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOperatorRepo struct {
	OperatorRepo

	op *domain.Operator
}

func (f *fakeOperatorRepo) FindByID(_ context.Context, _ int) (*domain.Operator, error) {
	return f.op, nil
}

func (f *fakeOperatorRepo) Update(_ context.Context, op *domain.Operator) error {
	f.op = op
	return nil
}

type fakeTreasuryRepo struct {
	TreasuryRepo

	treasury *domain.Treasury
}

func (f *fakeTreasuryRepo) GetForUpdate(_ context.Context) (*domain.Treasury, error) {
	return f.treasury, nil
}

func (f *fakeTreasuryRepo) Update(_ context.Context, t *domain.Treasury) error {
	f.treasury = t
	return nil
}

type fakeEventRepo struct {
	kinds []string
}

func (f *fakeEventRepo) Record(_ context.Context, kind, _ string, _ int, _ any) error {
	f.kinds = append(f.kinds, kind)
	return nil
}

type fakeVault struct {
	capability.YieldVault

	undelegateErr error
}

func (f *fakeVault) Undelegate(_ context.Context, _ int, _ int64) error {
	return f.undelegateErr
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name           string
		uptimeBps      int64
		expectedYield  int64
		actualYield    int64
		slashingEvents int
		expected       int64
	}{
		{
			name:          "perfect operator tops out at 1000",
			uptimeBps:     10000,
			expectedYield: 800,
			actualYield:   800,
			expected:      1000,
		},
		{
			name:          "over-delivery is capped at par",
			uptimeBps:     10000,
			expectedYield: 800,
			actualYield:   1600,
			expected:      1000,
		},
		{
			name:          "half uptime and half yield",
			uptimeBps:     5000,
			expectedYield: 800,
			actualYield:   400,
			// 300 + 200 + 150
			expected: 650,
		},
		{
			name:           "slashing takes 50 per event",
			uptimeBps:      10000,
			expectedYield:  800,
			actualYield:    800,
			slashingEvents: 2,
			expected:       900,
		},
		{
			name:           "heavy slashing is clamped at the floor",
			uptimeBps:      0,
			expectedYield:  800,
			actualYield:    0,
			slashingEvents: 20,
			expected:       100,
		},
		{
			name:          "zero expected yield contributes nothing",
			uptimeBps:     10000,
			expectedYield: 0,
			actualYield:   500,
			expected:      700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerformanceScore(tt.uptimeBps, tt.expectedYield, tt.actualYield, tt.slashingEvents)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRemoveOperator(t *testing.T) {
	newService := func(op *domain.Operator, undelegateErr error) (*Service, *fakeOperatorRepo, *fakeTreasuryRepo) {
		operatorRepo := &fakeOperatorRepo{op: op}
		treasuryRepo := &fakeTreasuryRepo{treasury: &domain.Treasury{Balance: 10000, Delegated: 3000}}
		service := New(
			operatorRepo,
			treasuryRepo,
			nil,
			&fakeEventRepo{},
			nil,
			&fakeVault{undelegateErr: undelegateErr},
			passthroughTx{},
		)
		return service, operatorRepo, treasuryRepo
	}

	t.Run("refused capital recall keeps the operator active", func(t *testing.T) {
		op := &domain.Operator{ID: 1, Status: domain.OperatorStatusActive, Delegated: 3000}
		service, operatorRepo, treasuryRepo := newService(op, errors.New("vault unavailable"))

		err := service.RemoveOperator(context.Background(), 1)
		assert.ErrorIs(t, err, ErrOperatorHasCapital)
		assert.Equal(t, domain.OperatorStatusActive, operatorRepo.op.Status)
		assert.Equal(t, int64(3000), operatorRepo.op.Delegated)
		assert.Equal(t, int64(3000), treasuryRepo.treasury.Delegated)
	})

	t.Run("successful recall retires the operator and returns the capital", func(t *testing.T) {
		op := &domain.Operator{ID: 1, Status: domain.OperatorStatusActive, Delegated: 3000}
		service, operatorRepo, treasuryRepo := newService(op, nil)

		err := service.RemoveOperator(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.OperatorStatusRemoved, operatorRepo.op.Status)
		assert.Equal(t, int64(0), operatorRepo.op.Delegated)
		assert.Equal(t, int64(0), treasuryRepo.treasury.Delegated)
	})

	t.Run("operator without capital skips the vault", func(t *testing.T) {
		op := &domain.Operator{ID: 1, Status: domain.OperatorStatusActive}
		service, operatorRepo, _ := newService(op, errors.New("vault unavailable"))

		err := service.RemoveOperator(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.OperatorStatusRemoved, operatorRepo.op.Status)
	})

	t.Run("unknown operator", func(t *testing.T) {
		service, _, _ := newService(nil, nil)

		err := service.RemoveOperator(context.Background(), 9)
		assert.ErrorIs(t, err, ErrOperatorNotFound)
	})
}

func TestAvailableForRestaking(t *testing.T) {
	policy := &domain.Policy{EmergencyReserve: 1000}

	tests := []struct {
		name      string
		balance   int64
		delegated int64
		expected  int64
	}{
		{"reserve and delegated capital are excluded", 10000, 3000, 6000},
		{"fully delegated leaves nothing", 4000, 3000, 0},
		{"never negative", 500, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treasury := &domain.Treasury{Balance: tt.balance, Delegated: tt.delegated}
			assert.Equal(t, tt.expected, AvailableForRestaking(treasury, policy))
		})
	}
}
