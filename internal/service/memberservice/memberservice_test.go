package memberservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/domain"
)

func TestIsEligibleForLoan(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := &domain.Policy{
		MinMembershipSecs: 30 * 24 * 3600,
		LoanCooldownSecs:  7 * 24 * 3600,
	}

	base := func() *domain.Member {
		return &domain.Member{
			ID:       1,
			Status:   domain.MemberStatusActive,
			JoinedAt: now.Add(-90 * 24 * time.Hour),
		}
	}

	tests := []struct {
		name     string
		mutate   func(m *domain.Member)
		expected bool
	}{
		{
			name:     "long-standing member with clean record is eligible",
			mutate:   func(m *domain.Member) {},
			expected: true,
		},
		{
			name:     "inactive member is not eligible",
			mutate:   func(m *domain.Member) { m.Status = domain.MemberStatusInactive },
			expected: false,
		},
		{
			name:     "outstanding loan blocks a new one",
			mutate:   func(m *domain.Member) { m.HasActiveLoan = true },
			expected: false,
		},
		{
			name:     "tenure below the minimum blocks the loan",
			mutate:   func(m *domain.Member) { m.JoinedAt = now.Add(-10 * 24 * time.Hour) },
			expected: false,
		},
		{
			name:     "tenure exactly at the minimum is enough",
			mutate:   func(m *domain.Member) { m.JoinedAt = now.Add(-30 * 24 * time.Hour) },
			expected: true,
		},
		{
			name:     "recent repayment inside the cooldown blocks the loan",
			mutate:   func(m *domain.Member) { m.LastLoanAt = now.Add(-3 * 24 * time.Hour) },
			expected: false,
		},
		{
			name:     "cooldown served restores eligibility",
			mutate:   func(m *domain.Member) { m.LastLoanAt = now.Add(-8 * 24 * time.Hour) },
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := base()
			tt.mutate(member)
			assert.Equal(t, tt.expected, IsEligibleForLoan(member, policy, now))
		})
	}
}

func TestExitShare(t *testing.T) {
	tests := []struct {
		name               string
		balance            int64
		contribution       int64
		totalContributions int64
		expected           int64
	}{
		{"half the contributions takes half the balance", 10000, 500, 1000, 5000},
		{"floor division drops the remainder", 10001, 1, 3, 3333},
		{"sole member takes everything", 4200, 700, 700, 4200},
		{"no contributions means no payout", 4200, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treasury := &domain.Treasury{Balance: tt.balance, TotalContributions: tt.totalContributions}
			member := &domain.Member{Contribution: tt.contribution}
			assert.Equal(t, tt.expected, ExitShare(treasury, member))
		})
	}
}

func TestExitShareConservation(t *testing.T) {
	// Payouts across every member never exceed the balance: each share is
	// floored, so the remainders stay in the treasury.
	treasury := &domain.Treasury{Balance: 10000, TotalContributions: 999}
	var total int64
	for i := 0; i < 3; i++ {
		total += ExitShare(treasury, &domain.Member{Contribution: 333})
	}
	assert.LessOrEqual(t, total, treasury.Balance)
}
