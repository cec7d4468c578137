package loanservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/domain"
)

func pricingPolicy() *domain.Policy {
	return &domain.Policy{
		MinRateBps:      500,
		MaxRateBps:      2000,
		MaxLoanTermSecs: 2592000,
	}
}

func TestCalculateTerms(t *testing.T) {
	tests := []struct {
		name            string
		amount          int64
		treasuryBalance int64
		expectedRate    int64
		expectedTotal   int64
		expectedErr     error
	}{
		{
			name:            "ten percent of treasury prices on the linear curve",
			amount:          2000,
			treasuryBalance: 20000,
			// ratio 1000 bps: 500 + 1000*1500/10000 = 650
			expectedRate:  650,
			expectedTotal: 2130,
		},
		{
			name:            "tiny loan gets the minimum rate",
			amount:          1,
			treasuryBalance: 1000000,
			expectedRate:    500,
			expectedTotal:   1,
		},
		{
			name:            "loan equal to the treasury hits the ceiling exactly",
			amount:          20000,
			treasuryBalance: 20000,
			expectedRate:    2000,
			expectedTotal:   24000,
		},
		{
			name:            "oversized loan is clamped to the ceiling",
			amount:          50000,
			treasuryBalance: 20000,
			expectedRate:    2000,
			expectedTotal:   60000,
		},
		{
			name:            "interest is floored, never rounded up",
			amount:          999,
			treasuryBalance: 1000000,
			// 999 * 500 / 10000 = 49 (49.95 floored)
			expectedRate:  500,
			expectedTotal: 1048,
		},
		{
			name:            "zero amount rejected",
			amount:          0,
			treasuryBalance: 20000,
			expectedErr:     ErrInvalidAmount,
		},
		{
			name:            "negative amount rejected",
			amount:          -5,
			treasuryBalance: 20000,
			expectedErr:     ErrInvalidAmount,
		},
		{
			name:            "empty treasury cannot price a loan",
			amount:          100,
			treasuryBalance: 0,
			expectedErr:     ErrInsufficientTreasury,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := CalculateTerms(tt.amount, tt.treasuryBalance, pricingPolicy())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRate, terms.RateBps)
			assert.Equal(t, tt.expectedTotal, terms.TotalRepayment)
			assert.Equal(t, int64(2592000), terms.TermSeconds)
		})
	}
}

func TestCalculateTermsIsDeterministic(t *testing.T) {
	policy := pricingPolicy()
	first, err := CalculateTerms(7777, 123456, policy)
	assert.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := CalculateTerms(7777, 123456, policy)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
