package policyrepo

import (
	"context"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const policyColumns = `membership_fee, min_membership_secs, loan_cooldown_secs, editing_period_secs, voting_period_secs,
        loan_threshold_bps, treasury_threshold_bps, min_rate_bps, max_rate_bps, max_loan_term_secs, max_loan_ratio_bps,
        default_vote_weight, weighted_mode, privacy_mode, allocation_bps, emergency_reserve, rebalance_threshold,
        min_operator_count, auto_optimize, member_share_bps, treasury_share_bps, operational_share_bps, paused`

func (r *Repository) Get(ctx context.Context) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policy WHERE id = 1`
	var p domain.Policy
	err := r.db.QueryRow(ctx, query).Scan(
		&p.MembershipFee, &p.MinMembershipSecs, &p.LoanCooldownSecs, &p.EditingPeriodSecs, &p.VotingPeriodSecs,
		&p.LoanThresholdBps, &p.TreasuryThresholdBps, &p.MinRateBps, &p.MaxRateBps, &p.MaxLoanTermSecs, &p.MaxLoanRatioBps,
		&p.DefaultVoteWeight, &p.WeightedMode, &p.PrivacyMode, &p.AllocationBps, &p.EmergencyReserve, &p.RebalanceThreshold,
		&p.MinOperatorCount, &p.AutoOptimize, &p.MemberShareBps, &p.TreasuryShareBps, &p.OperationalShareBps, &p.Paused,
	)
	if err != nil {
		zap.L().Error("failed to get policy", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(ctx context.Context, p *domain.Policy) error {
	query := `
        UPDATE policy SET
            membership_fee = $1, min_membership_secs = $2, loan_cooldown_secs = $3, editing_period_secs = $4,
            voting_period_secs = $5, loan_threshold_bps = $6, treasury_threshold_bps = $7, min_rate_bps = $8,
            max_rate_bps = $9, max_loan_term_secs = $10, max_loan_ratio_bps = $11, default_vote_weight = $12,
            weighted_mode = $13, privacy_mode = $14, allocation_bps = $15, emergency_reserve = $16,
            rebalance_threshold = $17, min_operator_count = $18, auto_optimize = $19, member_share_bps = $20,
            treasury_share_bps = $21, operational_share_bps = $22, paused = $23
        WHERE id = 1
    `
	_, err := r.db.Exec(ctx, query,
		p.MembershipFee, p.MinMembershipSecs, p.LoanCooldownSecs, p.EditingPeriodSecs,
		p.VotingPeriodSecs, p.LoanThresholdBps, p.TreasuryThresholdBps, p.MinRateBps,
		p.MaxRateBps, p.MaxLoanTermSecs, p.MaxLoanRatioBps, p.DefaultVoteWeight,
		p.WeightedMode, p.PrivacyMode, p.AllocationBps, p.EmergencyReserve,
		p.RebalanceThreshold, p.MinOperatorCount, p.AutoOptimize, p.MemberShareBps,
		p.TreasuryShareBps, p.OperationalShareBps, p.Paused,
	)
	if err != nil {
		zap.L().Error("failed to update policy", zap.Error(err))
		return err
	}
	return nil
}
