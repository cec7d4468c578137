package rewardrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

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

func (r *Repository) CreateBalance(ctx context.Context, memberID int) (*domain.RewardBalance, error) {
	query := `
        INSERT INTO reward_balances (member_id, pending_interest, pending_yield)
        VALUES ($1, 0, 0)
        RETURNING member_id, pending_interest, pending_yield
    `
	var rb domain.RewardBalance
	err := r.db.QueryRow(ctx, query, memberID).Scan(&rb.MemberID, &rb.PendingInterest, &rb.PendingYield)
	if err != nil {
		zap.L().Error("failed to create reward balance", zap.Error(err))
		return nil, err
	}
	return &rb, nil
}

func (r *Repository) Get(ctx context.Context, memberID int) (*domain.RewardBalance, error) {
	query := `SELECT member_id, pending_interest, pending_yield FROM reward_balances WHERE member_id = $1`
	var rb domain.RewardBalance
	err := r.db.QueryRow(ctx, query, memberID).Scan(&rb.MemberID, &rb.PendingInterest, &rb.PendingYield)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get reward balance", zap.Error(err))
		return nil, err
	}
	return &rb, nil
}

func (r *Repository) GetForUpdate(ctx context.Context, memberID int) (*domain.RewardBalance, error) {
	query := `SELECT member_id, pending_interest, pending_yield FROM reward_balances WHERE member_id = $1 FOR UPDATE`
	var rb domain.RewardBalance
	err := r.db.QueryRow(ctx, query, memberID).Scan(&rb.MemberID, &rb.PendingInterest, &rb.PendingYield)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock reward balance", zap.Error(err))
		return nil, err
	}
	return &rb, nil
}

func (r *Repository) Set(ctx context.Context, rb *domain.RewardBalance) error {
	query := `UPDATE reward_balances SET pending_interest = $1, pending_yield = $2 WHERE member_id = $3`
	if _, err := r.db.Exec(ctx, query, rb.PendingInterest, rb.PendingYield, rb.MemberID); err != nil {
		zap.L().Error("failed to set reward balance", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Add(ctx context.Context, memberID int, interest, yield int64) error {
	query := `
        UPDATE reward_balances
        SET pending_interest = pending_interest + $1, pending_yield = pending_yield + $2
        WHERE member_id = $3
    `
	if _, err := r.db.Exec(ctx, query, interest, yield, memberID); err != nil {
		zap.L().Error("failed to add to reward balance", zap.Error(err))
		return err
	}
	return nil
}

// AddToActiveMembers credits every currently active member in a single
// statement; the distribution snapshot is whoever is active at this moment.
func (r *Repository) AddToActiveMembers(ctx context.Context, interestPerMember, yieldPerMember int64) (int, error) {
	query := `
        UPDATE reward_balances rb
        SET pending_interest = rb.pending_interest + $1, pending_yield = rb.pending_yield + $2
        FROM members m
        WHERE m.id = rb.member_id AND m.status = 'ACTIVE'
    `
	tag, err := r.db.Exec(ctx, query, interestPerMember, yieldPerMember)
	if err != nil {
		zap.L().Error("failed to distribute to active members", zap.Error(err))
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
