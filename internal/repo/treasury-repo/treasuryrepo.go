package treasuryrepo

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

func (r *Repository) Get(ctx context.Context) (*domain.Treasury, error) {
	query := `
        SELECT balance, delegated, total_contributions, operational_pool
        FROM treasury
        WHERE id = 1
    `
	var t domain.Treasury
	err := r.db.QueryRow(ctx, query).Scan(&t.Balance, &t.Delegated, &t.TotalContributions, &t.OperationalPool)
	if err != nil {
		zap.L().Error("failed to get treasury", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

// GetForUpdate locks the treasury row for the current transaction. Every
// debit must re-check sufficiency against this freshly locked balance, not
// a value read earlier in the operation.
func (r *Repository) GetForUpdate(ctx context.Context) (*domain.Treasury, error) {
	query := `
        SELECT balance, delegated, total_contributions, operational_pool
        FROM treasury
        WHERE id = 1
        FOR UPDATE
    `
	var t domain.Treasury
	err := r.db.QueryRow(ctx, query).Scan(&t.Balance, &t.Delegated, &t.TotalContributions, &t.OperationalPool)
	if err != nil {
		zap.L().Error("failed to lock treasury", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Update(ctx context.Context, t *domain.Treasury) error {
	query := `
        UPDATE treasury
        SET balance = $1, delegated = $2, total_contributions = $3, operational_pool = $4
        WHERE id = 1
    `
	if _, err := r.db.Exec(ctx, query, t.Balance, t.Delegated, t.TotalContributions, t.OperationalPool); err != nil {
		zap.L().Error("failed to update treasury", zap.Error(err))
		return err
	}
	return nil
}
