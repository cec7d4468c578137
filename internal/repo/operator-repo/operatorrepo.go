package operatorrepo

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

const operatorColumns = `id, name, endpoint, status, delegated, cumulative_rewards, performance_score,
        expected_yield_bps, actual_yield_bps, slashing_events, uptime_bps, approved_at`

func scanOperator(row pgx.Row) (*domain.Operator, error) {
	var o domain.Operator
	err := row.Scan(&o.ID, &o.Name, &o.Endpoint, &o.Status, &o.Delegated, &o.CumulativeRewards,
		&o.PerformanceScore, &o.ExpectedYieldBps, &o.ActualYieldBps, &o.SlashingEvents, &o.UptimeBps, &o.ApprovedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error) {
	query := `
        INSERT INTO operators (name, endpoint, status, performance_score, expected_yield_bps)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + operatorColumns
	row := r.db.QueryRow(ctx, query, op.Name, op.Endpoint, op.Status, op.PerformanceScore, op.ExpectedYieldBps)
	created, err := scanOperator(row)
	if err != nil {
		zap.L().Error("failed to create operator", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE id = $1`
	op, err := scanOperator(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find operator", zap.Error(err))
		return nil, err
	}
	return op, nil
}

func (r *Repository) Update(ctx context.Context, op *domain.Operator) error {
	query := `
        UPDATE operators
        SET status = $1, delegated = $2, cumulative_rewards = $3, performance_score = $4,
            expected_yield_bps = $5, actual_yield_bps = $6, slashing_events = $7, uptime_bps = $8
        WHERE id = $9
    `
	_, err := r.db.Exec(ctx, query, op.Status, op.Delegated, op.CumulativeRewards, op.PerformanceScore,
		op.ExpectedYieldBps, op.ActualYieldBps, op.SlashingEvents, op.UptimeBps, op.ID)
	if err != nil {
		zap.L().Error("failed to update operator", zap.Error(err))
		return err
	}
	return nil
}

// ListActiveByScore returns the active operator set ordered best-first.
func (r *Repository) ListActiveByScore(ctx context.Context) ([]domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE status = 'ACTIVE' ORDER BY performance_score DESC, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list operators", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var operators []domain.Operator
	for rows.Next() {
		var o domain.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Endpoint, &o.Status, &o.Delegated, &o.CumulativeRewards,
			&o.PerformanceScore, &o.ExpectedYieldBps, &o.ActualYieldBps, &o.SlashingEvents, &o.UptimeBps, &o.ApprovedAt); err != nil {
			return nil, err
		}
		operators = append(operators, o)
	}
	return operators, rows.Err()
}
