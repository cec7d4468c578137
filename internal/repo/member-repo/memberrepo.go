package memberrepo

import (
	"context"
	"time"

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

const memberColumns = `id, login, password_hash, status, is_admin, joined_at, contribution, share_balance, has_active_loan, last_loan_at, vote_weight`

func (r *Repository) scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.Login, &m.PasswordHash, &m.Status, &m.IsAdmin, &m.JoinedAt,
		&m.Contribution, &m.ShareBalance, &m.HasActiveLoan, &m.LastLoanAt, &m.VoteWeight)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	query := `
        INSERT INTO members (login, password_hash, status, contribution, vote_weight)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + memberColumns
	row := r.db.QueryRow(ctx, query, member.Login, member.PasswordHash, member.Status, member.Contribution, member.VoteWeight)
	created, err := r.scanMember(row)
	if err != nil {
		zap.L().Error("failed to create member", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE login = $1`
	member, err := r.scanMember(r.db.QueryRow(ctx, query, login))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find member by login", zap.Error(err))
		return nil, err
	}
	return member, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	member, err := r.scanMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find member by id", zap.Error(err))
		return nil, err
	}
	return member, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE members SET status = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, status, id); err != nil {
		zap.L().Error("failed to update member status", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetActiveLoan(ctx context.Context, id int, hasActiveLoan bool, lastLoanAt time.Time) error {
	query := `UPDATE members SET has_active_loan = $1, last_loan_at = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, hasActiveLoan, lastLoanAt, id); err != nil {
		zap.L().Error("failed to update member loan flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ClearActiveLoan(ctx context.Context, id int) error {
	query := `UPDATE members SET has_active_loan = FALSE WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to clear member loan flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetAdmin(ctx context.Context, id int, isAdmin bool) error {
	query := `UPDATE members SET is_admin = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, isAdmin, id); err != nil {
		zap.L().Error("failed to update member admin flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetVoteWeight(ctx context.Context, id int, weight int64) error {
	query := `UPDATE members SET vote_weight = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, weight, id); err != nil {
		zap.L().Error("failed to update member vote weight", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AddShareBalance(ctx context.Context, id int, delta int64) error {
	query := `UPDATE members SET share_balance = share_balance + $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, delta, id); err != nil {
		zap.L().Error("failed to update member share balance", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE status = 'ACTIVE' ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list active members", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Login, &m.PasswordHash, &m.Status, &m.IsAdmin, &m.JoinedAt,
			&m.Contribution, &m.ShareBalance, &m.HasActiveLoan, &m.LastLoanAt, &m.VoteWeight); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SumActiveWeight recomputes the total possible voting weight from the
// currently active membership. It is intentionally not cached: churn
// between votes changes the approval bar.
func (r *Repository) SumActiveWeight(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(vote_weight), 0) FROM members WHERE status = 'ACTIVE'`
	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		zap.L().Error("failed to sum active weight", zap.Error(err))
		return 0, err
	}
	return total, nil
}

func (r *Repository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE status = 'ACTIVE'`
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		zap.L().Error("failed to count active members", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE is_admin = TRUE AND status = 'ACTIVE'`
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		zap.L().Error("failed to count admins", zap.Error(err))
		return 0, err
	}
	return count, nil
}
