package loanrepo

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

const loanColumns = `id, proposal_id, borrower_id, principal, interest_rate_bps, total_repayment, amount_repaid, status, started_at, due_at`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.ID, &l.ProposalID, &l.BorrowerID, &l.Principal, &l.InterestRateBps,
		&l.TotalRepayment, &l.AmountRepaid, &l.Status, &l.StartedAt, &l.DueAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	query := `
        INSERT INTO loans (proposal_id, borrower_id, principal, interest_rate_bps, total_repayment, status, due_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + loanColumns
	row := r.db.QueryRow(ctx, query, loan.ProposalID, loan.BorrowerID, loan.Principal,
		loan.InterestRateBps, loan.TotalRepayment, loan.Status, loan.DueAt)
	created, err := scanLoan(row)
	if err != nil {
		zap.L().Error("failed to create loan", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find loan", zap.Error(err))
		return nil, err
	}
	return loan, nil
}

func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`
	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock loan", zap.Error(err))
		return nil, err
	}
	return loan, nil
}

func (r *Repository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `UPDATE loans SET amount_repaid = $1, status = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, loan.AmountRepaid, loan.Status, loan.ID); err != nil {
		zap.L().Error("failed to update loan", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByBorrower(ctx context.Context, borrowerID int) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY started_at DESC`
	return r.list(ctx, query, borrowerID)
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = 'ACTIVE' ORDER BY started_at`
	return r.list(ctx, query)
}

func (r *Repository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = 'ACTIVE' AND due_at < $1 ORDER BY due_at`
	return r.list(ctx, query, now)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to list loans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.ProposalID, &l.BorrowerID, &l.Principal, &l.InterestRateBps,
			&l.TotalRepayment, &l.AmountRepaid, &l.Status, &l.StartedAt, &l.DueAt); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
