package proposalrepo

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

const loanProposalColumns = `id, borrower_id, amount, private, amount_commitment, interest_rate_bps, total_repayment,
        term_seconds, votes_for, votes_against, weight_for, weight_against, phase, status, document_handle,
        created_at, editing_deadline, voting_deadline`

func scanLoanProposal(row pgx.Row) (*domain.LoanProposal, error) {
	var p domain.LoanProposal
	err := row.Scan(&p.ID, &p.BorrowerID, &p.Amount, &p.Private, &p.AmountCommitment, &p.InterestRateBps,
		&p.TotalRepayment, &p.TermSeconds, &p.VotesFor, &p.VotesAgainst, &p.WeightFor, &p.WeightAgainst,
		&p.Phase, &p.Status, &p.DocumentHandle, &p.CreatedAt, &p.EditingDeadline, &p.VotingDeadline)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateLoanProposal(ctx context.Context, p *domain.LoanProposal) (*domain.LoanProposal, error) {
	query := `
        INSERT INTO loan_proposals (borrower_id, amount, private, amount_commitment, interest_rate_bps,
            total_repayment, term_seconds, phase, status, document_handle, editing_deadline, voting_deadline)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + loanProposalColumns
	row := r.db.QueryRow(ctx, query, p.BorrowerID, p.Amount, p.Private, p.AmountCommitment, p.InterestRateBps,
		p.TotalRepayment, p.TermSeconds, p.Phase, p.Status, p.DocumentHandle, p.EditingDeadline, p.VotingDeadline)
	created, err := scanLoanProposal(row)
	if err != nil {
		zap.L().Error("failed to create loan proposal", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindLoanProposalByID(ctx context.Context, id int) (*domain.LoanProposal, error) {
	query := `SELECT ` + loanProposalColumns + ` FROM loan_proposals WHERE id = $1`
	p, err := scanLoanProposal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find loan proposal", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// FindLoanProposalByIDForUpdate locks the proposal row so tally increments
// and the threshold check happen against a consistent snapshot.
func (r *Repository) FindLoanProposalByIDForUpdate(ctx context.Context, id int) (*domain.LoanProposal, error) {
	query := `SELECT ` + loanProposalColumns + ` FROM loan_proposals WHERE id = $1 FOR UPDATE`
	p, err := scanLoanProposal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock loan proposal", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) UpdateLoanProposal(ctx context.Context, p *domain.LoanProposal) error {
	query := `
        UPDATE loan_proposals
        SET amount = $1, amount_commitment = $2, interest_rate_bps = $3, total_repayment = $4, term_seconds = $5,
            votes_for = $6, votes_against = $7, weight_for = $8, weight_against = $9, phase = $10, status = $11,
            document_handle = $12, editing_deadline = $13, voting_deadline = $14
        WHERE id = $15
    `
	_, err := r.db.Exec(ctx, query, p.Amount, p.AmountCommitment, p.InterestRateBps, p.TotalRepayment, p.TermSeconds,
		p.VotesFor, p.VotesAgainst, p.WeightFor, p.WeightAgainst, p.Phase, p.Status,
		p.DocumentHandle, p.EditingDeadline, p.VotingDeadline, p.ID)
	if err != nil {
		zap.L().Error("failed to update loan proposal", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListLoanProposals(ctx context.Context) ([]domain.LoanProposal, error) {
	query := `SELECT ` + loanProposalColumns + ` FROM loan_proposals ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list loan proposals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var proposals []domain.LoanProposal
	for rows.Next() {
		var p domain.LoanProposal
		if err := rows.Scan(&p.ID, &p.BorrowerID, &p.Amount, &p.Private, &p.AmountCommitment, &p.InterestRateBps,
			&p.TotalRepayment, &p.TermSeconds, &p.VotesFor, &p.VotesAgainst, &p.WeightFor, &p.WeightAgainst,
			&p.Phase, &p.Status, &p.DocumentHandle, &p.CreatedAt, &p.EditingDeadline, &p.VotingDeadline); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

const treasuryProposalColumns = `id, proposer_id, amount, destination, reason, votes_for, votes_against,
        weight_for, weight_against, phase, status, created_at, voting_deadline`

func scanTreasuryProposal(row pgx.Row) (*domain.TreasuryProposal, error) {
	var p domain.TreasuryProposal
	err := row.Scan(&p.ID, &p.ProposerID, &p.Amount, &p.Destination, &p.Reason, &p.VotesFor, &p.VotesAgainst,
		&p.WeightFor, &p.WeightAgainst, &p.Phase, &p.Status, &p.CreatedAt, &p.VotingDeadline)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateTreasuryProposal(ctx context.Context, p *domain.TreasuryProposal) (*domain.TreasuryProposal, error) {
	query := `
        INSERT INTO treasury_proposals (proposer_id, amount, destination, reason, phase, status, voting_deadline)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + treasuryProposalColumns
	row := r.db.QueryRow(ctx, query, p.ProposerID, p.Amount, p.Destination, p.Reason, p.Phase, p.Status, p.VotingDeadline)
	created, err := scanTreasuryProposal(row)
	if err != nil {
		zap.L().Error("failed to create treasury proposal", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindTreasuryProposalByID(ctx context.Context, id int) (*domain.TreasuryProposal, error) {
	query := `SELECT ` + treasuryProposalColumns + ` FROM treasury_proposals WHERE id = $1`
	p, err := scanTreasuryProposal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find treasury proposal", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindTreasuryProposalByIDForUpdate(ctx context.Context, id int) (*domain.TreasuryProposal, error) {
	query := `SELECT ` + treasuryProposalColumns + ` FROM treasury_proposals WHERE id = $1 FOR UPDATE`
	p, err := scanTreasuryProposal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock treasury proposal", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) UpdateTreasuryProposal(ctx context.Context, p *domain.TreasuryProposal) error {
	query := `
        UPDATE treasury_proposals
        SET votes_for = $1, votes_against = $2, weight_for = $3, weight_against = $4, phase = $5, status = $6
        WHERE id = $7
    `
	_, err := r.db.Exec(ctx, query, p.VotesFor, p.VotesAgainst, p.WeightFor, p.WeightAgainst, p.Phase, p.Status, p.ID)
	if err != nil {
		zap.L().Error("failed to update treasury proposal", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListTreasuryProposals(ctx context.Context) ([]domain.TreasuryProposal, error) {
	query := `SELECT ` + treasuryProposalColumns + ` FROM treasury_proposals ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list treasury proposals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var proposals []domain.TreasuryProposal
	for rows.Next() {
		var p domain.TreasuryProposal
		if err := rows.Scan(&p.ID, &p.ProposerID, &p.Amount, &p.Destination, &p.Reason, &p.VotesFor, &p.VotesAgainst,
			&p.WeightFor, &p.WeightAgainst, &p.Phase, &p.Status, &p.CreatedAt, &p.VotingDeadline); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}
