package voterepo

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

func (r *Repository) Create(ctx context.Context, vote *domain.WeightedVote) (*domain.WeightedVote, error) {
	query := `
        INSERT INTO votes (proposal_kind, proposal_id, voter_id, support, weight)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, proposal_kind, proposal_id, voter_id, support, weight, cast_at
    `
	row := r.db.QueryRow(ctx, query, vote.ProposalKind, vote.ProposalID, vote.VoterID, vote.Support, vote.Weight)
	var v domain.WeightedVote
	if err := row.Scan(&v.ID, &v.ProposalKind, &v.ProposalID, &v.VoterID, &v.Support, &v.Weight, &v.CastAt); err != nil {
		zap.L().Error("failed to create vote", zap.Error(err))
		return nil, err
	}
	return &v, nil
}

func (r *Repository) Exists(ctx context.Context, proposalKind string, proposalID, voterID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM votes WHERE proposal_kind = $1 AND proposal_id = $2 AND voter_id = $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, proposalKind, proposalID, voterID).Scan(&exists); err != nil {
		zap.L().Error("failed to check vote existence", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) ListByProposal(ctx context.Context, proposalKind string, proposalID int) ([]domain.WeightedVote, error) {
	query := `
        SELECT id, proposal_kind, proposal_id, voter_id, support, weight, cast_at
        FROM votes
        WHERE proposal_kind = $1 AND proposal_id = $2
        ORDER BY cast_at
    `
	rows, err := r.db.Query(ctx, query, proposalKind, proposalID)
	if err != nil {
		zap.L().Error("failed to list votes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var votes []domain.WeightedVote
	for rows.Next() {
		var v domain.WeightedVote
		if err := rows.Scan(&v.ID, &v.ProposalKind, &v.ProposalID, &v.VoterID, &v.Support, &v.Weight, &v.CastAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
