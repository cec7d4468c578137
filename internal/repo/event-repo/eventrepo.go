package eventrepo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

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

// Record appends one audit event. Called inside the same transaction as
// the state transition it describes, so an aborted operation emits nothing.
func (r *Repository) Record(ctx context.Context, kind, entityType string, entityID int, payload any) error {
	data := []byte("{}")
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			zap.L().Error("failed to marshal event payload", zap.Error(err))
			return err
		}
	}

	query := `INSERT INTO events (id, kind, entity_type, entity_id, payload) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, uuid.NewString(), kind, entityType, entityID, data); err != nil {
		zap.L().Error("failed to record event", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByEntity(ctx context.Context, entityType string, entityID int) ([]domain.Event, error) {
	query := `
        SELECT id, kind, entity_type, entity_id, payload, created_at
        FROM events
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, entityType, entityID)
	if err != nil {
		zap.L().Error("failed to list events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.EntityType, &e.EntityID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
