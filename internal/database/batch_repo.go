package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apexlabs/apex-protocol/internal/models"
)

// BatchRepository archives generated idea batches. The archive is an audit
// trail: generation never waits on it and never fails because of it.
type BatchRepository struct {
	db *DB
}

func NewBatchRepository(db *DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Save inserts one batch, assigning id and timestamp when absent.
func (r *BatchRepository) Save(ctx context.Context, batch *models.IdeaBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now()
	}

	ideasJSON, err := json.Marshal(batch.Ideas)
	if err != nil {
		return fmt.Errorf("failed to marshal ideas: %w", err)
	}

	query := `
		INSERT INTO idea_batches (id, domain, catalyst, risk, fallback, ideas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		batch.ID,
		batch.Domain,
		batch.Catalyst,
		batch.Risk,
		batch.Fallback,
		ideasJSON,
		batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	return nil
}

// GetByID retrieves one archived batch.
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*models.IdeaBatch, error) {
	query := `
		SELECT id, domain, catalyst, risk, fallback, ideas, created_at
		FROM idea_batches
		WHERE id = $1
	`

	batch := &models.IdeaBatch{}
	var ideasJSON []byte

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&batch.ID,
		&batch.Domain,
		&batch.Catalyst,
		&batch.Risk,
		&batch.Fallback,
		&ideasJSON,
		&batch.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("batch not found: %w", err)
	}

	if err := json.Unmarshal(ideasJSON, &batch.Ideas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ideas: %w", err)
	}

	return batch, nil
}

// Recent returns the newest batches, most recent first.
func (r *BatchRepository) Recent(ctx context.Context, limit int) ([]*models.IdeaBatch, error) {
	query := `
		SELECT id, domain, catalyst, risk, fallback, ideas, created_at
		FROM idea_batches
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.IdeaBatch
	for rows.Next() {
		batch := &models.IdeaBatch{}
		var ideasJSON []byte

		err := rows.Scan(
			&batch.ID,
			&batch.Domain,
			&batch.Catalyst,
			&batch.Risk,
			&batch.Fallback,
			&ideasJSON,
			&batch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}

		if err := json.Unmarshal(ideasJSON, &batch.Ideas); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ideas: %w", err)
		}

		batches = append(batches, batch)
	}

	return batches, nil
}
