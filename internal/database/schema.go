package database

import "context"

// CreateTables creates all necessary database tables.
func (db *DB) CreateTables(ctx context.Context) error {
	batchesTable := `
	CREATE TABLE IF NOT EXISTS idea_batches (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		domain VARCHAR(255) NOT NULL,
		catalyst VARCHAR(255),
		risk VARCHAR(50),
		fallback BOOLEAN DEFAULT FALSE,
		ideas JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_idea_batches_domain ON idea_batches(domain);
	CREATE INDEX IF NOT EXISTS idx_idea_batches_created ON idea_batches(created_at DESC);
	`

	tables := []string{batchesTable}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return err
		}
	}

	return nil
}
