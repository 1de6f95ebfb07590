package pgsql

import (
	"context"
	"fmt"
	"log/slog"
)

const createTablesQuery = `
CREATE TABLE IF NOT EXISTS locations (
	id SERIAL PRIMARY KEY,
	minecraft_username VARCHAR(255) NOT NULL,
	location_name VARCHAR(255) NOT NULL,
	x_coord INTEGER NOT NULL,
	z_coord INTEGER NOT NULL,
	status VARCHAR(50) DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	approved_by VARCHAR(255),
	discord_message_id VARCHAR(255),
	marker_id VARCHAR(255),
	removed BOOLEAN DEFAULT FALSE,
	discord_user_id VARCHAR(255),
	discord_username VARCHAR(255)
);

CREATE TABLE IF NOT EXISTS audit_log (
	id SERIAL PRIMARY KEY,
	location_id INTEGER REFERENCES locations(id),
	action_type VARCHAR(50) NOT NULL,
	modified_by VARCHAR(255) NOT NULL,
	modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	old_values JSONB,
	new_values JSONB
);
`

// columnCheck is an additive migration: the column is added only when missing.
type columnCheck struct {
	Table      string
	Column     string
	Definition string
}

// additiveColumns lists columns introduced after the first schema version.
var additiveColumns = []columnCheck{
	{Table: "locations", Column: "marker_id", Definition: "VARCHAR(255)"},
	{Table: "locations", Column: "removed", Definition: "BOOLEAN DEFAULT FALSE"},
	{Table: "locations", Column: "discord_user_id", Definition: "VARCHAR(255)"},
	{Table: "locations", Column: "discord_username", Definition: "VARCHAR(255)"},
}

// SchemaManager creates the tables and runs the additive column checks.
type SchemaManager struct {
	BaseRepository
	logger *slog.Logger
}

// NewSchemaManager creates a SchemaManager.
func NewSchemaManager(db DB, logger *slog.Logger) *SchemaManager {
	return &SchemaManager{BaseRepository: BaseRepository{DB: db}, logger: logger}
}

// EnsureSchema is idempotent and never drops or alters existing columns.
// It returns the columns it added.
func (s *SchemaManager) EnsureSchema(ctx context.Context) ([]string, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := s.Rollback(ctx, tx); rerr != nil {
			s.logger.Error("Failed to roll back schema transaction", slog.String("error", rerr.Error()))
		}
	}()

	if _, err := tx.Exec(ctx, createTablesQuery); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	var added []string
	for _, c := range additiveColumns {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2)`,
			c.Table, c.Column,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check column %s.%s: %w", c.Table, c.Column, err)
		}
		if exists {
			continue
		}
		// Identifiers come from the static list above, never from input.
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Column, c.Definition)
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to add column %s.%s: %w", c.Table, c.Column, err)
		}
		s.logger.Info("Added column", slog.String("table", c.Table), slog.String("column", c.Column))
		added = append(added, c.Table+"."+c.Column)
	}

	if err := s.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true
	return added, nil
}
