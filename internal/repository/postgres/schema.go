package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	commandTable = "events"
	readTable    = "event_read_models"
)

// eventColumns is the column list shared by the write table and the read table.
const eventColumns = `id, organizer_id, name, description, start_date, end_date, address, is_online,
		event_type, ticket_type, ticket_price_amount, ticket_price_currency, is_published,
		created_at, updated_at`

func schemaStatements(table string) []string {
	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			organizer_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			address TEXT,
			is_online BOOLEAN NOT NULL DEFAULT FALSE,
			event_type TEXT NOT NULL CHECK (event_type IN ('public', 'private')),
			ticket_type TEXT NOT NULL CHECK (ticket_type IN ('free', 'paid')),
			ticket_price_amount DOUBLE PRECISION,
			ticket_price_currency TEXT,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_organizer_id ON %[1]s (organizer_id)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_published ON %[1]s (is_published)`, table),
	}
}

func ensureSchema(ctx context.Context, db *sql.DB, table string) error {
	for _, stmt := range schemaStatements(table) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure %s schema: %w", table, err)
		}
	}
	return nil
}

// EnsureCommandSchema creates the write-side events table and its indexes if missing.
func EnsureCommandSchema(ctx context.Context, db *sql.DB) error {
	return ensureSchema(ctx, db, commandTable)
}
