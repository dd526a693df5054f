package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS audit_sessions (
					id TEXT PRIMARY KEY,
					filename TEXT NOT NULL,
					audit_date DATETIME NOT NULL,
					total_shipments INTEGER NOT NULL DEFAULT 0,
					total_charges REAL NOT NULL DEFAULT 0,
					total_savings REAL NOT NULL DEFAULT 0,
					affected_shipments INTEGER NOT NULL DEFAULT 0,
					savings_rate REAL NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_audit_sessions_created ON audit_sessions(created_at)`,

				`CREATE TABLE IF NOT EXISTS findings (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					session_id TEXT NOT NULL,
					error_type TEXT NOT NULL,
					tracking_number TEXT,
					date TEXT,
					carrier TEXT,
					service_type TEXT,
					dispute_reason TEXT,
					refund_estimate REAL NOT NULL DEFAULT 0,
					notes TEXT,
					FOREIGN KEY (session_id) REFERENCES audit_sessions(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_findings_session ON findings(session_id)`,
				`CREATE INDEX idx_findings_tracking ON findings(tracking_number)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add pool counts, affected rate and claim tags",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE audit_sessions ADD COLUMN main_audit_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE audit_sessions ADD COLUMN residential_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE audit_sessions ADD COLUMN finding_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE audit_sessions ADD COLUMN misc_charge_count INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE audit_sessions ADD COLUMN affected_rate REAL NOT NULL DEFAULT 0`,
				`ALTER TABLE findings ADD COLUMN shipment_date TEXT`,
				`ALTER TABLE findings ADD COLUMN invoice_date TEXT`,
				`ALTER TABLE findings ADD COLUMN claim_status TEXT`,
				`ALTER TABLE findings ADD COLUMN claim_priority TEXT`,
				`CREATE INDEX idx_findings_error_type ON findings(error_type)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
