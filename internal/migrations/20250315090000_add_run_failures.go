package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddRunFailures, downAddRunFailures)
}

func upAddRunFailures(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	ALTER TABLE runs ADD COLUMN IF NOT EXISTS skipped_documents INTEGER NOT NULL DEFAULT 0;

	CREATE TABLE IF NOT EXISTS run_failures (
		id BIGSERIAL PRIMARY KEY,
		run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		post_id BIGINT NOT NULL,
		code VARCHAR(64) NOT NULL,
		reason TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_failures_run_id ON run_failures(run_id);
	`)
	return err
}

func downAddRunFailures(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS run_failures;
	ALTER TABLE runs DROP COLUMN IF EXISTS skipped_documents;
	`)
	return err
}
