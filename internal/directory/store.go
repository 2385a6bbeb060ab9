// Package directory provides the organization member directory that roster
// imports are reconciled against.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Source supplies point-in-time member snapshots.
type Source interface {
	Snapshot(ctx context.Context, orgID int64) ([]roster.MemberRecord, error)
}

// ImportRecorder persists a log entry for a completed reconciliation.
type ImportRecorder interface {
	RecordImport(ctx context.Context, rec ImportRecord) error
}

// ImportRecord summarizes one reconciliation for the import log.
type ImportRecord struct {
	ImportID  string
	OrgID     int64
	DraftID   string
	FileName  string
	Rows      int
	Matched   int
	New       int
	Rejected  int
	ErrorCode string // Non-empty if the import was rejected
	Duration  time.Duration
}

// Schema creates the tables used by Store.
const Schema = `
CREATE TABLE IF NOT EXISTS members (
    id          BIGSERIAL PRIMARY KEY,
    org_id      BIGINT NOT NULL,
    first_name  TEXT NOT NULL,
    last_name   TEXT NOT NULL,
    birthday    DATE,
    email       TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS members_org_id_idx ON members (org_id);

CREATE TABLE IF NOT EXISTS roster_imports (
    import_id    UUID PRIMARY KEY,
    org_id       BIGINT NOT NULL,
    draft_id     TEXT,
    file_name    TEXT,
    rows_total   INT NOT NULL,
    matched      INT NOT NULL,
    new_members  INT NOT NULL,
    rejected     INT NOT NULL,
    error_code   TEXT,
    duration_ms  BIGINT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const snapshotQuery = `
SELECT id, first_name, last_name, birthday, email
FROM members
WHERE org_id = $1
ORDER BY id`

const insertImportQuery = `
INSERT INTO roster_imports
    (import_id, org_id, draft_id, file_name, rows_total, matched, new_members, rejected, error_code, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Store reads members from and writes import logs to PostgreSQL.
type Store struct {
	db DBTX
}

// NewStore creates a Store backed by db.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Migrate creates the directory tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate directory schema: %w", err)
	}
	return nil
}

// Snapshot returns the organization's members ordered by id, so repeated
// reconciliations against an unchanged directory see the same order.
func (s *Store) Snapshot(ctx context.Context, orgID int64) ([]roster.MemberRecord, error) {
	rows, err := s.db.Query(ctx, snapshotQuery, orgID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []roster.MemberRecord
	for rows.Next() {
		var (
			id          int64
			first, last string
			birthday    pgtype.Date
			email       pgtype.Text
		)
		if err := rows.Scan(&id, &first, &last, &birthday, &email); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, roster.MemberRecord{
			ID:        id,
			FirstName: first,
			LastName:  last,
			Birthday:  DateToISO(birthday),
			Email:     TextOrEmpty(email),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

// RecordImport inserts an entry into the import log.
func (s *Store) RecordImport(ctx context.Context, rec ImportRecord) error {
	_, err := s.db.Exec(ctx, insertImportQuery,
		ToPgUUID(rec.ImportID),
		rec.OrgID,
		ToPgText(rec.DraftID),
		ToPgText(rec.FileName),
		rec.Rows,
		rec.Matched,
		rec.New,
		rec.Rejected,
		ToPgText(rec.ErrorCode),
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert roster import: %w", err)
	}
	return nil
}
