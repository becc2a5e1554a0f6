package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"qbank/internal/modules/bank/domain"
	bankout "qbank/internal/modules/bank/port/out"
	"qbank/internal/platform/clock"

	_ "modernc.org/sqlite"
)

type SQLiteRecordProjector struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteRecordProjector(dbPath string, clk clock.Clock) (*SQLiteRecordProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db, clock: clk}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ bankout.RecordIndexProjector = (*SQLiteRecordProjector)(nil)

func (p *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
  position INTEGER PRIMARY KEY,
  record_id INTEGER NOT NULL,
  type TEXT NOT NULL,
  first_question TEXT NOT NULL,
  question_json TEXT NOT NULL,
  answer TEXT NOT NULL,
  indexed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_type_id ON records(type, record_id);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (p *SQLiteRecordProjector) Close() error {
	return p.db.Close()
}

// ReplaceAll clears the projection and inserts records in bank order inside
// one transaction. position mirrors the slice index so repeated ids stay
// separate rows.
func (p *SQLiteRecordProjector) ReplaceAll(ctx context.Context, records []domain.Record) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin projection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return 0, fmt.Errorf("reset records: %w", err)
	}

	const stmt = `
INSERT INTO records (position, record_id, type, first_question, question_json, answer, indexed_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	indexedAt := p.clock.Now().Format("2006-01-02T15:04:05Z07:00")
	for i, record := range records {
		record = record.Normalize()
		question, err := json.Marshal(record.Question)
		if err != nil {
			return 0, fmt.Errorf("encode question: %w", err)
		}
		if _, err := tx.ExecContext(ctx, stmt, i, record.ID, record.Type, record.FirstQuestion(), string(question), record.Answer, indexedAt); err != nil {
			return 0, fmt.Errorf("project record %d: %w", record.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit projection: %w", err)
	}
	return len(records), nil
}

func (p *SQLiteRecordProjector) CountByType(ctx context.Context) ([]domain.TypeCount, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT type, COUNT(*) AS record_count
FROM records
GROUP BY type
ORDER BY type ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	out := []domain.TypeCount{}
	for rows.Next() {
		item := domain.TypeCount{}
		if err := rows.Scan(&item.Type, &item.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type counts: %w", err)
	}
	return out, nil
}
