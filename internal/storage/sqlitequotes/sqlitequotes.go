package sqlitequotes

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Storage — локальная история котировок в одном файле, для запуска без Postgres.
type Storage struct {
	db *sql.DB
}

func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// sqlite не любит конкурентных писателей
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`
CREATE TABLE IF NOT EXISTS delivery_requests (
  id TEXT PRIMARY KEY,
  requester_name TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_delivery_requests_created_at ON delivery_requests(created_at DESC, id DESC)`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
