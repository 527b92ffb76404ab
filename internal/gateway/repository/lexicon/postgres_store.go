package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

const (
	rootsTable   = "lexicon_roots"
	schemesTable = "lexicon_schemes"
)

// PostgresStore keeps the lexicon in two tables. Save replaces both lists in
// a single transaction.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects through the pgx stdlib driver.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS lexicon_roots (
    root TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS lexicon_schemes (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL DEFAULT ''
);
`)
	})
	return s.schemaErr
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

func (s *PostgresStore) Load(ctx context.Context) (lexicon.Snapshot, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return lexicon.Snapshot{}, err
	}
	var snap lexicon.Snapshot

	query, args := builder().Select("root").From(entsql.Table(rootsTable)).OrderBy("root").Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return lexicon.Snapshot{}, fmt.Errorf("load roots: %w", err)
	}
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			_ = rows.Close()
			return lexicon.Snapshot{}, err
		}
		snap.Roots = append(snap.Roots, root)
	}
	if err := rows.Close(); err != nil {
		return lexicon.Snapshot{}, err
	}
	if err := rows.Err(); err != nil {
		return lexicon.Snapshot{}, err
	}

	query, args = builder().Select("name", "category").From(entsql.Table(schemesTable)).OrderBy("position").Query()
	rows, err = s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return lexicon.Snapshot{}, fmt.Errorf("load schemes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc scheme.Scheme
		if err := rows.Scan(&sc.Name, &sc.Category); err != nil {
			return lexicon.Snapshot{}, err
		}
		snap.Schemes = append(snap.Schemes, sc)
	}
	return snap, rows.Err()
}

func (s *PostgresStore) Save(ctx context.Context, snap lexicon.Snapshot) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{rootsTable, schemesTable} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if len(snap.Roots) > 0 {
		ins := builder().Insert(rootsTable).Columns("root")
		for _, r := range snap.Roots {
			ins.Values(r)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roots: %w", err)
		}
	}
	if len(snap.Schemes) > 0 {
		ins := builder().Insert(schemesTable).Columns("position", "name", "category")
		for i, sc := range snap.Schemes {
			ins.Values(i, sc.Name, sc.Category)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert schemes: %w", err)
		}
	}
	return tx.Commit()
}
