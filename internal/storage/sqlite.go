// Package storage persists data models in SQLite and derives data models
// from existing SQLite databases.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"schemapath/internal/datamodel"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore holds extracted or imported data models.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS model_tables (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS model_associations (
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			kind TEXT NOT NULL,
			ignored INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			PRIMARY KEY (source, destination, kind, position)
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveModel replaces the stored model with m. Every directed association is
// persisted individually, so reversals survive the roundtrip unchanged.
func (s *SQLiteStore) SaveModel(ctx context.Context, m *datamodel.DataModel) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM model_tables`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM model_associations`); err != nil {
		return err
	}

	tableStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO model_tables (name, position) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer tableStmt.Close()

	assocStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO model_associations (source, destination, kind, ignored, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer assocStmt.Close()

	position := 0
	for i, table := range m.Tables() {
		if _, err := tableStmt.Exec(table.Name, i); err != nil {
			return err
		}
		for _, a := range table.Associations {
			ignored := 0
			if a.Ignored {
				ignored = 1
			}
			if _, err := assocStmt.Exec(a.Source.Name, a.Destination.Name, a.Kind.String(), ignored, position); err != nil {
				return err
			}
			position++
		}
	}

	return tx.Commit()
}

// LoadModel rebuilds the stored data model.
func (s *SQLiteStore) LoadModel(ctx context.Context) (*datamodel.DataModel, error) {
	m := datamodel.New()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM model_tables ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		m.AddTable(name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assocRows, err := s.db.QueryContext(ctx, `
		SELECT source, destination, kind, ignored FROM model_associations ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query associations: %w", err)
	}
	defer assocRows.Close()

	for assocRows.Next() {
		var source, destination, kindName string
		var ignored int
		if err := assocRows.Scan(&source, &destination, &kindName, &ignored); err != nil {
			return nil, fmt.Errorf("failed to scan association: %w", err)
		}
		kind, err := datamodel.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		m.AddAssociation(source, destination, kind, ignored != 0)
	}
	if err := assocRows.Err(); err != nil {
		return nil, err
	}

	return m, nil
}
