package storage

import (
	"context"
	"database/sql"
	"fmt"

	"schemapath/internal/datamodel"
)

// IntrospectModel derives a data model from an existing SQLite database:
// every user table becomes a model table and every foreign key becomes a
// relationship from the referencing table to the referenced one, with the
// reversal materialized.
func IntrospectModel(ctx context.Context, path string) (*datamodel.DataModel, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m := datamodel.New()
	for _, name := range names {
		m.AddTable(name)
	}

	for _, name := range names {
		if err := introspectForeignKeys(ctx, db, m, name); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func introspectForeignKeys(ctx context.Context, db *sql.DB, m *datamodel.DataModel, table string) error {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA foreign_key_list(%q)`, table))
	if err != nil {
		return fmt.Errorf("failed to read foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	// One FK may span several columns; one association per FK id is enough.
	seen := make(map[int]bool)
	for rows.Next() {
		var (
			id, seq                      int
			refTable, from               string
			to                           sql.NullString
			onUpdate, onDelete, matching string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matching); err != nil {
			return fmt.Errorf("failed to scan foreign key of %s: %w", table, err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		// The referencing row depends on the referenced row existing first.
		m.Connect(table, refTable, datamodel.KindToParent, false)
	}
	return rows.Err()
}
