package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sbpo/datapoints/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
-- Records table; position is dense and zero-based
CREATE TABLE IF NOT EXISTS records (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
`

// SQLite keeps records in a private in-memory SQLite database.
// Nothing is written to disk; the data is gone when the store is closed.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite creates an empty in-memory SQLite store
func OpenSQLite() (*SQLite, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin the pool
	// to a single connection that never expires.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

// withTx runs fn in a transaction, committing on success
func (s *SQLite) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLite) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, title, description FROM records ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Description); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) Get(ctx context.Context, id string) (models.Record, error) {
	var r models.Record
	err := s.conn.QueryRowContext(ctx, `SELECT id, title, description FROM records WHERE id = ?`, id).
		Scan(&r.ID, &r.Title, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, notFound(id)
	}
	if err != nil {
		return models.Record{}, err
	}
	return r, nil
}

func (s *SQLite) Append(ctx context.Context, r models.Record) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := countTx(ctx, tx)
		if err != nil {
			return err
		}
		return insertTx(ctx, tx, n, r)
	})
}

func (s *SQLite) Insert(ctx context.Context, index int, r models.Record) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := countTx(ctx, tx)
		if err != nil {
			return err
		}
		index = clampIndex(index, n)
		if _, err := tx.ExecContext(ctx, `UPDATE records SET position = position + 1 WHERE position >= ?`, index); err != nil {
			return fmt.Errorf("shift positions: %w", err)
		}
		return insertTx(ctx, tx, index, r)
	})
}

func (s *SQLite) Replace(ctx context.Context, id string, d models.Draft) (models.Record, error) {
	res, err := s.conn.ExecContext(ctx, `UPDATE records SET title = ?, description = ? WHERE id = ?`,
		d.Title, d.Description, id)
	if err != nil {
		return models.Record{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Record{}, err
	}
	if affected == 0 {
		return models.Record{}, notFound(id)
	}
	return d.Apply(id), nil
}

func (s *SQLite) Remove(ctx context.Context, id string) (models.Record, int, error) {
	var (
		removed  models.Record
		position int
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id, title, description, position FROM records WHERE id = ?`, id).
			Scan(&removed.ID, &removed.Title, &removed.Description, &position)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE records SET position = position - 1 WHERE position > ?`, position)
		return err
	})
	if err != nil {
		return models.Record{}, -1, err
	}
	return removed, position, nil
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

func countTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// insertTx inserts r at position, failing with ErrExists on a duplicate ID
func insertTx(ctx context.Context, tx *sql.Tx, position int, r models.Record) error {
	var found int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE id = ?`, r.ID).Scan(&found)
	if err != nil {
		return err
	}
	if found > 0 {
		return exists(r.ID)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO records (id, title, description, position) VALUES (?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, position)
	return err
}
