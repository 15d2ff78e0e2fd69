package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/krpcdocs"
)

// Compile-time interface verification.
var _ krpcdocs.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements krpcdocs.SnapshotStore using SQLite. The whole
// snapshot is replaced in a single transaction, so a reader never sees pages
// from one crawl mixed with members from another.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load reads the stored snapshot. A database without a committed snapshot,
// or one whose timestamp cannot be parsed, reads as ENOTFOUND.
func (s *SnapshotStore) Load(ctx context.Context) (*krpcdocs.Snapshot, error) {
	var indexedAt string
	err := s.db.QueryRowContext(ctx, `SELECT indexed_at FROM snapshot_meta WHERE id = 1`).Scan(&indexedAt)
	if err == sql.ErrNoRows {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "no snapshot in database")
	}
	if err != nil {
		return nil, err
	}

	snap := &krpcdocs.Snapshot{
		Pages:   make(map[string]*krpcdocs.Page),
		Members: make(map[string]*krpcdocs.Member),
	}
	snap.IndexedAt, err = time.Parse(time.RFC3339, indexedAt)
	if err != nil {
		return nil, krpcdocs.Errorf(krpcdocs.ENOTFOUND, "corrupt snapshot timestamp %q", indexedAt)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT slug, url, title, text FROM pages`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p krpcdocs.Page
		if err := rows.Scan(&p.Slug, &p.URL, &p.Title, &p.Text); err != nil {
			return nil, err
		}
		snap.Pages[p.Slug] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberRows, err := s.db.QueryContext(ctx, `SELECT id, title, url, signature, description FROM members`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var m krpcdocs.Member
		if err := memberRows.Scan(&m.ID, &m.Title, &m.URL, &m.Signature, &m.Description); err != nil {
			return nil, err
		}
		snap.Members[m.ID] = &m
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Save replaces the stored snapshot in one transaction.
func (s *SnapshotStore) Save(ctx context.Context, snap *krpcdocs.Snapshot) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM members`); err != nil {
		return err
	}

	for _, p := range snap.Pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (slug, url, title, text)
			VALUES (?, ?, ?, ?)
		`, p.Slug, p.URL, p.Title, p.Text); err != nil {
			return err
		}
	}

	for _, m := range snap.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO members (id, title, url, signature, description)
			VALUES (?, ?, ?, ?, ?)
		`, m.ID, m.Title, m.URL, m.Signature, m.Description); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, indexed_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET indexed_at = excluded.indexed_at
	`, snap.IndexedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}
