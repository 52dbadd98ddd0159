// Package store persists extracted document structure and tagged chunks
// in an embedded SQLite database. Writes are serialized through a single
// writer; reads need no coordination.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stratadocs/strata/internal/structure"
	"github.com/stratadocs/strata/internal/toc"
)

// Document is one processed document's metadata record.
type Document struct {
	ID                 string
	Path               string
	PageCount          int
	Tier               string
	Confidence         float64
	StructureAvailable bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Store is the structure database. Safe for concurrent use; cross-document
// writes serialize on the underlying connection.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	// A single writer connection keeps batch appends serialized without
	// application-level locking.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument upserts a document record.
func (s *Store) SaveDocument(ctx context.Context, doc Document) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, page_count, tier, confidence, structure_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			page_count = excluded.page_count,
			tier = excluded.tier,
			confidence = excluded.confidence,
			structure_available = excluded.structure_available,
			updated_at = excluded.updated_at`,
		doc.ID, doc.Path, doc.PageCount, doc.Tier, doc.Confidence,
		boolToInt(doc.StructureAvailable), now, now)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocument loads one document record.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, page_count, tier, confidence, structure_available, created_at, updated_at
		FROM documents WHERE id = ?`, id)

	var doc Document
	var available int
	var createdAt, updatedAt string
	err := row.Scan(&doc.ID, &doc.Path, &doc.PageCount, &doc.Tier, &doc.Confidence,
		&available, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	doc.StructureAvailable = available != 0
	doc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	doc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &doc, nil
}

// ListDocuments returns all document records ordered by creation time.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, page_count, tier, confidence, structure_available, created_at, updated_at
		FROM documents ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var available int
		var createdAt, updatedAt string
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.PageCount, &doc.Tier, &doc.Confidence,
			&available, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.StructureAvailable = available != 0
		doc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		doc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveEntries replaces a document's validated entry list in one
// transaction. Position preserves document appearance order.
func (s *Store) SaveEntries(ctx context.Context, documentID string, entries []toc.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM toc_entries WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO toc_entries (document_id, position, number, title, page_state, page, page_lo, page_hi, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		var page, lo, hi any
		switch e.Page.State {
		case toc.PageExact:
			page = e.Page.Page
		case toc.PageRange:
			lo, hi = e.Page.Lo, e.Page.Hi
		}
		if _, err := stmt.ExecContext(ctx, documentID, i, e.Number, e.Title,
			string(e.Page.State), page, lo, hi, e.Category); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetEntries loads a document's entries in appearance order.
func (s *Store) GetEntries(ctx context.Context, documentID string) ([]toc.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, title, page_state, page, page_lo, page_hi, category
		FROM toc_entries WHERE document_id = ? ORDER BY position`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var entries []toc.Entry
	for rows.Next() {
		var e toc.Entry
		var state string
		var page, lo, hi sql.NullInt64
		if err := rows.Scan(&e.Number, &e.Title, &state, &page, &lo, &hi, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		switch toc.PageState(state) {
		case toc.PageExact:
			e.Page = toc.ExactPage(int(page.Int64))
		case toc.PageRange:
			e.Page = toc.RangePage(int(lo.Int64), int(hi.Int64))
		default:
			e.Page = toc.UnknownPage()
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendChunks appends tagged chunks for a document in one transaction.
func (s *Store) AppendChunks(ctx context.Context, documentID string, chunks []structure.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (document_id, source_page, text, section_number, section_title,
			section_category, is_split, sub_index, structure_unavailable, section_titles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		titles, err := json.Marshal(c.Metadata.SectionTitles)
		if err != nil {
			return fmt.Errorf("failed to encode titles for chunk %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, documentID, c.SourcePage, c.Text,
			c.Metadata.SectionNumber, c.Metadata.SectionTitle, c.Metadata.SectionCategory,
			boolToInt(c.Metadata.IsSplit), c.Metadata.SubIndex,
			boolToInt(c.Metadata.StructureUnavailable), string(titles)); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetChunks loads a document's chunks in insertion order.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]structure.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_page, text, section_number, section_title, section_category,
			is_split, sub_index, structure_unavailable, section_titles
		FROM chunks WHERE document_id = ? ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}
	defer rows.Close()

	var chunks []structure.Chunk
	for rows.Next() {
		var c structure.Chunk
		var isSplit, unavailable int
		var titles string
		if err := rows.Scan(&c.SourcePage, &c.Text, &c.Metadata.SectionNumber,
			&c.Metadata.SectionTitle, &c.Metadata.SectionCategory,
			&isSplit, &c.Metadata.SubIndex, &unavailable, &titles); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c.Metadata.IsSplit = isSplit != 0
		c.Metadata.StructureUnavailable = unavailable != 0
		if err := json.Unmarshal([]byte(titles), &c.Metadata.SectionTitles); err != nil {
			return nil, fmt.Errorf("failed to decode titles: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
