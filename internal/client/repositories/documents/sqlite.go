package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsync/internal/client/models"
	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/dbx"
)

// SQLiteRepository implements Repository over a local SQLite database.
// Multi-row operations run inside dbx.WithTx so readers never observe a
// document without its full page set.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func marshalMetadata(md map[string]string) (string, error) {
	if md == nil {
		md = map[string]string{}
	}
	b, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(b), nil
}

func unmarshalMetadata(s string) (map[string]string, error) {
	md := map[string]string{}
	if s == "" {
		return md, nil
	}
	if err := json.Unmarshal([]byte(s), &md); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return md, nil
}

func insertDocument(ctx context.Context, tx dbx.DBTX, doc *models.Document) error {
	md, err := marshalMetadata(doc.Metadata)
	if err != nil {
		return err
	}
	query := `INSERT INTO documents (id, metadata, created_at, sync_status) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, doc.Id, md, doc.CreatedAt, string(doc.SyncStatus)); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func insertPages(ctx context.Context, tx dbx.DBTX, pages []*models.Page) error {
	query := `INSERT INTO pages (id, document_id, seq, mime_type, data) VALUES (?, ?, ?, ?, ?)`
	for _, p := range pages {
		if _, err := tx.ExecContext(ctx, query, p.Id, p.DocumentId, p.Seq, p.MimeType, p.Data); err != nil {
			return fmt.Errorf("failed to insert page seq=%d: %w", p.Seq, err)
		}
	}
	return nil
}

// Save inserts the document and all its pages in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, doc *models.Document, pages []*models.Page) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := insertDocument(ctx, tx, doc); err != nil {
			return err
		}
		return insertPages(ctx, tx, pages)
	})
}

// Update overwrites the document row by id, deletes every existing page for
// that document and inserts the replacement set, all in one transaction.
func (r *SQLiteRepository) Update(ctx context.Context, doc *models.Document, pages []*models.Page) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		md, err := marshalMetadata(doc.Metadata)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE documents SET metadata = ?, sync_status = ? WHERE id = ?`,
			md, string(doc.SyncStatus), doc.Id)
		if err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return common.ErrorNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE document_id = ?`, doc.Id); err != nil {
			return fmt.Errorf("failed to delete old pages: %w", err)
		}

		return insertPages(ctx, tx, pages)
	})
}

// List returns documents newest first with offset/limit plus the total count.
func (r *SQLiteRepository) List(ctx context.Context, page, size int) ([]models.Document, int, error) {
	if page < 1 || size < 1 {
		return nil, 0, fmt.Errorf("%w: page and size must be positive", common.ErrValidation)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := `SELECT id, metadata, created_at, sync_status FROM documents
		ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// PagesByDocument returns the document's pages sorted by seq. The sort is
// explicit: retrieval order from the storage layer is not guaranteed.
func (r *SQLiteRepository) PagesByDocument(ctx context.Context, docID string) ([]models.Page, error) {
	query := `SELECT id, document_id, seq, mime_type, data FROM pages
		WHERE document_id = ? ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to select pages: %w", err)
	}
	defer rows.Close()

	var result []models.Page
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.Id, &p.DocumentId, &p.Seq, &p.MimeType, &p.Data); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByStatus returns all documents carrying the given sync status.
func (r *SQLiteRepository) ListByStatus(ctx context.Context, status models.SyncStatus) ([]models.Document, error) {
	query := `SELECT id, metadata, created_at, sync_status FROM documents WHERE sync_status = ?`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to select documents by status: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// SetStatus updates one document's sync status; missing ids are ignored.
func (r *SQLiteRepository) SetStatus(ctx context.Context, docID string, status models.SyncStatus) error {
	if !status.Valid() {
		return common.ErrUnknownStatus
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE documents SET sync_status = ? WHERE id = ?`, string(status), docID)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

// CountByStatus returns how many documents carry the given status.
func (r *SQLiteRepository) CountByStatus(ctx context.Context, status models.SyncStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE sync_status = ?`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Wipe deletes all pages and documents in one transaction. A locked store is
// reported as common.ErrStoreBusy rather than swallowed.
func (r *SQLiteRepository) Wipe(ctx context.Context) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM documents`)
		return err
	})
	if err != nil {
		if isBusy(err) {
			return fmt.Errorf("%w: %v", common.ErrStoreBusy, err)
		}
		return fmt.Errorf("failed to wipe store: %w", err)
	}
	return nil
}

func isBusy(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "busy") || strings.Contains(s, "locked")
}

func scanDocuments(rows *sql.Rows) ([]models.Document, error) {
	var result []models.Document
	for rows.Next() {
		var d models.Document
		var md, status string
		if err := rows.Scan(&d.Id, &md, &d.CreatedAt, &status); err != nil {
			return nil, err
		}
		metadata, err := unmarshalMetadata(md)
		if err != nil {
			return nil, err
		}
		d.Metadata = metadata
		d.SyncStatus = models.SyncStatus(status)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
