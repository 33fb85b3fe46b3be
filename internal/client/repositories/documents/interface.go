package documents

import (
	"context"

	"github.com/dmitrijs2005/docsync/internal/client/models"
)

// Repository is the durable, transactional store for documents and their
// ordered page sets. Implementations are backed by a local SQLite database.
type Repository interface {
	// Save inserts a new document together with its pages in one atomic
	// transaction: either everything appears or nothing does.
	Save(ctx context.Context, doc *models.Document, pages []*models.Page) error

	// Update atomically overwrites the document by id and replaces its
	// entire page set. Old pages are never left mixed with new ones; any
	// step failing aborts the whole transaction.
	Update(ctx context.Context, doc *models.Document, pages []*models.Page) error

	// List returns one window of documents ordered by creation time
	// descending (newest first) plus the total document count. Page is
	// 1-based; a window beyond the end yields an empty slice and the
	// correct total.
	List(ctx context.Context, page, size int) ([]models.Document, int, error)

	// PagesByDocument returns all pages of a document sorted ascending
	// by seq.
	PagesByDocument(ctx context.Context, docID string) ([]models.Page, error)

	// ListByStatus returns all documents with the given sync status,
	// unordered.
	ListByStatus(ctx context.Context, status models.SyncStatus) ([]models.Document, error)

	// SetStatus updates one document's sync status. A missing id is a
	// no-op, not an error.
	SetStatus(ctx context.Context, docID string, status models.SyncStatus) error

	// CountByStatus returns the number of documents with the given status.
	CountByStatus(ctx context.Context, status models.SyncStatus) (int, error)

	// Wipe irreversibly destroys all stored documents and pages. A busy
	// store surfaces as an error instead of being silently ignored.
	Wipe(ctx context.Context) error
}
