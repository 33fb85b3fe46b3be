// Package services contains application services for the docsync client:
// document capture/editing, paginated views and the sync engine.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsync/internal/client/imaging"
	"github.com/dmitrijs2005/docsync/internal/client/models"
	"github.com/dmitrijs2005/docsync/internal/client/repositories/documents"
	"github.com/google/uuid"
)

// DocumentService exposes capture and query operations to the UI layer.
type DocumentService interface {
	// Capture validates the input, runs the compression collaborator over
	// each raw image and persists the document with dense 1-based page
	// sequence numbers and pending status.
	Capture(ctx context.Context, metadata map[string]string, images [][]byte) (*models.Document, error)

	// Edit replaces the document's metadata and entire page set; the
	// status resets to pending so the edit is re-synced.
	Edit(ctx context.Context, docID string, metadata map[string]string, images [][]byte) error

	// List returns one reverse-chronological window plus the total count.
	List(ctx context.Context, page, size int) ([]models.Document, int, error)

	// Pages returns a document's pages sorted by sequence.
	Pages(ctx context.Context, docID string) ([]models.Page, error)

	// PendingCount and FailedCount back the UI badges.
	PendingCount(ctx context.Context) (int, error)
	FailedCount(ctx context.Context) (int, error)

	// Wipe irreversibly destroys the whole local store.
	Wipe(ctx context.Context) error
}

type documentService struct {
	repo       documents.Repository
	compressor imaging.Compressor
	now        func() time.Time
}

// NewDocumentService constructs a DocumentService over the given repository
// and compression collaborator.
func NewDocumentService(repo documents.Repository, compressor imaging.Compressor) DocumentService {
	return &documentService{repo: repo, compressor: compressor, now: time.Now}
}

func (s *documentService) buildPages(docID string, images [][]byte) ([]*models.Page, error) {
	pages := make([]*models.Page, 0, len(images))
	for i, raw := range images {
		data, mimeType, err := s.compressor.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("compressing page %d: %w", i+1, err)
		}
		pages = append(pages, &models.Page{
			Id:         uuid.NewString(),
			DocumentId: docID,
			Seq:        i + 1,
			MimeType:   mimeType,
			Data:       data,
		})
	}
	return pages, nil
}

func (s *documentService) Capture(ctx context.Context, metadata map[string]string, images [][]byte) (*models.Document, error) {
	if err := models.ValidateCapture(metadata, len(images)); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Id:         uuid.NewString(),
		Metadata:   metadata,
		CreatedAt:  s.now().UnixMilli(),
		SyncStatus: models.StatusPending,
	}

	pages, err := s.buildPages(doc.Id, images)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, doc, pages); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	return doc, nil
}

func (s *documentService) Edit(ctx context.Context, docID string, metadata map[string]string, images [][]byte) error {
	if err := models.ValidateCapture(metadata, len(images)); err != nil {
		return err
	}

	doc := &models.Document{
		Id:         docID,
		Metadata:   metadata,
		SyncStatus: models.StatusPending,
	}

	pages, err := s.buildPages(docID, images)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, doc, pages); err != nil {
		return fmt.Errorf("updating document: %w", err)
	}

	return nil
}

func (s *documentService) List(ctx context.Context, page, size int) ([]models.Document, int, error) {
	return s.repo.List(ctx, page, size)
}

func (s *documentService) Pages(ctx context.Context, docID string) ([]models.Page, error) {
	return s.repo.PagesByDocument(ctx, docID)
}

func (s *documentService) PendingCount(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, models.StatusPending)
}

func (s *documentService) FailedCount(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, models.StatusFailed)
}

func (s *documentService) Wipe(ctx context.Context) error {
	return s.repo.Wipe(ctx)
}
