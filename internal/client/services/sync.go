package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docsync/internal/client/client"
	"github.com/dmitrijs2005/docsync/internal/client/models"
	"github.com/dmitrijs2005/docsync/internal/client/repositories/documents"
	"github.com/dmitrijs2005/docsync/internal/logging"
	"github.com/dmitrijs2005/docsync/internal/transport"
)

// Summary aggregates the outcome of one sync batch.
type Summary struct {
	Succeeded int
	Failed    int
}

// ProgressFunc is invoked after each processed record with the number of
// records done so far and the batch size.
type ProgressFunc func(done, total int)

// SyncService drives batches of documents through the upload protocol.
// Processing is strictly sequential: at most one document's pages are held
// in memory, and one record's failure never aborts its siblings.
type SyncService interface {
	// SyncPending uploads all documents currently in pending status.
	SyncPending(ctx context.Context, progress ProgressFunc) (Summary, error)

	// RetryFailed re-submits all failed documents through the same path.
	RetryFailed(ctx context.Context, progress ProgressFunc) (Summary, error)
}

type syncService struct {
	repo          documents.Repository
	client        client.Client
	logger        logging.Logger
	uploadTimeout time.Duration
}

// NewSyncService constructs a SyncService. uploadTimeout bounds each
// individual upload call; on expiry the record is treated as a transport
// failure and the batch moves on.
func NewSyncService(repo documents.Repository, c client.Client, logger logging.Logger, uploadTimeout time.Duration) SyncService {
	return &syncService{
		repo:          repo,
		client:        c,
		logger:        logger.With("module", "sync"),
		uploadTimeout: uploadTimeout,
	}
}

func (s *syncService) SyncPending(ctx context.Context, progress ProgressFunc) (Summary, error) {
	return s.run(ctx, models.StatusPending, progress)
}

func (s *syncService) RetryFailed(ctx context.Context, progress ProgressFunc) (Summary, error) {
	return s.run(ctx, models.StatusFailed, progress)
}

// buildRequest assembles the wire payload for one document. The document id
// is the transaction id, which the endpoint uses as the idempotency key.
func buildRequest(doc *models.Document, pages []models.Page) *transport.SyncRequest {
	attachments := make([]transport.Attachment, 0, len(pages))
	for _, p := range pages {
		attachments = append(attachments, transport.Attachment{
			Seq:      p.Seq,
			MimeType: p.MimeType,
			Data:     p.Data,
		})
	}
	return &transport.SyncRequest{
		TransactionID: doc.Id,
		Metadata:      doc.Metadata,
		Attachments:   attachments,
	}
}

func (s *syncService) run(ctx context.Context, status models.SyncStatus, progress ProgressFunc) (Summary, error) {
	candidates, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return Summary{}, err
	}

	if len(candidates) == 0 {
		s.logger.Info(ctx, "nothing to sync", "status", string(status))
		return Summary{}, nil
	}

	var summary Summary
	for i := range candidates {
		doc := &candidates[i]

		if s.syncOne(ctx, doc) {
			summary.Succeeded++
		} else {
			summary.Failed++
		}

		if progress != nil {
			progress(i+1, len(candidates))
		}
	}

	s.logger.Info(ctx, "sync batch finished",
		"total", len(candidates), "succeeded", summary.Succeeded, "failed", summary.Failed)

	return summary, nil
}

// syncOne uploads a single document and records the outcome in the store.
// Failures are converted into the failed status and reported per record;
// they never propagate to the batch.
func (s *syncService) syncOne(ctx context.Context, doc *models.Document) bool {
	pages, err := s.repo.PagesByDocument(ctx, doc.Id)
	if err != nil {
		// a local read failure is a record-level failure, same as transport
		s.logger.Error(ctx, "failed to read pages", "document", doc.Id, "error", err.Error())
		s.setStatus(ctx, doc.Id, models.StatusFailed)
		return false
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	resp, err := s.client.Upload(uploadCtx, buildRequest(doc, pages))
	cancel()

	if err != nil {
		s.logger.Warn(ctx, "upload failed", "document", doc.Id, "error", err.Error())
		s.setStatus(ctx, doc.Id, models.StatusFailed)
		return false
	}

	s.logger.Info(ctx, "document synced",
		"document", doc.Id, "remote_record_id", resp.RemoteRecordID)
	s.setStatus(ctx, doc.Id, models.StatusSynced)
	return true
}

func (s *syncService) setStatus(ctx context.Context, docID string, status models.SyncStatus) {
	if err := s.repo.SetStatus(ctx, docID, status); err != nil {
		s.logger.Error(ctx, "failed to update status",
			"document", docID, "status", string(status), "error", err.Error())
	}
}
