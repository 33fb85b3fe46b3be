// Package services contains server-side business logic: ingesting uploaded
// documents and authenticating devices.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/dbx"
	"github.com/dmitrijs2005/docsync/internal/server/models"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docsync/internal/server/storage"
)

// RecordService ingests uploaded documents. The transaction ID doubles as
// the idempotency key: uploading the same document twice yields the same
// record ID, with Duplicate set on the second response.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
}

// IngestResult reports where an upload ended up.
type IngestResult struct {
	RecordID  int64
	Duplicate bool
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore) *RecordService {
	return &RecordService{db: db, repomanager: m, blobs: blobs}
}

func validateIngest(transactionID string, metadata map[string]string, attachments []models.Attachment) error {
	if transactionID == "" {
		return fmt.Errorf("%w: missing transaction id", common.ErrValidation)
	}
	if metadata["name"] == "" {
		return fmt.Errorf("%w: missing metadata field name", common.ErrValidation)
	}
	if len(attachments) == 0 {
		return common.ErrNoPages
	}
	seen := make(map[int]bool, len(attachments))
	for _, a := range attachments {
		if a.Seq < 1 || seen[a.Seq] {
			return fmt.Errorf("%w: bad attachment seq %d", common.ErrValidation, a.Seq)
		}
		if a.Data == "" {
			return fmt.Errorf("%w: empty attachment %d", common.ErrValidation, a.Seq)
		}
		seen[a.Seq] = true
	}
	return nil
}

// Ingest stores one uploaded document transactionally. If the transaction ID
// was seen before, the existing record is returned unchanged: the client may
// have missed the first response and is retrying.
//
// Attachment rows and blob offload happen inside the same database
// transaction as the record row, so a mid-flight failure leaves no partial
// document behind.
func (s *RecordService) Ingest(ctx context.Context, deviceID, transactionID string,
	metadata map[string]string, attachments []models.Attachment) (*IngestResult, error) {

	if err := validateIngest(transactionID, metadata, attachments); err != nil {
		return nil, err
	}

	record := &models.Record{
		TransactionID: transactionID,
		DeviceID:      deviceID,
		Metadata:      metadata,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Records(tx)

		if _, err := repo.Create(ctx, record); err != nil {
			return err
		}

		for i := range attachments {
			a := attachments[i]
			a.RecordID = record.ID
			a.StorageKey = fmt.Sprintf("records/%s/%d", transactionID, a.Seq)
			if _, err := repo.AddAttachment(ctx, &a); err != nil {
				return err
			}
			if err := s.blobs.Put(ctx, a.StorageKey, []byte(a.Data), a.MimeType); err != nil {
				return fmt.Errorf("blob offload: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			existing, getErr := s.repomanager.Records(s.db).GetByTransactionID(ctx, transactionID)
			if getErr != nil {
				return nil, getErr
			}
			return &IngestResult{RecordID: existing.ID, Duplicate: true}, nil
		}
		return nil, err
	}

	return &IngestResult{RecordID: record.ID}, nil
}
