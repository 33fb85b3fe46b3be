package records

import (
	"context"

	"github.com/dmitrijs2005/docsync/internal/server/models"
)

type Repository interface {
	// Create inserts a new record. If a record with the same transaction ID
	// already exists, it returns common.ErrorAlreadyExists and leaves the
	// existing row untouched.
	Create(ctx context.Context, record *models.Record) (*models.Record, error)

	// GetByTransactionID resolves the idempotency key to the stored record.
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Record, error)

	// AddAttachment stores one page payload for a record.
	AddAttachment(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)

	// AttachmentsByRecord returns a record's attachments ordered by seq.
	AttachmentsByRecord(ctx context.Context, recordID int64) ([]models.Attachment, error)
}
