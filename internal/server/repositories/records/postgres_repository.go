package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/dbx"
	"github.com/dmitrijs2005/docsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {

	meta, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, fmt.Errorf("error marshalling metadata: %w", err)
	}

	// ON CONFLICT DO NOTHING makes a duplicate transaction ID return no row
	// instead of an error, which keeps retries of the same upload cheap.
	query :=
		`INSERT INTO records (transaction_id, device_id, metadata)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (transaction_id) DO NOTHING
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		record.TransactionID, record.DeviceID, meta).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Record, error) {
	query :=
		`SELECT id, transaction_id, device_id, metadata, created_at FROM records
		 WHERE transaction_id = $1
		 `

	record := &models.Record{}
	var meta []byte
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&record.ID, &record.TransactionID, &record.DeviceID, &meta, &record.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(meta, &record.Metadata); err != nil {
		return nil, fmt.Errorf("error unmarshalling metadata: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) AddAttachment(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {

	query :=
		`INSERT INTO attachments (record_id, seq, mime_type, data, storage_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		attachment.RecordID, attachment.Seq, attachment.MimeType,
		attachment.Data, attachment.StorageKey).Scan(&attachment.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

func (r *PostgresRepository) AttachmentsByRecord(ctx context.Context, recordID int64) ([]models.Attachment, error) {
	query :=
		`SELECT id, record_id, seq, mime_type, data, storage_key FROM attachments
		 WHERE record_id = $1
		 ORDER BY seq ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	attachments := make([]models.Attachment, 0)
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.RecordID, &a.Seq, &a.MimeType, &a.Data, &a.StorageKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachments, nil
}
