package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/dbx"
	"github.com/dmitrijs2005/docsync/internal/server/models"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/devices"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/records"
)

// fakeRecordsRepo is an in-memory stand-in; transaction control is still
// exercised through sqlmock's Begin/Commit/Rollback expectations.
type fakeRecordsRepo struct {
	nextID      int64
	createErr   error
	attachErr   error
	existing    *models.Record
	created     []*models.Record
	attachments []*models.Attachment
}

func (f *fakeRecordsRepo) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeRecordsRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Record, error) {
	if f.existing != nil && f.existing.TransactionID == transactionID {
		return f.existing, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRecordsRepo) AddAttachment(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	f.attachments = append(f.attachments, a)
	return a, nil
}

func (f *fakeRecordsRepo) AttachmentsByRecord(ctx context.Context, recordID int64) ([]models.Attachment, error) {
	return nil, nil
}

type fakeManager struct {
	records *fakeRecordsRepo
	devices devices.Repository
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeManager) Devices(db dbx.DBTX) devices.Repository             { return m.devices }
func (m *fakeManager) Records(db dbx.DBTX) records.Repository             { return m.records }

type fakeBlobStore struct {
	keys []string
	err  error
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testAttachments() []models.Attachment {
	return []models.Attachment{
		{Seq: 1, MimeType: "image/jpeg", Data: "YQ=="},
		{Seq: 2, MimeType: "image/jpeg", Data: "Yg=="},
	}
}

func TestIngest_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRecordsRepo{}
	blobs := &fakeBlobStore{}
	s := NewRecordService(db, &fakeManager{records: repo}, blobs)

	res, err := s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "receipt"}, testAttachments())

	require.NoError(t, err)
	require.False(t, res.Duplicate)
	require.Equal(t, int64(1), res.RecordID)

	require.Len(t, repo.attachments, 2)
	require.Equal(t, "records/tx-1/1", repo.attachments[0].StorageKey)
	require.Equal(t, []string{"records/tx-1/1", "records/tx-1/2"}, blobs.keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIngest_DuplicateReturnsExistingRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRecordsRepo{
		createErr: common.ErrorAlreadyExists,
		existing:  &models.Record{ID: 42, TransactionID: "tx-1"},
	}
	s := NewRecordService(db, &fakeManager{records: repo}, &fakeBlobStore{})

	res, err := s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "receipt"}, testAttachments())

	require.NoError(t, err)
	require.True(t, res.Duplicate)
	require.Equal(t, int64(42), res.RecordID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIngest_BlobFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRecordsRepo{}
	s := NewRecordService(db, &fakeManager{records: repo}, &fakeBlobStore{err: errors.New("s3 is down")})

	_, err := s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "receipt"}, testAttachments())

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIngest_AttachmentFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRecordsRepo{attachErr: errors.New("db is down")}
	s := NewRecordService(db, &fakeManager{records: repo}, &fakeBlobStore{})

	_, err := s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "receipt"}, testAttachments())

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIngest_Validation(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewRecordService(db, &fakeManager{records: &fakeRecordsRepo{}}, &fakeBlobStore{})

	_, err := s.Ingest(context.Background(), "dev-1", "",
		map[string]string{"name": "n"}, testAttachments())
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{}, testAttachments())
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "n"}, nil)
	require.ErrorIs(t, err, common.ErrNoPages)

	_, err = s.Ingest(context.Background(), "dev-1", "tx-1",
		map[string]string{"name": "n"}, []models.Attachment{
			{Seq: 1, MimeType: "image/jpeg", Data: "YQ=="},
			{Seq: 1, MimeType: "image/jpeg", Data: "Yg=="},
		})
	require.ErrorIs(t, err, common.ErrValidation)
}
