package documents

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/docsync/internal/client/models"
	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE documents (
  id          TEXT PRIMARY KEY,
  metadata    TEXT NOT NULL DEFAULT '{}',
  created_at  INTEGER NOT NULL,
  sync_status TEXT NOT NULL DEFAULT 'pending'
);

CREATE TABLE pages (
  id          TEXT PRIMARY KEY,
  document_id TEXT NOT NULL REFERENCES documents (id),
  seq         INTEGER NOT NULL,
  mime_type   TEXT NOT NULL,
  data        TEXT NOT NULL,
  UNIQUE (document_id, seq)
);
`)
	require.NoError(t, err)

	return db
}

func doc(id string, createdAt int64) *models.Document {
	return &models.Document{
		Id:         id,
		Metadata:   map[string]string{"name": "Jane Doe"},
		CreatedAt:  createdAt,
		SyncStatus: models.StatusPending,
	}
}

func page(id, docID string, seq int) *models.Page {
	return &models.Page{
		Id:         id,
		DocumentId: docID,
		Seq:        seq,
		MimeType:   "image/jpeg",
		Data:       "payload-" + id,
	}
}

func TestSave_PersistsDocumentWithPages(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d := doc("d1", 100)
	require.NoError(t, r.Save(ctx, d, []*models.Page{page("p1", "d1", 1), page("p2", "d1", 2)}))

	got, total, err := r.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].Id)
	assert.Equal(t, "Jane Doe", got[0].Metadata["name"])
	assert.Equal(t, models.StatusPending, got[0].SyncStatus)

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
}

func TestSave_AbortLeavesNothingBehind(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// duplicate seq violates UNIQUE(document_id, seq) mid-transaction
	d := doc("d1", 100)
	err := r.Save(ctx, d, []*models.Page{page("p1", "d1", 1), page("p2", "d1", 1)})
	require.Error(t, err)

	_, total, err := r.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total, "document must not be observable after abort")

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestUpdate_ReplacesPageSet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d := doc("d1", 100)
	require.NoError(t, r.Save(ctx, d, []*models.Page{page("p1", "d1", 1), page("p2", "d1", 2)}))

	d.Metadata["name"] = "Jane Q. Doe"
	require.NoError(t, r.Update(ctx, d, []*models.Page{page("p3", "d1", 1)}))

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, pages, 1, "old pages must be gone")
	assert.Equal(t, "p3", pages[0].Id)

	got, _, err := r.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", got[0].Metadata["name"])
}

func TestUpdate_MissingDocumentAborts(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Update(context.Background(), doc("ghost", 1), []*models.Page{page("p1", "ghost", 1)})
	require.ErrorIs(t, err, common.ErrorNotFound)

	pages, err := r.PagesByDocument(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, pages, "no page may survive an aborted update")
}

func TestUpdate_FailedInsertRestoresOldPages(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d := doc("d1", 100)
	require.NoError(t, r.Save(ctx, d, []*models.Page{page("p1", "d1", 1), page("p2", "d1", 2)}))

	// replacement set has a duplicate seq, so the insert step fails after
	// the delete step already ran inside the transaction
	err := r.Update(ctx, d, []*models.Page{page("p3", "d1", 1), page("p4", "d1", 1)})
	require.Error(t, err)

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, pages, 2, "rollback must restore the original page set")
	assert.Equal(t, "p1", pages[0].Id)
	assert.Equal(t, "p2", pages[1].Id)
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	const n = 7
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("d%d", i)
		require.NoError(t, r.Save(ctx, doc(id, int64(i*1000)), []*models.Page{page("p"+id, id, 1)}))
	}

	first, total, err := r.List(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, n, total)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"d7", "d6", "d5"}, []string{first[0].Id, first[1].Id, first[2].Id})

	last, total, err := r.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, n, total)
	require.Len(t, last, 1)
	assert.Equal(t, "d1", last[0].Id)

	beyond, total, err := r.List(ctx, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, n, total, "total must be correct on every call")
	assert.Empty(t, beyond)
}

func TestList_RejectsNonPositiveWindow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, _, err := r.List(context.Background(), 0, 10)
	require.ErrorIs(t, err, common.ErrValidation)

	_, _, err = r.List(context.Background(), 1, 0)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestPagesByDocument_SortsBySeq(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// inserted out of order on purpose
	d := doc("d1", 100)
	require.NoError(t, r.Save(ctx, d, []*models.Page{
		page("p3", "d1", 3),
		page("p1", "d1", 1),
		page("p2", "d1", 2),
	}))

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{pages[0].Seq, pages[1].Seq, pages[2].Seq})
}

func TestListByStatus_And_SetStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, doc("d1", 1), []*models.Page{page("p1", "d1", 1)}))
	require.NoError(t, r.Save(ctx, doc("d2", 2), []*models.Page{page("p2", "d2", 1)}))

	pending, err := r.ListByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, r.SetStatus(ctx, "d1", models.StatusSynced))

	pending, err = r.ListByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "d2", pending[0].Id)

	synced, err := r.ListByStatus(ctx, models.StatusSynced)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, "d1", synced[0].Id)
}

func TestSetStatus_MissingIDIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, r.SetStatus(context.Background(), "ghost", models.StatusFailed))
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.SetStatus(context.Background(), "d1", models.SyncStatus("uploaded"))
	require.ErrorIs(t, err, common.ErrUnknownStatus)
}

func TestCountByStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, doc("d1", 1), []*models.Page{page("p1", "d1", 1)}))
	require.NoError(t, r.Save(ctx, doc("d2", 2), []*models.Page{page("p2", "d2", 1)}))
	require.NoError(t, r.SetStatus(ctx, "d2", models.StatusFailed))

	n, err := r.CountByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountByStatus(ctx, models.StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWipe_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, doc("d1", 1), []*models.Page{page("p1", "d1", 1)}))
	require.NoError(t, r.Wipe(ctx))

	_, total, err := r.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	pages, err := r.PagesByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, pages)
}
