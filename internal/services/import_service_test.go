package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounting/internal/core"
	"accounting/internal/log"
	"accounting/internal/storage"
)

type fakeWriter struct {
	batches [][]storage.ImportRow
	failOn  int // 1-based batch number to fail on, 0 never
}

func (f *fakeWriter) InsertBatch(_ context.Context, batch []storage.ImportRow) error {
	if f.failOn > 0 && len(f.batches)+1 == f.failOn {
		return errors.New("disk full")
	}
	f.batches = append(f.batches, append([]storage.ImportRow(nil), batch...))
	return nil
}

func TestImportService_WritesInBatches(t *testing.T) {
	src := sourceFromLines(testLines...)
	w := &fakeWriter{}
	pub := &fakePublisher{}

	report, err := NewImportService(src, w, pub, 3, log.Discard()).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, report.Imported)
	assert.Empty(t, report.Malformed)
	require.Len(t, w.batches, 3)
	assert.Len(t, w.batches[0], 3)
	assert.Len(t, w.batches[2], 1)
	assert.Equal(t, "18501179", w.batches[0][0].UserID)
	assert.Equal(t, "fake:1", w.batches[0][0].SourceRef)

	require.Len(t, pub.imported, 1)
	assert.Equal(t, 7, pub.imported[0].Imported)
}

func TestImportService_SkipsMalformed(t *testing.T) {
	src := sourceFromLines("X 20240422 399", "garbage", "X 20240401 x")
	w := &fakeWriter{}

	report, err := NewImportService(src, w, nil, 10, log.Discard()).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Malformed, 2)
	assert.Equal(t, "fake:2", report.Malformed[0].Ref)
}

func TestImportService_SourceUnavailable(t *testing.T) {
	w := &fakeWriter{}
	_, err := NewImportService(&fakeSource{err: errors.New("boom")}, w, nil, 10, log.Discard()).
		Import(context.Background())
	assert.True(t, errors.Is(err, core.ErrSourceUnavailable))
	assert.Empty(t, w.batches)
}

func TestImportService_WriteErrorStopsImport(t *testing.T) {
	lines := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		lines = append(lines, "X 20240101 1")
	}
	w := &fakeWriter{failOn: 2}
	pub := &fakePublisher{}

	report, err := NewImportService(sourceFromLines(lines...), w, pub, 5, log.Discard()).
		Import(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 5, report.Imported)
	assert.Empty(t, pub.imported)
}

func TestImportService_DefaultBatchSize(t *testing.T) {
	svc := NewImportService(&fakeSource{}, &fakeWriter{}, nil, 0, nil)
	assert.Equal(t, DefaultImportBatchSize, svc.batchSize)
}

func TestImportService_RoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer repo.Close()

	_, err = NewImportService(sourceFromLines(testLines...), repo, nil, 2, log.Discard()).Import(ctx)
	require.NoError(t, err)

	ledger, report, err := NewLedgerService(repo, nil, log.Discard()).Load(ctx, "17111563")
	require.NoError(t, err)
	assert.Equal(t, 7, report.Scanned)
	assert.Equal(t, 2, ledger.Len())

	day := ledger.DayExpenses("2023-01-02")
	assert.True(t, day.Found)
	assert.Equal(t, 338.0, day.Value)
}
