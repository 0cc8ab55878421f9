package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

func buildWorkbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()

	header := []any{
		"id_no", "name_en", "short_description_en", "justification_en",
		"states_name_en", "region_en", "category", "date_inscribed",
		"danger", "transboundary",
		"c1", "c2", "c3", "c4", "c5", "c6", "n7", "n8", "n9", "n10",
		"longitude", "latitude", "area_hectares",
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func validRow(id, name string) []any {
	return []any{
		id, name, "", "",
		"France", "Europe and North America", "Cultural", "2001",
		"0", "0",
		"1", "0", "0", "0", "0", "0", "0", "0", "0", "0",
		"2.35", "48.85", "10",
	}
}

func TestIngestServiceReplaceFromXLSX(t *testing.T) {
	st := openSeededStore(t)
	svc := NewIngestService(st, testLogger())

	wb := buildWorkbook(t, validRow("900", "New Site"), validRow("901", "Other Site"))

	rev, err := svc.ReplaceFromXLSX(context.Background(), "test.xlsx", wb)
	require.NoError(t, err)
	assert.Equal(t, 2, rev.SiteCount)
	assert.Equal(t, "test.xlsx", rev.Source)

	snapshot := st.Snapshot()
	assert.Equal(t, 2, snapshot.Len())
	_, ok := snapshot.ByID("900")
	assert.True(t, ok)
	// The previous dataset is gone.
	_, ok = snapshot.ByID("100")
	assert.False(t, ok)
}

func TestIngestServiceRejectsInvalidRowsUnchanged(t *testing.T) {
	st := openSeededStore(t)
	svc := NewIngestService(st, testLogger())

	bad := validRow("902", "Broken Site")
	bad[7] = "not-a-year"
	wb := buildWorkbook(t, validRow("900", "Fine Site"), bad)

	_, err := svc.ReplaceFromXLSX(context.Background(), "bad.xlsx", wb)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnprocessable, appErr.Code)

	details, ok := appErr.Details.(uploadErrorDetails)
	require.True(t, ok)
	require.NotEmpty(t, details.RowErrors)
	assert.Equal(t, 3, details.RowErrors[0].Row)

	// All-or-nothing: the seeded dataset is untouched.
	snapshot := st.Snapshot()
	assert.Equal(t, 4, snapshot.Len())
	_, ok2 := snapshot.ByID("100")
	assert.True(t, ok2)
}

func TestIngestServiceRejectsUnreadableFile(t *testing.T) {
	st := openSeededStore(t)
	svc := NewIngestService(st, testLogger())

	_, err := svc.ReplaceFromXLSX(context.Background(), "junk.bin", bytes.NewReader([]byte("junk")))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnprocessable))

	assert.Equal(t, 4, st.Snapshot().Len())
}

func TestIngestServiceRejectsEmptyDataset(t *testing.T) {
	st := openSeededStore(t)
	svc := NewIngestService(st, testLogger())

	wb := buildWorkbook(t)
	_, err := svc.ReplaceFromXLSX(context.Background(), "empty.xlsx", wb)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnprocessable))
}
