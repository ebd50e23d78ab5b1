package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	recordmodels "agri_holding/internal/api/records/models"
	recordsvc "agri_holding/internal/api/records/service"
	"agri_holding/internal/common"
	"agri_holding/internal/datasource"
	"agri_holding/internal/export"
	rv "agri_holding/internal/recordview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupState(t *testing.T) {
	t.Helper()
	src := datasource.NewStaticSource().Set("farm_records", []rv.Record{
		rv.NewRecord("id", "f1", "farm_name", "Kanoni Coffee Farm", "status", "active", "company", "kashari", "updated_at", "2026-10-15T09:00:00Z"),
		rv.NewRecord("id", "f2", "farm_name", "Bwera Dairy Paddock", "status", "inactive", "company", "bwera", "updated_at", "2026-10-10T09:00:00Z"),
	})
	svc, err := recordsvc.NewRecordService(recordsvc.Options{
		Entities:      recordmodels.DefaultEntities(),
		Source:        src,
		DefaultTenant: "muheesi",
	})
	require.NoError(t, err)
	state = &app{svc: svc, tenant: "muheesi"}
	t.Cleanup(func() { state = &app{} })
}

func TestExportFlags_Input(t *testing.T) {
	entity := rv.EntityConfig{Name: "farm-records", DefaultSort: rv.SortState{Key: "farm_name", Direction: rv.Ascending}}

	in, err := exportFlags{format: "excel", status: "", timeRange: "week"}.input(entity)
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, in.Format)
	assert.Equal(t, rv.StatusAll, in.Filter.Status)
	assert.Equal(t, rv.RangeWeek, in.Filter.TimeRange)
	assert.Equal(t, entity.DefaultSort, in.Sort)

	in, err = exportFlags{format: "pdf", timeRange: "all", sortKey: "status", sortDir: "desc"}.input(entity)
	require.NoError(t, err)
	assert.Equal(t, rv.SortState{Key: "status", Direction: rv.Descending}, in.Sort)

	_, err = exportFlags{format: "docx", timeRange: "all"}.input(entity)
	assert.Error(t, err)
	_, err = exportFlags{format: "csv", timeRange: "decade"}.input(entity)
	assert.Error(t, err)
	_, err = exportFlags{format: "csv", timeRange: "all", sortKey: "status", sortDir: "sideways"}.input(entity)
	assert.Error(t, err)
}

func TestExportEntity_WritesFile(t *testing.T) {
	setupState(t)
	dir := t.TempDir()
	var out bytes.Buffer

	path, err := exportEntity(context.Background(), &out, recordmodels.EntityFarmRecords, exportFlags{
		format: "csv", outDir: dir, status: "active", timeRange: "all",
	})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "farm-records-"))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Kanoni Coffee Farm")
	assert.NotContains(t, string(body), "Bwera Dairy Paddock")
	assert.Contains(t, out.String(), "[success]")
}

func TestExportEntity_UnknownEntity(t *testing.T) {
	setupState(t)
	_, err := exportEntity(context.Background(), &bytes.Buffer{}, "harvests", exportFlags{format: "csv", timeRange: "all", outDir: t.TempDir()})
	assert.ErrorIs(t, err, common.ErrUnknownEntity)
}

func TestExportAll_SkipsEmptyEntities(t *testing.T) {
	setupState(t)
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, exportAll(context.Background(), &out, exportFlags{format: "xlsx", outDir: dir, status: rv.StatusAll, timeRange: "all", parallel: 2}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1, "chỉ farm-records có dữ liệu")
	assert.True(t, strings.HasPrefix(files[0].Name(), "farm-records-"))
	assert.True(t, strings.HasSuffix(files[0].Name(), ".xlsx"))
	assert.Contains(t, out.String(), "[error]")
}
