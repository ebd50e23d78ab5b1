package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"agri_holding/config"
	"agri_holding/internal/common"
	"agri_holding/internal/database"
	"agri_holding/internal/recordview"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func farmRows() []recordview.Record {
	return []recordview.Record{
		recordview.NewRecord("id", "f1", "name", "Kanoni Coffee Farm", "tenant", "kashari", "acres", int64(40), "yield", 12.5, "updated_at", "2026-10-01T08:00:00Z"),
		recordview.NewRecord("id", "f2", "name", "Bwera Dairy Unit", "tenant", "bwera", "acres", int64(15), "yield", 3.25, "updated_at", "2026-09-12T08:00:00Z"),
	}
}

func TestStaticSource_ScopeAndCopies(t *testing.T) {
	src := NewStaticSource().Set("farm_records", farmRows())
	ctx := context.Background()

	all, err := src.FetchCollection(ctx, "farm_records", Scope{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := src.FetchCollection(ctx, "farm_records", Scope{TenantField: "tenant", Tenant: "bwera"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "f2", recordview.Text(mustGet(scoped[0], "id")))

	all[0].Set("name", "changed")
	again, _ := src.FetchCollection(ctx, "farm_records", Scope{})
	assert.Equal(t, "Kanoni Coffee Farm", mustGet(again[0], "name"), "kết quả trả về phải là bản sao")

	missing, err := src.FetchCollection(ctx, "unknown", Scope{})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestStaticSource_FailWith(t *testing.T) {
	boom := errors.New("boom")
	src := NewStaticSource().Set("tasks", farmRows()).FailWith("tasks", boom)

	_, err := src.FetchCollection(context.Background(), "tasks", Scope{})
	assert.ErrorIs(t, err, boom)

	src.FailWith("tasks", nil)
	rows, err := src.FetchCollection(context.Background(), "tasks", Scope{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSources_RejectInvalidIdentifiers(t *testing.T) {
	ctx := context.Background()
	_, err := NewStaticSource().FetchCollection(ctx, "farm; DROP TABLE x", Scope{})
	assert.ErrorIs(t, err, common.ErrInvalidCollection)

	_, err = NewStaticSource().FetchCollection(ctx, "farm_records", Scope{TenantField: "tenant--", Tenant: "x"})
	assert.ErrorIs(t, err, common.ErrInvalidCollection)
}

func openSQLite(t *testing.T) *SQLSource {
	t.Helper()
	db, err := database.OpenSQL(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseSQL(db) })

	n, err := SeedSQL(context.Background(), db, database.DriverSQLite, "farm_records", farmRows())
	require.NoError(t, err)
	require.Equal(t, 2, n)
	return NewSQLSource(db, database.DriverSQLite)
}

func TestSQLSource_FetchKeepsColumnOrderAndTypes(t *testing.T) {
	src := openSQLite(t)

	rows, err := src.FetchCollection(context.Background(), "farm_records", Scope{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"id", "name", "tenant", "acres", "yield", "updated_at"}, rows[0].Keys())
	if diff := cmp.Diff(farmRows()[0], rows[0]); diff != "" {
		t.Errorf("bản ghi khác dữ liệu seed (-want +got):\n%s", diff)
	}

	cfg := recordview.EntityConfig{Name: "farm-records"}.WithDefaults()
	date, ok := cfg.RecordDate(rows[0])
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC), date)
}

func TestSQLValue_NumericColumns(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		dbType string
		want   any
	}{
		{"decimal", []byte("100.50"), "DECIMAL", 100.5},
		{"decimal with precision", []byte("9.75"), "DECIMAL(12,2)", 9.75},
		{"unsigned bigint", []byte("42"), "UNSIGNED BIGINT", int64(42)},
		{"int holding fraction", []byte("3.5"), "INT", 3.5},
		{"varchar stays text", []byte("20"), "VARCHAR", "20"},
		{"unparsable decimal stays text", []byte("n/a"), "NUMERIC", "n/a"},
		{"non-bytes untouched", int64(7), "DECIMAL", int64(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqlValue(tt.value, tt.dbType))
		})
	}

	got := recordview.SortRecords([]recordview.Record{
		recordview.NewRecord("id", "a", "amount", sqlValue([]byte("100.50"), "DECIMAL")),
		recordview.NewRecord("id", "b", "amount", sqlValue([]byte("9.75"), "DECIMAL")),
		recordview.NewRecord("id", "c", "amount", sqlValue([]byte("20"), "DECIMAL")),
	}, recordview.SortState{Key: "amount", Direction: recordview.Ascending})
	ids := make([]string, len(got))
	for i, r := range got {
		v, _ := r.Get("id")
		ids[i] = recordview.Text(v)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
}

func TestSQLSource_TenantScope(t *testing.T) {
	src := openSQLite(t)

	rows, err := src.FetchCollection(context.Background(), "farm_records", Scope{TenantField: "tenant", Tenant: "kashari"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "f1", mustGet(rows[0], "id"))
}

func TestSQLSource_MissingTable(t *testing.T) {
	src := openSQLite(t)

	_, err := src.FetchCollection(context.Background(), "payroll", Scope{})
	assert.ErrorIs(t, err, common.ErrCollectionNotFound)
}

func TestSeedSQL_SkipsNonEmptyTable(t *testing.T) {
	src := openSQLite(t)

	n, err := SeedSQL(context.Background(), src.db, database.DriverSQLite, "farm_records", farmRows())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFromConfig(t *testing.T) {
	src, err := FromConfig(&config.Configuration{DataSource: config.SourceFixtures}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &StaticSource{}, src)

	_, err = FromConfig(&config.Configuration{DataSource: config.SourceSQLite}, nil, nil)
	assert.ErrorIs(t, err, common.ErrConnection)

	_, err = FromConfig(&config.Configuration{DataSource: "redis"}, nil, nil)
	assert.ErrorIs(t, err, common.ErrUnsupportedSource)
}

func mustGet(r recordview.Record, key string) any {
	v, _ := r.Get(key)
	return v
}
