package recordsvc

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	recordmodels "agri_holding/internal/api/records/models"
	"agri_holding/internal/common"
	"agri_holding/internal/datasource"
	"agri_holding/internal/export"
	"agri_holding/internal/notify"
	rv "agri_holding/internal/recordview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeMailer struct {
	enabled bool
	err     error
	to      []string
	subject string
	dl      export.Download
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(_ context.Context, to []string, subject string, dl export.Download) error {
	m.to, m.subject, m.dl = to, subject, dl
	return m.err
}

func liveFarms() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "f1", "farm_name", "Kanoni Coffee Farm", "status", "active", "company", "kashari", "updated_at", "2026-10-15T09:00:00Z"),
		rv.NewRecord("id", "f2", "farm_name", "Bwera Dairy Paddock", "status", "inactive", "company", "bwera", "updated_at", "2026-10-10T09:00:00Z"),
		rv.NewRecord("id", "f3", "farm_name", "Kyenjojo Tea Estate", "status", "active", "company", "kyenjojo", "updated_at", "2026-06-01T09:00:00Z"),
	}
}

func newService(t *testing.T, src rv.Fetcher, mailer Mailer) (*RecordService, *notify.Center) {
	t.Helper()
	center := notify.NewCenter(10, 0)
	svc, err := NewRecordService(Options{
		Entities:      recordmodels.DefaultEntities(),
		Source:        src,
		Notices:       center,
		Mailer:        mailer,
		Fallback:      true,
		DefaultTenant: "muheesi",
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return testNow }
	return svc, center
}

func rowIDs(cfg rv.EntityConfig, rows []rv.Record) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, cfg.RecordID(r))
	}
	return out
}

func TestRecordService_QueryFilterSortPaginate(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	svc, _ := newService(t, src, nil)
	ctx := context.Background()

	res, err := svc.Query(ctx, "muheesi", recordmodels.EntityFarmRecords, QueryInput{
		Filter: rv.FilterState{Status: "active", TimeRange: rv.RangeAll},
		Sort:   rv.SortState{Key: "farm_name", Direction: rv.Descending},
	})
	require.NoError(t, err)
	assert.Equal(t, rv.StateLoaded, res.State.Kind())
	assert.Equal(t, []string{"f3", "f1"}, rowIDs(res.Entity, res.Rows))
	assert.Equal(t, int64(2), res.Pagination.Total)

	res, err = svc.Query(ctx, "muheesi", recordmodels.EntityFarmRecords, QueryInput{
		Filter: rv.FilterState{TimeRange: rv.RangeWeek},
		Sort:   rv.SortState{Key: "updated_at", Direction: rv.Ascending},
		Page:   2,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, rowIDs(res.Entity, res.Rows))
	assert.Equal(t, int64(2), res.Pagination.TotalPage)
	assert.Len(t, res.View, 2)
}

func TestRecordService_TenantScope(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	svc, _ := newService(t, src, nil)

	res, err := svc.Query(context.Background(), "bwera", recordmodels.EntityFarmRecords, QueryInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"f2"}, rowIDs(res.Entity, res.Rows))

	// Công ty mẹ thấy tất cả
	res, err = svc.Query(context.Background(), "muheesi", recordmodels.EntityFarmRecords, QueryInput{})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 3)
}

func TestRecordService_FallbackToLabeledFixtures(t *testing.T) {
	src := datasource.NewStaticSource().FailWith("certifications", errors.New("connection refused"))
	svc, center := newService(t, src, nil)

	res, err := svc.Query(context.Background(), "muheesi", recordmodels.EntityCertifications, QueryInput{
		Filter: rv.FilterState{Status: "current"},
	})
	require.NoError(t, err)
	assert.Equal(t, rv.StateFixture, res.State.Kind())
	assert.True(t, res.State.IsSample())
	assert.ElementsMatch(t, []string{"cert-001", "cert-002"}, rowIDs(res.Entity, res.Rows))

	notices := center.List("muheesi")
	require.Len(t, notices, 1)
	assert.Equal(t, notify.LevelError, notices[0].Level)
}

func TestRecordService_ConcurrentFirstLoadSharesOneFetch(t *testing.T) {
	var fetches atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	src := rv.FetcherFunc(func(ctx context.Context, name string, scope rv.Scope) ([]rv.Record, error) {
		if fetches.Add(1) == 1 {
			close(started)
		}
		<-release
		return liveFarms(), nil
	})
	svc, center := newService(t, src, nil)

	results := make([]*QueryResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	query := func(i int) {
		defer wg.Done()
		results[i], errs[i] = svc.Query(context.Background(), "muheesi", recordmodels.EntityFarmRecords, QueryInput{})
	}

	wg.Add(2)
	go query(0)
	<-started
	go query(1)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, rv.StateLoaded, results[i].State.Kind(), "request %d", i)
		assert.Len(t, results[i].Rows, 3, "request %d", i)
	}
	assert.Equal(t, int32(1), fetches.Load())
	assert.Empty(t, center.List("muheesi"))
}

func TestRecordService_FirstLoadWaitStopsOnCallerCancel(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	src := rv.FetcherFunc(func(ctx context.Context, name string, scope rv.Scope) ([]rv.Record, error) {
		<-release
		return liveFarms(), nil
	})
	svc, _ := newService(t, src, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Query(ctx, "muheesi", recordmodels.EntityFarmRecords, QueryInput{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRecordService_UnknownEntity(t *testing.T) {
	svc, _ := newService(t, datasource.NewStaticSource(), nil)
	_, err := svc.Query(context.Background(), "muheesi", "unicorns", QueryInput{})
	assert.ErrorIs(t, err, common.ErrUnknownEntity)
}

func TestRecordService_RefreshAndClose(t *testing.T) {
	src := datasource.NewStaticSource()
	svc, _ := newService(t, src, nil)
	ctx := context.Background()

	summary, err := svc.Refresh(ctx, "muheesi", recordmodels.EntityTasks)
	require.NoError(t, err)
	assert.Equal(t, rv.StateFixture, summary.Kind)

	src.Set("tasks", []rv.Record{rv.NewRecord("id", "t-live", "title", "Live task", "status", "todo")})
	summary, err = svc.Refresh(ctx, "muheesi", recordmodels.EntityTasks)
	require.NoError(t, err)
	assert.Equal(t, rv.StateLoaded, summary.Kind)
	assert.Equal(t, 1, summary.Count)

	closed, err := svc.Close("muheesi", recordmodels.EntityTasks)
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = svc.Close("muheesi", recordmodels.EntityTasks)
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestRecordService_ExportView(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	svc, center := newService(t, src, nil)

	res, err := svc.Export(context.Background(), "muheesi", recordmodels.EntityFarmRecords, ExportInput{
		Format: export.FormatCSV,
		Filter: rv.FilterState{SearchTerm: "kanoni"},
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ExportID)
	assert.Equal(t, 1, res.Download.Rows)
	assert.Equal(t, "farm-records-2026-10-15.csv", res.Download.Filename)
	assert.Contains(t, string(res.Download.Body), "Kanoni Coffee Farm")

	notices := center.List("muheesi")
	require.NotEmpty(t, notices)
	assert.Equal(t, notify.LevelSuccess, notices[len(notices)-1].Level)
}

func TestRecordService_ExportEmptyViewNotifiesOnce(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	svc, _ := newService(t, src, nil)
	rec := notify.NewRecorder(nil)

	_, err := svc.Export(context.Background(), "muheesi", recordmodels.EntityFarmRecords, ExportInput{
		Format: export.FormatPDF,
		Filter: rv.FilterState{SearchTerm: "no such farm"},
	}, rec)
	assert.ErrorIs(t, err, common.ErrNothingToExport)
	assert.Len(t, rec.Errors(), 1)
	assert.Len(t, rec.Notices(), 1)
}

func TestRecordService_ExportSingleRecord(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	svc, _ := newService(t, src, nil)
	ctx := context.Background()

	res, err := svc.Export(ctx, "muheesi", recordmodels.EntityFarmRecords, ExportInput{
		Format:   export.FormatCSV,
		Filter:   rv.FilterState{Status: "inactive"},
		RecordID: "f3",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Download.Rows)
	assert.Equal(t, "farm-records-kyenjojo-tea-estate-2026-10-15.csv", res.Download.Filename)

	_, err = svc.Export(ctx, "muheesi", recordmodels.EntityFarmRecords, ExportInput{Format: export.FormatCSV, RecordID: "nope"}, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecordService_EmailExport(t *testing.T) {
	src := datasource.NewStaticSource().Set("farm_records", liveFarms())
	ctx := context.Background()
	in := ExportInput{Format: export.FormatXLSX}

	svc, _ := newService(t, src, nil)
	_, err := svc.EmailExport(ctx, "muheesi", recordmodels.EntityFarmRecords, in, []string{"ops@muheesi.co.ug"}, "", nil)
	assert.ErrorIs(t, err, common.ErrMailNotConfigured)

	mailer := &fakeMailer{enabled: true}
	svc, _ = newService(t, src, mailer)
	res, err := svc.EmailExport(ctx, "muheesi", recordmodels.EntityFarmRecords, in, []string{"ops@muheesi.co.ug"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@muheesi.co.ug"}, mailer.to)
	assert.Equal(t, res.Download.Filename, mailer.subject)
	assert.Equal(t, export.FormatXLSX, mailer.dl.Format)
}
