package recordview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"agri_holding/internal/common"
	"agri_holding/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixtures(cfg EntityConfig) EntityConfig {
	cfg.Fixtures = []Record{
		NewRecord("id", "sample-1", "farm_name", "Kanoni Coffee Farm", "status", "active", "updated_at", "2025-06-14"),
	}
	return cfg
}

func staticFetcher(rows []Record, err error) Fetcher {
	return FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		return rows, err
	})
}

func TestLoad_DataStates(t *testing.T) {
	cfg := withFixtures(farmConfig())
	ctx := context.Background()

	t.Run("loaded", func(t *testing.T) {
		rec := notify.NewRecorder(nil)
		s := Load(ctx, staticFetcher(farms(), nil), cfg, LoadOptions{Fallback: true, Notifier: rec})
		assert.Equal(t, StateLoaded, s.Kind())
		assert.Len(t, s.Rows(), 5)
		assert.False(t, s.IsSample())
		assert.Empty(t, s.Banner())
		assert.Empty(t, rec.Notices())
	})

	t.Run("empty uses labeled fixtures", func(t *testing.T) {
		rec := notify.NewRecorder(nil)
		s := Load(ctx, staticFetcher(nil, nil), cfg, LoadOptions{Fallback: true, Notifier: rec})
		assert.Equal(t, StateFixture, s.Kind())
		assert.True(t, s.IsSample())
		assert.Equal(t, SampleDataBanner, s.Banner())
		assert.Equal(t, "empty", s.Reason())
		assert.Empty(t, rec.Notices(), "nguồn rỗng không phải lỗi")
	})

	t.Run("empty without fallback", func(t *testing.T) {
		s := Load(ctx, staticFetcher([]Record{}, nil), cfg, LoadOptions{})
		assert.Equal(t, StateEmpty, s.Kind())
		assert.Empty(t, s.Rows())
	})

	t.Run("error notifies then falls back", func(t *testing.T) {
		rec := notify.NewRecorder(nil)
		s := Load(ctx, staticFetcher(nil, errors.New("connection refused")), cfg, LoadOptions{Fallback: true, Notifier: rec})
		assert.Equal(t, StateFixture, s.Kind())
		assert.Equal(t, "connection refused", s.Reason())
		require.Len(t, rec.Errors(), 1)
		assert.Contains(t, rec.Errors()[0].Message, "connection refused")
	})

	t.Run("error without fixtures", func(t *testing.T) {
		rec := notify.NewRecorder(nil)
		s := Load(ctx, staticFetcher(nil, common.ErrConnection), farmConfig(), LoadOptions{Fallback: true, Notifier: rec})
		assert.Equal(t, StateError, s.Kind())
		assert.ErrorIs(t, s.Err(), common.ErrConnection)
		assert.Len(t, rec.Errors(), 1)
		assert.Equal(t, StateError, s.Summary().Kind)
	})
}

func TestLoad_PassesTenantScope(t *testing.T) {
	cfg := farmConfig()
	cfg.TenantField = "organization"

	var got Scope
	var gotName string
	f := FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		got, gotName = scope, name
		return nil, nil
	})

	Load(context.Background(), f, cfg, LoadOptions{Tenant: "kashari"})
	assert.Equal(t, Scope{TenantField: "organization", Tenant: "kashari"}, got)
	assert.Equal(t, "farm_records", gotName)

	cfg.TenantField = ""
	Load(context.Background(), f, cfg, LoadOptions{Tenant: "kashari"})
	assert.Equal(t, Scope{}, got)
}

func TestViewer_RefreshFilterSort(t *testing.T) {
	v := NewViewer(farmConfig(), staticFetcher(farms(), nil), LoadOptions{})

	state, err := v.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateLoaded, state.Kind())
	assert.False(t, v.LoadedAt().IsZero())

	v.SetFilter(FilterState{Status: "active", TimeRange: RangeAll})
	assert.Equal(t, SortState{Key: "farm_name", Direction: Ascending}, v.ToggleSort("farm_name"))
	assert.Equal(t, []string{"f3", "f1", "f5"}, ids(v.View(testNow)))

	assert.Equal(t, Descending, v.ToggleSort("farm_name").Direction)
	assert.Equal(t, []string{"f5", "f1", "f3"}, ids(v.View(testNow)))

	rows, st := v.Query(FilterState{SearchTerm: "dairy"}, SortState{}, testNow)
	assert.Equal(t, []string{"f2"}, ids(rows))
	assert.Equal(t, StateLoaded, st.Kind())
	assert.Equal(t, "active", v.Filter().Status, "Query không đổi lựa chọn của Viewer")
}

func TestViewer_FetchAfterCloseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		close(started)
		<-release
		return nil, errors.New("backend down")
	})

	rec := notify.NewRecorder(nil)
	v := NewViewer(withFixtures(farmConfig()), f, LoadOptions{Fallback: true, Notifier: rec})

	var wg sync.WaitGroup
	var refreshErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, refreshErr = v.Refresh(context.Background())
	}()

	<-started
	v.Close()
	close(release)
	wg.Wait()

	assert.ErrorIs(t, refreshErr, common.ErrViewerClosed)
	assert.Empty(t, rec.Notices(), "fetch bị hủy không được báo lỗi")
	assert.Equal(t, StateEmpty, v.State().Kind())
	assert.True(t, v.Closed())

	_, err := v.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrViewerClosed)
}

func TestViewer_CancelledContextDoesNotWriteState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		cancel()
		return farms(), nil
	})

	v := NewViewer(farmConfig(), f, LoadOptions{})
	_, err := v.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateEmpty, v.State().Kind())
}

func TestViewer_StaleRefreshIsDropped(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	f := FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(slowStarted)
			<-slowRelease
			return []Record{NewRecord("id", "old")}, nil
		}
		return []Record{NewRecord("id", "new")}, nil
	})

	v := NewViewer(farmConfig(), f, LoadOptions{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = v.Refresh(context.Background())
	}()

	<-slowStarted
	_, err := v.Refresh(context.Background())
	require.NoError(t, err)
	close(slowRelease)
	<-done

	assert.Equal(t, []string{"new"}, ids(v.State().Rows()))
}

func TestViewer_OlderRefreshFinishingFirstIsKept(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	secondStarted := make(chan struct{})
	firstRelease := make(chan struct{})
	secondRelease := make(chan struct{})

	f := FetcherFunc(func(ctx context.Context, name string, scope Scope) ([]Record, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-firstRelease
			return []Record{NewRecord("id", "old")}, nil
		}
		close(secondStarted)
		<-secondRelease
		return []Record{NewRecord("id", "new")}, nil
	})

	v := NewViewer(farmConfig(), f, LoadOptions{})

	firstDone := make(chan DataState, 1)
	go func() {
		state, _ := v.Refresh(context.Background())
		firstDone <- state
	}()
	<-firstStarted

	secondDone := make(chan DataState, 1)
	go func() {
		state, _ := v.Refresh(context.Background())
		secondDone <- state
	}()
	<-secondStarted

	close(firstRelease)
	first := <-firstDone
	assert.Equal(t, StateLoaded, first.Kind(), "lần tải đầu xong trước không được trả về view rỗng")
	assert.Equal(t, []string{"old"}, ids(first.Rows()))

	close(secondRelease)
	second := <-secondDone
	assert.Equal(t, []string{"new"}, ids(second.Rows()))
	assert.Equal(t, []string{"new"}, ids(v.State().Rows()))
}
