// Package recordsvc chứa service cho domain Records: truy vấn view bản ghi, làm mới, xuất file.
package recordsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basemodels "agri_holding/internal/api/base/models"
	"agri_holding/internal/common"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"
	"agri_holding/internal/notify"
	rv "agri_holding/internal/recordview"
	"agri_holding/internal/registry"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Options phụ thuộc của RecordService
type Options struct {
	Entities      []rv.EntityConfig
	Registry      *registry.Registry[rv.EntityConfig] // nil = registry riêng
	Source        rv.Fetcher
	Notices       *notify.Center // nil = không lưu thông báo
	Mailer        Mailer         // nil = không gửi email
	Fallback      bool           // Dùng dữ liệu mẫu khi nguồn rỗng hoặc lỗi
	DefaultTenant string         // Công ty mẹ: xem bản ghi của mọi công ty con
}

// RecordService quản lý các Viewer theo (công ty con, loại bản ghi) và các thao tác trên view
type RecordService struct {
	entities      *registry.Registry[rv.EntityConfig]
	order         []string
	viewers       *registry.Registry[*rv.Viewer]
	firstLoads    singleflight.Group // lần tải đầu của mỗi Viewer chỉ chạy một lần
	source        rv.Fetcher
	notices       *notify.Center
	mailer        Mailer
	fallback      bool
	defaultTenant string
	now           func() time.Time
}

// NewRecordService tạo RecordService và đăng ký các loại bản ghi vào registry
func NewRecordService(opts Options) (*RecordService, error) {
	if opts.Source == nil {
		return nil, common.WithDetails(common.ErrUnsupportedSource, "source is nil")
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.NewRegistry[rv.EntityConfig]()
	}

	s := &RecordService{
		entities:      reg,
		viewers:       registry.NewRegistry[*rv.Viewer](),
		source:        opts.Source,
		notices:       opts.Notices,
		mailer:        opts.Mailer,
		fallback:      opts.Fallback,
		defaultTenant: opts.DefaultTenant,
		now:           time.Now,
	}
	seen := make(map[string]bool, len(opts.Entities))
	for _, e := range opts.Entities {
		e = e.WithDefaults()
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("register entity: %w", err)
		}
		if _, err := reg.Register(e.Name, e); err != nil {
			return nil, err
		}
		// Registry có thể đã chứa entity (registry toàn cục), thứ tự vẫn theo opts.Entities
		if !seen[e.Name] {
			seen[e.Name] = true
			s.order = append(s.order, e.Name)
		}
	}
	return s, nil
}

// NewRecordServiceFromGlobal tạo RecordService từ các biến toàn cục đã khởi tạo khi start server
func NewRecordServiceFromGlobal(mailer Mailer) (*RecordService, error) {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("server config is not initialized")
	}
	if global.RecordSource == nil {
		return nil, fmt.Errorf("record source is not initialized")
	}

	var entities []rv.EntityConfig
	for _, name := range global.RegistryEntities.Names() {
		e, _ := global.RegistryEntities.Get(name)
		entities = append(entities, e)
	}
	return NewRecordService(Options{
		Entities:      entities,
		Registry:      global.RegistryEntities,
		Source:        global.RecordSource,
		Notices:       global.Notices,
		Mailer:        mailer,
		Fallback:      cfg.FixtureFallback,
		DefaultTenant: cfg.DefaultTenant,
	})
}

// Entities danh sách loại bản ghi theo thứ tự đăng ký
func (s *RecordService) Entities() []rv.EntityConfig {
	out := make([]rv.EntityConfig, 0, len(s.order))
	for _, name := range s.order {
		if e, ok := s.entities.Get(name); ok {
			out = append(out, e)
		}
	}
	return out
}

// Entity cấu hình một loại bản ghi, không có trả về common.ErrUnknownEntity
func (s *RecordService) Entity(name string) (rv.EntityConfig, error) {
	e, ok := s.entities.Get(name)
	if !ok {
		return rv.EntityConfig{}, common.WithDetails(common.ErrUnknownEntity, name)
	}
	return e, nil
}

// Notifier thông báo gắn với công ty con
func (s *RecordService) Notifier(tenant string) notify.Notifier {
	if s.notices == nil {
		return notify.Nop{}
	}
	return s.notices.Scoped(tenant)
}

// Notices các thông báo còn hiệu lực của công ty con
func (s *RecordService) Notices(tenant string) []notify.Notice {
	if s.notices == nil {
		return []notify.Notice{}
	}
	return s.notices.List(tenant)
}

// loadOptions công ty mẹ không bị giới hạn theo công ty con
func (s *RecordService) loadOptions(tenant string) rv.LoadOptions {
	scope := tenant
	if scope == s.defaultTenant {
		scope = ""
	}
	return rv.LoadOptions{
		Fallback: s.fallback,
		Notifier: s.Notifier(tenant),
		Tenant:   scope,
	}
}

func viewerKey(tenant, entity string) string {
	return tenant + "/" + entity
}

// viewer lấy Viewer của (tenant, entity), tạo và tải lần đầu nếu chưa có
func (s *RecordService) viewer(ctx context.Context, tenant, entity string) (*rv.Viewer, error) {
	cfg, err := s.Entity(entity)
	if err != nil {
		return nil, err
	}
	v, err := s.viewers.GetOrCreate(viewerKey(tenant, entity), func() (*rv.Viewer, error) {
		return rv.NewViewer(cfg, s.source, s.loadOptions(tenant)), nil
	})
	if err != nil {
		return nil, err
	}
	if v.LoadedAt().IsZero() {
		if err := s.loadOnce(ctx, viewerKey(tenant, entity), v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// loadOnce gộp các request cùng chờ lần tải đầu của một Viewer vào một lần fetch.
// Lần fetch dùng chung không bị hủy theo request khởi tạo; mỗi request chỉ ngừng chờ theo ctx của mình.
func (s *RecordService) loadOnce(ctx context.Context, key string, v *rv.Viewer) error {
	ch := s.firstLoads.DoChan(key, func() (interface{}, error) {
		if !v.LoadedAt().IsZero() {
			return nil, nil
		}
		_, err := v.Refresh(context.WithoutCancel(ctx))
		return nil, err
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueryInput lựa chọn lọc, sắp xếp và phân trang của một lần truy vấn
type QueryInput struct {
	Filter rv.FilterState
	Sort   rv.SortState
	Page   int // bắt đầu từ 1; <= 0 = 1
	Limit  int // <= 0 = toàn bộ
}

// QueryResult kết quả truy vấn một view
type QueryResult struct {
	Entity     rv.EntityConfig
	Rows       []rv.Record
	View       []rv.Record // toàn bộ view đã lọc và sắp xếp, trước khi phân trang
	Filter     rv.FilterState
	Sort       rv.SortState
	State      rv.DataState
	Pagination *basemodels.PaginateResult[rv.Record]
}

// Query áp dụng lọc / sắp xếp lên dữ liệu đã tải của (tenant, entity) rồi phân trang
func (s *RecordService) Query(ctx context.Context, tenant, entity string, in QueryInput) (*QueryResult, error) {
	v, err := s.viewer(ctx, tenant, entity)
	if err != nil {
		return nil, err
	}

	view, state := v.Query(in.Filter, in.Sort, s.now())
	if state.Kind() == rv.StateError {
		return nil, stateError(state)
	}

	page, limit := in.Page, in.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = len(view)
		page = 1
	}
	rows := rv.Paginate(view, page, limit)

	return &QueryResult{
		Entity:     v.Config(),
		Rows:       rows,
		View:       view,
		Filter:     in.Filter,
		Sort:       in.Sort,
		State:      state,
		Pagination: basemodels.NewPaginateResult(rows, int64(page), int64(limit), int64(len(view))),
	}, nil
}

// stateError trả về lỗi của state: giữ nguyên lỗi hệ thống, lỗi khác báo là lỗi kết nối nguồn dữ liệu
func stateError(state rv.DataState) error {
	var customErr *common.Error
	if errors.As(state.Err(), &customErr) {
		return state.Err()
	}
	return common.WithDetails(common.ErrConnection, state.Reason())
}

// Refresh tải lại dữ liệu của (tenant, entity) từ nguồn
func (s *RecordService) Refresh(ctx context.Context, tenant, entity string) (rv.StateSummary, error) {
	v, err := s.viewer(ctx, tenant, entity)
	if err != nil {
		return rv.StateSummary{}, err
	}
	state, err := v.Refresh(ctx)
	if err != nil {
		return rv.StateSummary{}, err
	}

	logger.WithModule("records").WithFields(logrus.Fields{
		"tenant": tenant,
		"entity": entity,
		"kind":   state.Kind(),
		"rows":   len(state.Rows()),
	}).Info("Đã làm mới bản ghi")
	return state.Summary(), nil
}

// Close đóng Viewer của (tenant, entity); Refresh đang chạy sẽ không ghi kết quả.
// Trả về false nếu chưa có Viewer.
func (s *RecordService) Close(tenant, entity string) (bool, error) {
	if _, err := s.Entity(entity); err != nil {
		return false, err
	}
	return s.viewers.Clear(viewerKey(tenant, entity), func(v *rv.Viewer) error {
		v.Close()
		return nil
	})
}

// CloseAll đóng mọi Viewer, dùng khi tắt server
func (s *RecordService) CloseAll() int {
	n, _ := s.viewers.ClearAll(func(v *rv.Viewer) error {
		v.Close()
		return nil
	})
	return n
}
