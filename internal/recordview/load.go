package recordview

import (
	"context"
	"fmt"

	"agri_holding/internal/logger"
	"agri_holding/internal/notify"

	"github.com/sirupsen/logrus"
)

// Scope giới hạn bản ghi theo công ty con khi cả hai field được đặt
type Scope struct {
	TenantField string
	Tenant      string
}

// Fetcher là boundary "lấy collection theo tên" của nguồn dữ liệu
type Fetcher interface {
	FetchCollection(ctx context.Context, name string, scope Scope) ([]Record, error)
}

// FetcherFunc cho phép dùng một hàm làm Fetcher
type FetcherFunc func(ctx context.Context, name string, scope Scope) ([]Record, error)

func (f FetcherFunc) FetchCollection(ctx context.Context, name string, scope Scope) ([]Record, error) {
	return f(ctx, name, scope)
}

// LoadOptions tùy chọn khi tải dữ liệu
type LoadOptions struct {
	Fallback bool            // Dùng dữ liệu mẫu khi nguồn rỗng hoặc lỗi
	Notifier notify.Notifier // Nhận thông báo lỗi tải dữ liệu; nil = bỏ qua
	Tenant   string          // Công ty con đang xem, rỗng = không giới hạn
}

// scope trả về Scope cho loại bản ghi
func (o LoadOptions) scope(cfg EntityConfig) Scope {
	if cfg.TenantField == "" || o.Tenant == "" {
		return Scope{}
	}
	return Scope{TenantField: cfg.TenantField, Tenant: o.Tenant}
}

// Load tải collection của loại bản ghi và quyết định DataState
func Load(ctx context.Context, f Fetcher, cfg EntityConfig, opts LoadOptions) DataState {
	rows, err := f.FetchCollection(ctx, cfg.Collection, opts.scope(cfg))
	return resolve(cfg, opts, rows, err)
}

// resolve chuyển kết quả fetch thành DataState:
// có bản ghi -> Loaded; rỗng -> Fixture hoặc Empty; lỗi -> ghi log, báo lỗi, rồi Fixture hoặc Error.
func resolve(cfg EntityConfig, opts LoadOptions, rows []Record, err error) DataState {
	canFallback := opts.Fallback && len(cfg.Fixtures) > 0

	if err != nil {
		logger.WithModuleAndCollection("recordview", cfg.Collection).WithFields(logrus.Fields{
			"entity":   cfg.Name,
			"tenant":   opts.Tenant,
			"fallback": canFallback,
		}).WithError(err).Error("Không thể tải bản ghi")

		if opts.Notifier != nil {
			opts.Notifier.Error(fmt.Sprintf("Không thể tải %s: %v", cfg.Label, err))
		}
		if canFallback {
			return Fixture(cfg.Fixtures, err.Error())
		}
		return Errored(err)
	}

	if len(rows) > 0 {
		return Loaded(rows)
	}
	if canFallback {
		logger.WithModuleAndCollection("recordview", cfg.Collection).
			WithField("entity", cfg.Name).
			Debug("Nguồn dữ liệu rỗng, dùng dữ liệu mẫu")
		return Fixture(cfg.Fixtures, "empty")
	}
	return Empty()
}
