package datasource

import (
	"context"
	"sync"

	"agri_holding/internal/recordview"
)

// StaticSource nguồn dữ liệu trong bộ nhớ, dùng cho DATA_SOURCE=fixtures, test và CLI chạy thử
type StaticSource struct {
	mu          sync.RWMutex
	collections map[string][]recordview.Record
	failures    map[string]error
}

// NewStaticSource tạo StaticSource rỗng
func NewStaticSource() *StaticSource {
	return &StaticSource{
		collections: make(map[string][]recordview.Record),
		failures:    make(map[string]error),
	}
}

// Set thay toàn bộ bản ghi của collection
func (s *StaticSource) Set(name string, records []recordview.Record) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]recordview.Record, len(records))
	for i, r := range records {
		cp[i] = r.Clone()
	}
	s.collections[name] = cp
	return s
}

// FailWith làm FetchCollection của collection trả về err; err nil để gỡ lỗi
func (s *StaticSource) FailWith(name string, err error) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, name)
	} else {
		s.failures[name] = err
	}
	return s
}

// FetchCollection trả về bản sao bản ghi của collection, collection chưa có trả về rỗng
func (s *StaticSource) FetchCollection(ctx context.Context, name string, scope Scope) ([]recordview.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkScope(name, scope); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failures[name]; err != nil {
		return nil, err
	}

	out := make([]recordview.Record, 0, len(s.collections[name]))
	for _, r := range s.collections[name] {
		if scope.TenantField != "" && scope.Tenant != "" {
			v, _ := r.Get(scope.TenantField)
			if recordview.Text(v) != scope.Tenant {
				continue
			}
		}
		out = append(out, r.Clone())
	}
	return out, nil
}
