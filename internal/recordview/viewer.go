package recordview

import (
	"context"
	"sync"
	"time"

	"agri_holding/internal/common"
)

// Viewer giữ trạng thái của một màn hình xem bản ghi trong suốt vòng đời của nó:
// dữ liệu đã tải, lựa chọn lọc và cột sắp xếp. An toàn khi gọi đồng thời.
type Viewer struct {
	cfg     EntityConfig
	fetcher Fetcher
	opts    LoadOptions

	mu       sync.Mutex
	state    DataState
	filter   FilterState
	sort     SortState
	gen      uint64
	written  uint64 // thế hệ của lần Refresh gần nhất đã ghi state
	closed   bool
	loadedAt time.Time
}

// NewViewer tạo Viewer chưa tải dữ liệu; gọi Refresh để tải lần đầu
func NewViewer(cfg EntityConfig, f Fetcher, opts LoadOptions) *Viewer {
	return &Viewer{
		cfg:     cfg,
		fetcher: f,
		opts:    opts,
		state:   Empty(),
		filter:  FilterState{TimeRange: RangeAll, Status: StatusAll},
		sort:    cfg.DefaultSort,
	}
}

// Config cấu hình loại bản ghi của Viewer
func (v *Viewer) Config() EntityConfig {
	return v.cfg
}

// Refresh tải lại dữ liệu. Việc fetch chạy ngoài lock; kết quả bị bỏ (không ghi state, không thông báo) khi
// Viewer đã đóng (ErrViewerClosed), ctx đã hủy (ctx.Err()), hoặc một Refresh bắt đầu sau nó đã ghi state.
// Refresh cũ hoàn tất trước Refresh mới vẫn được ghi; Refresh mới ghi đè khi xong.
func (v *Viewer) Refresh(ctx context.Context) (DataState, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return DataState{}, common.ErrViewerClosed
	}
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	rows, err := v.fetcher.FetchCollection(ctx, v.cfg.Collection, v.opts.scope(v.cfg))

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return DataState{}, common.ErrViewerClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return v.state, ctxErr
	}
	if gen < v.written {
		return v.state, nil
	}

	v.state = resolve(v.cfg, v.opts, rows, err)
	v.written = gen
	v.loadedAt = time.Now()
	return v.state, nil
}

// State trạng thái dữ liệu hiện tại
func (v *Viewer) State() DataState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// LoadedAt thời điểm Refresh gần nhất ghi state, zero nếu chưa tải
func (v *Viewer) LoadedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadedAt
}

// SetFilter đặt lựa chọn lọc
func (v *Viewer) SetFilter(f FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
}

// Filter lựa chọn lọc hiện tại
func (v *Viewer) Filter() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetSort đặt trực tiếp trạng thái sắp xếp
func (v *Viewer) SetSort(s SortState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = s
}

// ToggleSort xử lý bấm vào header cột, trả về trạng thái sắp xếp mới
func (v *Viewer) ToggleSort(key string) SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = v.sort.Toggle(key)
	return v.sort
}

// Sort trạng thái sắp xếp hiện tại
func (v *Viewer) Sort() SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sort
}

// View áp dụng lựa chọn lọc và sắp xếp hiện tại lên dữ liệu đã tải
func (v *Viewer) View(now time.Time) []Record {
	v.mu.Lock()
	state, filter, s := v.state, v.filter, v.sort
	v.mu.Unlock()
	return Apply(state.rows, v.cfg, filter, s, now)
}

// Query áp dụng lựa chọn lọc và sắp xếp truyền vào (không đổi lựa chọn của Viewer).
// Dùng khi nhiều request cùng đọc một Viewer dùng chung.
func (v *Viewer) Query(filter FilterState, s SortState, now time.Time) ([]Record, DataState) {
	state := v.State()
	return Apply(state.rows, v.cfg, filter, s, now), state
}

// Close đóng Viewer; các Refresh đang chạy sẽ không ghi kết quả
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.state = Empty()
}

// Closed cho biết Viewer đã đóng
func (v *Viewer) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}
