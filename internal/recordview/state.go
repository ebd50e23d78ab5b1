package recordview

import (
	"strings"

	"agri_holding/internal/common"
)

// FilterState lựa chọn lọc hiện tại của màn hình
type FilterState struct {
	SearchTerm string    `json:"searchTerm"`
	Status     string    `json:"status"`
	TimeRange  TimeRange `json:"timeRange"`
}

// StatusAll giá trị bỏ qua bộ lọc trạng thái
const StatusAll = "all"

// SortDirection chiều sắp xếp
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection đọc chiều sắp xếp, chuỗi rỗng là tăng dần
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", common.ErrInvalidSortDirection
}

// Flip đảo chiều sắp xếp
func (d SortDirection) Flip() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState cột đang sắp xếp và chiều sắp xếp. Key rỗng nghĩa là giữ thứ tự nguồn.
type SortState struct {
	Key       string        `json:"key" yaml:"key"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// Toggle xử lý một lần bấm vào header cột:
// bấm lại cột đang sắp xếp thì đảo chiều, bấm cột mới thì sắp xếp tăng dần theo cột đó.
func (s SortState) Toggle(key string) SortState {
	if key == "" {
		return s
	}
	if key == s.Key {
		return SortState{Key: key, Direction: s.Direction.Flip()}
	}
	return SortState{Key: key, Direction: Ascending}
}
