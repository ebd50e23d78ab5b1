package recordview

import (
	"strings"
	"time"

	"agri_holding/internal/common"
)

// TimeRange khoảng thời gian tương đối tính từ thời điểm xem
type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeHour  TimeRange = "hour"
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
)

// TimeRanges danh sách các khoảng thời gian hợp lệ, theo thứ tự hiển thị
var TimeRanges = []TimeRange{RangeAll, RangeHour, RangeDay, RangeWeek, RangeMonth, RangeYear}

// ParseTimeRange đọc tên khoảng thời gian, chuỗi rỗng là "all"
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RangeAll, nil
	}
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", common.ErrInvalidTimeRange
}

// Cutoff trả về mốc thời gian sớm nhất được giữ lại. ok = false với "all" (không lọc).
// Tháng và năm tính theo lịch (AddDate), không theo số giờ cố định.
func (r TimeRange) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch r {
	case RangeHour:
		return now.Add(-time.Hour), true
	case RangeDay:
		return now.Add(-24 * time.Hour), true
	case RangeWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
