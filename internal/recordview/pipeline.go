package recordview

import (
	"sort"
	"strings"
	"time"
)

// Mọi hàm trong file này trả về slice mới và không sửa slice đầu vào.

// FilterByTimeRange giữ các bản ghi có ngày >= mốc cắt của khoảng thời gian.
// Bản ghi thiếu ngày hoặc ngày không đọc được bị loại (trừ khi khoảng là "all").
func FilterByTimeRange(records []Record, cfg EntityConfig, rng TimeRange, now time.Time) []Record {
	cutoff, ok := rng.Cutoff(now)
	if !ok {
		return copyRecords(records)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		date, ok := cfg.RecordDate(r)
		if !ok {
			continue
		}
		if !date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStatus giữ các bản ghi thuộc tab trạng thái; "" và "all" giữ tất cả
func FilterByStatus(records []Record, cfg EntityConfig, status string) []Record {
	if status == "" || status == StatusAll {
		return copyRecords(records)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if cfg.MatchesStatus(r, status) {
			out = append(out, r)
		}
	}
	return out
}

// FilterBySearch tìm chuỗi con không phân biệt hoa thường trên các field tìm kiếm của loại bản ghi.
// Loại bản ghi không khai báo SearchableFields thì tìm trên mọi field.
func FilterBySearch(records []Record, cfg EntityConfig, term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return copyRecords(records)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		fields := cfg.SearchableFields
		if len(fields) == 0 {
			fields = r.keys
		}
		for _, field := range fields {
			v, ok := r.Get(field)
			if !ok || v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(Text(v)), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// SortRecords sắp xếp ổn định theo SortState. Key rỗng giữ nguyên thứ tự.
// Giảm dần đảo bộ so sánh, các bản ghi bằng nhau vẫn giữ thứ tự ban đầu.
func SortRecords(records []Record, s SortState) []Record {
	out := copyRecords(records)
	if s.Key == "" {
		return out
	}

	desc := s.Direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Get(s.Key)
		b, _ := out[j].Get(s.Key)
		if desc {
			return compareValues(b, a) < 0
		}
		return compareValues(a, b) < 0
	})
	return out
}

// Apply chạy toàn bộ pipeline: khoảng thời gian -> trạng thái -> tìm kiếm -> sắp xếp
func Apply(records []Record, cfg EntityConfig, filter FilterState, s SortState, now time.Time) []Record {
	out := FilterByTimeRange(records, cfg, filter.TimeRange, now)
	out = FilterByStatus(out, cfg, filter.Status)
	out = FilterBySearch(out, cfg, filter.SearchTerm)
	return SortRecords(out, s)
}

// Paginate cắt một trang (page bắt đầu từ 1). limit <= 0 trả về toàn bộ.
func Paginate(records []Record, page, limit int) []Record {
	if limit <= 0 {
		return copyRecords(records)
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(records) {
		return []Record{}
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	return copyRecords(records[start:end])
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
