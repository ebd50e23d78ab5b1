package recordview

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayouts các định dạng ngày chấp nhận khi đọc chuỗi; chuỗi không có múi giờ được hiểu là UTC
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate đọc một giá trị ngày. Chấp nhận time.Time, primitive.DateTime, chuỗi theo dateLayouts
// và số nguyên Unix milliseconds (createdAt/updatedAt lưu dạng mili giây).
// Giá trị rỗng hoặc không đọc được trả về ok = false.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case primitive.DateTime:
		return t.Time().UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case []byte:
		return ParseDate(string(t))
	}

	if ms, ok := toFloat(v); ok && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

// toFloat chuyển các kiểu số về float64
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

// Text trả về dạng chuỗi chuẩn của một giá trị: dùng cho tìm kiếm, so sánh chuỗi và xuất file
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return t.Format(time.RFC3339)
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case Record, []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// IsNested cho biết giá trị là object hoặc mảng lồng nhau
func IsNested(v any) bool {
	switch v.(type) {
	case Record, []any, map[string]any:
		return true
	}
	return false
}

// Thứ hạng kiểu khi so sánh hai giá trị khác loại
const (
	rankNil = iota
	rankNumber
	rankTime
	rankBool
	rankText
)

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	if _, ok := asTime(v); ok {
		return rankTime
	}
	return rankText
}

// compareValues so sánh theo kiểu tự nhiên của giá trị.
// Khác loại thì so theo thứ hạng: nil < số < thời gian < bool < chuỗi; cùng loại thì so theo giá trị.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	case rankTime:
		ta, _ := asTime(a)
		tb, _ := asTime(b)
		return ta.Compare(tb)
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	}
	return strings.Compare(Text(a), Text(b))
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

// Number trả về giá trị số nếu v là kiểu số
func Number(v any) (float64, bool) {
	return toFloat(v)
}
