package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"agri_holding/internal/recordview"
	"agri_holding/internal/utility"
)

// DateLayout định dạng ngày dùng chung cho bảng hiển thị, CSV, Excel và PDF
const DateLayout = "Jan 02, 2006"

// DatePlaceholder hiển thị thay cho ngày thiếu hoặc không đọc được
const DatePlaceholder = "-"

// Table dữ liệu dạng bảng đã định dạng, dùng chung cho mọi định dạng xuất
type Table struct {
	Columns []string   // Key gốc
	Headers []string   // Tiêu đề cột dạng Title Case
	Cells   [][]string // Ô đã định dạng
	Values  [][]any    // Giá trị gốc (để Excel ghi số dạng số)
}

// BuildTable dựng bảng từ các bản ghi. Cột lấy từ columns nếu có, ngược lại theo thứ tự key của bản ghi đầu tiên.
func BuildTable(records []recordview.Record, columns []string) Table {
	if len(columns) == 0 && len(records) > 0 {
		columns = records[0].Keys()
	}

	t := Table{
		Columns: columns,
		Headers: make([]string, len(columns)),
		Cells:   make([][]string, 0, len(records)),
		Values:  make([][]any, 0, len(records)),
	}
	for i, c := range columns {
		t.Headers[i] = Header(c)
	}
	for _, r := range records {
		cells := make([]string, len(columns))
		values := make([]any, len(columns))
		for i, c := range columns {
			v, _ := r.Get(c)
			values[i] = v
			cells[i] = FormatCell(c, v)
		}
		t.Cells = append(t.Cells, cells)
		t.Values = append(t.Values, values)
	}
	return t
}

// Project trả về bảng chỉ gồm các cột không bị loại, tối đa limit cột (limit <= 0 = không giới hạn)
func (t Table) Project(exclude []string, limit int) Table {
	skip := make(map[string]bool, len(exclude))
	for _, c := range exclude {
		skip[c] = true
	}

	var idx []int
	for i, c := range t.Columns {
		if skip[c] {
			continue
		}
		idx = append(idx, i)
		if limit > 0 && len(idx) == limit {
			break
		}
	}

	out := Table{
		Columns: make([]string, len(idx)),
		Headers: make([]string, len(idx)),
		Cells:   make([][]string, len(t.Cells)),
		Values:  make([][]any, len(t.Values)),
	}
	for j, i := range idx {
		out.Columns[j] = t.Columns[i]
		out.Headers[j] = t.Headers[i]
	}
	for r := range t.Cells {
		out.Cells[r] = make([]string, len(idx))
		out.Values[r] = make([]any, len(idx))
		for j, i := range idx {
			out.Cells[r][j] = t.Cells[r][i]
			out.Values[r][j] = t.Values[r][i]
		}
	}
	return out
}

// Header chuyển key snake_case / kebab-case / camelCase thành Title Case ("farm_name" -> "Farm Name")
func Header(key string) string {
	words := splitWords(key)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func splitWords(key string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// IsDateField field được định dạng như ngày: tên chứa "date" hoặc là created_at / updated_at
func IsDateField(key string) bool {
	switch key {
	case "created_at", "updated_at", "createdAt", "updatedAt":
		return true
	}
	return strings.Contains(strings.ToLower(key), "date")
}

// FormatCell định dạng một ô: ngày theo DateLayout, object/mảng thành JSON, nil thành chuỗi rỗng
func FormatCell(key string, v any) string {
	if IsDateField(key) {
		if t, ok := recordview.ParseDate(v); ok {
			return t.Format(DateLayout)
		}
		return DatePlaceholder
	}
	if v == nil {
		return ""
	}
	return recordview.Text(v)
}

// Filename tên file "<slug(tiêu đề)>-<YYYY-MM-DD>.<định dạng>"
func Filename(title string, now time.Time, f Format) string {
	return fmt.Sprintf("%s-%s.%s", utility.Slugify(title), now.Format("2006-01-02"), f)
}
