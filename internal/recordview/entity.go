package recordview

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EntityConfig cấu hình mỏng cho một loại bản ghi; toàn bộ logic lọc / sắp xếp / xuất dùng chung
type EntityConfig struct {
	Name             string              `json:"name" yaml:"name"`                           // Định danh trên URL, ví dụ "farm-records"
	Label            string              `json:"label" yaml:"label"`                         // Tiêu đề hiển thị, dùng làm tiêu đề file xuất
	Collection       string              `json:"collection" yaml:"collection"`               // Tên collection MongoDB / bảng SQL
	IDField          string              `json:"idField" yaml:"id_field"`                    // Field định danh bản ghi
	LabelField       string              `json:"labelField" yaml:"label_field"`              // Field tên dễ đọc
	StatusField      string              `json:"statusField" yaml:"status_field"`            // Field trạng thái
	StatusGroups     map[string][]string `json:"statusGroups,omitempty" yaml:"status_groups"` // Tab gộp nhiều trạng thái, ví dụ current = valid + expiring-soon
	StatusTabs       []string            `json:"statusTabs,omitempty" yaml:"status_tabs"`    // Các tab trạng thái hiển thị trên màn hình
	DateFields       []string            `json:"dateFields" yaml:"date_fields"`              // Field ngày dùng lọc theo thời gian, lấy field đầu tiên đọc được
	SearchableFields []string            `json:"searchableFields" yaml:"searchable_fields"`  // Field được tìm kiếm tự do
	ExportColumns    []string            `json:"exportColumns,omitempty" yaml:"export_columns"`
	PDFExclude       []string            `json:"pdfExclude,omitempty" yaml:"pdf_exclude"`
	TenantField      string              `json:"tenantField,omitempty" yaml:"tenant_field"` // Field công ty con, rỗng = dùng chung
	DefaultSort      SortState           `json:"defaultSort" yaml:"default_sort"`
	Fixtures         []Record            `json:"-" yaml:"fixtures"` // Dữ liệu mẫu khi nguồn rỗng hoặc lỗi
}

// WithDefaults điền các giá trị mặc định còn thiếu
func (c EntityConfig) WithDefaults() EntityConfig {
	if c.Collection == "" {
		c.Collection = strings.ReplaceAll(c.Name, "-", "_")
	}
	if c.Label == "" {
		c.Label = c.Name
	}
	if c.IDField == "" {
		c.IDField = "id"
	}
	if c.StatusField == "" {
		c.StatusField = "status"
	}
	if len(c.DateFields) == 0 {
		c.DateFields = []string{"updated_at", "created_at"}
	}
	if c.DefaultSort.Key != "" && c.DefaultSort.Direction == "" {
		c.DefaultSort.Direction = Ascending
	}
	return c
}

// Validate kiểm tra cấu hình có dùng được với các nguồn dữ liệu
func (c EntityConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("entity name is required")
	}
	if !identifierPattern.MatchString(c.Collection) {
		return fmt.Errorf("entity %s: invalid collection name %q", c.Name, c.Collection)
	}
	if c.TenantField != "" && !identifierPattern.MatchString(c.TenantField) {
		return fmt.Errorf("entity %s: invalid tenant field %q", c.Name, c.TenantField)
	}
	for tab, statuses := range c.StatusGroups {
		if len(statuses) == 0 {
			return fmt.Errorf("entity %s: status group %q is empty", c.Name, tab)
		}
	}
	return nil
}

// RecordID trả về định danh bản ghi dạng chuỗi
func (c EntityConfig) RecordID(r Record) string {
	v, _ := r.Get(c.IDField)
	return Text(v)
}

// RecordDate trả về ngày của bản ghi: giá trị đọc được đầu tiên trong DateFields
func (c EntityConfig) RecordDate(r Record) (time.Time, bool) {
	for _, field := range c.DateFields {
		v, ok := r.Get(field)
		if !ok {
			continue
		}
		if t, ok := ParseDate(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// MatchesStatus kiểm tra bản ghi có thuộc tab trạng thái.
// Tab gộp so theo tập trạng thái, tab thường so khớp chính xác. "" và "all" luôn khớp.
func (c EntityConfig) MatchesStatus(r Record, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	v, _ := r.Get(c.StatusField)
	value := Text(v)
	if group, ok := c.StatusGroups[status]; ok {
		for _, s := range group {
			if s == value {
				return true
			}
		}
		return false
	}
	return value == status
}

// Tabs trả về danh sách tab trạng thái: StatusTabs nếu có, ngược lại "all" và các tab gộp
func (c EntityConfig) Tabs() []string {
	if len(c.StatusTabs) > 0 {
		return c.StatusTabs
	}
	tabs := []string{StatusAll}
	for tab := range c.StatusGroups {
		tabs = append(tabs, tab)
	}
	if len(tabs) > 1 {
		sort.Strings(tabs[1:])
	}
	return tabs
}
