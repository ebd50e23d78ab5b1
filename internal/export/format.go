// Package export chuyển một view bản ghi (đã lọc / sắp xếp) thành file CSV, Excel hoặc PDF để tải về.
package export

import (
	"strings"
	"time"

	"agri_holding/internal/common"
	"agri_holding/internal/recordview"
)

// Format định dạng file xuất
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats các định dạng hỗ trợ
var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

// ParseFormat đọc tên định dạng ("excel" được hiểu là xlsx)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", common.ErrUnsupportedFormat
}

// MIMEType content type của định dạng
func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Request một yêu cầu xuất file
type Request struct {
	Title   string              // Tiêu đề, dùng cho tên file, tên sheet và header PDF
	Records []recordview.Record // View đã lọc và sắp xếp
	Single  bool                // Chỉ xuất bản ghi đầu tiên
	Columns []string            // Cột cố định; rỗng = lấy theo key của bản ghi đầu tiên
	Exclude []string            // Cột bỏ thêm khi xuất PDF
	Now     time.Time           // Thời điểm xuất; zero = time.Now()
}

// Download file đã tạo, sẵn sàng trả về cho client
type Download struct {
	Filename string
	MIMEType string
	Format   Format
	Rows     int
	Body     []byte
}
