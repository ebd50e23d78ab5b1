// Package recorddto chứa DTO cho domain Records (truy vấn, xuất file, gửi email).
package recorddto

import (
	"agri_holding/internal/common"
	"agri_holding/internal/global"
	rv "agri_holding/internal/recordview"
)

// RecordQuery query chung cho GET /records/:entity và các route export
type RecordQuery struct {
	Search    string `query:"search" json:"search" validate:"max=200,no_xss"`                                     // Từ khóa tìm kiếm tự do
	Status    string `query:"status" json:"status" validate:"omitempty,max=64,field_name"`                        // Tab trạng thái, rỗng hoặc "all" = tất cả
	TimeRange string `query:"timeRange" json:"timeRange" validate:"omitempty,oneof=all hour day week month year"` // Khoảng thời gian
	SortKey   string `query:"sortKey" json:"sortKey" validate:"field_name"`                                       // Cột đang sắp xếp
	SortDir   string `query:"sortDir" json:"sortDir" validate:"omitempty,oneof=asc desc ascending descending"`    // Chiều sắp xếp
	Toggle    string `query:"toggle" json:"toggle" validate:"field_name"`                                         // Cột vừa được bấm (áp dụng SortState.Toggle)
	Page      int    `query:"page" json:"page" validate:"gte=0"`                                                  // Trang, bắt đầu từ 1; 0 = 1
	Limit     int    `query:"limit" json:"limit" validate:"gte=0,lte=1000"`                                       // Số dòng mỗi trang; 0 = toàn bộ
	Display   bool   `query:"display" json:"display"`                                                             // Trả về thêm ô đã định dạng như khi xuất
	Format    string `query:"format" json:"format" validate:"omitempty,oneof=csv xlsx excel pdf"`                 // Định dạng xuất (chỉ dùng cho export)
}

// Validate kiểm tra query bằng validator toàn cục
func (q *RecordQuery) Validate() error {
	if err := global.Validate.Struct(q); err != nil {
		return common.WithDetails(common.ErrInvalidInput, err.Error())
	}
	return nil
}

// Filter chuyển query thành FilterState
func (q RecordQuery) Filter() (rv.FilterState, error) {
	rng, err := rv.ParseTimeRange(q.TimeRange)
	if err != nil {
		return rv.FilterState{}, err
	}
	status := q.Status
	if status == "" {
		status = rv.StatusAll
	}
	return rv.FilterState{SearchTerm: q.Search, Status: status, TimeRange: rng}, nil
}

// Sort tính SortState: bắt đầu từ sortKey/sortDir (hoặc mặc định của entity) rồi áp dụng toggle
func (q RecordQuery) Sort(defaultSort rv.SortState) (rv.SortState, error) {
	s := defaultSort
	if q.SortKey != "" {
		dir, err := rv.ParseSortDirection(q.SortDir)
		if err != nil {
			return rv.SortState{}, err
		}
		s = rv.SortState{Key: q.SortKey, Direction: dir}
	}
	return s.Toggle(q.Toggle), nil
}

// EmailExportBody body cho POST /records/:entity/export/email
type EmailExportBody struct {
	RecordQuery
	To      []string `json:"to" validate:"required,min=1,max=10,dive,email"` // Danh sách người nhận
	Subject string   `json:"subject" validate:"max=200,no_xss"`              // Tiêu đề email, rỗng = theo tên file
}

// Validate kiểm tra body bằng validator toàn cục
func (b *EmailExportBody) Validate() error {
	if err := global.Validate.Struct(b); err != nil {
		return common.WithDetails(common.ErrInvalidInput, err.Error())
	}
	return nil
}
