package recordview

import "fmt"

// StateKind loại trạng thái dữ liệu của một màn hình
type StateKind string

const (
	StateLoaded  StateKind = "loaded"  // Có dữ liệu thật
	StateEmpty   StateKind = "empty"   // Nguồn trả về 0 bản ghi, không dùng dữ liệu mẫu
	StateError   StateKind = "error"   // Tải lỗi, không dùng dữ liệu mẫu
	StateFixture StateKind = "fixture" // Đang hiển thị dữ liệu mẫu
)

// Banner hiển thị khi đang dùng dữ liệu mẫu
const SampleDataBanner = "Đang hiển thị dữ liệu mẫu"

// DataState kết quả tải dữ liệu: Loaded(rows) | Empty | Error(reason) | Fixture(rows)
type DataState struct {
	kind   StateKind
	rows   []Record
	reason string
	err    error
}

// Loaded dữ liệu thật từ nguồn
func Loaded(rows []Record) DataState {
	return DataState{kind: StateLoaded, rows: copyRecords(rows)}
}

// Empty nguồn không có bản ghi
func Empty() DataState {
	return DataState{kind: StateEmpty}
}

// Errored tải dữ liệu thất bại
func Errored(err error) DataState {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return DataState{kind: StateError, reason: reason, err: err}
}

// Fixture dữ liệu mẫu thay thế, reason ghi lý do (nguồn rỗng hoặc lỗi)
func Fixture(rows []Record, reason string) DataState {
	return DataState{kind: StateFixture, rows: copyRecords(rows), reason: reason}
}

// Kind loại trạng thái; giá trị zero được coi là Empty
func (s DataState) Kind() StateKind {
	if s.kind == "" {
		return StateEmpty
	}
	return s.kind
}

// Rows các bản ghi để hiển thị (rỗng với Empty và Error)
func (s DataState) Rows() []Record {
	return copyRecords(s.rows)
}

// IsSample cho biết đang hiển thị dữ liệu mẫu
func (s DataState) IsSample() bool {
	return s.kind == StateFixture
}

// Reason lý do của Error / Fixture
func (s DataState) Reason() string {
	return s.reason
}

// Err lỗi gốc của trạng thái Error
func (s DataState) Err() error {
	return s.err
}

// Banner dòng thông báo hiển thị phía trên bảng, rỗng khi dữ liệu thật
func (s DataState) Banner() string {
	switch s.Kind() {
	case StateFixture:
		return SampleDataBanner
	case StateError:
		return fmt.Sprintf("Không thể tải dữ liệu: %s", s.reason)
	case StateEmpty:
		return "Chưa có bản ghi nào"
	}
	return ""
}

// StateSummary dạng JSON của DataState cho response
type StateSummary struct {
	Kind   StateKind `json:"kind"`
	Sample bool      `json:"sample"`
	Banner string    `json:"banner,omitempty"`
	Reason string    `json:"reason,omitempty"`
	Count  int       `json:"count"`
}

// Summary tóm tắt trạng thái
func (s DataState) Summary() StateSummary {
	return StateSummary{
		Kind:   s.Kind(),
		Sample: s.IsSample(),
		Banner: s.Banner(),
		Reason: s.reason,
		Count:  len(s.rows),
	}
}
