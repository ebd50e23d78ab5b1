package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusAccepted  = 202 // Yêu cầu được chấp nhận
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusForbidden           = 403 // Không có quyền truy cập
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusConflict            = 409 // Xung đột dữ liệu
	StatusUnprocessableEntity = 422 // Yêu cầu hợp lệ nhưng không xử lý được
	StatusTooManyRequests     = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess = "Thao tác thành công"

	MsgBadRequest         = "Yêu cầu không hợp lệ"
	MsgNotFound           = "Không tìm thấy tài nguyên"
	MsgTooManyRequests    = "Quá nhiều yêu cầu"
	MsgInternalError      = "Lỗi hệ thống"
	MsgServiceUnavailable = "Dịch vụ không khả dụng"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: EXP_001)
	Category    string // Phân loại lỗi (ví dụ: Export)
	SubCategory string // Phân loại con (ví dụ: Empty)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Lỗi xác thực dữ liệu chung",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Tenant Errors (ORG_xxx)
	ErrCodeTenant = ErrorCode{
		Code:        "ORG_001",
		Category:    "Tenant",
		SubCategory: "Scope",
		Description: "Lỗi phạm vi công ty con (tenant)",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Data Source Errors (SRC_xxx)
	ErrCodeSource = ErrorCode{
		Code:        "SRC_001",
		Category:    "Source",
		SubCategory: "Collection",
		Description: "Lỗi tập dữ liệu (collection/bảng) không hợp lệ",
	}

	ErrCodeSourceEntity = ErrorCode{
		Code:        "SRC_002",
		Category:    "Source",
		SubCategory: "Entity",
		Description: "Loại bản ghi không được cấu hình",
	}

	// Record View Errors (VIEW_xxx)
	ErrCodeView = ErrorCode{
		Code:        "VIEW_001",
		Category:    "View",
		SubCategory: "State",
		Description: "Lỗi trạng thái màn hình xem bản ghi",
	}

	// Export Errors (EXP_xxx)
	ErrCodeExportEmpty = ErrorCode{
		Code:        "EXP_001",
		Category:    "Export",
		SubCategory: "Empty",
		Description: "Không có bản ghi để xuất",
	}

	ErrCodeExportFormat = ErrorCode{
		Code:        "EXP_002",
		Category:    "Export",
		SubCategory: "Format",
		Description: "Định dạng xuất không được hỗ trợ",
	}

	ErrCodeExportRender = ErrorCode{
		Code:        "EXP_003",
		Category:    "Export",
		SubCategory: "Render",
		Description: "Lỗi khi tạo file xuất",
	}

	ErrCodeExportDelivery = ErrorCode{
		Code:        "EXP_004",
		Category:    "Export",
		SubCategory: "Delivery",
		Description: "Lỗi khi gửi file xuất qua email",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so sánh theo mã lỗi và message để errors.Is hoạt động với các lỗi đã được bọc lại
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if !errors.As(target, &targetErr) {
		return false
	}
	return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
}

// Unwrap trả về lỗi gốc nếu Details là error
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetails trả về bản sao của lỗi chuẩn kèm thông tin chi tiết.
// Nếu err không phải *Error thì trả về nguyên err.
func WithDetails(err error, details any) error {
	var customErr *Error
	if !errors.As(err, &customErr) {
		return err
	}
	return NewError(customErr.Code, customErr.Message, customErr.StatusCode, details)
}

// Custom errors
var (
	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)
	ErrInvalidEmail  = NewError(ErrCodeValidationFormat, "Địa chỉ email không hợp lệ", StatusBadRequest, nil)

	ErrInvalidTimeRange     = NewError(ErrCodeValidationInput, "Khoảng thời gian không hợp lệ (all, hour, day, week, month, year)", StatusBadRequest, nil)
	ErrInvalidSortDirection = NewError(ErrCodeValidationInput, "Chiều sắp xếp không hợp lệ (asc, desc)", StatusBadRequest, nil)

	// Tenant Errors
	ErrUnknownTenant = NewError(ErrCodeTenant, "Công ty con không hợp lệ", StatusForbidden, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)

	// Data Source Errors
	ErrInvalidCollection  = NewError(ErrCodeSource, "Tên collection/bảng không hợp lệ", StatusBadRequest, nil)
	ErrCollectionNotFound = NewError(ErrCodeSource, "Không tìm thấy collection/bảng dữ liệu", StatusNotFound, nil)
	ErrUnknownEntity      = NewError(ErrCodeSourceEntity, "Loại bản ghi không tồn tại", StatusNotFound, nil)
	ErrUnsupportedSource  = NewError(ErrCodeSource, "Nguồn dữ liệu không được hỗ trợ", StatusInternalServerError, nil)

	// Record View Errors
	ErrViewerClosed = NewError(ErrCodeView, "Màn hình xem bản ghi đã đóng", StatusConflict, nil)

	// Export Errors
	ErrNothingToExport   = NewError(ErrCodeExportEmpty, "Không có dữ liệu để xuất", StatusUnprocessableEntity, nil)
	ErrUnsupportedFormat = NewError(ErrCodeExportFormat, "Định dạng xuất không được hỗ trợ (csv, xlsx, pdf)", StatusBadRequest, nil)
	ErrExportFailed      = NewError(ErrCodeExportRender, "Không thể tạo file xuất", StatusInternalServerError, nil)
	ErrMailNotConfigured = NewError(ErrCodeExportDelivery, "Chưa cấu hình máy chủ SMTP", StatusServiceUnavailable, nil)
	ErrMailFailed        = NewError(ErrCodeExportDelivery, "Không thể gửi email file xuất", StatusInternalServerError, nil)
)

// MongoDB Error Messages
const (
	MsgMongoConnection = "Lỗi kết nối MongoDB"
	MsgMongoNetwork    = "Lỗi mạng khi kết nối MongoDB"
	MsgMongoTimeout    = "Kết nối MongoDB bị timeout"
	MsgMongoAuth       = "Lỗi xác thực MongoDB"
	MsgMongoQuery      = "Lỗi truy vấn MongoDB"
	MsgMongoWrite      = "Lỗi ghi dữ liệu MongoDB"
	MsgMongoDuplicate  = "Dữ liệu trùng lặp trong MongoDB"
	MsgMongoSystem     = "Lỗi hệ thống MongoDB"
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, MsgMongoConnection, StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeDatabaseConnection, MsgMongoAuth, StatusServiceUnavailable, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, MsgMongoQuery, StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, MsgMongoWrite, StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, MsgMongoSystem, StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã là lỗi hệ thống thì giữ nguyên
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	// Nếu không tìm thấy lỗi cụ thể, trả về lỗi hệ thống chung
	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
