package global

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldNamePattern giới hạn tên cột/field được phép dùng để sắp xếp hoặc lọc
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]{0,63}$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("field_name", validateFieldName)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}

	value := strings.ToLower(fl.Field().String())
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateFieldName kiểm tra tên field dùng cho sortKey/toggle. Chuỗi rỗng hợp lệ (không sắp xếp).
func validateFieldName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || fieldNamePattern.MatchString(value)
}
