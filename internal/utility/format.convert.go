package utility

import (
	"strings"
	"unicode"
)

// Slugify chuyển tiêu đề thành chuỗi an toàn cho tên file: chữ thường, nối bằng dấu gạch ngang.
// Tiêu đề không còn ký tự hợp lệ thì trả về "records".
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "records"
	}
	return slug
}
