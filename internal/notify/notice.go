// Package notify cung cấp thông báo dạng toast (success / error / dismiss) cho các màn hình xem bản ghi.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level mức độ của thông báo
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice một thông báo toast
type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Tenant    string    `json:"tenant,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier là boundary thông báo mà pipeline dùng để báo kết quả tải dữ liệu và xuất file
type Notifier interface {
	Success(message string) Notice
	Error(message string) Notice
	Dismiss(id string) bool
}

func newNotice(tenant string, level Level, message string, now time.Time) Notice {
	return Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Tenant:    tenant,
		CreatedAt: now,
	}
}

// Nop là Notifier bỏ qua mọi thông báo
type Nop struct{}

func (Nop) Success(message string) Notice {
	return newNotice("", LevelSuccess, message, time.Now())
}

func (Nop) Error(message string) Notice {
	return newNotice("", LevelError, message, time.Now())
}

func (Nop) Dismiss(string) bool { return false }
