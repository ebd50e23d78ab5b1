package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"agri_holding/internal/common"
	"agri_holding/internal/logger"
	"agri_holding/internal/utility"

	"gopkg.in/gomail.v2"
)

// MailConfig thông tin máy chủ SMTP
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer gửi file đã xuất qua email dưới dạng tệp đính kèm
type Mailer struct {
	cfg  MailConfig
	send func(msg *gomail.Message) error
}

// NewMailer tạo Mailer; Host rỗng nghĩa là chưa cấu hình (Enabled() = false)
func NewMailer(cfg MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = func(msg *gomail.Message) error {
		dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
		return dialer.DialAndSend(msg)
	}
	return m
}

// Enabled cho biết đã cấu hình SMTP
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Host != ""
}

// Send gửi file tới danh sách người nhận
func (m *Mailer) Send(ctx context.Context, to []string, subject string, dl Download) error {
	if !m.Enabled() {
		return common.ErrMailNotConfigured
	}
	if len(to) == 0 {
		return common.ErrRequiredField
	}
	for _, addr := range to {
		if err := utility.ValidateEmail(addr); err != nil {
			return common.WithDetails(err, addr)
		}
	}
	if len(dl.Body) == 0 {
		return common.ErrNothingToExport
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", fmt.Sprintf("Đính kèm: %s (%d bản ghi).", dl.Filename, dl.Rows))
	msg.Attach(dl.Filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {dl.MIMEType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(dl.Body)
			return err
		}),
	)

	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			logger.WithModule("export").WithError(err).WithField("to", strings.Join(to, ",")).Error("Không thể gửi email file xuất")
			return common.WithDetails(common.ErrMailFailed, err)
		}
	}

	logger.WithModule("export").WithFields(map[string]interface{}{
		"to":       strings.Join(to, ","),
		"filename": dl.Filename,
	}).Info("Đã gửi email file xuất")
	return nil
}
