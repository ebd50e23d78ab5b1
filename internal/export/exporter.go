package export

import (
	"fmt"
	"time"

	"agri_holding/internal/common"
	"agri_holding/internal/logger"
	"agri_holding/internal/notify"

	"github.com/sirupsen/logrus"
)

// Renderer chuyển bảng thành nội dung file
type Renderer func(t Table, req Request) ([]byte, error)

// Exporter điều phối việc xuất file: chặn view rỗng, gọi renderer theo định dạng,
// bắt mọi lỗi/panic của thư viện và báo kết quả qua Notifier.
type Exporter struct {
	notifier  notify.Notifier
	renderers map[Format]Renderer
	now       func() time.Time
}

// New tạo Exporter; n nil thì không gửi thông báo
func New(n notify.Notifier) *Exporter {
	if n == nil {
		n = notify.Nop{}
	}
	return &Exporter{
		notifier: n,
		renderers: map[Format]Renderer{
			FormatCSV:  renderCSV,
			FormatXLSX: renderXLSX,
			FormatPDF:  renderPDF,
		},
		now: time.Now,
	}
}

// Export tạo file theo định dạng. View rỗng trả về common.ErrNothingToExport, không tạo nội dung
// và gửi đúng một thông báo lỗi.
func (e *Exporter) Export(format Format, req Request) (dl Download, err error) {
	log := logger.GetExportLogger().WithFields(logrus.Fields{
		"module": "export",
		"format": format,
		"title":  req.Title,
		"rows":   len(req.Records),
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Xuất file bị panic")
			dl = Download{}
			err = common.WithDetails(common.ErrExportFailed, fmt.Sprint(r))
			e.notifier.Error(fmt.Sprintf("Không thể xuất %s: lỗi khi tạo file", format))
		}
	}()

	render, ok := e.renderers[format]
	if !ok {
		e.notifier.Error(fmt.Sprintf("Định dạng xuất không được hỗ trợ: %s", format))
		return Download{}, common.ErrUnsupportedFormat
	}

	if len(req.Records) == 0 {
		log.Warn("Không có dữ liệu để xuất")
		e.notifier.Error("Không có dữ liệu để xuất")
		return Download{}, common.ErrNothingToExport
	}

	if req.Now.IsZero() {
		req.Now = e.now()
	}
	records := req.Records
	if req.Single {
		records = records[:1]
	}

	body, err := render(BuildTable(records, req.Columns), req)
	if err != nil {
		log.WithError(err).Error("Không thể tạo file xuất")
		e.notifier.Error(fmt.Sprintf("Không thể xuất %s: %v", format, err))
		return Download{}, common.WithDetails(common.ErrExportFailed, err)
	}

	dl = Download{
		Filename: Filename(req.Title, req.Now, format),
		MIMEType: format.MIMEType(),
		Format:   format,
		Rows:     len(records),
		Body:     body,
	}
	log.WithFields(logrus.Fields{"filename": dl.Filename, "bytes": len(body)}).Info("Đã xuất file")
	e.notifier.Success(fmt.Sprintf("Đã xuất %d bản ghi ra %s", dl.Rows, dl.Filename))
	return dl, nil
}
