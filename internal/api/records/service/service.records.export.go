package recordsvc

import (
	"context"
	"fmt"
	"strings"

	"agri_holding/internal/common"
	"agri_holding/internal/export"
	"agri_holding/internal/logger"
	"agri_holding/internal/notify"
	rv "agri_holding/internal/recordview"

	"github.com/google/uuid"
)

// Mailer gửi file đã xuất qua email
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to []string, subject string, dl export.Download) error
}

// ExportInput yêu cầu xuất file của một view
type ExportInput struct {
	Format   export.Format
	Filter   rv.FilterState
	Sort     rv.SortState
	RecordID string // Khác rỗng = chỉ xuất một bản ghi theo id (không áp dụng bộ lọc)
}

// ExportResult file đã xuất kèm id để đối chiếu audit log
type ExportResult struct {
	ExportID string
	Download export.Download
	State    rv.DataState
}

// Export xuất view (hoặc một bản ghi) của (tenant, entity) ra file.
// View rỗng trả về common.ErrNothingToExport và gửi một thông báo lỗi qua n.
func (s *RecordService) Export(ctx context.Context, tenant, entity string, in ExportInput, n notify.Notifier) (*ExportResult, error) {
	if n == nil {
		n = s.Notifier(tenant)
	}
	res, err := s.Query(ctx, tenant, entity, QueryInput{Filter: in.Filter, Sort: in.Sort})
	if err != nil {
		return nil, err
	}
	cfg := res.Entity

	req := export.Request{
		Title:   cfg.Label,
		Records: res.View,
		Columns: cfg.ExportColumns,
		Exclude: cfg.PDFExclude,
		Now:     s.now(),
	}
	if in.RecordID != "" {
		record, ok := findRecord(cfg, res.State.Rows(), in.RecordID)
		if !ok {
			return nil, common.WithDetails(common.ErrNotFound, fmt.Sprintf("%s/%s", entity, in.RecordID))
		}
		req.Records = []rv.Record{record}
		req.Single = true
		req.Title = singleTitle(cfg, record)
	}

	dl, err := export.New(n).Export(in.Format, req)
	if err != nil {
		return nil, err
	}

	exportID := uuid.NewString()
	logger.LogExport(tenant, entity, string(dl.Format), dl.Filename, dl.Rows, map[string]interface{}{
		"export_id":  exportID,
		"record_id":  in.RecordID,
		"search":     in.Filter.SearchTerm,
		"status":     in.Filter.Status,
		"time_range": in.Filter.TimeRange,
		"sort":       in.Sort.Key + " " + string(in.Sort.Direction),
		"sample":     res.State.IsSample(),
	})
	return &ExportResult{ExportID: exportID, Download: dl, State: res.State}, nil
}

// EmailExport xuất file như Export rồi gửi tới danh sách người nhận
func (s *RecordService) EmailExport(ctx context.Context, tenant, entity string, in ExportInput, to []string, subject string, n notify.Notifier) (*ExportResult, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return nil, common.ErrMailNotConfigured
	}
	if n == nil {
		n = s.Notifier(tenant)
	}

	res, err := s.Export(ctx, tenant, entity, in, n)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(subject) == "" {
		subject = res.Download.Filename
	}
	if err := s.mailer.Send(ctx, to, subject, res.Download); err != nil {
		n.Error(fmt.Sprintf("Không thể gửi %s qua email", res.Download.Filename))
		return nil, err
	}
	n.Success(fmt.Sprintf("Đã gửi %s tới %s", res.Download.Filename, strings.Join(to, ", ")))
	return res, nil
}

// findRecord tìm bản ghi theo id trong dữ liệu đã tải
func findRecord(cfg rv.EntityConfig, rows []rv.Record, id string) (rv.Record, bool) {
	for _, r := range rows {
		if cfg.RecordID(r) == id {
			return r, true
		}
	}
	return rv.Record{}, false
}

// singleTitle tiêu đề file khi xuất một bản ghi: "<Label> <tên bản ghi>"
func singleTitle(cfg rv.EntityConfig, r rv.Record) string {
	name := cfg.RecordID(r)
	if cfg.LabelField != "" {
		if v, ok := r.Get(cfg.LabelField); ok && rv.Text(v) != "" {
			name = rv.Text(v)
		}
	}
	return cfg.Label + " " + name
}
