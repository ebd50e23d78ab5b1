// Package recordhdl chứa HTTP handler cho domain Records (xem, làm mới, xuất file bản ghi).
package recordhdl

import (
	"fmt"
	"strconv"

	basehdl "agri_holding/internal/api/base/handler"
	"agri_holding/internal/api/middleware"
	recorddto "agri_holding/internal/api/records/dto"
	recordsvc "agri_holding/internal/api/records/service"
	"agri_holding/internal/common"
	"agri_holding/internal/export"
	"agri_holding/internal/logger"
	"agri_holding/internal/notify"
	rv "agri_holding/internal/recordview"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

// RecordHandler xử lý API màn hình xem bản ghi
type RecordHandler struct {
	RecordService *recordsvc.RecordService
}

// NewRecordHandler tạo RecordHandler từ service đã khởi tạo
func NewRecordHandler(svc *recordsvc.RecordService) *RecordHandler {
	return &RecordHandler{RecordService: svc}
}

// entitySummary thông tin một loại bản ghi trả về cho client
type entitySummary struct {
	Name             string       `json:"name"`
	Label            string       `json:"label"`
	StatusTabs       []string     `json:"statusTabs"`
	SearchableFields []string     `json:"searchableFields"`
	DateFields       []string     `json:"dateFields"`
	DefaultSort      rv.SortState `json:"defaultSort"`
	Formats          []string     `json:"formats"`
}

// HandleEntities xử lý GET /records/entities
func (h *RecordHandler) HandleEntities(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		formats := make([]string, len(export.Formats))
		for i, f := range export.Formats {
			formats[i] = string(f)
		}

		entities := h.RecordService.Entities()
		out := make([]entitySummary, 0, len(entities))
		for _, e := range entities {
			out = append(out, entitySummary{
				Name:             e.Name,
				Label:            e.Label,
				StatusTabs:       e.Tabs(),
				SearchableFields: e.SearchableFields,
				DateFields:       e.DateFields,
				DefaultSort:      e.DefaultSort,
				Formats:          formats,
			})
		}
		return basehdl.HandleResponse(c, out, nil)
	})
}

// parseQuery đọc và kiểm tra query, trả về lựa chọn lọc và sắp xếp
func (h *RecordHandler) parseQuery(c fiber.Ctx, entity string) (recorddto.RecordQuery, rv.FilterState, rv.SortState, error) {
	var q recorddto.RecordQuery
	if err := c.Bind().Query(&q); err != nil {
		return q, rv.FilterState{}, rv.SortState{}, common.WithDetails(common.ErrInvalidFormat, err.Error())
	}
	if err := q.Validate(); err != nil {
		return q, rv.FilterState{}, rv.SortState{}, err
	}
	cfg, err := h.RecordService.Entity(entity)
	if err != nil {
		return q, rv.FilterState{}, rv.SortState{}, err
	}
	filter, err := q.Filter()
	if err != nil {
		return q, rv.FilterState{}, rv.SortState{}, err
	}
	sortState, err := q.Sort(cfg.DefaultSort)
	if err != nil {
		return q, rv.FilterState{}, rv.SortState{}, err
	}
	return q, filter, sortState, nil
}

// HandleQuery xử lý GET /records/:entity
// URL: GET /api/v1/records/farm-records?search=kanoni&status=active&timeRange=month&sortKey=farm_name&sortDir=asc&toggle=farm_name&page=1&limit=20
func (h *RecordHandler) HandleQuery(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		entity := c.Params("entity")
		q, filter, sortState, err := h.parseQuery(c, entity)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		tenant := middleware.GetActiveOrganizationID(c)
		res, err := h.RecordService.Query(c.Context(), tenant, entity, recordsvc.QueryInput{
			Filter: filter,
			Sort:   sortState,
			Page:   q.Page,
			Limit:  q.Limit,
		})
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		table := export.BuildTable(res.Rows, res.Entity.ExportColumns)
		if len(table.Columns) == 0 && len(res.View) > 0 {
			table.Columns = res.View[0].Keys()
		}
		data := fiber.Map{
			"entity":     res.Entity.Name,
			"label":      res.Entity.Label,
			"columns":    table.Columns,
			"rows":       res.Rows,
			"filter":     res.Filter,
			"sort":       res.Sort,
			"dataState":  res.State.Summary(),
			"pagination": paginationOf(res),
			"notices":    h.RecordService.Notices(tenant),
		}
		if q.Display {
			data["headers"] = table.Headers
			data["cells"] = table.Cells
		}
		return basehdl.HandleResponse(c, data, nil)
	})
}

func paginationOf(res *recordsvc.QueryResult) fiber.Map {
	p := res.Pagination
	return fiber.Map{
		"page":      p.Page,
		"limit":     p.Limit,
		"itemCount": p.ItemCount,
		"total":     p.Total,
		"totalPage": p.TotalPage,
	}
}

// HandleRefresh xử lý POST /records/:entity/refresh
func (h *RecordHandler) HandleRefresh(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		tenant := middleware.GetActiveOrganizationID(c)
		entity := c.Params("entity")
		summary, err := h.RecordService.Refresh(c.Context(), tenant, entity)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		logger.LogAction("refresh_records", c, map[string]interface{}{
			"resource_type": entity,
			"kind":          summary.Kind,
			"count":         summary.Count,
		})
		return basehdl.HandleResponse(c, fiber.Map{
			"dataState": summary,
			"notices":   h.RecordService.Notices(tenant),
		}, nil)
	})
}

// HandleClose xử lý DELETE /records/:entity/view (đóng màn hình, hủy kết quả tải đang chờ)
func (h *RecordHandler) HandleClose(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		entity := c.Params("entity")
		closed, err := h.RecordService.Close(middleware.GetActiveOrganizationID(c), entity)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if closed {
			logger.LogAction("close_view", c, map[string]interface{}{"resource_type": entity})
		}
		return basehdl.HandleResponse(c, fiber.Map{"closed": closed}, nil)
	})
}

// exportInput đọc query export chung cho xuất view và xuất một bản ghi
func (h *RecordHandler) exportInput(c fiber.Ctx, entity string) (recordsvc.ExportInput, error) {
	q, filter, sortState, err := h.parseQuery(c, entity)
	if err != nil {
		return recordsvc.ExportInput{}, err
	}
	name := q.Format
	if name == "" {
		name = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return recordsvc.ExportInput{}, err
	}
	return recordsvc.ExportInput{Format: format, Filter: filter, Sort: sortState}, nil
}

// exportErrorResponse trả lỗi export kèm các thông báo phát sinh trong request
func exportErrorResponse(c fiber.Ctx, err error, rec *notify.Recorder) error {
	status, body := basehdl.ErrorBody(err)
	body["notices"] = rec.Notices()
	logger.WithRequestInfo(c, "records", c.Params("entity")).WithError(err).Warn("Xuất file thất bại")
	return basehdl.JSONResponse(c, status, body)
}

// sendAttachment ghi file xuất vào response dưới dạng tệp đính kèm
func sendAttachment(c fiber.Ctx, res *recordsvc.ExportResult) error {
	dl := res.Download
	header := &c.RequestCtx().Response.Header
	header.SetContentType(dl.MIMEType)
	header.Set(fasthttp.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.Filename))
	header.Set("X-Export-ID", res.ExportID)
	header.Set("X-Export-Rows", strconv.Itoa(dl.Rows))
	header.Set("X-Data-State", string(res.State.Kind()))
	return c.Status(common.StatusOK).Send(dl.Body)
}

// HandleExport xử lý GET /records/:entity/export
// URL: GET /api/v1/records/farm-records/export?format=xlsx&status=active&sortKey=farm_name
func (h *RecordHandler) HandleExport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		entity := c.Params("entity")
		tenant := middleware.GetActiveOrganizationID(c)
		rec := notify.NewRecorder(h.RecordService.Notifier(tenant))

		in, err := h.exportInput(c, entity)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		res, err := h.RecordService.Export(c.Context(), tenant, entity, in, rec)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		return sendAttachment(c, res)
	})
}

// HandleExportOne xử lý GET /records/:entity/:id/export
func (h *RecordHandler) HandleExportOne(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		entity := c.Params("entity")
		tenant := middleware.GetActiveOrganizationID(c)
		rec := notify.NewRecorder(h.RecordService.Notifier(tenant))

		in, err := h.exportInput(c, entity)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		in.RecordID = c.Params("id")
		res, err := h.RecordService.Export(c.Context(), tenant, entity, in, rec)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		return sendAttachment(c, res)
	})
}

// HandleEmailExport xử lý POST /records/:entity/export/email
// Body: {"format":"pdf","to":["ops@muheesi.co.ug"],"search":"kanoni","status":"active"}
func (h *RecordHandler) HandleEmailExport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		entity := c.Params("entity")
		tenant := middleware.GetActiveOrganizationID(c)
		rec := notify.NewRecorder(h.RecordService.Notifier(tenant))

		var body recorddto.EmailExportBody
		if err := c.Bind().Body(&body); err != nil {
			return exportErrorResponse(c, common.WithDetails(common.ErrInvalidFormat, err.Error()), rec)
		}
		if err := body.Validate(); err != nil {
			return exportErrorResponse(c, err, rec)
		}
		cfg, err := h.RecordService.Entity(entity)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		filter, err := body.Filter()
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		sortState, err := body.Sort(cfg.DefaultSort)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		name := body.Format
		if name == "" {
			name = string(export.FormatPDF)
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}

		res, err := h.RecordService.EmailExport(c.Context(), tenant, entity, recordsvc.ExportInput{
			Format: format,
			Filter: filter,
			Sort:   sortState,
		}, body.To, body.Subject, rec)
		if err != nil {
			return exportErrorResponse(c, err, rec)
		}
		return basehdl.HandleResponse(c, fiber.Map{
			"exportId": res.ExportID,
			"filename": res.Download.Filename,
			"rows":     res.Download.Rows,
			"to":       body.To,
			"notices":  rec.Notices(),
		}, nil)
	})
}
