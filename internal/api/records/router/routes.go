// Package router đăng ký các route thuộc domain Records: xem, làm mới, đóng và xuất file bản ghi.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"agri_holding/internal/api/middleware"
	recordhdl "agri_holding/internal/api/records/handler"
	recordsvc "agri_holding/internal/api/records/service"
	apirouter "agri_holding/internal/api/router"
)

// Register trả về hàm đăng ký route records dùng service đã khởi tạo
func Register(svc *recordsvc.RecordService) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		if svc == nil {
			return fmt.Errorf("create record handler: record service is nil")
		}
		h := recordhdl.NewRecordHandler(svc)
		orgContextMiddleware := middleware.OrganizationContextMiddleware()
		mws := []fiber.Handler{orgContextMiddleware}

		// Route tĩnh đăng ký trước route có tham số
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "GET", "/entities", mws, h.HandleEntities)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "GET", "/:entity", mws, h.HandleQuery)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "POST", "/:entity/refresh", mws, h.HandleRefresh)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "DELETE", "/:entity/view", mws, h.HandleClose)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "GET", "/:entity/export", mws, h.HandleExport)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "POST", "/:entity/export/email", mws, h.HandleEmailExport)
		apirouter.RegisterRouteWithMiddleware(v1, "/records", "GET", "/:entity/:id/export", mws, h.HandleExportOne)
		return nil
	}
}
