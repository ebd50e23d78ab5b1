// Package router đăng ký các route thông báo (toast).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"agri_holding/internal/api/middleware"
	noticehdl "agri_holding/internal/api/notices/handler"
	apirouter "agri_holding/internal/api/router"
	"agri_holding/internal/notify"
)

// Register trả về hàm đăng ký route notices dùng Center đã khởi tạo
func Register(center *notify.Center) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		if center == nil {
			return fmt.Errorf("create notice handler: notice center is nil")
		}
		h := noticehdl.NewNoticeHandler(center)
		mws := []fiber.Handler{middleware.OrganizationContextMiddleware()}
		apirouter.RegisterRouteWithMiddleware(v1, "/notices", "GET", "", mws, h.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/notices", "DELETE", "/:id", mws, h.HandleDismiss)
		return nil
	}
}
