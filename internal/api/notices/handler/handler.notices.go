// Package noticehdl chứa HTTP handler cho thông báo (toast) theo công ty con.
package noticehdl

import (
	basehdl "agri_holding/internal/api/base/handler"
	"agri_holding/internal/api/middleware"
	"agri_holding/internal/common"
	"agri_holding/internal/notify"

	"github.com/gofiber/fiber/v3"
)

// NoticeHandler xử lý liệt kê và tắt thông báo
type NoticeHandler struct {
	Center *notify.Center
}

// NewNoticeHandler tạo NoticeHandler
func NewNoticeHandler(center *notify.Center) *NoticeHandler {
	return &NoticeHandler{Center: center}
}

// HandleList xử lý GET /notices
func (h *NoticeHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		return basehdl.HandleResponse(c, h.Center.List(middleware.GetActiveOrganizationID(c)), nil)
	})
}

// HandleDismiss xử lý DELETE /notices/:id
func (h *NoticeHandler) HandleDismiss(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := c.Params("id")
		if !h.Center.Dismiss(middleware.GetActiveOrganizationID(c), id) {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrNotFound, id))
		}
		return basehdl.HandleResponse(c, fiber.Map{"id": id, "dismissed": true}, nil)
	})
}
