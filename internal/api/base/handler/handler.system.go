package basehdl

import (
	"context"
	"time"

	"agri_holding/internal/common"
	"agri_holding/internal/global"

	"github.com/gofiber/fiber/v3"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng API và kết nối tới nguồn dữ liệu
// @Router /system/health [get]
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}
	if global.MongoDB_ServerConfig != nil {
		healthData["dataSource"] = global.MongoDB_ServerConfig.DataSource
	}

	var pingErr error
	switch {
	case global.MongoDB_Session != nil:
		pingErr = global.MongoDB_Session.Ping(ctx, nil)
	case global.SQL_Session != nil:
		pingErr = global.SQL_Session.PingContext(ctx)
	default:
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
	}

	if pingErr != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = pingErr.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}
	if _, set := services["database"]; !set {
		services["database"] = "ok"
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
