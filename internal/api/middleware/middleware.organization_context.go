package middleware

import (
	"strings"

	"agri_holding/internal/common"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"

	"github.com/gofiber/fiber/v3"
)

const (
	// OrganizationHeader header chọn công ty con (tenant) cho request
	OrganizationHeader = "X-Organization-ID"
	// organizationLocalKey key lưu công ty con đang hoạt động trong c.Locals
	organizationLocalKey = "active_organization_id"
)

// OrganizationContextMiddleware xác định công ty con của request từ header X-Organization-ID.
// Không có header thì dùng DefaultTenant; giá trị không nằm trong TENANTS trả về 403.
func OrganizationContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		cfg := global.MongoDB_ServerConfig
		if cfg == nil {
			return HandleErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer,
				"Cấu hình server chưa được khởi tạo",
				common.StatusInternalServerError,
				nil,
			))
		}

		orgID := strings.TrimSpace(c.Get(OrganizationHeader))
		if orgID == "" {
			orgID = cfg.DefaultTenant
		}

		allowed := false
		for _, t := range cfg.TenantList() {
			if strings.EqualFold(t, orgID) {
				orgID = t
				allowed = true
				break
			}
		}
		if !allowed {
			logger.WithRequest(c).WithField("organization_id", orgID).Warn("Công ty con không hợp lệ")
			return HandleErrorResponse(c, common.WithDetails(common.ErrUnknownTenant, orgID))
		}

		c.Locals(organizationLocalKey, orgID)
		return c.Next()
	}
}

// GetActiveOrganizationID trả về công ty con đã được middleware xác định (rỗng nếu chưa qua middleware)
func GetActiveOrganizationID(c fiber.Ctx) string {
	if orgID, ok := c.Locals(organizationLocalKey).(string); ok {
		return orgID
	}
	return ""
}
