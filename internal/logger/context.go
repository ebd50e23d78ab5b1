package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// requestID lấy request ID do middleware requestid gắn vào Locals, nếu không có thì đọc header
func requestID(c fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get("X-Request-ID"); rid != "" {
		return rid
	}
	return c.GetRespHeader("X-Request-ID")
}

// WithRequest entry của app logger gắn method, path, ip, request ID và công ty con đang thao tác
func WithRequest(c fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if rid := requestID(c); rid != "" {
		fields["request_id"] = rid
	}
	if org, ok := c.Locals("active_organization_id").(string); ok && org != "" {
		fields["organization_id"] = org
	}
	return GetAppLogger().WithFields(fields)
}

// WithModule entry gắn tên module ("recordview", "export", "notify", ...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithModuleAndCollection entry gắn module và bảng/collection nguồn
func WithModuleAndCollection(module, collection string) *logrus.Entry {
	return WithModule(module).WithField("collection", collection)
}

// WithRequestInfo kết hợp WithRequest với module và loại bản ghi; giá trị rỗng được bỏ qua
func WithRequestInfo(c fiber.Ctx, module, entity string) *logrus.Entry {
	entry := WithRequest(c)
	if module != "" {
		entry = entry.WithField("module", module)
	}
	if entity != "" {
		entry = entry.WithField("collection", entity)
	}
	return entry
}
