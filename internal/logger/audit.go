package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "export_csv")
	Organization string                 `json:"organization"`  // Công ty con thực hiện
	ResourceID   string                 `json:"resource_id"`   // ID bản ghi (nếu xuất một bản ghi)
	ResourceType string                 `json:"resource_type"` // Loại bản ghi (ví dụ: "farm-records")
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction ghi một hành động audit từ request HTTP
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	if orgID, ok := c.Locals("active_organization_id").(string); ok {
		audit.Organization = orgID
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}
	if resourceType, ok := details["resource_type"].(string); ok {
		audit.ResourceType = resourceType
	}
	if resourceID, ok := details["resource_id"].(string); ok {
		audit.ResourceID = resourceID
	}

	writeAudit(audit)
}

// LogExport ghi audit cho một lần xuất file (dùng chung cho HTTP và CLI)
func LogExport(organization, entity, format, filename string, rows int, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["format"] = format
	details["filename"] = filename
	details["rows"] = rows

	writeAudit(AuditAction{
		Action:       "export_" + format,
		Organization: organization,
		ResourceType: entity,
		Details:      details,
		Timestamp:    time.Now(),
	})
}

func writeAudit(audit AuditAction) {
	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"organization":  audit.Organization,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}
