package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit log
type AuditAction struct {
	Action     string                 `json:"action"`      // Tên hành động (ví dụ: "change_submit", "change_approve")
	ActorID    string                 `json:"actor_id"`    // ID người thực hiện
	ActorRole  string                 `json:"actor_role"`  // Vai trò (vendor, admin)
	EntityType string                 `json:"entity_type"` // Loại entity bị ảnh hưởng (vendor, addon, event)
	EntityID   string                 `json:"entity_id"`   // ID entity bị ảnh hưởng
	IP         string                 `json:"ip"`
	UserAgent  string                 `json:"user_agent"`
	Details    map[string]interface{} `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
}

// LogAction ghi một hành động audit, lấy thông tin actor từ fiber context
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

	if actorID := c.Locals("actorID"); actorID != nil {
		if id, ok := actorID.(string); ok {
			audit.ActorID = id
		}
	}
	if actorRole := c.Locals("actorRole"); actorRole != nil {
		if role, ok := actorRole.(string); ok {
			audit.ActorRole = role
		}
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	writeAudit(audit)
}

// LogWorkflow ghi các quyết định trong vòng đời duyệt thay đổi
// (submit, approve, reject) kèm entity bị ảnh hưởng.
func LogWorkflow(action string, entityType string, entityID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["entity_type"] = entityType
	details["entity_id"] = entityID

	LogAction("change_"+action, c, details)
}

// LogBackground ghi audit cho các tác vụ chạy nền, không có fiber context
// (ví dụ: dọn dẹp media sau khi reject).
func LogBackground(action string, entityType string, entityID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	writeAudit(AuditAction{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  time.Now(),
	})
}

func writeAudit(audit AuditAction) {
	GetAuditLogger().WithFields(logrus.Fields{
		"action":      audit.Action,
		"actor_id":    audit.ActorID,
		"actor_role":  audit.ActorRole,
		"entity_type": audit.EntityType,
		"entity_id":   audit.EntityID,
		"ip":          audit.IP,
		"user_agent":  audit.UserAgent,
		"details":     audit.Details,
		"timestamp":   audit.Timestamp,
	}).Info("Audit log")
}
