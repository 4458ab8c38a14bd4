package application

import (
	"encoding/json"
	"log"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"gorm.io/datatypes"
)

// newAuditLog builds the audit row for a change made by actor. Snapshots that
// fail to marshal are logged and left empty; the entry itself is still written.
func newAuditLog(actor workflow.Actor, action, resourceType, resourceID string, before, after any, description string) *audit.AuditLog {
	return &audit.AuditLog{
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      snapshot(before),
		NewData:      snapshot(after),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		Description:  description,
		CreatedAt:    time.Now(),
	}
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Audit marshal error: %v", err)
		return nil
	}
	return datatypes.JSON(data)
}
