package domain

import (
	"fmt"
	"time"
)

// Entity names a content type managed from the admin surface.
type Entity string

const (
	EntityTool       Entity = "tool"
	EntityWorkflow   Entity = "workflow"
	EntityPrompt     Entity = "prompt"
	EntityComparison Entity = "comparison"
)

// Verb is a privileged mutation kind.
type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// ActionName is the "<verb>_<entity>" label used in admin redirects.
func ActionName(v Verb, e Entity) string {
	return fmt.Sprintf("%s_%s", v, e)
}

// AuditStatus is the outcome recorded for a privileged mutation attempt.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditError   AuditStatus = "error"
)

// AuditEntry is one row of the "AdminAuditLog" table.
type AuditEntry struct {
	ID        int64          `json:"id" gorm:"column:id"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
	UserID    string         `json:"userId" gorm:"column:user_id"`
	Action    Verb           `json:"action" gorm:"column:action"`
	Entity    Entity         `json:"entity" gorm:"column:entity"`
	TargetID  *string        `json:"targetId,omitempty" gorm:"column:target_id"`
	Status    AuditStatus    `json:"status" gorm:"column:status"`
	Message   *string        `json:"message,omitempty" gorm:"column:message"`
	Meta      map[string]any `json:"meta,omitempty" gorm:"-"`
}
