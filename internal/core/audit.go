package core

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionLogin            AuditAction = "login"
	ActionUserBlock        AuditAction = "user_block"
	ActionUserUnblock      AuditAction = "user_unblock"
	ActionUserDelete       AuditAction = "user_delete"
	ActionEvaluationCreate AuditAction = "evaluation_create"
	ActionTicketCreate     AuditAction = "ticket_create"
	ActionSubmissionGrade  AuditAction = "submission_grade"
	ActionAttemptStart     AuditAction = "attempt_start"
	ActionAttemptSubmit    AuditAction = "attempt_submit"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string        `json:"id"`
	Action    AuditAction   `json:"action"`
	Severity  AuditSeverity `json:"severity"`
	Entity    string        `json:"entity"`
	EntityID  string        `json:"entityId,omitempty"`
	UserName  string        `json:"userName,omitempty"`
	UserRole  Role          `json:"userRole,omitempty"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	OldValue  string        `json:"oldValue,omitempty"`
	NewValue  string        `json:"newValue,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Field exposes AuditEntry values by column key.
func (a AuditEntry) Field(key string) (any, bool) {
	switch key {
	case "fecha":
		return a.CreatedAt, true
	case "accion":
		return string(a.Action), true
	case "severidad":
		return string(a.Severity), true
	case "entidad":
		return a.Entity, true
	case "usuario":
		return a.UserName, a.UserName != ""
	case "ip":
		return a.IPAddress, a.IPAddress != ""
	}
	return nil, false
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action   AuditAction
	Entity   string
	EntityID string
	OldValue string
	NewValue string
}

// AuditLogFilter narrows the audit log. Zero values match everything.
type AuditLogFilter struct {
	Action AuditAction
	Entity string
	Limit  int
}

func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionUserDelete, ActionUserBlock:
		return SeverityHigh
	case ActionUserUnblock, ActionEvaluationCreate, ActionSubmissionGrade, ActionAttemptSubmit:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// LogAudit records an action together with the actor, IP and user agent
// found in ctx.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) AuditEntry {
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Action:    params.Action,
		Severity:  determineSeverity(params.Action),
		Entity:    params.Entity,
		EntityID:  params.EntityID,
		IPAddress: GetIPAddressFromContext(ctx),
		UserAgent: GetUserAgentFromContext(ctx),
		OldValue:  params.OldValue,
		NewValue:  params.NewValue,
		CreatedAt: s.now(),
	}
	if u, ok := UserFromContext(ctx); ok {
		entry.UserName = u.Name
		entry.UserRole = u.Role
	}

	s.mu.Lock()
	s.audit = append(s.audit, entry)
	s.mu.Unlock()

	return entry
}

// AuditLog returns entries matching f, newest first.
func (s *Service) AuditLog(f AuditLogFilter) []AuditEntry {
	s.mu.RLock()
	out := filter(s.audit, func(a AuditEntry) bool {
		if f.Action != "" && a.Action != f.Action {
			return false
		}
		return f.Entity == "" || a.Entity == f.Entity
	})
	s.mu.RUnlock()

	slices.Reverse(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
