package domain

import "time"

// AuditEntry is an immutable record of an applied mutation: before/after
// snapshots of the target entity and the admin who triggered the apply.
// Append-only; never mutated or deleted by normal operation.
type AuditEntry struct {
	ID        string    `json:"id"`
	Module    Module    `json:"module"`
	Operation Operation `json:"operation"`
	TargetID  string    `json:"target_id"`
	Before    Fields    `json:"before,omitempty"`
	After     Fields    `json:"after,omitempty"`
	AdminID   string    `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditEntry snapshots an applied operation. Before is nil for create,
// After is nil for delete.
func NewAuditEntry(id string, module Module, op Operation, targetID string, before, after Fields, admin Principal) *AuditEntry {
	return &AuditEntry{
		ID:        id,
		Module:    module,
		Operation: op,
		TargetID:  targetID,
		Before:    before.Clone(),
		After:     after.Clone(),
		AdminID:   admin.ID,
		AdminName: admin.Name,
		CreatedAt: time.Now().UTC(),
	}
}
