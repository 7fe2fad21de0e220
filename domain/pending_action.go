package domain

import "time"

// Operation represents the captured mutation kind of a pending action
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// ParseOperation validates a raw operation tag.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.Valid() {
		return "", ErrInvalidOperation
	}
	return op, nil
}

// Valid reports whether the operation is part of the closed set.
func (op Operation) Valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// RequiresTarget reports whether the operation must name an existing entity.
func (op Operation) RequiresTarget() bool {
	return op == OperationUpdate || op == OperationDelete
}

// ActionStatus represents the review state of a pending action
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusApproved ActionStatus = "approved"
	ActionStatusRejected ActionStatus = "rejected"
)

// PendingAction is a captured, not-yet-applied mutation request awaiting
// admin review. Once the status leaves pending the record is immutable.
type PendingAction struct {
	ID              string       `json:"id"`
	Module          Module       `json:"module"`
	Operation       Operation    `json:"operation"`
	Payload         Fields       `json:"payload"`
	TargetID        string       `json:"target_id,omitempty"`
	RequestedBy     string       `json:"requested_by"`
	RequestedByName string       `json:"requested_by_name"`
	Status          ActionStatus `json:"status"`
	ReviewedBy      string       `json:"reviewed_by,omitempty"`
	ReviewedByName  string       `json:"reviewed_by_name,omitempty"`
	ReviewNote      string       `json:"review_note,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// NewPendingAction captures a mutation request from a principal. The module
// and operation tags are validated here so malformed actions never reach the
// store; target id presence is enforced per operation.
func NewPendingAction(id string, module Module, op Operation, payload Fields, targetID string, requester Principal) (*PendingAction, error) {
	if !module.Valid() {
		return nil, ErrInvalidModule
	}
	if !op.Valid() {
		return nil, ErrInvalidOperation
	}
	if op.RequiresTarget() && targetID == "" {
		return nil, ErrTargetRequired
	}
	if op == OperationCreate {
		targetID = ""
		if len(payload) == 0 {
			return nil, ErrInvalidPayload
		}
	}
	if op == OperationDelete {
		payload = Fields{}
	}
	return &PendingAction{
		ID:              id,
		Module:          module,
		Operation:       op,
		Payload:         payload.Clone(),
		TargetID:        targetID,
		RequestedBy:     requester.ID,
		RequestedByName: requester.Name,
		Status:          ActionStatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// Review carries the metadata stamped onto an action when it leaves pending.
type Review struct {
	Status       ActionStatus
	ReviewerID   string
	ReviewerName string
	Note         string
	ReviewedAt   time.Time
}

// NewReview builds a review stamp for the given terminal status.
func NewReview(status ActionStatus, reviewer Principal, note string) Review {
	return Review{
		Status:       status,
		ReviewerID:   reviewer.ID,
		ReviewerName: reviewer.Name,
		Note:         note,
		ReviewedAt:   time.Now().UTC(),
	}
}

// MarkReviewed transitions the action out of pending. Calling it on an
// already processed action fails with ErrActionAlreadyProcessed and leaves
// the record untouched.
func (a *PendingAction) MarkReviewed(r Review) error {
	if a.Status != ActionStatusPending {
		return ErrActionAlreadyProcessed
	}
	if r.Status != ActionStatusApproved && r.Status != ActionStatusRejected {
		return ErrInvalidOperation
	}
	a.Status = r.Status
	a.ReviewedBy = r.ReviewerID
	a.ReviewedByName = r.ReviewerName
	a.ReviewNote = r.Note
	at := r.ReviewedAt
	a.ReviewedAt = &at
	return nil
}

// IsPending reports whether the action still awaits review.
func (a *PendingAction) IsPending() bool {
	return a.Status == ActionStatusPending
}
