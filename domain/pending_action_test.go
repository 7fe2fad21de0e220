package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewPendingAction(t *testing.T) {
	requester := Principal{ID: "user-1", Name: "Jane", Role: RoleEmployee}

	t.Run("ValidCreate", func(t *testing.T) {
		action, err := NewPendingAction("a1", ModuleLeads, OperationCreate, Fields{"client_company": "Acme"}, "ignored", requester)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action.Status != ActionStatusPending {
			t.Errorf("expected pending status, got %s", action.Status)
		}
		if action.TargetID != "" {
			t.Error("create must not carry a target id")
		}
		if action.RequestedBy != "user-1" || action.RequestedByName != "Jane" {
			t.Error("requester not captured")
		}
	})

	t.Run("CreateRequiresPayload", func(t *testing.T) {
		_, err := NewPendingAction("a1", ModuleLeads, OperationCreate, Fields{}, "", requester)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload, got %v", err)
		}
	})

	t.Run("UpdateRequiresTarget", func(t *testing.T) {
		_, err := NewPendingAction("a1", ModuleLeads, OperationUpdate, Fields{"city": "Pune"}, "", requester)
		if !errors.Is(err, ErrTargetRequired) {
			t.Errorf("expected ErrTargetRequired, got %v", err)
		}
	})

	t.Run("DeleteDropsPayload", func(t *testing.T) {
		action, err := NewPendingAction("a1", ModuleLeads, OperationDelete, Fields{"junk": true}, "lead-1", requester)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(action.Payload) != 0 {
			t.Error("delete must not retain a payload")
		}
	})

	t.Run("InvalidModule", func(t *testing.T) {
		_, err := NewPendingAction("a1", Module("tickets"), OperationCreate, Fields{"x": 1}, "", requester)
		if !errors.Is(err, ErrInvalidModule) {
			t.Errorf("expected ErrInvalidModule, got %v", err)
		}
	})

	t.Run("InvalidOperation", func(t *testing.T) {
		_, err := NewPendingAction("a1", ModuleLeads, Operation("upsert"), Fields{"x": 1}, "", requester)
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("expected ErrInvalidOperation, got %v", err)
		}
	})

	t.Run("PayloadIsCloned", func(t *testing.T) {
		payload := Fields{"city": "Pune"}
		action, err := NewPendingAction("a1", ModuleLeads, OperationCreate, payload, "", requester)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payload["city"] = "Mumbai"
		if action.Payload.String("city") != "Pune" {
			t.Error("payload must be captured by value, not by reference")
		}
	})
}

func TestMarkReviewed(t *testing.T) {
	requester := Principal{ID: "user-1", Name: "Jane", Role: RoleEmployee}
	admin := Principal{ID: "admin-1", Name: "Boss", Role: RoleAdmin}

	newAction := func(t *testing.T) *PendingAction {
		t.Helper()
		action, err := NewPendingAction("a1", ModuleLeads, OperationCreate, Fields{"client_company": "Acme"}, "", requester)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return action
	}

	t.Run("Approve", func(t *testing.T) {
		action := newAction(t)
		review := NewReview(ActionStatusApproved, admin, "looks good")
		if err := action.MarkReviewed(review); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action.Status != ActionStatusApproved {
			t.Errorf("expected approved, got %s", action.Status)
		}
		if action.ReviewedBy != "admin-1" || action.ReviewNote != "looks good" {
			t.Error("review metadata not stamped")
		}
		if action.ReviewedAt == nil {
			t.Error("reviewed_at not set")
		}
	})

	t.Run("TerminalOnce", func(t *testing.T) {
		action := newAction(t)
		if err := action.MarkReviewed(NewReview(ActionStatusRejected, admin, "")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := action.MarkReviewed(NewReview(ActionStatusApproved, admin, ""))
		if !errors.Is(err, ErrActionAlreadyProcessed) {
			t.Errorf("expected ErrActionAlreadyProcessed, got %v", err)
		}
		if action.Status != ActionStatusRejected {
			t.Error("terminal status must not change")
		}
	})

	t.Run("RejectsNonTerminalStatus", func(t *testing.T) {
		action := newAction(t)
		review := Review{Status: ActionStatusPending, ReviewerID: admin.ID, ReviewedAt: time.Now()}
		if err := action.MarkReviewed(review); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("expected ErrInvalidOperation, got %v", err)
		}
	})
}
