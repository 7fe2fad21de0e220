package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/terrapoint/terrapoint/domain"
)

var actionColumns = []string{
	"id", "module", "operation", "payload", "target_id",
	"requested_by", "requested_by_name", "status",
	"reviewed_by", "reviewed_by_name", "review_note", "reviewed_at", "created_at",
}

func newMockRepo(t *testing.T) (*PendingActionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPendingActionRepository(db), mock
}

func pendingRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows(actionColumns).AddRow(
		id, "leads", "create", []byte(`{"client_company":"Acme"}`), nil,
		"emp-1", "Jane", "pending",
		nil, nil, nil, nil, time.Now(),
	)
}

func TestMarkReviewed(t *testing.T) {
	ctx := context.Background()
	review := domain.NewReview(domain.ActionStatusApproved, domain.Principal{ID: "adm-1", Name: "Boss", Role: domain.RoleAdmin}, "ok")

	t.Run("WinsTheRace", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE pending_actions SET status =").
			WithArgs("a-1", "approved", "adm-1", "Boss", "ok", sqlmock.AnyArg(), "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkReviewed(ctx, "a-1", review)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE pending_actions SET status =").
			WithArgs("a-1", "approved", "adm-1", "Boss", "ok", sqlmock.AnyArg(), "pending").
			WillReturnResult(sqlmock.NewResult(0, 0))
		processed := sqlmock.NewRows(actionColumns).AddRow(
			"a-1", "leads", "create", []byte(`{}`), nil,
			"emp-1", "Jane", "approved",
			"adm-2", "Other", "", time.Now(), time.Now(),
		)
		mock.ExpectQuery("SELECT id, module, operation").WithArgs("a-1").WillReturnRows(processed)

		err := repo.MarkReviewed(ctx, "a-1", review)
		assert.ErrorIs(t, err, domain.ErrActionAlreadyProcessed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RowGone", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE pending_actions SET status =").
			WithArgs("a-1", "approved", "adm-1", "Boss", "ok", sqlmock.AnyArg(), "pending").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id, module, operation").WithArgs("a-1").WillReturnError(sql.ErrNoRows)

		err := repo.MarkReviewed(ctx, "a-1", review)
		assert.ErrorIs(t, err, domain.ErrActionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT id, module, operation").WithArgs("a-1").WillReturnRows(pendingRow("a-1"))

		action, err := repo.FindByID(ctx, "a-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ModuleLeads, action.Module)
		assert.Equal(t, domain.ActionStatusPending, action.Status)
		assert.Equal(t, "Acme", action.Payload.String("client_company"))
		assert.Empty(t, action.TargetID)
		assert.Nil(t, action.ReviewedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT id, module, operation").WithArgs("nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrActionNotFound)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepo(t)

	action, err := domain.NewPendingAction(
		"a-1", domain.ModuleLeads, domain.OperationCreate,
		domain.Fields{"client_company": "Acme"}, "",
		domain.Principal{ID: "emp-1", Name: "Jane", Role: domain.RoleEmployee},
	)
	assert.NoError(t, err)

	mock.ExpectExec("INSERT INTO pending_actions").
		WithArgs("a-1", "leads", "create", []byte(`{"client_company":"Acme"}`), nil,
			"emp-1", "Jane", "pending", action.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, action))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM pending_actions").WithArgs("a-1").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(ctx, "a-1"))
	})

	t.Run("Missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM pending_actions").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrActionNotFound)
	})
}
