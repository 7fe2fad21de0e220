package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/domain"
	"github.com/terrapoint/terrapoint/infrastructure/service/csvio"
)

// stubCodec hands back canned rows so import tests do not depend on a
// real CSV encoding.
type stubCodec struct {
	rows    []domain.Fields
	written []domain.Fields
}

func (c *stubCodec) Write(w io.Writer, records []domain.Fields) error {
	c.written = records
	_, err := io.WriteString(w, "csv")
	return err
}

func (c *stubCodec) Read(r io.Reader) ([]domain.Fields, error) {
	return c.rows, nil
}

type entityFixture struct {
	*approvalFixture
	uc    *EntityUseCase
	codec *stubCodec
}

func newEntityFixture() *entityFixture {
	base := newApprovalFixture()
	codec := &stubCodec{}
	uc := NewEntityUseCase(base.uc.modules, base.uc, NewSchemaValidator(), codec, base.audit)
	return &entityFixture{approvalFixture: base, uc: uc, codec: codec}
}

func TestEntityCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminAppliesDirectly", func(t *testing.T) {
		f := newEntityFixture()
		result, err := f.uc.Create(ctx, admin, "leads", validLeadPayload())
		assert.NoError(t, err)
		assert.True(t, result.Applied)
		assert.NotEmpty(t, result.Record.String("id"))
		assert.Equal(t, "adm-1", result.Record.String("lead_managed_by"))
		assert.Len(t, f.leads.recs, 1)
		assert.Empty(t, f.actions.actions)

		assert.Len(t, f.audit.entries, 1, "direct admin writes must be audited")
		entry := f.audit.entries[0]
		assert.Equal(t, domain.OperationCreate, entry.Operation)
		assert.Equal(t, "adm-1", entry.AdminID)
		assert.Nil(t, entry.Before)
		assert.Equal(t, result.Record.String("id"), entry.TargetID)
	})

	t.Run("EmployeeGoesPending", func(t *testing.T) {
		f := newEntityFixture()
		result, err := f.uc.Create(ctx, employee, "leads", validLeadPayload())
		assert.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Nil(t, result.Record)
		assert.NotNil(t, result.PendingAction)
		assert.Equal(t, domain.ActionStatusPending, result.PendingAction.Status)
		assert.Empty(t, f.leads.recs, "the store must stay untouched until approval")
		assert.Empty(t, f.audit.entries, "nothing applied, nothing audited")
	})

	t.Run("RejectsInvalidPayloadForAdminToo", func(t *testing.T) {
		f := newEntityFixture()
		payload := validLeadPayload()
		delete(payload, "client_company")
		_, err := f.uc.Create(ctx, admin, "leads", payload)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("UnknownModule", func(t *testing.T) {
		f := newEntityFixture()
		_, err := f.uc.Create(ctx, admin, "invoices", domain.Fields{})
		assert.ErrorIs(t, err, domain.ErrInvalidModule)
	})
}

func TestEntityUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminPatch", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "city": "Pune", "lead_managed_by": "emp-1"}
		result, err := f.uc.Update(ctx, admin, "leads", "lead-1", domain.Fields{"city": "Mumbai"})
		assert.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, "Mumbai", result.Record.String("city"))

		assert.Len(t, f.audit.entries, 1)
		entry := f.audit.entries[0]
		assert.Equal(t, "Pune", entry.Before.String("city"))
		assert.Equal(t, "Mumbai", entry.After.String("city"))
	})

	t.Run("AdminRejectsUnknownKey", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "lead_managed_by": "emp-1"}
		_, err := f.uc.Update(ctx, admin, "leads", "lead-1", domain.Fields{"bogus_key": 1})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("EmployeeOwnedGoesPending", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "city": "Pune", "lead_managed_by": "emp-1"}
		result, err := f.uc.Update(ctx, employee, "leads", "lead-1", domain.Fields{"city": "Mumbai"})
		assert.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Equal(t, "Pune", f.leads.recs["lead-1"].String("city"))
	})

	t.Run("EmployeeUnownedDenied", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "lead_managed_by": "someone-else"}
		_, err := f.uc.Update(ctx, employee, "leads", "lead-1", domain.Fields{"city": "Mumbai"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestEntityDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1"}
		result, err := f.uc.Delete(ctx, admin, "leads", "lead-1")
		assert.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Empty(t, f.leads.recs)

		assert.Len(t, f.audit.entries, 1)
		entry := f.audit.entries[0]
		assert.Equal(t, domain.OperationDelete, entry.Operation)
		assert.Equal(t, "lead-1", entry.Before.String("id"))
		assert.Nil(t, entry.After)
	})

	t.Run("MissingRecord", func(t *testing.T) {
		f := newEntityFixture()
		_, err := f.uc.Delete(ctx, admin, "leads", "nope")
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	})
}

func TestEntityRead(t *testing.T) {
	ctx := context.Background()

	t.Run("EmployeeUnownedLeadHidden", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "lead_managed_by": "someone-else"}
		_, err := f.uc.Get(ctx, employee, "leads", "lead-1")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)

		rec, err := f.uc.Get(ctx, admin, "leads", "lead-1")
		assert.NoError(t, err)
		assert.Equal(t, "lead-1", rec.String("id"))
	})

	t.Run("EmployeeListScopedToOwner", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "lead_managed_by": "emp-1"}
		f.leads.recs["lead-2"] = domain.Fields{"id": "lead-2", "lead_managed_by": "someone-else"}

		list, err := f.uc.List(ctx, employee, "leads", inbound.ListEntitiesRequest{})
		assert.NoError(t, err)
		assert.Equal(t, 1, list.Total)
		assert.Equal(t, "lead-1", list.Records[0].String("id"))

		list, err = f.uc.List(ctx, admin, "leads", inbound.ListEntitiesRequest{})
		assert.NoError(t, err)
		assert.Equal(t, 2, list.Total)
	})
}

func TestEntityCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("ExportWritesVisibleRecords", func(t *testing.T) {
		f := newEntityFixture()
		f.leads.recs["lead-1"] = domain.Fields{"id": "lead-1", "lead_managed_by": "emp-1"}
		f.leads.recs["lead-2"] = domain.Fields{"id": "lead-2", "lead_managed_by": "someone-else"}

		var buf strings.Builder
		err := f.uc.ExportCSV(ctx, employee, "leads", inbound.ListEntitiesRequest{}, &buf)
		assert.NoError(t, err)
		assert.Len(t, f.codec.written, 1)
		assert.Equal(t, "lead-1", f.codec.written[0].String("id"))
	})

	t.Run("AdminImportMixedRows", func(t *testing.T) {
		f := newEntityFixture()
		bad := validLeadPayload()
		bad["email"] = "broken"
		f.codec.rows = []domain.Fields{
			validLeadPayload(),
			bad,
			validLeadPayload(),
		}

		result, err := f.uc.ImportCSV(ctx, admin, "leads", strings.NewReader("ignored"))
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
		assert.Equal(t, 0, result.Captured)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "row 2")
		assert.Len(t, f.leads.recs, 2)
	})

	t.Run("EmployeeImportCapturesPending", func(t *testing.T) {
		f := newEntityFixture()
		f.codec.rows = []domain.Fields{validLeadPayload(), validLeadPayload()}

		result, err := f.uc.ImportCSV(ctx, employee, "leads", strings.NewReader("ignored"))
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 2, result.Captured)
		assert.Empty(t, f.leads.recs)
		assert.Len(t, f.actions.actions, 2)
	})

	t.Run("RoundTripThroughRealCodec", func(t *testing.T) {
		base := newApprovalFixture()
		uc := NewEntityUseCase(base.uc.modules, base.uc, NewSchemaValidator(), csvio.NewCodec(), base.audit)

		payload := validLeadPayload()
		payload["budget"] = int64(150000)
		created, err := uc.Create(ctx, admin, "leads", payload)
		assert.NoError(t, err)

		var buf strings.Builder
		assert.NoError(t, uc.ExportCSV(ctx, admin, "leads", inbound.ListEntitiesRequest{}, &buf))

		result, err := uc.ImportCSV(ctx, admin, "leads", strings.NewReader(buf.String()))
		assert.NoError(t, err)
		assert.Empty(t, result.Errors, "an exported record must survive re-import")
		assert.Equal(t, 1, result.Inserted)
		assert.Len(t, base.leads.recs, 2)

		for id, rec := range base.leads.recs {
			if id == created.Record.String("id") {
				continue
			}
			assert.Equal(t, int64(150000), rec["budget"], "numeric fields must come back typed, not stringly")
			assert.Equal(t, "Acme Corp", rec.String("client_company"))
		}
	})

	t.Run("ImportStripsManagedColumns", func(t *testing.T) {
		f := newEntityFixture()
		row := validLeadPayload()
		row["id"] = "stale-id"
		row["created_at"] = "2024-01-01T00:00:00Z"
		f.codec.rows = []domain.Fields{row}

		result, err := f.uc.ImportCSV(ctx, admin, "leads", strings.NewReader("ignored"))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		for id, rec := range f.leads.recs {
			assert.NotEqual(t, "stale-id", id)
			assert.NotContains(t, rec, "created_at")
		}
	})
}
