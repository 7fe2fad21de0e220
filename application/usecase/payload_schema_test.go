package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrapoint/terrapoint/domain"
)

func TestCoerce(t *testing.T) {
	v := NewSchemaValidator()

	t.Run("NumericAndBoolStrings", func(t *testing.T) {
		out := v.Coerce(domain.ModuleLeads, domain.Fields{
			"budget":         "150000",
			"client_company": "Acme Corp",
		})
		assert.Equal(t, int64(150000), out["budget"])
		assert.Equal(t, "Acme Corp", out["client_company"], "string fields stay strings")
	})

	t.Run("UnparseableLeftForDecode", func(t *testing.T) {
		out := v.Coerce(domain.ModuleLeads, domain.Fields{"budget": "a lot"})
		assert.Equal(t, "a lot", out["budget"])

		err := v.ValidateCreate(domain.ModuleLeads, out)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("CoercedLandParcelValidates", func(t *testing.T) {
		payload := v.Coerce(domain.ModuleLand, domain.Fields{
			"land_parcel_name": "Plot 7",
			"location":         "Hinjewadi",
			"city":             "Pune",
			"area_in_sqm":      "4200",
			"zone":             "Commercial",
			"title":            "Clear",
		})
		assert.Equal(t, int64(4200), payload["area_in_sqm"])
		assert.NoError(t, v.ValidateCreate(domain.ModuleLand, payload))
	})

	t.Run("UnknownModulePassthrough", func(t *testing.T) {
		in := domain.Fields{"x": "1"}
		out := v.Coerce(domain.Module("tickets"), in)
		assert.Equal(t, in, out)
	})

	t.Run("InputUnmutated", func(t *testing.T) {
		in := domain.Fields{"budget": "150000"}
		_ = v.Coerce(domain.ModuleLeads, in)
		assert.Equal(t, "150000", in["budget"])
	})
}
