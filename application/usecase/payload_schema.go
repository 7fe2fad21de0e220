package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/terrapoint/terrapoint/domain"
)

// moduleSchema binds a module tag to its typed prototype so opaque payloads
// can be checked against the known field set before a submission is
// accepted. Resolved once at startup.
type moduleSchema struct {
	prototype  reflect.Type
	fieldByTag map[string]string
	kindByTag  map[string]reflect.Kind
}

// SchemaValidator validates pending-action payloads at submission time.
// Malformed payloads fail fast here instead of corrupting the apply step.
type SchemaValidator struct {
	validate *validator.Validate
	schemas  map[domain.Module]moduleSchema
}

func NewSchemaValidator() *SchemaValidator {
	v := &SchemaValidator{
		validate: validator.New(),
		schemas:  make(map[domain.Module]moduleSchema),
	}
	v.register(domain.ModuleLeads, domain.Lead{})
	v.register(domain.ModuleDevelopers, domain.Developer{})
	v.register(domain.ModuleContacts, domain.Contact{})
	v.register(domain.ModuleProjects, domain.Project{})
	v.register(domain.ModuleInventory, domain.InventoryItem{})
	v.register(domain.ModuleLand, domain.LandParcel{})
	return v
}

func (v *SchemaValidator) register(m domain.Module, prototype interface{}) {
	t := reflect.TypeOf(prototype)
	fields := make(map[string]string, t.NumField())
	kinds := make(map[string]reflect.Kind)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		fields[tag] = f.Name
		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64, reflect.Bool:
			kinds[tag] = ft.Kind()
		}
	}
	v.schemas[m] = moduleSchema{prototype: t, fieldByTag: fields, kindByTag: kinds}
}

// ValidateCreate checks a full proposed record against the module schema.
func (v *SchemaValidator) ValidateCreate(m domain.Module, payload domain.Fields) error {
	schema, ok := v.schemas[m]
	if !ok {
		return domain.ErrInvalidModule
	}
	rec, err := schema.decode(payload)
	if err != nil {
		return err
	}
	if err := v.validate.Struct(rec); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// ValidatePatch checks a sparse patch: unknown keys are rejected and only
// the fields present in the patch are validated.
func (v *SchemaValidator) ValidatePatch(m domain.Module, patch domain.Fields) error {
	schema, ok := v.schemas[m]
	if !ok {
		return domain.ErrInvalidModule
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty patch", domain.ErrInvalidPayload)
	}
	rec, err := schema.decode(patch)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(patch))
	for tag := range patch {
		name, ok := schema.fieldByTag[tag]
		if !ok {
			return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidPayload, tag)
		}
		names = append(names, name)
	}
	if err := v.validate.StructPartial(rec, names...); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// Coerce converts string values to the numeric and boolean types the module
// schema declares for them. CSV cells arrive as strings; without the
// conversion the strict decode would reject every imported numeric field.
// Values that fail to parse are left alone so the decode reports the
// mismatch on the right field.
func (v *SchemaValidator) Coerce(m domain.Module, payload domain.Fields) domain.Fields {
	schema, ok := v.schemas[m]
	if !ok || len(payload) == 0 {
		return payload
	}
	out := payload.Clone()
	for tag, value := range out {
		s, isString := value.(string)
		if !isString {
			continue
		}
		switch schema.kindByTag[tag] {
		case reflect.Int, reflect.Int32, reflect.Int64:
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				out[tag] = n
			}
		case reflect.Float32, reflect.Float64:
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				out[tag] = f
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(s); err == nil {
				out[tag] = b
			}
		}
	}
	return out
}

// ValidateRequest checks the validate tags on an inbound request struct.
func (v *SchemaValidator) ValidateRequest(req interface{}) error {
	if err := v.validate.Struct(req); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// decode round-trips the document through JSON into the typed prototype,
// rejecting unknown fields and type mismatches.
func (s moduleSchema) decode(payload domain.Fields) (interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	rec := reflect.New(s.prototype).Interface()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return reflect.ValueOf(rec).Elem().Interface(), nil
}

func invalidPayload(err error) error {
	var verrs validator.ValidationErrors
	if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidPayload, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
}
