package domain

// Module is a named category of managed entity. The set is closed; anything
// outside it is rejected at the boundary with ErrInvalidModule.
type Module string

const (
	ModuleLeads      Module = "leads"
	ModuleDevelopers Module = "developers"
	ModuleContacts   Module = "contacts"
	ModuleProjects   Module = "projects"
	ModuleInventory  Module = "inventory"
	ModuleLand       Module = "land"
)

// Modules lists every managed module in registration order.
func Modules() []Module {
	return []Module{
		ModuleLeads,
		ModuleDevelopers,
		ModuleContacts,
		ModuleProjects,
		ModuleInventory,
		ModuleLand,
	}
}

// ParseModule validates a raw module tag.
func ParseModule(s string) (Module, error) {
	m := Module(s)
	if !m.Valid() {
		return "", ErrInvalidModule
	}
	return m, nil
}

// Valid reports whether the module is part of the closed set.
func (m Module) Valid() bool {
	switch m {
	case ModuleLeads, ModuleDevelopers, ModuleContacts, ModuleProjects, ModuleInventory, ModuleLand:
		return true
	}
	return false
}

// OwnerKey returns the payload field that carries ownership for the module,
// or "" when the module does not track ownership. Only leads are owned by a
// specific user; the other modules are shared master data.
func (m Module) OwnerKey() string {
	if m == ModuleLeads {
		return "lead_managed_by"
	}
	return ""
}

// TracksOwnership reports whether records of this module belong to a user.
func (m Module) TracksOwnership() bool {
	return m.OwnerKey() != ""
}
