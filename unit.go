package asr

// Unit is a translation unit: the top entity of the data model. It owns
// a global scope (a Scope with no parent) and a deterministic sequence
// of top-level items, every one of which is reachable from the global
// scope by construction (inserted there by the Builder).
type Unit struct {
	Arena  *Arena
	Global *Scope
	Items  []Symbol // Program/Module/Subroutine/Function declared at file scope, in source order
}

// NewUnit creates an empty translation unit with a fresh arena and
// global scope.
func NewUnit() *Unit {
	return &Unit{
		Arena:  NewArena(),
		Global: NewScope(nil, nil),
	}
}

// Modules returns the Module symbols among Items, useful for seeding a
// ModuleCache before serialization or before resolving ExternalSymbols
// that reference sibling modules in the same unit.
func (u *Unit) Modules() []*Module {
	var out []*Module
	for _, item := range u.Items {
		if m, ok := item.(*Module); ok {
			out = append(out, m)
		}
	}
	return out
}

// LocalModuleCache builds a ModuleCache seeded from this unit's own
// Modules, for resolving ExternalSymbols that reference a sibling
// module declared in the same unit rather than an imported one.
func (u *Unit) LocalModuleCache() *ModuleCache {
	cache := NewModuleCache()
	for _, m := range u.Modules() {
		cache.Add(m)
	}
	return cache
}
