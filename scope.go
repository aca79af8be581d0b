package asr

import (
	"strings"

	"github.com/pkg/errors"
)

// Scope is a symbol table: a case-insensitive mapping from names to
// symbols, with an optional parent for lexical lookup. Scopes form a
// forest via parent links (invariant 8): no scope is its own ancestor.
//
// Insertion order is recorded so Iterate produces a deterministic
// sequence, which stable pickles and serialization ordinals depend on.
type Scope struct {
	parent *Scope
	owner  Symbol // ScopeOwner symbol that owns this scope; nil for a global scope
	order  []string
	table  map[string]Symbol
}

// NewScope creates a scope with no parent (a global scope) or, when
// parent is non-nil, a child scope nested lexically inside it.
func NewScope(parent *Scope, owner Symbol) *Scope {
	return &Scope{
		parent: parent,
		owner:  owner,
		table:  make(map[string]Symbol),
	}
}

// Parent returns the enclosing scope, or nil if this is a global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Owner returns the symbol that owns this scope (Program, Module,
// Subroutine, Function, DerivedType, or ClassType), or nil for a global
// scope.
func (s *Scope) Owner() Symbol { return s.owner }

// normalizeName applies Fortran's case-insensitive identifier comparison.
func normalizeName(name string) string {
	return strings.ToUpper(name)
}

// Insert adds sym under name, failing with ErrDuplicateName if the name
// already exists in this scope. Shadowing a name from an outer scope
// requires inserting into a distinct child scope; Insert never checks
// ancestors.
func (s *Scope) Insert(name string, sym Symbol) error {
	key := normalizeName(name)
	if _, ok := s.table[key]; ok {
		return errors.Wrapf(ErrDuplicateName, "symbol %q in scope", name)
	}
	if s.table == nil {
		s.table = make(map[string]Symbol)
	}
	s.table[key] = sym
	s.order = append(s.order, key)
	return nil
}

// LookupLocal returns the symbol bound to name in this scope only.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.table[normalizeName(name)]
	return sym, ok
}

// Lookup performs LookupLocal in this scope, then walks parent scopes,
// returning the first hit (invariant 1: every in-body reference resolves
// this way, or is an ExternalSymbol).
func (s *Scope) Lookup(name string) (Symbol, bool) {
	key := normalizeName(name)
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.table[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Iterate returns the symbols of this scope in insertion order, the
// order stable pickles and serialization ordinals rely on (§8.6).
func (s *Scope) Iterate() []Symbol {
	out := make([]Symbol, len(s.order))
	for i, key := range s.order {
		out[i] = s.table[key]
	}
	return out
}

// Names returns the normalized names of this scope's symbols in
// insertion order, parallel to Iterate.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// isAncestorOf reports whether s is an ancestor of (or equal to) other,
// used to enforce invariant 8 (the symbol-table graph is a forest).
func (s *Scope) isAncestorOf(other *Scope) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == s {
			return true
		}
	}
	return false
}

// ModuleCache resolves ExternalSymbol references across translation
// units: the single cross-module handle permitted by the data model.
// It is populated either from Module symbols declared in the current
// translation unit or from interface ASR loaded out of module files
// (§6); the core only specifies lookup, never how a file was read.
type ModuleCache struct {
	modules map[string]*Module
}

// NewModuleCache creates an empty cache.
func NewModuleCache() *ModuleCache {
	return &ModuleCache{modules: make(map[string]*Module)}
}

// Add registers m under its own name, overwriting any previous entry
// for that name (a later USE of the same module sees the newest load).
func (c *ModuleCache) Add(m *Module) {
	c.modules[normalizeName(m.Name)] = m
}

// Module returns the module registered under name.
func (c *ModuleCache) Module(name string) (*Module, bool) {
	m, ok := c.modules[normalizeName(name)]
	return m, ok
}

// ResolveExternal implements §4.B resolve_external: it opens
// ext.ModuleName, descends ext.ScopeNames (each must name a symbol that
// owns a scope), and performs LookupLocal for the final segment. It
// fails with ErrUnresolvedExternal at any missing step.
func ResolveExternal(cache *ModuleCache, ext *ExternalSymbol) (Symbol, error) {
	mod, ok := cache.Module(ext.ModuleName)
	if !ok {
		return nil, errors.Wrapf(ErrUnresolvedExternal, "module %q not found", ext.ModuleName)
	}
	scope := mod.Scope
	for _, name := range ext.ScopeNames {
		sym, ok := scope.LookupLocal(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnresolvedExternal, "scope %q not found under module %q", name, ext.ModuleName)
		}
		owner, ok := sym.(ScopeOwner)
		if !ok {
			return nil, errors.Wrapf(ErrUnresolvedExternal, "%q does not own a scope", name)
		}
		scope = owner.OwnScope()
	}
	sym, ok := scope.LookupLocal(ext.OriginalName)
	if !ok {
		return nil, errors.Wrapf(ErrUnresolvedExternal, "leaf %q not found under module %q", ext.OriginalName, ext.ModuleName)
	}
	return sym, nil
}
