// Package iface implements the interface/implementation split (§4.H):
// projecting a fully elaborated Module into the interface-only form
// persisted in module files, so an importer gets argument types,
// return type, intent, and presence without reparsing source.
package iface

import "github.com/soypat/fortran-asr"

// Project converts m (expected abi=Source, fully bodied) into a fresh
// interface Module: every Subroutine/Function body is dropped, abi
// becomes interfaceABI, deftype becomes Interface, private symbols are
// removed, and GenericProcedure/CustomOperator candidate sets keep only
// their public members. Project never mutates m or anything it owns;
// it builds a new Module and Scope, reusing leaf nodes (Variable,
// DerivedType, ClassType, ClassProcedure, ExternalSymbol) by reference
// since none of them carry a body to strip.
//
// Project is idempotent: projecting an already-projected Module with
// the same interfaceABI reproduces a structurally equal tree, since
// every field it sets is recomputed from scratch rather than toggled.
func Project(m *asr.Module, interfaceABI asr.ABI) *asr.Module {
	out := &asr.Module{
		Name:    m.Name,
		ABI:     interfaceABI,
		DefType: asr.Interface,
		Access:  m.Access,
	}
	out.Scope = asr.NewScope(m.Scope.Parent(), out)
	out.DeclOrder = filterDeclOrder(m.DeclOrder, m.Scope)

	for _, sym := range m.Scope.Iterate() {
		if !isPublic(sym) {
			continue
		}
		projected := projectSymbol(sym, out.Scope, interfaceABI)
		if err := out.Scope.Insert(projected.SymbolName(), projected); err != nil {
			// m.Scope already enforced name uniqueness; filtering never
			// introduces a new collision.
			panic(err)
		}
	}
	return out
}

// projectSymbol produces the interface-form counterpart of one public
// module member. enclosing is the new interface Module's scope, used
// as the parent of any scope a procedure-like projected symbol owns.
func projectSymbol(sym asr.Symbol, enclosing *asr.Scope, interfaceABI asr.ABI) asr.Symbol {
	switch s := sym.(type) {
	case *asr.Subroutine:
		out := &asr.Subroutine{
			Name:       s.Name,
			ABI:        interfaceABI,
			DefType:    asr.Interface,
			Access:     s.Access,
			Attributes: s.Attributes,
			Args:       s.Args,
		}
		out.Scope = asr.NewScope(enclosing, out)
		for _, a := range s.Args {
			out.Scope.Insert(a.Name, a)
		}
		return out

	case *asr.Function:
		out := &asr.Function{
			Name:       s.Name,
			ABI:        interfaceABI,
			DefType:    asr.Interface,
			Access:     s.Access,
			Attributes: s.Attributes,
			Args:       s.Args,
			ReturnVar:  s.ReturnVar,
		}
		out.Scope = asr.NewScope(enclosing, out)
		for _, a := range s.Args {
			out.Scope.Insert(a.Name, a)
		}
		out.Scope.Insert(s.ReturnVar.Name, s.ReturnVar)
		return out

	case *asr.GenericProcedure:
		return &asr.GenericProcedure{Name: s.Name, Procs: filterProcs(s.Procs)}

	case *asr.CustomOperator:
		return &asr.CustomOperator{Name: s.Name, Procs: filterProcs(s.Procs)}

	default:
		// Variable, DerivedType, ClassType, ClassProcedure, ExternalSymbol:
		// none of these carry a body, so the public original already is
		// its own interface form.
		return sym
	}
}

// filterProcs keeps only the public candidates of an overload set; a
// private candidate is only ever reachable from inside its own module
// and has no business appearing in a cross-module interface.
func filterProcs(procs []asr.Symbol) []asr.Symbol {
	out := make([]asr.Symbol, 0, len(procs))
	for _, p := range procs {
		if isPublic(p) {
			out = append(out, p)
		}
	}
	return out
}

// filterDeclOrder keeps the CONTAINS declaration order entries whose
// symbol survives projection.
func filterDeclOrder(declOrder []string, scope *asr.Scope) []string {
	var out []string
	for _, name := range declOrder {
		sym, ok := scope.LookupLocal(name)
		if ok && !isPublic(sym) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// accessOf reports the Access of sym, for the symbol kinds that carry
// one. The second return is false for kinds with no visibility concept
// of their own (GenericProcedure, CustomOperator, ExternalSymbol),
// which isPublic treats as always public.
func accessOf(sym asr.Symbol) (asr.Access, bool) {
	switch s := sym.(type) {
	case *asr.Subroutine:
		return s.Access, true
	case *asr.Function:
		return s.Access, true
	case *asr.Variable:
		return s.Access, true
	case *asr.DerivedType:
		return s.Access, true
	case *asr.ClassType:
		return s.Access, true
	case *asr.ClassProcedure:
		return s.Access, true
	default:
		return asr.Public, false
	}
}

func isPublic(sym asr.Symbol) bool {
	access, ok := accessOf(sym)
	return !ok || access == asr.Public
}
