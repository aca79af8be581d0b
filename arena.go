package asr

// Arena owns every symbol allocated for one translation unit. A Go
// pointer already is a stable handle: it never moves and compares equal
// to itself across any number of field copies, which is exactly what
// cyclic symbol/type graphs need (a recursive Function's own Variable
// can hold a Derived type pointing back at a DerivedType that in turn
// embeds that same Function in a ClassProcedure, and so on). The Arena's
// job is bulk bookkeeping on top of that: recording allocation order
// for deterministic enumeration, and being the single thing a caller
// drops to release everything at once.
//
// There is no per-node Free: nodes are released together with the Unit
// that owns this Arena, by letting the garbage collector reclaim
// whatever becomes unreachable once the Unit itself is dropped.
type Arena struct {
	symbols []Symbol
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// track registers sym as allocated from this arena and returns it
// unchanged, so constructors can end with `return a.track(&Variable{...})`.
func (a *Arena) track(sym Symbol) Symbol {
	a.symbols = append(a.symbols, sym)
	return sym
}

// Symbols returns every symbol ever allocated from this arena, in
// allocation order. This is an allocation log, not a traversal order:
// callers that need deterministic tree order should use Scope.Iterate
// or the visit package instead.
func (a *Arena) Symbols() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Len returns the number of symbols allocated from this arena.
func (a *Arena) Len() int {
	return len(a.symbols)
}
