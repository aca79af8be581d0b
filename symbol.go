package asr

// Symbol is the closed set of entities a name can be bound to: Program,
// Module, Subroutine, Function, GenericProcedure, CustomOperator,
// ExternalSymbol, DerivedType, Variable, ClassType, ClassProcedure.
// Every symbol carries a name. Scope-owning symbols expose their own
// scope through OwnScope (see ScopeOwner); leaf symbols do not record
// the scope they were inserted into.
type Symbol interface {
	symbolNode()
	SymbolName() string
}

// ScopeOwner is implemented by every symbol that owns a local scope
// rather than living in one: the procedure-like symbols (Program,
// Module, Subroutine, Function) and the aggregate type symbols
// (DerivedType, ClassType) that scope their own components.
// ExternalSymbol resolution (§4.B) descends scope_names by requiring
// each intermediate symbol to satisfy this interface, so a path can
// pass through a derived type on its way to one of its components.
type ScopeOwner interface {
	Symbol
	OwnScope() *Scope
}

// Program is the single entry-point procedure-like symbol of a
// translation unit; it owns the outermost non-global scope.
type Program struct {
	Name  string
	Scope *Scope
	Body  []Stmt
}

func (*Program) symbolNode()          {}
func (p *Program) SymbolName() string { return p.Name }
func (p *Program) OwnScope() *Scope   { return p.Scope }

// Module is a compilation-unit-scoped collection of symbols, optionally
// with a CONTAINS section of procedures. abi/deftype describe whether
// this is a full definition (Source, Implementation) or a projected
// interface (see §4.H).
type Module struct {
	Name     string
	Scope    *Scope
	ABI      ABI
	DefType  DefType
	Access   Access
	DeclOrder []string // public/private procedure names in CONTAINS, insertion order
}

func (*Module) symbolNode()          {}
func (m *Module) SymbolName() string { return m.Name }
func (m *Module) OwnScope() *Scope   { return m.Scope }

// Subroutine is a procedure with no return value.
type Subroutine struct {
	Name       string
	Scope      *Scope
	Args       []*Variable // dummy arguments, in declared order
	Body       []Stmt
	ABI        ABI
	DefType    DefType
	Access     Access
	Attributes ProcAttrs
}

func (*Subroutine) symbolNode()          {}
func (s *Subroutine) SymbolName() string { return s.Name }
func (s *Subroutine) OwnScope() *Scope   { return s.Scope }

// Function is a procedure that returns a value through its ReturnVar
// variable (invariant 4: exactly one Variable with Intent==ReturnVar,
// equal to ReturnVar below).
type Function struct {
	Name       string
	Scope      *Scope
	Args       []*Variable
	ReturnVar  *Variable
	Body       []Stmt
	ABI        ABI
	DefType    DefType
	Access     Access
	Attributes ProcAttrs
}

func (*Function) symbolNode()          {}
func (f *Function) SymbolName() string { return f.Name }
func (f *Function) OwnScope() *Scope   { return f.Scope }

// ProcAttrs bundles the boolean procedure qualifiers that don't warrant
// their own enum (RECURSIVE, PURE, ELEMENTAL in the source language).
type ProcAttrs struct {
	Recursive bool
	Pure      bool
	Elemental bool
}

// GenericProcedure names an overload set resolved by the elaboration
// collaborator; it never owns a scope itself; it resides in one.
type GenericProcedure struct {
	Name  string
	Procs []Symbol // candidate Function/Subroutine/ExternalSymbol targets
}

func (*GenericProcedure) symbolNode()          {}
func (g *GenericProcedure) SymbolName() string { return g.Name }

// CustomOperator binds a user-defined operator (e.g. OPERATOR(.add.))
// to an overload set, structurally identical to GenericProcedure but
// kept distinct per the data model's closed variant universe.
type CustomOperator struct {
	Name  string
	Procs []Symbol
}

func (*CustomOperator) symbolNode()          {}
func (c *CustomOperator) SymbolName() string { return c.Name }

// ExternalSymbol is the sole permitted means of referring to a symbol
// unreachable by walking parent scopes from the referring site. It
// records enough of the target's address to re-resolve it: the owning
// module, an ordered path of enclosing scope names, the resolved
// target, and original_name for diagnostics and GenericProcedure
// disambiguation.
type ExternalSymbol struct {
	Name         string // local alias this ExternalSymbol is bound under
	ModuleName   string
	ScopeNames   []string
	External     Symbol // resolved target; may be nil until resolve_external runs
	OriginalName string
}

func (*ExternalSymbol) symbolNode()          {}
func (e *ExternalSymbol) SymbolName() string { return e.Name }

// DerivedType is a user-defined aggregate type declaration. Parent, if
// present, must refer to another DerivedType (possibly external),
// modeling Fortran's EXTENDS clause (invariant 7).
type DerivedType struct {
	Name    string
	Scope   *Scope // component variables, as Variable symbols
	Parent  Symbol // *DerivedType or *ExternalSymbol resolving to one; nil if none
	Access  Access
	ABI     ABI
	DefType DefType
}

func (*DerivedType) symbolNode()          {}
func (d *DerivedType) SymbolName() string { return d.Name }
func (d *DerivedType) OwnScope() *Scope   { return d.Scope }

// ClassType is a polymorphic (CLASS(...)) counterpart to DerivedType,
// used as the referent of Class ttype nodes.
type ClassType struct {
	Name   string
	Scope  *Scope
	Parent Symbol
	Access Access
}

func (*ClassType) symbolNode()          {}
func (c *ClassType) SymbolName() string { return c.Name }
func (c *ClassType) OwnScope() *Scope   { return c.Scope }

// ClassProcedure binds a type-bound procedure name (declared inside a
// DerivedType/ClassType) to its implementing Function or Subroutine.
type ClassProcedure struct {
	Name    string
	Proc    Symbol // *Function, *Subroutine, or *ExternalSymbol
	Access  Access
	IsFinal bool // FINAL binding, invoked on deallocation
}

func (*ClassProcedure) symbolNode()          {}
func (c *ClassProcedure) SymbolName() string { return c.Name }

// Variable is a leaf symbol: a declared name with a resolved type,
// intent, storage, and optional array shape.
type Variable struct {
	Name      string
	Type      Ttype
	Intent    Intent
	Storage   StorageType
	Presence  Presence
	Access    Access
	Value     Expr // compile-time initializer, for StorageParameter; nil otherwise
	IsPointer bool
	IsTarget  bool
}

func (*Variable) symbolNode()          {}
func (v *Variable) SymbolName() string { return v.Name }
