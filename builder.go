package asr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Builder is the collaborator-facing smart-constructor API: every
// exported method here either returns a well-formed node or a
// structured error, and never leaves a partially-linked graph behind on
// failure. Builder errors are raised at the offending call and are not
// recovered internally (§7); callers that want every violation in one
// pass should build with best-effort recovery and then run validate.
type Builder struct {
	arena *Arena
}

// NewBuilder creates a Builder allocating into arena.
func NewBuilder(arena *Arena) *Builder {
	return &Builder{arena: arena}
}

// NewProgram declares a Program in global and returns it with its own
// (empty) scope already linked.
func (b *Builder) NewProgram(global *Scope, name string) (*Program, error) {
	p := &Program{Name: name}
	p.Scope = NewScope(global, p)
	if err := global.Insert(name, p); err != nil {
		return nil, err
	}
	b.arena.track(p)
	return p, nil
}

// NewModule declares a Module in global.
func (b *Builder) NewModule(global *Scope, name string, abi ABI, access Access) (*Module, error) {
	m := &Module{Name: name, ABI: abi, Access: access, DefType: Implementation}
	m.Scope = NewScope(global, m)
	if err := global.Insert(name, m); err != nil {
		return nil, err
	}
	b.arena.track(m)
	return m, nil
}

// NewSubroutine declares a Subroutine in parent (global scope, or a
// Module's scope for a module procedure).
func (b *Builder) NewSubroutine(parent *Scope, name string, abi ABI, access Access) (*Subroutine, error) {
	s := &Subroutine{Name: name, ABI: abi, Access: access, DefType: Implementation}
	s.Scope = NewScope(parent, s)
	if err := parent.Insert(name, s); err != nil {
		return nil, err
	}
	b.arena.track(s)
	return s, nil
}

// NewFunction declares a Function in parent, including its ReturnVar
// variable inside the function's own scope under returnVarName. This is
// the only path that can produce a ReturnVar-intent Variable, which is
// what keeps invariant 4 (exactly one ReturnVar per Function) true by
// construction rather than by a later check.
func (b *Builder) NewFunction(parent *Scope, name, returnVarName string, returnType Ttype, abi ABI, access Access) (*Function, error) {
	f := &Function{Name: name, ABI: abi, Access: access, DefType: Implementation}
	f.Scope = NewScope(parent, f)
	if err := parent.Insert(name, f); err != nil {
		return nil, err
	}
	rv := &Variable{Name: returnVarName, Type: returnType, Intent: ReturnVar}
	if err := f.Scope.Insert(returnVarName, rv); err != nil {
		return nil, err
	}
	f.ReturnVar = rv
	b.arena.track(f)
	b.arena.track(rv)
	return f, nil
}

// NewVariable declares a leaf Variable in scope. intent must not be
// ReturnVar: that intent is reserved for the variable NewFunction
// creates automatically.
func (b *Builder) NewVariable(scope *Scope, name string, typ Ttype, intent Intent, storage StorageType) (*Variable, error) {
	if intent == ReturnVar {
		return nil, errors.Wrap(ErrInvariantViolation, "ReturnVar intent may only be assigned by NewFunction")
	}
	v := &Variable{Name: name, Type: typ, Intent: intent, Storage: storage}
	if err := scope.Insert(name, v); err != nil {
		return nil, err
	}
	b.arena.track(v)
	return v, nil
}

// NewDerivedType declares a DerivedType. parent, if non-nil, must be a
// *DerivedType or an *ExternalSymbol (invariant 7); resolution of the
// external case is left to validate, since the target module may not be
// loaded into any cache yet at build time.
func (b *Builder) NewDerivedType(scope *Scope, name string, parent Symbol, access Access) (*DerivedType, error) {
	if parent != nil {
		switch parent.(type) {
		case *DerivedType, *ExternalSymbol:
		default:
			return nil, errors.Wrapf(ErrInvariantViolation, "DerivedType %q parent must be a DerivedType or ExternalSymbol, got %T", name, parent)
		}
	}
	d := &DerivedType{Name: name, Parent: parent, Access: access, DefType: Implementation}
	d.Scope = NewScope(scope, d)
	if err := scope.Insert(name, d); err != nil {
		return nil, err
	}
	b.arena.track(d)
	return d, nil
}

// NewClassType declares a ClassType.
func (b *Builder) NewClassType(scope *Scope, name string, parent Symbol, access Access) (*ClassType, error) {
	c := &ClassType{Name: name, Parent: parent, Access: access}
	c.Scope = NewScope(scope, c)
	if err := scope.Insert(name, c); err != nil {
		return nil, err
	}
	b.arena.track(c)
	return c, nil
}

// NewClassProcedure binds name to proc (a *Function, *Subroutine, or
// *ExternalSymbol) inside a DerivedType/ClassType's scope.
func (b *Builder) NewClassProcedure(scope *Scope, name string, proc Symbol, access Access, isFinal bool) (*ClassProcedure, error) {
	switch proc.(type) {
	case *Function, *Subroutine, *ExternalSymbol:
	default:
		return nil, errors.Wrapf(ErrInvariantViolation, "ClassProcedure %q target must be a Function, Subroutine, or ExternalSymbol, got %T", name, proc)
	}
	cp := &ClassProcedure{Name: name, Proc: proc, Access: access, IsFinal: isFinal}
	if err := scope.Insert(name, cp); err != nil {
		return nil, err
	}
	b.arena.track(cp)
	return cp, nil
}

// NewGenericProcedure declares an overload set.
func (b *Builder) NewGenericProcedure(scope *Scope, name string, procs []Symbol) (*GenericProcedure, error) {
	g := &GenericProcedure{Name: name, Procs: procs}
	if err := scope.Insert(name, g); err != nil {
		return nil, err
	}
	b.arena.track(g)
	return g, nil
}

// NewCustomOperator declares a user-defined operator's overload set.
func (b *Builder) NewCustomOperator(scope *Scope, name string, procs []Symbol) (*CustomOperator, error) {
	c := &CustomOperator{Name: name, Procs: procs}
	if err := scope.Insert(name, c); err != nil {
		return nil, err
	}
	b.arena.track(c)
	return c, nil
}

// NewExternalSymbol declares name as a reference to a symbol outside any
// ancestor scope of the referring site, eagerly resolving it against
// cache so that ExternalSymbol.External points at a symbol reachable by
// the declared (module_name, scope_names) path at construction time
// (the builder-enforced half of invariant 1; validate later reports an
// ExternalSymbol whose External is nil, but does not re-resolve it
// against any cache).
func (b *Builder) NewExternalSymbol(scope *Scope, localName, moduleName string, scopeNames []string, originalName string, cache *ModuleCache) (*ExternalSymbol, error) {
	ext := &ExternalSymbol{
		Name:         localName,
		ModuleName:   moduleName,
		ScopeNames:   append([]string(nil), scopeNames...),
		OriginalName: originalName,
	}
	target, err := ResolveExternal(cache, ext)
	if err != nil {
		return nil, err
	}
	ext.External = target
	if err := scope.Insert(localName, ext); err != nil {
		return nil, err
	}
	b.arena.track(ext)
	return ext, nil
}

// NewCompare builds a relational comparison. Its type must be Logical
// (invariant 2); any other typ is rejected as a TypeMismatch.
func (b *Builder) NewCompare(op CmpOp, left, right Expr, typ Ttype, overloaded Symbol, value Expr) (*Compare, error) {
	if _, ok := typ.(*Logical); !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "Compare type must be Logical, got %T", typ)
	}
	c := &Compare{Op: op, Left: left, Right: right, Typ: typ, Overloaded: overloaded}
	if err := checkFoldedValue(c, value); err != nil {
		return nil, err
	}
	c.Value = value
	return c, nil
}

// NewBinOp builds an arithmetic binary operation.
func (b *Builder) NewBinOp(op BinOp, left, right Expr, typ Ttype, overloaded Symbol, value Expr) (*BinOpExpr, error) {
	n := &BinOpExpr{Op: op, Left: left, Right: right, Typ: typ, Overloaded: overloaded}
	if err := checkFoldedValue(n, value); err != nil {
		return nil, err
	}
	n.Value = value
	return n, nil
}

// NewUnaryOp builds a unary arithmetic/logical operation.
func (b *Builder) NewUnaryOp(op UnaryOp, operand Expr, typ Ttype, overloaded Symbol, value Expr) (*UnaryOpExpr, error) {
	n := &UnaryOpExpr{Op: op, Operand: operand, Typ: typ, Overloaded: overloaded}
	if err := checkFoldedValue(n, value); err != nil {
		return nil, err
	}
	n.Value = value
	return n, nil
}

// NewBoolOp builds a short-circuiting logical connective.
func (b *Builder) NewBoolOp(op BoolOp, left, right Expr, typ Ttype, overloaded Symbol, value Expr) (*BoolOpExpr, error) {
	n := &BoolOpExpr{Op: op, Left: left, Right: right, Typ: typ, Overloaded: overloaded}
	if err := checkFoldedValue(n, value); err != nil {
		return nil, err
	}
	n.Value = value
	return n, nil
}

// NewStrOp builds a string operator expression (currently concatenation).
func (b *Builder) NewStrOp(op StrOp, left, right Expr, typ Ttype, overloaded Symbol, value Expr) (*StrOpExpr, error) {
	n := &StrOpExpr{Op: op, Left: left, Right: right, Typ: typ, Overloaded: overloaded}
	if err := checkFoldedValue(n, value); err != nil {
		return nil, err
	}
	n.Value = value
	return n, nil
}

// NewCast builds an explicit conversion.
func (b *Builder) NewCast(kind CastKind, arg Expr, typ Ttype, value Expr) (*Cast, error) {
	n := &Cast{Kind: kind, Arg: arg, Typ: typ}
	if err := checkFoldedValue(n, value); err != nil {
		return nil, err
	}
	n.Value = value
	return n, nil
}

// checkFoldedValue enforces invariant 3: if value is present, it must be
// one of the Constant* node kinds and its type must equal outer's type.
func checkFoldedValue(outer Expr, value Expr) error {
	if value == nil {
		return nil
	}
	if !isConstantNode(value) {
		return errors.Wrapf(ErrTypeMismatch, "folded value must be a Constant* node, got %T", value)
	}
	if !typesEqual(outer.Type(), value.Type()) {
		return errors.Wrapf(ErrTypeMismatch, "folded value type %T does not match outer expression type %T", value.Type(), outer.Type())
	}
	return nil
}

func isConstantNode(e Expr) bool {
	switch e.(type) {
	case *ConstantInteger, *ConstantReal, *ConstantComplex, *ConstantLogical,
		*ConstantString, *ConstantArray, *ConstantBOZ:
		return true
	default:
		return false
	}
}

// FinalizeProcedure checks that every GoTo in body has a matching
// GoToTarget within the same procedure (invariant 6), that the
// ABI/DefType/body-emptiness relationship holds (invariant 5), and then
// attaches body to owner. It is the single place a procedure transitions
// from "under construction" to "complete".
func (b *Builder) FinalizeProcedure(owner ScopeOwner, body []Stmt) error {
	gotos := map[int]bool{}
	targets := map[int]bool{}
	var walk func([]Stmt)
	walk = func(stmts []Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *GoTo:
				gotos[n.ID] = true
			case *GoToTarget:
				targets[n.ID] = true
			case *If:
				walk(n.Then)
				walk(n.Else)
			case *DoLoop:
				walk(n.Body)
			case *WhileLoop:
				walk(n.Body)
			case *SelectCase:
				for _, c := range n.Cases {
					walk(c.Body)
				}
				walk(n.Default)
			}
		}
	}
	walk(body)
	for id := range gotos {
		if !targets[id] {
			return errors.Wrapf(ErrInvariantViolation, "GoTo(%d) has no matching GoToTarget in procedure %q", id, owner.SymbolName())
		}
	}

	var abi ABI
	var defType DefType
	switch p := owner.(type) {
	case *Program:
		p.Body = body
		return nil // Program has no ABI/DefType distinction; always a full definition
	case *Subroutine:
		abi, defType = p.ABI, p.DefType
	case *Function:
		abi, defType = p.ABI, p.DefType
	default:
		return errors.Wrapf(ErrInvariantViolation, "cannot finalize unsupported owner %T", owner)
	}

	if abi == Source && (defType != Implementation || len(body) == 0) {
		return errors.Wrapf(ErrInvariantViolation, "%s %q: ABI Source requires DefType Implementation and a non-empty body", fmt.Sprintf("%T", owner), owner.SymbolName())
	}
	if defType == Interface && len(body) != 0 {
		return errors.Wrapf(ErrInvariantViolation, "%s %q: DefType Interface requires an empty body", fmt.Sprintf("%T", owner), owner.SymbolName())
	}
	switch p := owner.(type) {
	case *Subroutine:
		p.Body = body
	case *Function:
		p.Body = body
	}
	return nil
}
