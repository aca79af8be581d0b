package asr

import (
	"go.uber.org/multierr"

	"github.com/pkg/errors"
)

// Validate walks the entire unit and reports every §3 invariant
// violation it finds, rather than stopping at the first (§7, §8.1,
// §8.4). A nil return means the unit is well-formed.
func Validate(u *Unit) error {
	var errs error
	for _, item := range u.Items {
		errs = multierr.Append(errs, validateSymbol(item))
	}
	return errs
}

// validateSymbol dispatches structural checks by symbol kind and
// recurses into whatever it owns (a scope, a body, both).
func validateSymbol(sym Symbol) error {
	var errs error
	switch s := sym.(type) {
	case *Program:
		errs = multierr.Append(errs, validateScope(s.Scope))
		errs = multierr.Append(errs, validateProcedureBody(s.Name, s.Scope, s.Body))
	case *Module:
		errs = multierr.Append(errs, validateScope(s.Scope))
	case *Subroutine:
		errs = multierr.Append(errs, validateScope(s.Scope))
		errs = multierr.Append(errs, validateABIBody(s, s.ABI, s.DefType, s.Body))
		errs = multierr.Append(errs, validateProcedureBody(s.Name, s.Scope, s.Body))
	case *Function:
		errs = multierr.Append(errs, validateReturnVar(s))
		errs = multierr.Append(errs, validateScope(s.Scope))
		errs = multierr.Append(errs, validateABIBody(s, s.ABI, s.DefType, s.Body))
		errs = multierr.Append(errs, validateProcedureBody(s.Name, s.Scope, s.Body))
	case *DerivedType:
		errs = multierr.Append(errs, validateDerivedTypeParent(s))
		if s.Scope != nil {
			errs = multierr.Append(errs, validateScope(s.Scope))
		}
	case *ClassType:
		if s.Scope != nil {
			errs = multierr.Append(errs, validateScope(s.Scope))
		}
	case *ExternalSymbol:
		if s.External == nil {
			errs = multierr.Append(errs, errors.Wrapf(ErrUnresolvedExternal, "ExternalSymbol %q (module %q) was never resolved", s.Name, s.ModuleName))
		}
	}
	return errs
}

// validateScope recurses into every symbol a scope owns.
func validateScope(scope *Scope) error {
	if scope == nil {
		return nil
	}
	var errs error
	if scope.parent != nil && scope.isAncestorOf(scope.parent) {
		// unreachable through the public API (NewScope never lets a scope
		// outlive and re-parent onto its own descendant), kept as a
		// defensive check for invariant 8.
		errs = multierr.Append(errs, errors.Wrap(ErrInvariantViolation, "scope-table forest contains a cycle"))
	}
	for _, sym := range scope.Iterate() {
		errs = multierr.Append(errs, validateSymbol(sym))
	}
	return errs
}

// validateReturnVar enforces invariant 4: exactly one ReturnVar variable,
// equal to f.ReturnVar.
func validateReturnVar(f *Function) error {
	if f.ReturnVar == nil {
		return errors.Wrapf(ErrInvariantViolation, "Function %q has no ReturnVar", f.Name)
	}
	if f.ReturnVar.Intent != ReturnVar {
		return errors.Wrapf(ErrInvariantViolation, "Function %q ReturnVar %q does not carry ReturnVar intent", f.Name, f.ReturnVar.Name)
	}
	count := 0
	for _, sym := range f.Scope.Iterate() {
		if v, ok := sym.(*Variable); ok && v.Intent == ReturnVar {
			count++
			if v != f.ReturnVar {
				return errors.Wrapf(ErrInvariantViolation, "Function %q has a ReturnVar variable %q distinct from its declared ReturnVar %q", f.Name, v.Name, f.ReturnVar.Name)
			}
		}
	}
	if count != 1 {
		return errors.Wrapf(ErrInvariantViolation, "Function %q must have exactly one ReturnVar variable, found %d", f.Name, count)
	}
	return nil
}

// validateABIBody enforces invariant 5.
func validateABIBody(owner Symbol, abi ABI, defType DefType, body []Stmt) error {
	if abi == Source && (defType != Implementation || len(body) == 0) {
		return errors.Wrapf(ErrInvariantViolation, "%q: ABI Source requires DefType Implementation and a non-empty body", owner.SymbolName())
	}
	if defType == Interface && len(body) != 0 {
		return errors.Wrapf(ErrInvariantViolation, "%q: DefType Interface requires an empty body", owner.SymbolName())
	}
	return nil
}

// validateDerivedTypeParent enforces invariant 7.
func validateDerivedTypeParent(d *DerivedType) error {
	if d.Parent == nil {
		return nil
	}
	switch d.Parent.(type) {
	case *DerivedType:
		return nil
	case *ExternalSymbol:
		ext := d.Parent.(*ExternalSymbol)
		if ext.External == nil {
			return errors.Wrapf(ErrInvariantViolation, "DerivedType %q parent external %q is unresolved", d.Name, ext.Name)
		}
		if _, ok := ext.External.(*DerivedType); !ok {
			return errors.Wrapf(ErrInvariantViolation, "DerivedType %q parent resolves to %T, not a DerivedType", d.Name, ext.External)
		}
		return nil
	default:
		return errors.Wrapf(ErrInvariantViolation, "DerivedType %q parent is %T, must be a DerivedType or ExternalSymbol", d.Name, d.Parent)
	}
}

// validateProcedureBody enforces invariant 6 (every GoTo has a matching
// GoToTarget within the procedure) and invariant 1/2/3 over every
// statement and expression reachable from body.
func validateProcedureBody(procName string, scope *Scope, body []Stmt) error {
	gotos := map[int]bool{}
	targets := map[int]bool{}
	var errs error

	var walkExpr func(Expr)
	walkExpr = func(e Expr) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *Var:
			if sym, ok := scope.Lookup(n.Sym.SymbolName()); ok {
				if sym != n.Sym {
					if _, isExt := n.Sym.(*ExternalSymbol); !isExt {
						errs = multierr.Append(errs, errors.Wrapf(ErrUnresolvedName, "%s: reference to %q does not resolve to the symbol it was built against", procName, n.Sym.SymbolName()))
					}
				}
			} else if _, isExt := n.Sym.(*ExternalSymbol); !isExt {
				errs = multierr.Append(errs, errors.Wrapf(ErrUnresolvedName, "%s: %q is unreachable by walking parent scopes and is not an ExternalSymbol", procName, n.Sym.SymbolName()))
			}
		case *Compare:
			if _, ok := n.Typ.(*Logical); !ok {
				errs = multierr.Append(errs, errors.Wrapf(ErrTypeMismatch, "%s: Compare type must be Logical, got %T", procName, n.Typ))
			}
			walkExpr(n.Left)
			walkExpr(n.Right)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *BinOpExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *UnaryOpExpr:
			walkExpr(n.Operand)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *BoolOpExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *StrOpExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *Cast:
			walkExpr(n.Arg)
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *FunctionCall:
			for _, a := range n.Args {
				walkExpr(a)
			}
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *ArrayItem:
			walkExpr(n.Base)
			for _, s := range n.Subscripts {
				walkExpr(s)
			}
		case *ArraySection:
			walkExpr(n.Base)
		case *ArrayConstructor:
			for _, v := range n.Values {
				walkExpr(v)
			}
			errs = multierr.Append(errs, checkFoldedValue(n, n.Value))
			walkExpr(n.Value)
		case *ImpliedDoLoop:
			walkExpr(n.Start)
			walkExpr(n.End)
			walkExpr(n.Stride)
			for _, v := range n.Values {
				walkExpr(v)
			}
		case *StructMember:
			walkExpr(n.Base)
		}
	}

	var walkStmts func([]Stmt)
	walkStmts = func(stmts []Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *GoTo:
				gotos[n.ID] = true
			case *GoToTarget:
				targets[n.ID] = true
			case *If:
				walkExpr(n.Cond)
				walkStmts(n.Then)
				walkStmts(n.Else)
			case *DoLoop:
				walkExpr(n.Start)
				walkExpr(n.End)
				walkExpr(n.Stride)
				walkStmts(n.Body)
			case *WhileLoop:
				walkExpr(n.Cond)
				walkStmts(n.Body)
			case *SelectCase:
				walkExpr(n.Test)
				for _, c := range n.Cases {
					for _, v := range c.Values {
						walkExpr(v)
					}
					walkStmts(c.Body)
				}
				walkStmts(n.Default)
			case *Assignment:
				walkExpr(n.Target)
				walkExpr(n.Value)
			case *SubroutineCall:
				for _, a := range n.Args {
					walkExpr(a)
				}
			case *Print:
				walkExpr(n.Format)
				for _, it := range n.Items {
					walkExpr(it)
				}
			case *Write:
				walkExpr(n.Unit)
				walkExpr(n.Format)
				for _, it := range n.Items {
					walkExpr(it)
				}
			case *Read:
				walkExpr(n.Unit)
				walkExpr(n.Format)
				for _, it := range n.Items {
					walkExpr(it)
				}
			case *Allocate:
				for _, o := range n.Objects {
					walkExpr(o)
				}
			case *ExplicitDeallocate:
				for _, o := range n.Objects {
					walkExpr(o)
				}
			case *ImplicitDeallocate:
				for _, o := range n.Objects {
					walkExpr(o)
				}
			case *Nullify:
				for _, o := range n.Objects {
					walkExpr(o)
				}
			case *Assert:
				walkExpr(n.Test)
				walkExpr(n.Msg)
			case *Return:
				walkExpr(n.AltReturn)
			}
		}
	}
	walkStmts(body)

	for id := range gotos {
		if !targets[id] {
			errs = multierr.Append(errs, errors.Wrapf(ErrInvariantViolation, "%s: GoTo(%d) has no matching GoToTarget", procName, id))
		}
	}
	return errs
}
