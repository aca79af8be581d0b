// Package visit provides a read-only depth-first Visitor and an
// in-place rewriting Transformer over the asr node algebra, modeled on
// the standard library's go/ast Walk and go/ast/astutil Apply.
package visit

import "github.com/soypat/fortran-asr"

// Visitor's Visit method is invoked for each node Walk encounters. If
// the returned Visitor w is not nil, Walk visits each child of node
// with w, followed by a call to w.Visit(nil) once those children are
// exhausted (mirroring go/ast's pre/post-order hook pattern).
type Visitor interface {
	Visit(node any) (w Visitor)
}

// Walk traverses a Unit, Symbol, Ttype, Expr, or Stmt depth-first,
// tracking already-visited pointers so a cyclic symbol graph (a
// recursive Function whose own Variable types reference a DerivedType
// that embeds that Function again through a ClassProcedure) is visited
// exactly once per reachable node rather than looping forever.
func Walk(v Visitor, node any) {
	walk(v, node, make(map[any]bool))
}

func walk(v Visitor, node any, seen map[any]bool) {
	if node == nil {
		return
	}
	if isPointerLike(node) {
		if seen[node] {
			return
		}
		seen[node] = true
	}
	if v = v.Visit(node); v == nil {
		return
	}
	defer v.Visit(nil)

	switch n := node.(type) {
	case *asr.Unit:
		walk(v, n.Global, seen)
		for _, item := range n.Items {
			walk(v, item, seen)
		}

	case *asr.Scope:
		for _, sym := range n.Iterate() {
			walk(v, sym, seen)
		}

	case *asr.Program:
		walk(v, n.Scope, seen)
		walkStmts(v, n.Body, seen)
	case *asr.Module:
		walk(v, n.Scope, seen)
	case *asr.Subroutine:
		walk(v, n.Scope, seen)
		for _, a := range n.Args {
			walk(v, a, seen)
		}
		walkStmts(v, n.Body, seen)
	case *asr.Function:
		walk(v, n.Scope, seen)
		for _, a := range n.Args {
			walk(v, a, seen)
		}
		walk(v, n.ReturnVar, seen)
		walkStmts(v, n.Body, seen)
	case *asr.GenericProcedure:
		for _, p := range n.Procs {
			walk(v, p, seen)
		}
	case *asr.CustomOperator:
		for _, p := range n.Procs {
			walk(v, p, seen)
		}
	case *asr.ExternalSymbol:
		// External is not walked: it belongs to a different scope tree
		// (possibly a different Unit entirely) and Walk only traverses
		// the unit it was called on.
	case *asr.DerivedType:
		if n.Scope != nil {
			walk(v, n.Scope, seen)
		}
	case *asr.ClassType:
		if n.Scope != nil {
			walk(v, n.Scope, seen)
		}
	case *asr.ClassProcedure:
		walk(v, n.Proc, seen)
	case *asr.Variable:
		walk(v, n.Type, seen)
		if n.Value != nil {
			walk(v, n.Value, seen)
		}

	case *asr.Integer, *asr.Real, *asr.Complex, *asr.Character, *asr.Logical:
		// scalar/array leaf types carry only Expr-valued Dimension
		// bounds, handled uniformly below.
		walkDims(v, dimsOf(n), seen)
	case *asr.List:
		walk(v, n.Element, seen)
	case *asr.Set:
		walk(v, n.Element, seen)
	case *asr.Tuple:
		for _, e := range n.Elements {
			walk(v, e, seen)
		}
	case *asr.Dict:
		walk(v, n.Key, seen)
		walk(v, n.Value, seen)
	case *asr.Derived:
		walkDims(v, n.Dims, seen)
	case *asr.Class:
		walkDims(v, n.Dims, seen)
	case *asr.Pointer:
		walk(v, n.Of, seen)

	case *asr.ConstantInteger, *asr.ConstantReal, *asr.ConstantComplex,
		*asr.ConstantLogical, *asr.ConstantString, *asr.ConstantBOZ:
		// literal leaves, no children

	case *asr.ConstantArray:
		for _, e := range n.Vals {
			walk(v, e, seen)
		}
	case *asr.Var:
		// Sym is a reference, not owned by this subtree; walking it
		// would re-descend into the symbol's declaration site.
	case *asr.BinOpExpr:
		walk(v, n.Left, seen)
		walk(v, n.Right, seen)
	case *asr.UnaryOpExpr:
		walk(v, n.Operand, seen)
	case *asr.BoolOpExpr:
		walk(v, n.Left, seen)
		walk(v, n.Right, seen)
	case *asr.StrOpExpr:
		walk(v, n.Left, seen)
		walk(v, n.Right, seen)
	case *asr.Compare:
		walk(v, n.Left, seen)
		walk(v, n.Right, seen)
	case *asr.Cast:
		walk(v, n.Arg, seen)
	case *asr.FunctionCall:
		for _, a := range n.Args {
			walk(v, a, seen)
		}
	case *asr.ArrayItem:
		walk(v, n.Base, seen)
		for _, s := range n.Subscripts {
			walk(v, s, seen)
		}
	case *asr.ArraySection:
		walk(v, n.Base, seen)
		walkDims(v, n.Bounds, seen)
	case *asr.ArrayConstructor:
		for _, e := range n.Values {
			walk(v, e, seen)
		}
	case *asr.ImpliedDoLoop:
		walk(v, n.Var, seen)
		walk(v, n.Start, seen)
		walk(v, n.End, seen)
		if n.Stride != nil {
			walk(v, n.Stride, seen)
		}
		for _, e := range n.Values {
			walk(v, e, seen)
		}
	case *asr.StructMember:
		walk(v, n.Base, seen)

	case *asr.DoLoop:
		walk(v, n.Var, seen)
		walk(v, n.Start, seen)
		walk(v, n.End, seen)
		if n.Stride != nil {
			walk(v, n.Stride, seen)
		}
		walkStmts(v, n.Body, seen)
	case *asr.WhileLoop:
		walk(v, n.Cond, seen)
		walkStmts(v, n.Body, seen)
	case *asr.If:
		walk(v, n.Cond, seen)
		walkStmts(v, n.Then, seen)
		walkStmts(v, n.Else, seen)
	case *asr.SelectCase:
		walk(v, n.Test, seen)
		for _, c := range n.Cases {
			for _, val := range c.Values {
				walk(v, val, seen)
			}
			walkStmts(v, c.Body, seen)
		}
		walkStmts(v, n.Default, seen)
	case *asr.Print:
		if n.Format != nil {
			walk(v, n.Format, seen)
		}
		for _, it := range n.Items {
			walk(v, it, seen)
		}
	case *asr.Read:
		walk(v, n.Unit, seen)
		if n.Format != nil {
			walk(v, n.Format, seen)
		}
		for _, it := range n.Items {
			walk(v, it, seen)
		}
	case *asr.Write:
		walk(v, n.Unit, seen)
		if n.Format != nil {
			walk(v, n.Format, seen)
		}
		for _, it := range n.Items {
			walk(v, it, seen)
		}
	case *asr.Allocate:
		for _, o := range n.Objects {
			walk(v, o, seen)
		}
	case *asr.ExplicitDeallocate:
		for _, o := range n.Objects {
			walk(v, o, seen)
		}
	case *asr.ImplicitDeallocate:
		for _, o := range n.Objects {
			walk(v, o, seen)
		}
	case *asr.Nullify:
		for _, o := range n.Objects {
			walk(v, o, seen)
		}
	case *asr.Assert:
		walk(v, n.Test, seen)
		if n.Msg != nil {
			walk(v, n.Msg, seen)
		}
	case *asr.SubroutineCall:
		for _, a := range n.Args {
			walk(v, a, seen)
		}
	case *asr.Assignment:
		walk(v, n.Target, seen)
		walk(v, n.Value, seen)
	case *asr.Return:
		if n.AltReturn != nil {
			walk(v, n.AltReturn, seen)
		}
	case *asr.GoTo, *asr.GoToTarget, *asr.CycleStmt, *asr.ExitStmt:
		// no children
	}
}

func walkStmts(v Visitor, stmts []asr.Stmt, seen map[any]bool) {
	for _, s := range stmts {
		walk(v, s, seen)
	}
}

func walkDims(v Visitor, dims []asr.Dimension, seen map[any]bool) {
	for _, d := range dims {
		if d.Lower != nil {
			walk(v, d.Lower, seen)
		}
		if d.Upper != nil {
			walk(v, d.Upper, seen)
		}
	}
}

// dimsOf extracts the Dims field shared by the scalar/array numeric and
// character/logical Ttype variants without repeating four identical
// case arms above.
func dimsOf(n any) []asr.Dimension {
	switch t := n.(type) {
	case *asr.Integer:
		return t.Dims
	case *asr.Real:
		return t.Dims
	case *asr.Complex:
		return t.Dims
	case *asr.Character:
		return t.Dims
	case *asr.Logical:
		return t.Dims
	}
	return nil
}

// isPointerLike reports whether node is a pointer (every asr node
// variant is), so Walk knows to key the seen-set on it; non-pointer
// values (none occur in practice, since every Symbol/Ttype/Expr/Stmt
// implementation is a pointer receiver type) are walked unconditionally.
func isPointerLike(node any) bool {
	switch node.(type) {
	case *asr.Unit, *asr.Scope:
		return true
	}
	// every Symbol/Ttype/Expr/Stmt concrete type is itself a pointer,
	// so a type assertion to any of the three base interfaces already
	// tells us the underlying value is a pointer and thus comparable.
	if _, ok := node.(asr.Symbol); ok {
		return true
	}
	if _, ok := node.(asr.Ttype); ok {
		return true
	}
	if _, ok := node.(asr.Expr); ok {
		return true
	}
	if _, ok := node.(asr.Stmt); ok {
		return true
	}
	return false
}

// Transformer rewrites a node, returning either node unchanged (the
// common case: an identity-returning hook incurs no allocation beyond
// the interface value itself) or a replacement of the same node kind.
// TransformExpr/TransformStmt/TransformTtype call Transform on node,
// then splice the result into every child field the node owns before
// returning it, so a single Transformer implementation drives an
// entire rewrite pass (constant folding, array-bound lowering) over a
// procedure body with Visit-style per-variant overriding.
type Transformer interface {
	Transform(node any) any
}

// TransformExpr rewrites x and every sub-expression it owns (including
// folded values and ArraySection bound expressions), depth-first. The
// Ttype held in an expression's Typ field is not passed to
// TransformTtype. The returned value always satisfies asr.Expr; a
// Transformer that returns a value of the wrong kind is a programmer
// error and TransformExpr panics rather than silently dropping the
// rewrite.
func TransformExpr(t Transformer, x asr.Expr) asr.Expr {
	if x == nil {
		return nil
	}
	out, ok := t.Transform(x).(asr.Expr)
	if !ok {
		panic("visit: Transformer replaced an Expr with a non-Expr")
	}
	switch n := out.(type) {
	case *asr.BinOpExpr:
		n.Left = TransformExpr(t, n.Left)
		n.Right = TransformExpr(t, n.Right)
		n.Value = TransformExpr(t, n.Value)
	case *asr.UnaryOpExpr:
		n.Operand = TransformExpr(t, n.Operand)
		n.Value = TransformExpr(t, n.Value)
	case *asr.BoolOpExpr:
		n.Left = TransformExpr(t, n.Left)
		n.Right = TransformExpr(t, n.Right)
		n.Value = TransformExpr(t, n.Value)
	case *asr.StrOpExpr:
		n.Left = TransformExpr(t, n.Left)
		n.Right = TransformExpr(t, n.Right)
		n.Value = TransformExpr(t, n.Value)
	case *asr.Compare:
		n.Left = TransformExpr(t, n.Left)
		n.Right = TransformExpr(t, n.Right)
		n.Value = TransformExpr(t, n.Value)
	case *asr.Cast:
		n.Arg = TransformExpr(t, n.Arg)
		n.Value = TransformExpr(t, n.Value)
	case *asr.FunctionCall:
		for i, a := range n.Args {
			n.Args[i] = TransformExpr(t, a)
		}
		n.Value = TransformExpr(t, n.Value)
	case *asr.ArrayItem:
		n.Base = TransformExpr(t, n.Base)
		for i, s := range n.Subscripts {
			n.Subscripts[i] = TransformExpr(t, s)
		}
	case *asr.ArraySection:
		n.Base = TransformExpr(t, n.Base)
		n.Bounds = transformDims(t, n.Bounds)
	case *asr.ArrayConstructor:
		for i, e := range n.Values {
			n.Values[i] = TransformExpr(t, e)
		}
		n.Value = TransformExpr(t, n.Value)
	case *asr.ImpliedDoLoop:
		n.Start = TransformExpr(t, n.Start)
		n.End = TransformExpr(t, n.End)
		if n.Stride != nil {
			n.Stride = TransformExpr(t, n.Stride)
		}
		for i, e := range n.Values {
			n.Values[i] = TransformExpr(t, e)
		}
	case *asr.StructMember:
		n.Base = TransformExpr(t, n.Base)
	}
	return out
}

// TransformStmt rewrites s and every statement/expression it owns,
// depth-first.
func TransformStmt(t Transformer, s asr.Stmt) asr.Stmt {
	if s == nil {
		return nil
	}
	out, ok := t.Transform(s).(asr.Stmt)
	if !ok {
		panic("visit: Transformer replaced a Stmt with a non-Stmt")
	}
	switch n := out.(type) {
	case *asr.DoLoop:
		n.Start = TransformExpr(t, n.Start)
		n.End = TransformExpr(t, n.End)
		if n.Stride != nil {
			n.Stride = TransformExpr(t, n.Stride)
		}
		n.Body = TransformStmts(t, n.Body)
	case *asr.WhileLoop:
		n.Cond = TransformExpr(t, n.Cond)
		n.Body = TransformStmts(t, n.Body)
	case *asr.If:
		n.Cond = TransformExpr(t, n.Cond)
		n.Then = TransformStmts(t, n.Then)
		n.Else = TransformStmts(t, n.Else)
	case *asr.SelectCase:
		n.Test = TransformExpr(t, n.Test)
		for ci, c := range n.Cases {
			for vi, v := range c.Values {
				n.Cases[ci].Values[vi] = TransformExpr(t, v)
			}
			n.Cases[ci].Body = TransformStmts(t, c.Body)
		}
		n.Default = TransformStmts(t, n.Default)
	case *asr.Print:
		n.Format = TransformExpr(t, n.Format)
		for i, it := range n.Items {
			n.Items[i] = TransformExpr(t, it)
		}
	case *asr.Read:
		n.Unit = TransformExpr(t, n.Unit)
		n.Format = TransformExpr(t, n.Format)
		for i, it := range n.Items {
			n.Items[i] = TransformExpr(t, it)
		}
	case *asr.Write:
		n.Unit = TransformExpr(t, n.Unit)
		n.Format = TransformExpr(t, n.Format)
		for i, it := range n.Items {
			n.Items[i] = TransformExpr(t, it)
		}
	case *asr.Allocate:
		for i, o := range n.Objects {
			n.Objects[i] = TransformExpr(t, o)
		}
	case *asr.ExplicitDeallocate:
		for i, o := range n.Objects {
			n.Objects[i] = TransformExpr(t, o)
		}
	case *asr.ImplicitDeallocate:
		for i, o := range n.Objects {
			n.Objects[i] = TransformExpr(t, o)
		}
	case *asr.Nullify:
		for i, o := range n.Objects {
			n.Objects[i] = TransformExpr(t, o)
		}
	case *asr.Assert:
		n.Test = TransformExpr(t, n.Test)
		if n.Msg != nil {
			n.Msg = TransformExpr(t, n.Msg)
		}
	case *asr.SubroutineCall:
		for i, a := range n.Args {
			n.Args[i] = TransformExpr(t, a)
		}
	case *asr.Assignment:
		n.Target = TransformExpr(t, n.Target)
		n.Value = TransformExpr(t, n.Value)
	case *asr.Return:
		if n.AltReturn != nil {
			n.AltReturn = TransformExpr(t, n.AltReturn)
		}
	}
	return out
}

// TransformStmts rewrites every statement of stmts in place, preserving
// length and order (a Transformer never deletes or reorders a
// statement; a pass needing that splices the result itself by
// returning a *asr.If or similar wrapping the original intent).
func TransformStmts(t Transformer, stmts []asr.Stmt) []asr.Stmt {
	for i, s := range stmts {
		stmts[i] = TransformStmt(t, s)
	}
	return stmts
}

// TransformTtype rewrites typ and any element/bound type it owns.
func TransformTtype(t Transformer, typ asr.Ttype) asr.Ttype {
	if typ == nil {
		return nil
	}
	out, ok := t.Transform(typ).(asr.Ttype)
	if !ok {
		panic("visit: Transformer replaced a Ttype with a non-Ttype")
	}
	switch n := out.(type) {
	case *asr.Integer:
		n.Dims = transformDims(t, n.Dims)
	case *asr.Real:
		n.Dims = transformDims(t, n.Dims)
	case *asr.Complex:
		n.Dims = transformDims(t, n.Dims)
	case *asr.Character:
		if n.LengthExpr != nil {
			n.LengthExpr = TransformExpr(t, n.LengthExpr)
		}
		n.Dims = transformDims(t, n.Dims)
	case *asr.Logical:
		n.Dims = transformDims(t, n.Dims)
	case *asr.List:
		n.Element = TransformTtype(t, n.Element)
	case *asr.Set:
		n.Element = TransformTtype(t, n.Element)
	case *asr.Tuple:
		for i, e := range n.Elements {
			n.Elements[i] = TransformTtype(t, e)
		}
	case *asr.Dict:
		n.Key = TransformTtype(t, n.Key)
		n.Value = TransformTtype(t, n.Value)
	case *asr.Derived:
		n.Dims = transformDims(t, n.Dims)
	case *asr.Class:
		n.Dims = transformDims(t, n.Dims)
	case *asr.Pointer:
		n.Of = TransformTtype(t, n.Of)
	}
	return out
}

func transformDims(t Transformer, dims []asr.Dimension) []asr.Dimension {
	for i, d := range dims {
		if d.Lower != nil {
			dims[i].Lower = TransformExpr(t, d.Lower)
		}
		if d.Upper != nil {
			dims[i].Upper = TransformExpr(t, d.Upper)
		}
	}
	return dims
}

// Inspect is a convenience wrapper around Walk: f is invoked for each
// node with pre == true before its children are visited, and again
// with pre == false (and node unchanged) after, mirroring the ASR's
// read-only pre/post-order hook requirement directly on top of Walk's
// single Visitor hook.
func Inspect(node any, f func(node any, pre bool) bool) {
	Walk(inspector(f), node)
}

type inspector func(node any, pre bool) bool

func (f inspector) Visit(node any) Visitor {
	if node == nil {
		return nil
	}
	if f(node, true) {
		return inspectExit{f: f, node: node}
	}
	return nil
}

type inspectExit struct {
	f    inspector
	node any
}

func (e inspectExit) Visit(node any) Visitor {
	if node == nil {
		e.f(e.node, false)
		return nil
	}
	return e.f.Visit(node)
}
