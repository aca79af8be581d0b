// Package pickle renders an ASR tree to a canonical textual S-expression
// form (§4.G), the basis for structural equality and content-addressed
// hashing of otherwise pointer-identified symbol graphs.
package pickle

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/soypat/fortran-asr"
)

// Pickle renders node to its canonical S-expression text. Every Symbol
// reached is assigned an ordinal the first time it is encountered
// (depth-first, in field-declaration order) and subsequent references
// to the same symbol print as a back-reference (`#N`) rather than being
// re-expanded, which is what makes two structurally identical but
// differently-allocated trees pickle to the same text and what keeps
// cyclic symbol graphs from recursing forever.
func Pickle(node any) string {
	p := &pickler{ordinals: make(map[asr.Symbol]int)}
	p.write(node)
	return p.buf.String()
}

// Equal reports whether a and b are structurally identical modulo
// symbol-ordinal renaming: both sides assign ordinals in the same
// deterministic first-encounter order, so equal structure always
// produces an identical pickle even when the two trees were built from
// entirely distinct Arenas.
func Equal(a, b any) bool {
	return Pickle(a) == Pickle(b)
}

// Hash returns a content-addressed hash of node's pickle, suitable for
// keying an incremental-reuse cache (§4.G): two trees with the same
// Hash are, short of a collision, pickle-Equal.
func Hash(node any) uint64 {
	return xxhash.Sum64String(Pickle(node))
}

type pickler struct {
	buf      bytes.Buffer
	ordinals map[asr.Symbol]int
	next     int
}

func (p *pickler) symbolRef(sym asr.Symbol) (ordinal int, firstSeen bool) {
	if sym == nil {
		return -1, false
	}
	if n, ok := p.ordinals[sym]; ok {
		return n, false
	}
	n := p.next
	p.next++
	p.ordinals[sym] = n
	return n, true
}

func (p *pickler) write(node any) {
	if node == nil {
		fmt.Fprint(&p.buf, "nil")
		return
	}
	if sym, ok := node.(asr.Symbol); ok {
		if ordinal, known := p.ordinals[sym]; known {
			fmt.Fprintf(&p.buf, "#%d", ordinal)
			return
		}
	}
	switch n := node.(type) {
	case *asr.Unit:
		fmt.Fprint(&p.buf, "(Unit")
		for _, item := range n.Items {
			p.buf.WriteByte(' ')
			p.write(item)
		}
		p.buf.WriteByte(')')

	case *asr.Program:
		p.writeSymbolHeader("Program", n, n.Name)
		p.writeScope(n.Scope)
		p.writeStmts(n.Body)
		p.buf.WriteByte(')')
	case *asr.Module:
		p.writeSymbolHeader("Module", n, n.Name)
		fmt.Fprintf(&p.buf, " %s %s %s", n.ABI, n.DefType, n.Access)
		p.writeScope(n.Scope)
		p.buf.WriteByte(')')
	case *asr.Subroutine:
		p.writeSymbolHeader("Subroutine", n, n.Name)
		fmt.Fprintf(&p.buf, " %s %s %s", n.ABI, n.DefType, n.Access)
		p.writeScope(n.Scope)
		p.writeStmts(n.Body)
		p.buf.WriteByte(')')
	case *asr.Function:
		p.writeSymbolHeader("Function", n, n.Name)
		fmt.Fprintf(&p.buf, " %s %s %s", n.ABI, n.DefType, n.Access)
		p.buf.WriteString(" returnvar=")
		p.write(n.ReturnVar)
		p.writeScope(n.Scope)
		p.writeStmts(n.Body)
		p.buf.WriteByte(')')
	case *asr.GenericProcedure:
		p.writeSymbolHeader("GenericProcedure", n, n.Name)
		for _, proc := range n.Procs {
			p.buf.WriteByte(' ')
			p.writeSymbolRefOnly(proc)
		}
		p.buf.WriteByte(')')
	case *asr.CustomOperator:
		p.writeSymbolHeader("CustomOperator", n, n.Name)
		for _, proc := range n.Procs {
			p.buf.WriteByte(' ')
			p.writeSymbolRefOnly(proc)
		}
		p.buf.WriteByte(')')
	case *asr.ExternalSymbol:
		p.writeSymbolHeader("ExternalSymbol", n, n.Name)
		fmt.Fprintf(&p.buf, " module=%s original=%s external=", n.ModuleName, n.OriginalName)
		if n.External == nil {
			p.buf.WriteString("nil")
		} else {
			fmt.Fprintf(&p.buf, "%T", n.External)
		}
		p.buf.WriteByte(')')
	case *asr.DerivedType:
		p.writeSymbolHeader("DerivedType", n, n.Name)
		fmt.Fprintf(&p.buf, " %s %s %s parent=", n.ABI, n.DefType, n.Access)
		p.writeSymbolRefOnly(n.Parent)
		p.writeScope(n.Scope)
		p.buf.WriteByte(')')
	case *asr.ClassType:
		p.writeSymbolHeader("ClassType", n, n.Name)
		fmt.Fprintf(&p.buf, " %s parent=", n.Access)
		p.writeSymbolRefOnly(n.Parent)
		p.writeScope(n.Scope)
		p.buf.WriteByte(')')
	case *asr.ClassProcedure:
		p.writeSymbolHeader("ClassProcedure", n, n.Name)
		fmt.Fprintf(&p.buf, " %s final=%v proc=", n.Access, n.IsFinal)
		p.writeSymbolRefOnly(n.Proc)
		p.buf.WriteByte(')')
	case *asr.Variable:
		p.writeSymbolHeader("Variable", n, n.Name)
		fmt.Fprintf(&p.buf, " %s %s %s %s ptr=%v target=%v type=", n.Intent, n.Storage, n.Presence, n.Access, n.IsPointer, n.IsTarget)
		p.write(n.Type)
		if n.Value != nil {
			p.buf.WriteString(" value=")
			p.write(n.Value)
		}
		p.buf.WriteByte(')')

	case *asr.Integer:
		fmt.Fprintf(&p.buf, "(Integer %d", n.Kind)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Real:
		fmt.Fprintf(&p.buf, "(Real %d", n.Kind)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Complex:
		fmt.Fprintf(&p.buf, "(Complex %d", n.Kind)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Character:
		fmt.Fprintf(&p.buf, "(Character %d %d", n.Kind, n.Length)
		if n.LengthExpr != nil {
			p.buf.WriteString(" len=")
			p.write(n.LengthExpr)
		}
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Logical:
		fmt.Fprintf(&p.buf, "(Logical %d", n.Kind)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.List:
		p.buf.WriteString("(List ")
		p.write(n.Element)
		p.buf.WriteByte(')')
	case *asr.Set:
		p.buf.WriteString("(Set ")
		p.write(n.Element)
		p.buf.WriteByte(')')
	case *asr.Tuple:
		p.buf.WriteString("(Tuple")
		for _, e := range n.Elements {
			p.buf.WriteByte(' ')
			p.write(e)
		}
		p.buf.WriteByte(')')
	case *asr.Dict:
		p.buf.WriteString("(Dict ")
		p.write(n.Key)
		p.buf.WriteByte(' ')
		p.write(n.Value)
		p.buf.WriteByte(')')
	case *asr.Derived:
		p.buf.WriteString("(Derived ")
		p.writeSymbolRefOnly(n.TypeSymbol)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Class:
		p.buf.WriteString("(Class ")
		p.writeSymbolRefOnly(n.TypeSymbol)
		p.writeDims(n.Dims)
		p.buf.WriteByte(')')
	case *asr.Pointer:
		p.buf.WriteString("(Pointer ")
		p.write(n.Of)
		p.buf.WriteByte(')')

	case *asr.ConstantInteger:
		fmt.Fprintf(&p.buf, "(ConstantInteger %d)", n.Val)
	case *asr.ConstantReal:
		fmt.Fprintf(&p.buf, "(ConstantReal %v)", n.Val)
	case *asr.ConstantComplex:
		fmt.Fprintf(&p.buf, "(ConstantComplex %v %v)", n.Re, n.Im)
	case *asr.ConstantLogical:
		fmt.Fprintf(&p.buf, "(ConstantLogical %v)", n.Val)
	case *asr.ConstantString:
		fmt.Fprintf(&p.buf, "(ConstantString %q)", n.Val)
	case *asr.ConstantBOZ:
		fmt.Fprintf(&p.buf, "(ConstantBOZ %s %q)", n.Radix, n.Raw)
	case *asr.ConstantArray:
		p.buf.WriteString("(ConstantArray")
		for _, e := range n.Vals {
			p.buf.WriteByte(' ')
			p.write(e)
		}
		p.buf.WriteByte(')')
	case *asr.Var:
		p.buf.WriteString("(Var ")
		p.writeSymbolRefOnly(n.Sym)
		p.buf.WriteByte(')')
	case *asr.BinOpExpr:
		fmt.Fprintf(&p.buf, "(BinOp %s ", n.Op)
		p.write(n.Left)
		p.buf.WriteByte(' ')
		p.write(n.Right)
		p.writeOverloaded(n.Overloaded)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.UnaryOpExpr:
		fmt.Fprintf(&p.buf, "(UnaryOp %s ", n.Op)
		p.write(n.Operand)
		p.writeOverloaded(n.Overloaded)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.BoolOpExpr:
		fmt.Fprintf(&p.buf, "(BoolOp %s ", n.Op)
		p.write(n.Left)
		p.buf.WriteByte(' ')
		p.write(n.Right)
		p.writeOverloaded(n.Overloaded)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.StrOpExpr:
		fmt.Fprintf(&p.buf, "(StrOp %s ", n.Op)
		p.write(n.Left)
		p.buf.WriteByte(' ')
		p.write(n.Right)
		p.writeOverloaded(n.Overloaded)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.Compare:
		fmt.Fprintf(&p.buf, "(Compare %s ", n.Op)
		p.write(n.Left)
		p.buf.WriteByte(' ')
		p.write(n.Right)
		p.writeOverloaded(n.Overloaded)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.Cast:
		fmt.Fprintf(&p.buf, "(Cast %s ", n.Kind)
		p.write(n.Arg)
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.FunctionCall:
		p.buf.WriteString("(Call ")
		p.writeSymbolRefOnly(n.Name)
		p.writeOriginalName(n.OriginalName)
		for _, a := range n.Args {
			p.buf.WriteByte(' ')
			p.write(a)
		}
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.ArrayItem:
		p.buf.WriteString("(ArrayItem ")
		p.write(n.Base)
		for _, s := range n.Subscripts {
			p.buf.WriteByte(' ')
			p.write(s)
		}
		p.buf.WriteByte(')')
	case *asr.ArraySection:
		p.buf.WriteString("(ArraySection ")
		p.write(n.Base)
		p.writeDims(n.Bounds)
		p.buf.WriteByte(')')
	case *asr.ArrayConstructor:
		p.buf.WriteString("(ArrayConstructor")
		for _, e := range n.Values {
			p.buf.WriteByte(' ')
			p.write(e)
		}
		p.writeFold(n.Value)
		p.buf.WriteByte(')')
	case *asr.ImpliedDoLoop:
		p.buf.WriteString("(ImpliedDoLoop ")
		p.write(n.Var)
		p.buf.WriteByte(' ')
		p.write(n.Start)
		p.buf.WriteByte(' ')
		p.write(n.End)
		if n.Stride != nil {
			p.buf.WriteByte(' ')
			p.write(n.Stride)
		}
		for _, e := range n.Values {
			p.buf.WriteByte(' ')
			p.write(e)
		}
		p.buf.WriteByte(')')
	case *asr.StructMember:
		p.buf.WriteString("(StructMember ")
		p.write(n.Base)
		p.buf.WriteByte(' ')
		p.writeSymbolRefOnly(n.Component)
		p.buf.WriteByte(')')

	case *asr.DoLoop:
		p.buf.WriteString("(DoLoop ")
		p.write(n.Var)
		p.buf.WriteByte(' ')
		p.write(n.Start)
		p.buf.WriteByte(' ')
		p.write(n.End)
		if n.Stride != nil {
			p.buf.WriteByte(' ')
			p.write(n.Stride)
		}
		p.writeStmts(n.Body)
		p.buf.WriteByte(')')
	case *asr.WhileLoop:
		p.buf.WriteString("(WhileLoop ")
		p.write(n.Cond)
		p.writeStmts(n.Body)
		p.buf.WriteByte(')')
	case *asr.If:
		p.buf.WriteString("(If ")
		p.write(n.Cond)
		p.writeStmts(n.Then)
		p.writeStmts(n.Else)
		p.buf.WriteByte(')')
	case *asr.SelectCase:
		p.buf.WriteString("(SelectCase ")
		p.write(n.Test)
		for _, c := range n.Cases {
			p.buf.WriteString(" (Case")
			for _, v := range c.Values {
				p.buf.WriteByte(' ')
				p.write(v)
			}
			p.writeStmts(c.Body)
			p.buf.WriteByte(')')
		}
		p.writeStmts(n.Default)
		p.buf.WriteByte(')')
	case *asr.CycleStmt:
		p.buf.WriteString("(Cycle)")
	case *asr.ExitStmt:
		p.buf.WriteString("(Exit)")
	case *asr.Print:
		p.buf.WriteString("(Print ")
		p.write(n.Format)
		for _, it := range n.Items {
			p.buf.WriteByte(' ')
			p.write(it)
		}
		p.buf.WriteByte(')')
	case *asr.Open:
		p.buf.WriteString("(Open)")
	case *asr.Close:
		p.buf.WriteString("(Close)")
	case *asr.Read:
		p.buf.WriteString("(Read ")
		p.write(n.Unit)
		p.buf.WriteByte(' ')
		p.write(n.Format)
		for _, it := range n.Items {
			p.buf.WriteByte(' ')
			p.write(it)
		}
		p.buf.WriteByte(')')
	case *asr.Write:
		p.buf.WriteString("(Write ")
		p.write(n.Unit)
		p.buf.WriteByte(' ')
		p.write(n.Format)
		for _, it := range n.Items {
			p.buf.WriteByte(' ')
			p.write(it)
		}
		p.buf.WriteByte(')')
	case *asr.Inquire:
		p.buf.WriteString("(Inquire)")
	case *asr.Rewind:
		p.buf.WriteString("(Rewind)")
	case *asr.Flush:
		p.buf.WriteString("(Flush)")
	case *asr.Allocate:
		p.buf.WriteString("(Allocate")
		for _, o := range n.Objects {
			p.buf.WriteByte(' ')
			p.write(o)
		}
		p.buf.WriteByte(')')
	case *asr.ExplicitDeallocate:
		p.buf.WriteString("(Deallocate")
		for _, o := range n.Objects {
			p.buf.WriteByte(' ')
			p.write(o)
		}
		p.buf.WriteByte(')')
	case *asr.ImplicitDeallocate:
		p.buf.WriteString("(ImplicitDeallocate")
		for _, o := range n.Objects {
			p.buf.WriteByte(' ')
			p.write(o)
		}
		p.buf.WriteByte(')')
	case *asr.Nullify:
		p.buf.WriteString("(Nullify")
		for _, o := range n.Objects {
			p.buf.WriteByte(' ')
			p.write(o)
		}
		p.buf.WriteByte(')')
	case *asr.Assert:
		p.buf.WriteString("(Assert ")
		p.write(n.Test)
		if n.Msg != nil {
			p.buf.WriteByte(' ')
			p.write(n.Msg)
		}
		p.buf.WriteByte(')')
	case *asr.SubroutineCall:
		p.buf.WriteString("(Call ")
		p.writeSymbolRefOnly(n.Name)
		p.writeOriginalName(n.OriginalName)
		for _, a := range n.Args {
			p.buf.WriteByte(' ')
			p.write(a)
		}
		p.buf.WriteByte(')')
	case *asr.Assignment:
		p.buf.WriteString("(Assign ")
		p.write(n.Target)
		p.buf.WriteByte(' ')
		p.write(n.Value)
		p.buf.WriteByte(')')
	case *asr.GoTo:
		fmt.Fprintf(&p.buf, "(GoTo %d)", n.ID)
	case *asr.GoToTarget:
		fmt.Fprintf(&p.buf, "(GoToTarget %d)", n.ID)
	case *asr.Return:
		p.buf.WriteString("(Return")
		if n.AltReturn != nil {
			p.buf.WriteByte(' ')
			p.write(n.AltReturn)
		}
		p.buf.WriteByte(')')

	default:
		fmt.Fprintf(&p.buf, "(Unknown %T)", n)
	}
}

// writeSymbolHeader assigns/reuses sym's ordinal and opens its S-expr;
// the caller appends its own fields and closing paren.
func (p *pickler) writeSymbolHeader(kind string, sym asr.Symbol, name string) {
	ordinal, _ := p.symbolRef(sym)
	fmt.Fprintf(&p.buf, "(%s #%d %q", kind, ordinal, name)
}

// writeSymbolRefOnly prints a reference to sym: its ordinal if already
// defined elsewhere in this pickle, or a full first-encounter
// definition when sym is reached only through a reference field
// (Parent, Overloaded, Component, ...) rather than its owning scope.
func (p *pickler) writeSymbolRefOnly(sym asr.Symbol) {
	if sym == nil {
		p.buf.WriteString("nil")
		return
	}
	if ordinal, known := p.ordinals[sym]; known {
		fmt.Fprintf(&p.buf, "#%d", ordinal)
		return
	}
	p.write(sym)
}

func (p *pickler) writeScope(scope *asr.Scope) {
	if scope == nil {
		return
	}
	p.buf.WriteString(" (Scope")
	for _, sym := range scope.Iterate() {
		p.buf.WriteByte(' ')
		p.write(sym)
	}
	p.buf.WriteByte(')')
}

func (p *pickler) writeStmts(stmts []asr.Stmt) {
	p.buf.WriteString(" (Body")
	for _, s := range stmts {
		p.buf.WriteByte(' ')
		p.write(s)
	}
	p.buf.WriteByte(')')
}

func (p *pickler) writeDims(dims []asr.Dimension) {
	if len(dims) == 0 {
		return
	}
	p.buf.WriteString(" (Dims")
	for _, d := range dims {
		p.buf.WriteByte(' ')
		p.write(d.Lower)
		p.buf.WriteByte(':')
		p.write(d.Upper)
	}
	p.buf.WriteByte(')')
}

// writeFold appends the folded constant value of an expression, if any
// (invariant 3: a non-nil value's type always equals the outer
// expression's type, so the pickle need not repeat it).
func (p *pickler) writeFold(value asr.Expr) {
	if value == nil {
		return
	}
	p.buf.WriteString(" fold=")
	p.write(value)
}

// writeOverloaded appends an operator node's resolved-overload symbol,
// when present, so an intrinsic operator and a user-overloaded one with
// otherwise identical operands don't pickle identically (§4.G: optionals
// are elided only when absent, never unconditionally).
func (p *pickler) writeOverloaded(sym asr.Symbol) {
	if sym == nil {
		return
	}
	p.buf.WriteString(" overloaded=")
	p.writeSymbolRefOnly(sym)
}

// writeOriginalName appends a call's pre-resolution symbol, when
// present, distinguishing a generic-dispatched call from a direct call
// that happens to resolve to the same target (seed test S4).
func (p *pickler) writeOriginalName(sym asr.Symbol) {
	if sym == nil {
		return
	}
	p.buf.WriteString(" original=")
	p.writeSymbolRefOnly(sym)
}
