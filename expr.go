package asr

// Expr is the closed set of expression node kinds. Every expression
// carries a resolved Ttype (invariant 2): the type is fixed at
// construction and never recomputed by a later pass. Folded constants
// additionally carry a Value whose node is one of the Constant* variants
// and whose type equals the outer expression's type (invariant 3).
type Expr interface {
	exprNode()
	Type() Ttype
}

// foldedValue is embedded by expression nodes that may carry a
// compile-time-folded constant. A nil Value means the expression could
// not be (or was not) folded.
type foldedValue struct {
	Value Expr
}

// ConstantInteger is a folded or literal integer constant.
type ConstantInteger struct {
	Val int64
	Typ Ttype
}

func (*ConstantInteger) exprNode()     {}
func (c *ConstantInteger) Type() Ttype { return c.Typ }

// ConstantReal is a folded or literal real constant.
type ConstantReal struct {
	Val float64
	Typ Ttype
}

func (*ConstantReal) exprNode()     {}
func (c *ConstantReal) Type() Ttype { return c.Typ }

// ConstantComplex is a folded or literal complex constant.
type ConstantComplex struct {
	Re, Im float64
	Typ    Ttype
}

func (*ConstantComplex) exprNode()     {}
func (c *ConstantComplex) Type() Ttype { return c.Typ }

// ConstantLogical is a folded or literal .TRUE./.FALSE. constant.
type ConstantLogical struct {
	Val bool
	Typ Ttype
}

func (*ConstantLogical) exprNode()     {}
func (c *ConstantLogical) Type() Ttype { return c.Typ }

// ConstantString is a folded or literal character constant.
type ConstantString struct {
	Val string
	Typ Ttype
}

func (*ConstantString) exprNode()     {}
func (c *ConstantString) Type() Ttype { return c.Typ }

// ConstantArray is a folded array-valued constant (the Value of a
// folded ArrayConstructor).
type ConstantArray struct {
	Vals []Expr // each element itself a Constant* node
	Typ  Ttype
}

func (*ConstantArray) exprNode()     {}
func (c *ConstantArray) Type() Ttype { return c.Typ }

// ConstantBOZ preserves a Binary/Octal/Hex literal's original radix and
// text for lossless reconstruction; its folded integer value (if any)
// is reachable through an enclosing Cast's Value.
type ConstantBOZ struct {
	Radix BOZ
	Raw   string
	Typ   Ttype
}

func (*ConstantBOZ) exprNode()     {}
func (c *ConstantBOZ) Type() Ttype { return c.Typ }

// Var is a reference to a Variable (directly, or via an ExternalSymbol
// resolving to one).
type Var struct {
	Sym Symbol
	Typ Ttype
}

func (*Var) exprNode()     {}
func (v *Var) Type() Ttype { return v.Typ }

// BinOpExpr is an arithmetic binary operation. Overloaded, if non-nil,
// names the Function chosen by operator-overload resolution so
// pretty-printing can still show `a + b` while backends see the
// resolved call.
type BinOpExpr struct {
	Op         BinOp
	Left       Expr
	Right      Expr
	Typ        Ttype
	Overloaded Symbol
	foldedValue
}

func (*BinOpExpr) exprNode()     {}
func (b *BinOpExpr) Type() Ttype { return b.Typ }

// UnaryOpExpr is a unary arithmetic/logical operation.
type UnaryOpExpr struct {
	Op         UnaryOp
	Operand    Expr
	Typ        Ttype
	Overloaded Symbol
	foldedValue
}

func (*UnaryOpExpr) exprNode()     {}
func (u *UnaryOpExpr) Type() Ttype { return u.Typ }

// BoolOpExpr is a short-circuiting logical connective.
type BoolOpExpr struct {
	Op         BoolOp
	Left       Expr
	Right      Expr
	Typ        Ttype
	Overloaded Symbol
	foldedValue
}

func (*BoolOpExpr) exprNode()     {}
func (b *BoolOpExpr) Type() Ttype { return b.Typ }

// StrOpExpr is a string operator (concatenation).
type StrOpExpr struct {
	Op         StrOp
	Left       Expr
	Right      Expr
	Typ        Ttype
	Overloaded Symbol
	foldedValue
}

func (*StrOpExpr) exprNode()     {}
func (s *StrOpExpr) Type() Ttype { return s.Typ }

// Compare is a relational comparison; its Typ must always be Logical
// (invariant 2), regardless of the operand types being compared.
type Compare struct {
	Op         CmpOp
	Left       Expr
	Right      Expr
	Typ        Ttype // must be *Logical
	Overloaded Symbol
	foldedValue
}

func (*Compare) exprNode()     {}
func (c *Compare) Type() Ttype { return c.Typ }

// Cast is an explicit, semantically-checked type conversion. Elaboration
// never lets an implicit conversion hide inside a bare assignment; it
// always inserts a Cast naming the exact conversion performed.
type Cast struct {
	Kind CastKind
	Arg  Expr
	Typ  Ttype
	foldedValue
}

func (*Cast) exprNode()     {}
func (c *Cast) Type() Ttype { return c.Typ }

// FunctionCall is a call to a Function in expression position. Name is
// the resolved target; OriginalName is the pre-resolution symbol (a
// *GenericProcedure or *ExternalSymbol, possibly nil when the call was
// never ambiguous) kept so pretty-printing can restore user-visible
// syntax while backends see only the resolved target.
type FunctionCall struct {
	Name         Symbol // resolved *Function or *ExternalSymbol target
	OriginalName Symbol
	Args         []Expr
	Typ          Ttype
	foldedValue
}

func (*FunctionCall) exprNode()     {}
func (f *FunctionCall) Type() Ttype { return f.Typ }

// ArrayItem indexes a single element out of an array-valued expression.
type ArrayItem struct {
	Base       Expr
	Subscripts []Expr
	Typ        Ttype
}

func (*ArrayItem) exprNode()     {}
func (a *ArrayItem) Type() Ttype { return a.Typ }

// ArraySection slices a contiguous or strided sub-array.
type ArraySection struct {
	Base   Expr
	Bounds []Dimension
	Typ    Ttype
}

func (*ArraySection) exprNode()     {}
func (a *ArraySection) Type() Ttype { return a.Typ }

// ArrayConstructor builds an array value from a literal element list,
// possibly containing ImpliedDoLoop elements. When every element folds
// to a constant, the outer expression's Value is a ConstantArray.
type ArrayConstructor struct {
	Values []Expr
	Typ    Ttype
	foldedValue
}

func (*ArrayConstructor) exprNode()     {}
func (a *ArrayConstructor) Type() Ttype { return a.Typ }

// ImpliedDoLoop is the `(expr, i = start, end[, stride])` construct used
// inside array constructors and I/O lists.
type ImpliedDoLoop struct {
	Var    *Variable
	Start  Expr
	End    Expr
	Stride Expr // nil if omitted (defaults to 1)
	Values []Expr
	Typ    Ttype
}

func (*ImpliedDoLoop) exprNode()     {}
func (i *ImpliedDoLoop) Type() Ttype { return i.Typ }

// StructMember accesses a component of a derived-type value (`x%field`).
type StructMember struct {
	Base      Expr
	Component Symbol // *Variable component, or *ExternalSymbol resolving to one
	Typ       Ttype
}

func (*StructMember) exprNode()     {}
func (s *StructMember) Type() Ttype { return s.Typ }
