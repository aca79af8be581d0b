package asr

// Ttype is the closed set of type constructors: numeric (Integer, Real,
// Complex), Character, Logical, the aggregate container types (List,
// Set, Tuple, Dict), Derived/Class references to a type symbol, and
// Pointer wrapping another type.
type Ttype interface {
	ttypeNode()
}

// Dimension models one array bound, a pair of optional expressions.
// Omission of either models assumed or deferred shape; see the open
// question on Pointer-to-array semantics in DESIGN NOTES.
type Dimension struct {
	Lower Expr // nil if omitted
	Upper Expr // nil if omitted (assumed/deferred shape)
}

// Integer is a signed integer type of the given kind (precision
// selector, e.g. 4 or 8 bytes), with zero or more array dimensions.
type Integer struct {
	Kind int
	Dims []Dimension
}

func (*Integer) ttypeNode() {}

// Real is a floating point type of the given kind.
type Real struct {
	Kind int
	Dims []Dimension
}

func (*Real) ttypeNode() {}

// Complex is a complex floating point type of the given kind (the kind
// of each of its real and imaginary parts).
type Complex struct {
	Kind int
	Dims []Dimension
}

func (*Complex) ttypeNode() {}

// Character length sentinels, per §9 open question: Character.Length is
// the literal length when it is >= 0; -1 means inferred, -2 means
// allocatable/deferred, and -3 means LengthExpr computes the length at
// run time. The inferred and allocatable sentinels are kept distinct
// rather than collapsed, pending an elaboration decision.
const (
	CharLenInferred    = -1
	CharLenAllocatable = -2
	CharLenRuntime     = -3
)

// Character is a fixed- or dynamically-lengthed character type.
// Length holds a literal length (>=0), or one of the CharLen* sentinels;
// when Length == CharLenRuntime, LengthExpr holds the expression that
// computes the length at run time.
type Character struct {
	Kind       int
	Length     int
	LengthExpr Expr // non-nil only when Length == CharLenRuntime
	Dims       []Dimension
}

func (*Character) ttypeNode() {}

// Logical is a boolean type of the given kind.
type Logical struct {
	Kind int
	Dims []Dimension
}

func (*Logical) ttypeNode() {}

// List is a homogeneous dynamic sequence container type.
type List struct {
	Element Ttype
}

func (*List) ttypeNode() {}

// Set is a homogeneous unordered unique-element container type.
type Set struct {
	Element Ttype
}

func (*Set) ttypeNode() {}

// Tuple is a fixed-length heterogeneous container type.
type Tuple struct {
	Elements []Ttype
}

func (*Tuple) ttypeNode() {}

// Dict is a homogeneous key/value container type.
type Dict struct {
	Key   Ttype
	Value Ttype
}

func (*Dict) ttypeNode() {}

// Derived references a DerivedType symbol (directly, or indirectly
// through an ExternalSymbol resolving to one).
type Derived struct {
	TypeSymbol Symbol // *DerivedType or *ExternalSymbol
	Dims       []Dimension
}

func (*Derived) ttypeNode() {}

// Class references a ClassType symbol for polymorphic (CLASS(...))
// entities.
type Class struct {
	TypeSymbol Symbol // *ClassType or *ExternalSymbol
	Dims       []Dimension
}

func (*Class) ttypeNode() {}

// Pointer wraps another type. Its semantics on non-scalar (dimensioned)
// targets are underspecified in the source system; see §9 open
// questions — implementers must surface ambiguous cases to the
// elaboration collaborator rather than guess.
type Pointer struct {
	Of Ttype
}

func (*Pointer) ttypeNode() {}

// typesEqual is structural equality of two Ttype trees: same variant,
// same kind/length, same dimensionality, same element/referenced types.
// Derived/Class compare the referenced type Symbol by identity (the
// same pointer, or the same ExternalSymbol target once resolved) rather
// than recursing into it, since a DerivedType's own component types may
// point back at itself.
func typesEqual(a, b Ttype) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Kind == y.Kind && dimsEqual(x.Dims, y.Dims)
	case *Real:
		y, ok := b.(*Real)
		return ok && x.Kind == y.Kind && dimsEqual(x.Dims, y.Dims)
	case *Complex:
		y, ok := b.(*Complex)
		return ok && x.Kind == y.Kind && dimsEqual(x.Dims, y.Dims)
	case *Character:
		y, ok := b.(*Character)
		return ok && x.Kind == y.Kind && x.Length == y.Length && dimsEqual(x.Dims, y.Dims)
	case *Logical:
		y, ok := b.(*Logical)
		return ok && x.Kind == y.Kind && dimsEqual(x.Dims, y.Dims)
	case *List:
		y, ok := b.(*List)
		return ok && typesEqual(x.Element, y.Element)
	case *Set:
		y, ok := b.(*Set)
		return ok && typesEqual(x.Element, y.Element)
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !typesEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		return ok && typesEqual(x.Key, y.Key) && typesEqual(x.Value, y.Value)
	case *Derived:
		y, ok := b.(*Derived)
		return ok && sameTypeSymbol(x.TypeSymbol, y.TypeSymbol) && dimsEqual(x.Dims, y.Dims)
	case *Class:
		y, ok := b.(*Class)
		return ok && sameTypeSymbol(x.TypeSymbol, y.TypeSymbol) && dimsEqual(x.Dims, y.Dims)
	case *Pointer:
		y, ok := b.(*Pointer)
		return ok && typesEqual(x.Of, y.Of)
	default:
		return false
	}
}

// sameTypeSymbol compares two type-symbol references by identity after
// replacing a resolved ExternalSymbol with its target.
func sameTypeSymbol(a, b Symbol) bool {
	if e, ok := a.(*ExternalSymbol); ok && e.External != nil {
		a = e.External
	}
	if e, ok := b.(*ExternalSymbol); ok && e.External != nil {
		b = e.External
	}
	return a == b
}

// dimsEqual compares arity only; bound expressions are not folded at
// this layer, so two dimensions are taken as equal whenever they agree
// on rank. Full bound-expression equality is a job for the pass that
// actually evaluates them, not for construction-time type checking.
func dimsEqual(a, b []Dimension) bool {
	return len(a) == len(b)
}
