package asr

//go:generate stringer -type=ABI,Access,Intent,StorageType,Presence,DefType,BoolOp,BinOp,UnaryOp,StrOp,CmpOp,CastKind,BOZ -output enums_string.go .

// ABI declares where a procedure's implementation lives and under what
// linkage convention. A Source procedure is defined and lowered by this
// toolchain; the others describe foreign or interface-only symbols.
type ABI int

const (
	Source          ABI = iota // implemented in this translation unit, lowered by a backend
	LFortranModule              // interface projected from a previously compiled module of this system
	GFortranModule              // interface loaded from a foreign gfortran .mod file
	BindC                       // interface loaded from a C header/manifest, C calling convention
	Interactive                 // REPL-entered symbol; relationship to module ABI is transitional, see DESIGN NOTES
	Intrinsic                   // runtime intrinsic, body supplied by the intrinsics collaborator
)

// Access is the visibility of a symbol within its owning module.
type Access int

const (
	Public Access = iota
	Private
)

// Intent is the parameter-passing direction of a Variable.
type Intent int

const (
	IntentLocal  Intent = iota // not a dummy argument
	IntentIn
	IntentOut
	IntentInOut
	ReturnVar // the function's result variable; exactly one per Function
	IntentUnspecified
)

// StorageType is the storage duration/category of a Variable.
type StorageType int

const (
	StorageDefault  StorageType = iota
	StorageSave
	StorageParameter
	StorageAllocatable
	StoragePointer
)

// Presence marks a dummy argument as OPTIONAL or always required.
type Presence int

const (
	Required Presence = iota
	Optional
)

// DefType distinguishes a fully-bodied definition from an interface-only
// declaration. See invariant 5: Source implies Implementation with a
// non-empty body; Interface implies an empty body.
type DefType int

const (
	Implementation DefType = iota
	Interface
)

// BoolOp is a short-circuiting logical connective (.AND., .OR., .EQV., .NEQV.).
type BoolOp int

const (
	And BoolOp = iota
	Or
	Eqv
	NEqv
)

// BinOp is an arithmetic binary operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Pow
)

// UnaryOp is a unary arithmetic/logical operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	Not
)

// StrOp is a string operator (currently only concatenation).
type StrOp int

const (
	Concat StrOp = iota
)

// CmpOp is a relational comparison operator; every Compare node has
// Logical type regardless of operand type (invariant 2).
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
)

// CastKind enumerates the explicit, semantically-checked conversions a
// Cast expression may perform. Implicit conversions are never represented
// as bare assignments; elaboration always inserts an explicit Cast.
type CastKind int

const (
	IntegerToReal CastKind = iota
	RealToInteger
	RealToReal
	IntegerToInteger
	IntegerToLogical
	LogicalToInteger
	RealToComplex
	ComplexToReal
	IntegerToCharacter
	CharacterToInteger
)

// BOZ is the radix of a Binary/Octal/Hexadecimal integer literal's
// original textual form, preserved for lossless reconstruction.
type BOZ int

const (
	Binary BOZ = iota
	Octal
	Hex
)
