package encode

// tag identifies the concrete node kind that follows in the stream. It
// is shared across the Symbol/Ttype/Expr/Stmt universes rather than
// split into four namespaces, since a single reference field (Symbol,
// Ttype, Expr, or Stmt interface value) can hold any variant and the
// decoder always dispatches on this one byte before doing anything
// else.
type tag byte

const (
	tagNil tag = iota
	tagRef     // symbol back-reference: ordinal (uvarint) follows

	// Symbols
	tagProgram
	tagModule
	tagSubroutine
	tagFunction
	tagGenericProcedure
	tagCustomOperator
	tagExternalSymbol
	tagDerivedType
	tagClassType
	tagClassProcedure
	tagVariable

	// Ttypes
	tagInteger
	tagReal
	tagComplex
	tagCharacter
	tagLogical
	tagList
	tagSet
	tagTuple
	tagDict
	tagDerived
	tagClass
	tagPointer

	// Exprs
	tagConstantInteger
	tagConstantReal
	tagConstantComplex
	tagConstantLogical
	tagConstantString
	tagConstantArray
	tagConstantBOZ
	tagVar
	tagBinOpExpr
	tagUnaryOpExpr
	tagBoolOpExpr
	tagStrOpExpr
	tagCompare
	tagCast
	tagFunctionCall
	tagArrayItem
	tagArraySection
	tagArrayConstructor
	tagImpliedDoLoop
	tagStructMember

	// Stmts
	tagDoLoop
	tagWhileLoop
	tagIf
	tagSelectCase
	tagCycleStmt
	tagExitStmt
	tagPrint
	tagOpen
	tagClose
	tagRead
	tagWrite
	tagInquire
	tagRewind
	tagFlush
	tagAllocate
	tagExplicitDeallocate
	tagImplicitDeallocate
	tagNullify
	tagAssert
	tagSubroutineCall
	tagAssignment
	tagGoTo
	tagGoToTarget
	tagReturn
)

// FormatVersion identifies the wire format produced by Encode. Decode
// rejects any other version with ErrSchemaMismatch (§7) rather than
// guessing at a compatible layout.
const FormatVersion uint32 = 1

var magic = [4]byte{'A', 'S', 'R', 0}
