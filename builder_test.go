package asr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderNewProgram(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", prog.SymbolName())
	assert.NotNil(t, prog.Scope)
	assert.Same(t, u.Global, prog.Scope.Parent())

	sym, ok := u.Global.LookupLocal("MAIN")
	require.True(t, ok)
	assert.Same(t, prog, sym)
}

func TestBuilderDuplicateNameRejected(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	_, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)

	_, err = b.NewModule(u.Global, "main", Source, Public)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestBuilderFunctionReturnVar(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	f, err := b.NewFunction(u.Global, "area", "area", &Real{Kind: 8}, Source, Public)
	require.NoError(t, err)

	require.NotNil(t, f.ReturnVar)
	assert.Equal(t, ReturnVar, f.ReturnVar.Intent)

	sym, ok := f.Scope.LookupLocal("AREA")
	require.True(t, ok)
	assert.Same(t, f.ReturnVar, sym)
}

func TestBuilderNewVariableRejectsReturnVarIntent(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	_, err := b.NewVariable(u.Global, "x", &Integer{Kind: 4}, ReturnVar, StorageDefault)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestBuilderNewCompareRequiresLogicalType(t *testing.T) {
	left := &ConstantInteger{Val: 1, Typ: &Integer{Kind: 4}}
	right := &ConstantInteger{Val: 2, Typ: &Integer{Kind: 4}}

	b := NewBuilder(NewArena())
	_, err := b.NewCompare(CmpLt, left, right, &Integer{Kind: 4}, nil, nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	cmp, err := b.NewCompare(CmpLt, left, right, &Logical{Kind: 4}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Logical{}, cmp.Type())
}

func TestBuilderFinalizeProcedureGotoPairing(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	sub, err := b.NewSubroutine(u.Global, "loopy", Source, Public)
	require.NoError(t, err)

	// an unmatched GoTo must be rejected.
	err = b.FinalizeProcedure(sub, []Stmt{&GoTo{ID: 1}})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	sub2, err := b.NewSubroutine(u.Global, "loopy2", Source, Public)
	require.NoError(t, err)

	err = b.FinalizeProcedure(sub2, []Stmt{&GoTo{ID: 1}, &GoToTarget{ID: 1}})
	require.NoError(t, err)
	assert.Len(t, sub2.Body, 2)
}

func TestBuilderFinalizeProcedureSourceRequiresBody(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	sub, err := b.NewSubroutine(u.Global, "empty", Source, Public)
	require.NoError(t, err)

	err = b.FinalizeProcedure(sub, nil)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestBuilderDerivedTypeParentMustBeDerivedOrExternal(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	notAType, err := b.NewVariable(u.Global, "notatype", &Integer{Kind: 4}, IntentLocal, StorageDefault)
	require.NoError(t, err)

	_, err = b.NewDerivedType(u.Global, "bad", notAType, Public)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	base, err := b.NewDerivedType(u.Global, "base", nil, Public)
	require.NoError(t, err)

	derived, err := b.NewDerivedType(u.Global, "derived", base, Public)
	require.NoError(t, err)
	assert.Same(t, base, derived.Parent)
}
