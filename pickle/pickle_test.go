package pickle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asr "github.com/soypat/fortran-asr"
)

func buildSampleProgram(t *testing.T) *asr.Unit {
	t.Helper()
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)
	x, err := b.NewVariable(prog.Scope, "x", &asr.Integer{Kind: 4}, asr.IntentLocal, asr.StorageDefault)
	require.NoError(t, err)
	body := []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
		&asr.Print{Items: []asr.Expr{&asr.Var{Sym: x, Typ: x.Type}}},
	}
	require.NoError(t, b.FinalizeProcedure(prog, body))
	u.Items = append(u.Items, prog)
	return u
}

func TestPickleIsOrdinalRenamingInvariant(t *testing.T) {
	a := buildSampleProgram(t)
	b := buildSampleProgram(t)

	// a and b are built from entirely distinct Arenas and Units, so no
	// pointer is shared between them, yet they describe the same
	// structure and must pickle identically.
	assert.Equal(t, Pickle(a), Pickle(b))
	assert.True(t, Equal(a, b))
}

func TestPickleDetectsStructuralDifference(t *testing.T) {
	a := buildSampleProgram(t)

	b := asr.NewUnit()
	bb := asr.NewBuilder(b.Arena)
	prog, err := bb.NewProgram(b.Global, "main")
	require.NoError(t, err)
	y, err := bb.NewVariable(prog.Scope, "y", &asr.Real{Kind: 8}, asr.IntentLocal, asr.StorageDefault)
	require.NoError(t, err)
	require.NoError(t, bb.FinalizeProcedure(prog, []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: y, Typ: y.Type},
			Value:  &asr.ConstantReal{Val: 1, Typ: y.Type},
		},
	}))
	b.Items = append(b.Items, prog)

	assert.False(t, Equal(a, b))
	if diff := cmp.Diff(Pickle(a), Pickle(b)); diff == "" {
		t.Error("expected a pickle diff between structurally different units")
	}
}

func TestPickleTerminatesOnCyclicSymbolGraph(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	base, err := b.NewDerivedType(u.Global, "base", nil, asr.Public)
	require.NoError(t, err)
	// a component whose type refers back to its own enclosing type.
	_, err = b.NewVariable(base.Scope, "next", &asr.Derived{TypeSymbol: base}, asr.IntentLocal, asr.StorageDefault)
	require.NoError(t, err)
	derived, err := b.NewDerivedType(u.Global, "derived", base, asr.Public)
	require.NoError(t, err)
	u.Items = append(u.Items, base, derived)

	// must simply not hang; the rendered text is not otherwise asserted.
	_ = Pickle(u)
}

func TestPickleBackReferencesRepeatedSymbol(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)
	x, err := b.NewVariable(prog.Scope, "x", &asr.Integer{Kind: 4}, asr.IntentLocal, asr.StorageDefault)
	require.NoError(t, err)
	require.NoError(t, b.FinalizeProcedure(prog, []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
		&asr.Print{Items: []asr.Expr{&asr.Var{Sym: x, Typ: x.Type}}},
	}))
	u.Items = append(u.Items, prog)

	text := Pickle(u)
	// x is declared once (Variable #N "x") and referenced a second time
	// from the Print statement purely by ordinal.
	assert.Equal(t, 1, countOccurrences(text, `"x"`))
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}

func TestHashMatchesEqualPickles(t *testing.T) {
	a := buildSampleProgram(t)
	b := buildSampleProgram(t)

	assert.Equal(t, Hash(a), Hash(b))
}

// TestPicklePreservesOriginalNameAndOverloaded covers seed test S4: after
// generic dispatch, a FunctionCall's pre-resolution OriginalName (the
// GenericProcedure) must survive pickling alongside the resolved Name,
// and a BinOp's resolved-overload operator must survive alongside its
// operands, so two otherwise-identical nodes that differ only in one of
// those fields are not pickle-Equal.
func TestPicklePreservesOriginalNameAndOverloaded(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	i32 := &asr.Integer{Kind: 4}
	f1, err := b.NewFunction(u.Global, "addi", "addi_ret", i32, asr.Source, asr.Public)
	require.NoError(t, err)
	f2, err := b.NewFunction(u.Global, "addr", "addr_ret", i32, asr.Source, asr.Public)
	require.NoError(t, err)
	g, err := b.NewGenericProcedure(u.Global, "add", []asr.Symbol{f1, f2})
	require.NoError(t, err)

	viaGeneric := &asr.FunctionCall{Name: f1, OriginalName: g, Typ: i32}
	direct := &asr.FunctionCall{Name: f1, Typ: i32}

	pickled := Pickle(viaGeneric)
	assert.Contains(t, pickled, `"addi"`, "resolved Name must appear in the pickle")
	assert.Contains(t, pickled, `"add"`, "pre-resolution OriginalName must appear in the pickle")
	assert.False(t, Equal(viaGeneric, direct), "a generic-dispatched call must not pickle-equal a direct call to the same resolved target")

	binOverloaded := &asr.BinOpExpr{Op: asr.Add, Left: direct, Right: direct, Typ: i32, Overloaded: f1}
	binIntrinsic := &asr.BinOpExpr{Op: asr.Add, Left: direct, Right: direct, Typ: i32}
	assert.Contains(t, Pickle(binOverloaded), `"addi"`, "Overloaded operator symbol must appear in the pickle")
	assert.False(t, Equal(binOverloaded, binIntrinsic), "a user-overloaded operator must not pickle-equal its intrinsic counterpart")
}
