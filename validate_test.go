package asr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWellFormedUnit(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)
	x, err := b.NewVariable(prog.Scope, "x", &Integer{Kind: 4}, IntentLocal, StorageDefault)
	require.NoError(t, err)
	err = b.FinalizeProcedure(prog, []Stmt{
		&Assignment{
			Target: &Var{Sym: x, Typ: x.Type},
			Value:  &ConstantInteger{Val: 1, Typ: x.Type},
		},
	})
	require.NoError(t, err)
	u.Items = append(u.Items, prog)

	assert.NoError(t, Validate(u))
}

func TestValidateDetectsUnresolvedVarReference(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)

	// a Variable never inserted into any scope reachable from the body.
	stray := &Variable{Name: "stray", Type: &Integer{Kind: 4}}
	err = b.FinalizeProcedure(prog, []Stmt{
		&Assignment{
			Target: &Var{Sym: stray, Typ: stray.Type},
			Value:  &ConstantInteger{Val: 1, Typ: stray.Type},
		},
	})
	require.NoError(t, err)
	u.Items = append(u.Items, prog)

	assert.ErrorIs(t, Validate(u), ErrUnresolvedName)
}

func TestValidateDetectsUnmatchedGoto(t *testing.T) {
	// FinalizeProcedure already rejects this at build time; validate must
	// independently catch it too, since a Transformer could introduce an
	// unmatched GoTo after finalization.
	u := NewUnit()
	b := NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)
	err = b.FinalizeProcedure(prog, []Stmt{&GoTo{ID: 1}, &GoToTarget{ID: 1}})
	require.NoError(t, err)

	prog.Body = append(prog.Body, &GoTo{ID: 99})
	u.Items = append(u.Items, prog)

	assert.ErrorIs(t, Validate(u), ErrInvariantViolation)
}

func TestValidateDetectsCompareNotLogical(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	require.NoError(t, err)

	// construct a Compare whose Typ is not Logical by hand, bypassing the
	// Builder's own invariant-2 check, to exercise validate's independent
	// re-verification.
	bad := &Compare{
		Op:   CmpEq,
		Left: &ConstantInteger{Val: 1, Typ: &Integer{Kind: 4}},
		Right: &ConstantInteger{
			Val: 2, Typ: &Integer{Kind: 4},
		},
		Typ: &Integer{Kind: 4},
	}
	err = b.FinalizeProcedure(prog, []Stmt{&Assert{Test: bad}})
	require.NoError(t, err)
	u.Items = append(u.Items, prog)

	assert.ErrorIs(t, Validate(u), ErrTypeMismatch)
}

func TestValidateDetectsReturnVarMismatch(t *testing.T) {
	u := NewUnit()
	b := NewBuilder(u.Arena)

	f, err := b.NewFunction(u.Global, "area", "area", &Real{Kind: 8}, Source, Public)
	require.NoError(t, err)
	err = b.FinalizeProcedure(f, []Stmt{&Return{}})
	require.NoError(t, err)

	// a second ReturnVar-intent Variable smuggled into the scope directly,
	// bypassing NewVariable's rejection of that intent.
	rogue := &Variable{Name: "rogue", Type: &Real{Kind: 8}, Intent: ReturnVar}
	require.NoError(t, f.Scope.Insert("rogue", rogue))
	u.Items = append(u.Items, f)

	assert.ErrorIs(t, Validate(u), ErrInvariantViolation)
}

func TestValidateDetectsUnresolvedExternalSymbol(t *testing.T) {
	u := NewUnit()
	ext := &ExternalSymbol{Name: "foo", ModuleName: "m", OriginalName: "foo"}
	require.NoError(t, u.Global.Insert("foo", ext))
	u.Items = append(u.Items, ext)

	assert.ErrorIs(t, Validate(u), ErrUnresolvedExternal)
}
