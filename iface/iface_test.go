package iface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asr "github.com/soypat/fortran-asr"
	"github.com/soypat/fortran-asr/pickle"
)

func buildSourceModule(t *testing.T) *asr.Module {
	t.Helper()
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	mod, err := b.NewModule(u.Global, "geometry", asr.Source, asr.Public)
	require.NoError(t, err)

	pub, err := b.NewSubroutine(mod.Scope, "pub_sub", asr.Source, asr.Public)
	require.NoError(t, err)
	require.NoError(t, b.FinalizeProcedure(pub, []asr.Stmt{&asr.Return{}}))

	priv, err := b.NewSubroutine(mod.Scope, "priv_sub", asr.Source, asr.Private)
	require.NoError(t, err)
	require.NoError(t, b.FinalizeProcedure(priv, []asr.Stmt{&asr.Return{}}))

	area, err := b.NewFunction(mod.Scope, "area", "area", &asr.Real{Kind: 8}, asr.Source, asr.Public)
	require.NoError(t, err)
	require.NoError(t, b.FinalizeProcedure(area, []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: area.ReturnVar, Typ: area.ReturnVar.Type},
			Value:  &asr.ConstantReal{Val: 0, Typ: area.ReturnVar.Type},
		},
		&asr.Return{},
	}))

	_, err = b.NewVariable(mod.Scope, "const_pub", &asr.Real{Kind: 8}, asr.IntentLocal, asr.StorageParameter)
	require.NoError(t, err)

	return mod
}

func TestProjectDropsBodiesAndSetsInterfaceABI(t *testing.T) {
	mod := buildSourceModule(t)

	out := Project(mod, asr.Interactive)
	assert.Equal(t, asr.Interactive, out.ABI)
	assert.Equal(t, asr.Interface, out.DefType)

	sym, ok := out.Scope.LookupLocal("pub_sub")
	require.True(t, ok)
	sub := sym.(*asr.Subroutine)
	assert.Empty(t, sub.Body)
	assert.Equal(t, asr.Interface, sub.DefType)
}

func TestProjectExcludesPrivateSymbols(t *testing.T) {
	mod := buildSourceModule(t)

	out := Project(mod, asr.Interactive)
	_, ok := out.Scope.LookupLocal("priv_sub")
	assert.False(t, ok, "a private symbol must not survive projection")

	_, ok = out.Scope.LookupLocal("pub_sub")
	assert.True(t, ok)
}

func TestProjectDoesNotMutateTheSource(t *testing.T) {
	mod := buildSourceModule(t)
	before := pickle.Pickle(mod)

	Project(mod, asr.Interactive)

	assert.Equal(t, before, pickle.Pickle(mod))
}

func TestProjectIsIdempotent(t *testing.T) {
	mod := buildSourceModule(t)

	once := Project(mod, asr.Interactive)
	twice := Project(once, asr.Interactive)

	assert.True(t, pickle.Equal(once, twice))
}
