package encode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asr "github.com/soypat/fortran-asr"
	"github.com/soypat/fortran-asr/pickle"
)

func buildSampleUnit(t *testing.T) *asr.Unit {
	t.Helper()
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	mod, err := b.NewModule(u.Global, "geometry", asr.Source, asr.Public)
	require.NoError(t, err)
	u.Items = append(u.Items, mod)

	dt, err := b.NewDerivedType(mod.Scope, "point", nil, asr.Public)
	require.NoError(t, err)
	_, err = b.NewVariable(dt.Scope, "x", &asr.Real{Kind: 8}, asr.IntentLocal, asr.StorageDefault)
	require.NoError(t, err)

	area, err := b.NewFunction(mod.Scope, "area", "area", &asr.Real{Kind: 8}, asr.Source, asr.Public)
	require.NoError(t, err)
	require.NoError(t, b.FinalizeProcedure(area, []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: area.ReturnVar, Typ: area.ReturnVar.Type},
			Value:  &asr.ConstantReal{Val: 0, Typ: area.ReturnVar.Type},
		},
		&asr.Return{},
	}))

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

	return u
}

func TestRoundTripPreservesStructure(t *testing.T) {
	u := buildSampleUnit(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, u))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	assert.True(t, pickle.Equal(u, decoded))
}

func TestRoundTripReencodeIsByteStable(t *testing.T) {
	u := buildSampleUnit(t)

	var first bytes.Buffer
	require.NoError(t, Encode(&first, u))

	decoded, err := Decode(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Encode(&second, decoded))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, asr.ErrSchemaMismatch)
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	u := buildSampleUnit(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, u))

	truncated := buf.Bytes()[:len(buf.Bytes())/2]
	_, err := Decode(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestRoundTripReconstructsScopeParentChain(t *testing.T) {
	u := buildSampleUnit(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, u))
	decoded, err := Decode(&buf)
	require.NoError(t, err)

	for _, item := range decoded.Items {
		mod, ok := item.(*asr.Module)
		if !ok {
			continue
		}
		sym, ok := mod.Scope.LookupLocal("AREA")
		require.True(t, ok)
		fn := sym.(*asr.Function)
		assert.Same(t, mod.Scope, fn.Scope.Parent())
	}
}
