package asr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeInsertIsCaseInsensitive(t *testing.T) {
	s := NewScope(nil, nil)
	v := &Variable{Name: "Count", Type: &Integer{Kind: 4}}
	require.NoError(t, s.Insert("Count", v))

	sym, ok := s.LookupLocal("COUNT")
	require.True(t, ok)
	assert.Same(t, v, sym)

	_, ok = s.LookupLocal("count")
	assert.True(t, ok)
}

func TestScopeInsertRejectsDuplicate(t *testing.T) {
	s := NewScope(nil, nil)
	require.NoError(t, s.Insert("x", &Variable{Name: "x", Type: &Integer{Kind: 4}}))

	err := s.Insert("X", &Variable{Name: "X", Type: &Real{Kind: 8}})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestScopeLookupWalksParentChain(t *testing.T) {
	outer := NewScope(nil, nil)
	outerVar := &Variable{Name: "shared", Type: &Integer{Kind: 4}}
	require.NoError(t, outer.Insert("shared", outerVar))

	inner := NewScope(outer, nil)
	innerVar := &Variable{Name: "local", Type: &Integer{Kind: 4}}
	require.NoError(t, inner.Insert("local", innerVar))

	sym, ok := inner.Lookup("shared")
	require.True(t, ok)
	assert.Same(t, outerVar, sym)

	_, ok = inner.LookupLocal("shared")
	assert.False(t, ok, "LookupLocal must not walk to the parent")

	_, ok = outer.Lookup("local")
	assert.False(t, ok, "a parent must not see its child's names")
}

func TestScopeLookupInnerShadowsOuter(t *testing.T) {
	outer := NewScope(nil, nil)
	outerVar := &Variable{Name: "x", Type: &Integer{Kind: 4}}
	require.NoError(t, outer.Insert("x", outerVar))

	inner := NewScope(outer, nil)
	innerVar := &Variable{Name: "x", Type: &Real{Kind: 8}}
	require.NoError(t, inner.Insert("x", innerVar))

	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Same(t, innerVar, sym)
}

func TestScopeIterateIsInsertionOrder(t *testing.T) {
	s := NewScope(nil, nil)
	names := []string{"c", "a", "b"}
	for _, n := range names {
		require.NoError(t, s.Insert(n, &Variable{Name: n, Type: &Integer{Kind: 4}}))
	}

	got := s.Iterate()
	require.Len(t, got, 3)
	for i, n := range names {
		assert.Equal(t, n, got[i].SymbolName())
	}
}

func TestScopeIsAncestorOf(t *testing.T) {
	root := NewScope(nil, nil)
	mid := NewScope(root, nil)
	leaf := NewScope(mid, nil)

	assert.True(t, root.isAncestorOf(leaf))
	assert.True(t, root.isAncestorOf(mid))
	assert.True(t, root.isAncestorOf(root))
	assert.False(t, leaf.isAncestorOf(root))

	unrelated := NewScope(nil, nil)
	assert.False(t, root.isAncestorOf(unrelated))
}

func TestModuleCacheResolveExternal(t *testing.T) {
	modScope := NewScope(nil, nil)
	mod := &Module{Name: "geometry", Scope: modScope, ABI: Source, DefType: Implementation, Access: Public}
	leaf := &Variable{Name: "pi", Type: &Real{Kind: 8}, Access: Public}
	require.NoError(t, modScope.Insert("pi", leaf))

	cache := NewModuleCache()
	cache.Add(mod)

	ext := &ExternalSymbol{Name: "pi", ModuleName: "geometry", OriginalName: "pi"}
	got, err := ResolveExternal(cache, ext)
	require.NoError(t, err)
	assert.Same(t, leaf, got)
}

func TestModuleCacheResolveExternalMissingModule(t *testing.T) {
	cache := NewModuleCache()
	ext := &ExternalSymbol{Name: "pi", ModuleName: "nowhere", OriginalName: "pi"}
	_, err := ResolveExternal(cache, ext)
	assert.ErrorIs(t, err, ErrUnresolvedExternal)
}

func TestModuleCacheResolveExternalThroughScopeOwner(t *testing.T) {
	typScope := NewScope(nil, nil)
	dt := &DerivedType{Name: "point", Scope: typScope, Access: Public}
	comp := &Variable{Name: "x", Type: &Real{Kind: 8}, Access: Public}
	require.NoError(t, typScope.Insert("x", comp))

	modScope := NewScope(nil, nil)
	mod := &Module{Name: "geometry", Scope: modScope, ABI: Source, DefType: Implementation, Access: Public}
	require.NoError(t, modScope.Insert("point", dt))

	cache := NewModuleCache()
	cache.Add(mod)

	ext := &ExternalSymbol{Name: "x", ModuleName: "geometry", ScopeNames: []string{"point"}, OriginalName: "x"}
	got, err := ResolveExternal(cache, ext)
	require.NoError(t, err)
	assert.Same(t, comp, got)
}
