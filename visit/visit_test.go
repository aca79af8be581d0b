package visit

import (
	"testing"

	asr "github.com/soypat/fortran-asr"
)

// countVisitor counts how many times Visit is called with a non-nil node.
type countVisitor struct {
	count int
}

func (v *countVisitor) Visit(node any) Visitor {
	if node != nil {
		v.count++
	}
	return v
}

func buildSampleUnit(t *testing.T) *asr.Unit {
	t.Helper()
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	x, err := b.NewVariable(prog.Scope, "x", &asr.Integer{Kind: 4}, asr.IntentLocal, asr.StorageDefault)
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	body := []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
		&asr.Print{Items: []asr.Expr{&asr.Var{Sym: x, Typ: x.Type}}},
	}
	if err := b.FinalizeProcedure(prog, body); err != nil {
		t.Fatalf("FinalizeProcedure: %v", err)
	}
	u.Items = append(u.Items, prog)
	return u
}

func TestWalkVisitsEveryReachableNode(t *testing.T) {
	u := buildSampleUnit(t)

	v := &countVisitor{}
	Walk(v, u)

	// Unit, Global scope, Program, Program scope, x, Integer, Assignment,
	// Var, ConstantInteger, Print, Var again is the SAME node as the
	// first Var node in the pickle sense but here it's a distinct Go
	// value since each statement builds its own, so: Unit(1) Global(1)
	// Program(1) Scope(1) x(1) Integer(1) Assignment(1) Var(1)
	// ConstantInteger(1) Print(1) Var(1) = 11.
	want := 11
	if v.count != want {
		t.Errorf("expected %d visits, got %d", want, v.count)
	}
}

func TestWalkIsCycleSafe(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	base, err := b.NewDerivedType(u.Global, "base", nil, asr.Public)
	if err != nil {
		t.Fatalf("NewDerivedType(base): %v", err)
	}
	// a component whose type refers back to its own enclosing type.
	if _, err := b.NewVariable(base.Scope, "next", &asr.Derived{TypeSymbol: base}, asr.IntentLocal, asr.StorageDefault); err != nil {
		t.Fatalf("NewVariable(next): %v", err)
	}
	derived, err := b.NewDerivedType(u.Global, "derived", base, asr.Public)
	if err != nil {
		t.Fatalf("NewDerivedType(derived): %v", err)
	}
	u.Items = append(u.Items, base, derived)

	v := &countVisitor{}
	Walk(v, u) // must terminate despite base/derived sharing the type graph
}

func TestInspectCountsSubroutines(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	mod, err := b.NewModule(u.Global, "mymodule", asr.Source, asr.Public)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	sub1, err := b.NewSubroutine(mod.Scope, "sub1", asr.Source, asr.Public)
	if err != nil {
		t.Fatalf("NewSubroutine(sub1): %v", err)
	}
	if err := b.FinalizeProcedure(sub1, []asr.Stmt{&asr.Return{}}); err != nil {
		t.Fatalf("FinalizeProcedure(sub1): %v", err)
	}
	sub2, err := b.NewSubroutine(mod.Scope, "sub2", asr.Source, asr.Public)
	if err != nil {
		t.Fatalf("NewSubroutine(sub2): %v", err)
	}
	if err := b.FinalizeProcedure(sub2, []asr.Stmt{&asr.Return{}}); err != nil {
		t.Fatalf("FinalizeProcedure(sub2): %v", err)
	}
	fn, err := b.NewFunction(mod.Scope, "func1", "func1", &asr.Real{Kind: 8}, asr.Source, asr.Public)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	if err := b.FinalizeProcedure(fn, []asr.Stmt{&asr.Return{}}); err != nil {
		t.Fatalf("FinalizeProcedure(func1): %v", err)
	}
	u.Items = append(u.Items, mod)

	subCount := 0
	Inspect(u, func(n any, pre bool) bool {
		if !pre {
			return true
		}
		if _, ok := n.(*asr.Subroutine); ok {
			subCount++
		}
		return true
	})
	if subCount != 2 {
		t.Errorf("expected 2 subroutines, got %d", subCount)
	}
}

func TestInspectPrePostPairing(t *testing.T) {
	u := buildSampleUnit(t)

	var events []string
	Inspect(u, func(n any, pre bool) bool {
		if _, ok := n.(*asr.Program); ok {
			if pre {
				events = append(events, "enter")
			} else {
				events = append(events, "exit")
			}
		}
		return true
	})

	if len(events) != 2 || events[0] != "enter" || events[1] != "exit" {
		t.Errorf("expected [enter exit], got %v", events)
	}
}

func TestInspectEarlyReturnSkipsChildren(t *testing.T) {
	u := asr.NewUnit()
	b := asr.NewBuilder(u.Arena)

	prog, err := b.NewProgram(u.Global, "main")
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	x, err := b.NewVariable(prog.Scope, "x", &asr.Integer{Kind: 4}, asr.IntentLocal, asr.StorageDefault)
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	if err := b.FinalizeProcedure(prog, []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
	}); err != nil {
		t.Fatalf("FinalizeProcedure: %v", err)
	}
	u.Items = append(u.Items, prog)

	var sawVariable bool
	Inspect(u, func(n any, pre bool) bool {
		if !pre {
			return true
		}
		if _, ok := n.(*asr.Scope); ok {
			return false // skip descending into the scope's members
		}
		if _, ok := n.(*asr.Variable); ok {
			sawVariable = true
		}
		return true
	})
	if sawVariable {
		t.Error("Inspect descended into a scope despite a false return")
	}
}

// constFolder replaces ConstantInteger(1) with ConstantInteger(99) and
// leaves everything else untouched, exercising TransformExpr's
// identity-preserving default path alongside an actual rewrite.
type constFolder struct{}

func (constFolder) Transform(node any) any {
	if c, ok := node.(*asr.ConstantInteger); ok && c.Val == 1 {
		return &asr.ConstantInteger{Val: 99, Typ: c.Typ}
	}
	return node
}

func TestTransformExprRewritesMatchingNode(t *testing.T) {
	x := &asr.Variable{Name: "x", Type: &asr.Integer{Kind: 4}}
	target := &asr.Var{Sym: x, Typ: x.Type}
	assign := &asr.Assignment{Target: target, Value: &asr.ConstantInteger{Val: 1, Typ: x.Type}}

	out := TransformStmt(constFolder{}, assign)
	got := out.(*asr.Assignment)
	ci, ok := got.Value.(*asr.ConstantInteger)
	if !ok {
		t.Fatalf("expected *asr.ConstantInteger, got %T", got.Value)
	}
	if ci.Val != 99 {
		t.Errorf("expected folded value 99, got %d", ci.Val)
	}
	// the Target side was untouched by the rewrite.
	if got.Target != target {
		t.Error("TransformStmt rewrote a field the Transformer never matched")
	}
}

func TestTransformStmtsRewritesEveryStatement(t *testing.T) {
	x := &asr.Variable{Name: "x", Type: &asr.Integer{Kind: 4}}
	body := []asr.Stmt{
		&asr.Assignment{
			Target: &asr.Var{Sym: x, Typ: x.Type},
			Value:  &asr.ConstantInteger{Val: 1, Typ: x.Type},
		},
		&asr.Print{Items: []asr.Expr{&asr.ConstantInteger{Val: 1, Typ: x.Type}}},
	}

	out := TransformStmts(constFolder{}, body)
	if len(out) != 2 {
		t.Fatalf("expected 2 statements preserved, got %d", len(out))
	}
	assign := out[0].(*asr.Assignment)
	if assign.Value.(*asr.ConstantInteger).Val != 99 {
		t.Error("Assignment.Value was not rewritten")
	}
	print := out[1].(*asr.Print)
	if print.Items[0].(*asr.ConstantInteger).Val != 99 {
		t.Error("Print.Items[0] was not rewritten")
	}
}

// identityTransformer returns every node unchanged, proving a no-op
// pass leaves the tree pointer-identical rather than reallocating it.
type identityTransformer struct{}

func (identityTransformer) Transform(node any) any { return node }

func TestTransformExprIdentityPreservesPointers(t *testing.T) {
	c := &asr.ConstantInteger{Val: 7, Typ: &asr.Integer{Kind: 4}}
	out := TransformExpr(identityTransformer{}, c)
	if out != asr.Expr(c) {
		t.Error("identity Transformer must not allocate a replacement node")
	}
}
