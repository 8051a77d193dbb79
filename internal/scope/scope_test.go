package scope

import (
	"testing"

	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

func TestLookupVarUndefinedReturnsUnknown(t *testing.T) {
	s := New()
	if got := s.LookupVar("nope"); got != symbolic.Unknown {
		t.Errorf("LookupVar(undefined) = %v, want Unknown", got)
	}
}

func TestAssignAndLookupInTopFrame(t *testing.T) {
	s := New()
	s.Assign("x", symbolic.RealConst{Value: 5})
	if got := s.LookupVar("x"); got != (symbolic.RealConst{Value: 5}) {
		t.Errorf("LookupVar(x) = %v, want 5", got)
	}
}

func TestLookupVarWalksDownToGlobalFrame(t *testing.T) {
	s := New()
	s.Assign("g", symbolic.RealConst{Value: 1})
	s.PushFrame()
	if got := s.LookupVar("g"); got != (symbolic.RealConst{Value: 1}) {
		t.Errorf("LookupVar(g) from nested frame = %v, want 1 (visible from global)", got)
	}
}

func TestAssignInNestedFrameDoesNotLeakUp(t *testing.T) {
	s := New()
	s.PushFrame()
	s.Assign("local", symbolic.RealConst{Value: 9})
	s.PopFrame()
	if got := s.LookupVar("local"); got != symbolic.Unknown {
		t.Errorf("LookupVar(local) after PopFrame = %v, want Unknown", got)
	}
}

func TestRegisterFuncsAndLookupFunc(t *testing.T) {
	s := New()
	fn := &ast.FunctionDef{Name: "f"}
	s.RegisterFuncs(map[string]*ast.FunctionDef{"f": fn})
	if got := s.LookupFunc("f"); got != fn {
		t.Errorf("LookupFunc(f) = %v, want %v", got, fn)
	}
	if got := s.LookupFunc("missing"); got != nil {
		t.Errorf("LookupFunc(missing) = %v, want nil", got)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New()
	s.Assign("x", symbolic.RealConst{Value: 1})
	snap := s.Snapshot()
	snap.Assign("x", symbolic.RealConst{Value: 2})

	if got := s.LookupVar("x"); got != (symbolic.RealConst{Value: 1}) {
		t.Errorf("original LookupVar(x) = %v, want 1 (unaffected by snapshot mutation)", got)
	}
	if got := snap.LookupVar("x"); got != (symbolic.RealConst{Value: 2}) {
		t.Errorf("snapshot LookupVar(x) = %v, want 2", got)
	}
}

func TestPopFrameOfGlobalFramePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PopFrame on the sole global frame should panic")
		}
	}()
	s := New()
	s.PopFrame()
}
