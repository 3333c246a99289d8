package pipeline

import (
	"context"
	"testing"

	"github.com/marketml/scorekit/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(sctx *core.ScoreContext) error
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, sctx *core.ScoreContext) error {
	if n.fn != nil {
		return n.fn(sctx)
	}
	return nil
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "enrich", kind: KindEnrich, fn: func(sctx *core.ScoreContext) error {
			sctx.PutRawIfAbsent("age", "30")
			return nil
		}},
		&stubNode{name: "score", kind: KindScore, fn: func(sctx *core.ScoreContext) error {
			sctx.Result = core.NewSuccessResult(0.42)
			return nil
		}},
	}}

	sctx := core.NewScoreContext("req-1")
	result, err := p.Run(context.Background(), sctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.OK() {
		t.Errorf("result.Status = %q, want success", result.Status)
	}
	if result.Prediction != 0.42 {
		t.Errorf("result.Prediction = %v, want 0.42", result.Prediction)
	}
}

func TestPipeline_ErrorAborts(t *testing.T) {
	reached := false
	bad := core.NewDomainError(core.ModuleGuard, core.ErrorCodeRejected, "no")
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "guard", kind: KindGuard, fn: func(sctx *core.ScoreContext) error {
			return bad
		}},
		&stubNode{name: "score", kind: KindScore, fn: func(sctx *core.ScoreContext) error {
			reached = true
			return nil
		}},
	}}

	_, err := p.Run(context.Background(), core.NewScoreContext("req-1"))
	if err != bad {
		t.Fatalf("Run() error = %v, want guard error", err)
	}
	if reached {
		t.Error("later node executed after failure")
	}
}

func TestPipeline_NoResult(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "noop", kind: KindEnrich},
	}}

	_, err := p.Run(context.Background(), core.NewScoreContext("req-1"))
	if err == nil {
		t.Fatal("Run() error = nil, want error when no node produced a result")
	}
}
