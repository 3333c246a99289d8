package score

import (
	"context"
	"testing"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/model"
)

type stubScorer struct {
	resp *core.ScoreResponse
	err  error
	got  *core.ScoreRequest
}

func (s *stubScorer) Name() string { return "stub" }
func (s *stubScorer) Score(_ context.Context, req *core.ScoreRequest) (*core.ScoreResponse, error) {
	s.got = req
	return s.resp, s.err
}
func (s *stubScorer) Health(_ context.Context) error { return nil }
func (s *stubScorer) Close(_ context.Context) error  { return nil }

func TestRemoteNode(t *testing.T) {
	scorer := &stubScorer{resp: &core.ScoreResponse{
		Predictions:  []float64{0.42},
		ModelVersion: "v7",
	}}
	node := &RemoteNode{Scorer: scorer, ModelName: "bank"}

	sctx := core.NewScoreContext("req-1")
	sctx.Vector = []float64{1, 2, 3}
	if err := node.Process(context.Background(), sctx); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(scorer.got.Instances) != 1 || scorer.got.Instances[0][2] != 3 {
		t.Errorf("request instances = %v", scorer.got.Instances)
	}
	if !sctx.Result.OK() || sctx.Result.Prediction != 0.42 {
		t.Errorf("result = %+v", sctx.Result)
	}
	if sctx.Result.ModelVersion != "v7" {
		t.Errorf("ModelVersion = %q, want v7", sctx.Result.ModelVersion)
	}
}

func TestRemoteNode_NoVector(t *testing.T) {
	node := &RemoteNode{Scorer: &stubScorer{}}
	err := node.Process(context.Background(), core.NewScoreContext("req-1"))
	if err == nil {
		t.Fatal("Process() error = nil, want error for missing vector")
	}
}

func TestRemoteNode_ScorerError(t *testing.T) {
	bad := core.NewDomainError(core.ModuleScorer, core.ErrorCodeScorerUnavailable, "down")
	node := &RemoteNode{Scorer: &stubScorer{err: bad}}

	sctx := core.NewScoreContext("req-1")
	sctx.Vector = []float64{0}
	if err := node.Process(context.Background(), sctx); err != bad {
		t.Fatalf("Process() error = %v, want scorer error passed through", err)
	}
	if sctx.Result != nil {
		t.Errorf("Result = %+v, want nil on failure", sctx.Result)
	}
}

func TestLocalNode(t *testing.T) {
	m, err := model.NewLogisticModel(&model.LogisticParams{Weights: []float64{1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	node := &LocalNode{Model: m, Version: "local-v1"}

	sctx := core.NewScoreContext("req-1")
	sctx.Vector = []float64{0, 0}
	if err := node.Process(context.Background(), sctx); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if sctx.Result.Prediction != 0.5 {
		t.Errorf("Prediction = %v, want 0.5", sctx.Result.Prediction)
	}
	if sctx.Result.ModelVersion != "local-v1" {
		t.Errorf("ModelVersion = %q, want local-v1", sctx.Result.ModelVersion)
	}
}
