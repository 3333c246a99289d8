package model

import (
	"context"

	"github.com/marketml/scorekit/core"
)

// LocalScorer 将进程内 Model 适配为 core.Scorer，
// 使同一条流水线既能对接远程打分服务，也能跑本地降级模型。
type LocalScorer struct {
	model   Model
	version string
}

// NewLocalScorer 创建本地打分器。
func NewLocalScorer(m Model, version string) *LocalScorer {
	return &LocalScorer{model: m, version: version}
}

func (s *LocalScorer) Name() string {
	return "local." + s.model.Name()
}

// Score 实现 core.Scorer：逐条调用 Model.Predict。
func (s *LocalScorer) Score(_ context.Context, req *core.ScoreRequest) (*core.ScoreResponse, error) {
	if len(req.Instances) == 0 {
		return nil, core.NewDomainError(core.ModuleScorer, core.ErrorCodeInvalidInput, "local: instances are required")
	}
	predictions := make([]float64, len(req.Instances))
	for i, vector := range req.Instances {
		p, err := s.model.Predict(vector)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleScorer, core.ErrorCodeInternalError, err.Error())
		}
		predictions[i] = p
	}
	return &core.ScoreResponse{
		Predictions:  predictions,
		ModelVersion: s.version,
	}, nil
}

// Health 实现 core.Scorer：进程内模型恒可用。
func (s *LocalScorer) Health(_ context.Context) error { return nil }

// Close 实现 core.Scorer。
func (s *LocalScorer) Close(_ context.Context) error { return nil }

var _ core.Scorer = (*LocalScorer)(nil)
