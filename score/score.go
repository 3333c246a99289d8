// Package score 提供打分 Node：把编码后的向量送往 core.Scorer 并写回结果。
package score

import (
	"context"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/model"
	"github.com/marketml/scorekit/pipeline"
)

// RemoteNode 调用外部打分服务对当前请求的向量打分。
// 每次 Process 至多一次外部调用；失败原样上抛，由网关层决定对外措辞。
type RemoteNode struct {
	Scorer       core.Scorer
	ModelName    string
	ModelVersion string
}

func (n *RemoteNode) Name() string        { return "score.remote" }
func (n *RemoteNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *RemoteNode) Process(ctx context.Context, sctx *core.ScoreContext) error {
	if sctx.Vector == nil {
		return core.NewDomainError(core.ModuleScorer, core.ErrorCodeInvalidInput, "score: vector is not encoded")
	}

	resp, err := n.Scorer.Score(ctx, &core.ScoreRequest{
		Instances:    [][]float64{sctx.Vector},
		ModelName:    n.ModelName,
		ModelVersion: n.ModelVersion,
	})
	if err != nil {
		return err
	}
	if len(resp.Predictions) == 0 {
		return core.NewDomainError(core.ModuleScorer, core.ErrorCodeScorerUnavailable, "score: empty predictions")
	}

	result := core.NewSuccessResult(resp.Predictions[0])
	result.ModelVersion = resp.ModelVersion
	sctx.Result = result
	return nil
}

// LocalNode 用进程内模型打分，作为远程服务的离线/降级替代。
type LocalNode struct {
	Model   model.Model
	Version string
}

func (n *LocalNode) Name() string        { return "score.local" }
func (n *LocalNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *LocalNode) Process(_ context.Context, sctx *core.ScoreContext) error {
	if sctx.Vector == nil {
		return core.NewDomainError(core.ModuleScorer, core.ErrorCodeInvalidInput, "score: vector is not encoded")
	}

	p, err := n.Model.Predict(sctx.Vector)
	if err != nil {
		return core.NewDomainError(core.ModuleScorer, core.ErrorCodeInternalError, err.Error())
	}

	result := core.NewSuccessResult(p)
	result.ModelVersion = n.Version
	sctx.Result = result
	return nil
}

var (
	_ pipeline.Node = (*RemoteNode)(nil)
	_ pipeline.Node = (*LocalNode)(nil)
)
