package pipeline

import (
	"context"

	"github.com/marketml/scorekit/core"
)

// Pipeline 是 scorekit 的核心抽象：把评分逻辑拆成可组合的 Node 链。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行所有 Node。任一 Node 返回错误即中断，后续 Node 不再执行；
// 全部成功时返回最终的 ScoreResult。
func (p *Pipeline) Run(ctx context.Context, sctx *core.ScoreContext) (*core.ScoreResult, error) {
	for _, node := range p.Nodes {
		if err := node.Process(ctx, sctx); err != nil {
			return nil, err
		}
	}
	if sctx.Result == nil {
		return nil, core.NewDomainError("pipeline", core.ErrorCodeInternalError, "pipeline: no node produced a result")
	}
	return sctx.Result, nil
}
