// Package guard 提供评分请求的准入规则：在编码/打分之前拒绝明显不合法的请求。
package guard

import (
	"context"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/pipeline"
	"github.com/marketml/scorekit/pkg/dsl"
)

// Rule 是一条准入规则：Expr 为 CEL 表达式，求值为 false 时请求被拒绝。
type Rule struct {
	// Name 规则名（用于日志/排障）
	Name string `yaml:"name" json:"name"`

	// Expr CEL 表达式，可访问 input / params / client_id；空表达式恒通过
	Expr string `yaml:"expr" json:"expr"`

	// Message 拒绝时返回给调用方的消息；为空时使用规则名
	Message string `yaml:"message" json:"message"`
}

// GuardNode 是准入 Node：依次求值所有规则，任一规则不通过即拒绝整个请求。
// 规则表达式本身非法（编译/求值错误）同样视为拒绝——宁可拒掉一个请求，
// 也不能带着未知状态继续打分。
type GuardNode struct {
	Rules []Rule
}

func (n *GuardNode) Name() string        { return "guard" }
func (n *GuardNode) Kind() pipeline.Kind { return pipeline.KindGuard }

func (n *GuardNode) Process(_ context.Context, sctx *core.ScoreContext) error {
	if len(n.Rules) == 0 {
		return nil
	}

	eval, err := dsl.NewEval(sctx)
	if err != nil {
		return core.NewDomainError(core.ModuleGuard, core.ErrorCodeInternalError, err.Error())
	}

	for _, rule := range n.Rules {
		ok, err := eval.Evaluate(rule.Expr)
		if err != nil {
			return core.NewDomainError(core.ModuleGuard, core.ErrorCodeRejected, "guard: rule "+rule.Name+" failed to evaluate")
		}
		if !ok {
			msg := rule.Message
			if msg == "" {
				msg = "guard: rejected by rule " + rule.Name
			}
			return core.NewDomainError(core.ModuleGuard, core.ErrorCodeRejected, msg)
		}
	}
	return nil
}

var _ pipeline.Node = (*GuardNode)(nil)
