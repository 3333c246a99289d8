package pipeline

import (
	"context"

	"github.com/marketml/scorekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindGuard       Kind = "guard"       // 准入阶段：拒绝不符合规则的请求
	KindEnrich      Kind = "enrich"      // 补全阶段：从特征库填充缺失槽位
	KindEncode      Kind = "encode"      // 编码阶段：原始输入 → 定长向量
	KindScore       Kind = "score"       // 打分阶段：调用打分服务产出预测值
	KindPostProcess Kind = "postprocess" // 后处理阶段：审计、结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“读写 ScoreContext”的形态：Guard 提前失败、Enrich 补 RawInput、
// Encode 写 Vector、Score 写 Result。
type Node interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, sctx *core.ScoreContext) error
}
