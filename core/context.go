package core

// ScoreContext 承载一次评分请求的全部状态，贯穿整个 Pipeline 透传。
type ScoreContext struct {
	// RequestID 请求标识（网关生成，用于审计/排障）
	RequestID string

	// ClientID 客户标识（可选；有值时 Enrich 节点可从特征库补全缺失槽位）
	ClientID string

	// Channel 请求来源场景，如 "api"、"batch"、"shadow"
	Channel string

	// RawInput 是调用方提交的原始输入：特征名 → 字符串值。
	// 大小与顺序任意，允许缺失任意槽位；未识别的名字在抽取阶段已被忽略。
	RawInput map[string]string

	// Params 请求级上下文参数（非特征），如 debug 开关、来源 IP 等
	Params map[string]any

	// Vector 是按 Schema 顺序编码后的定长向量（Encode 节点写入）
	Vector []float64

	// Result 是最终评分结果（Score 节点写入）
	Result *ScoreResult
}

// NewScoreContext 创建评分上下文。
func NewScoreContext(requestID string) *ScoreContext {
	return &ScoreContext{
		RequestID: requestID,
		RawInput:  make(map[string]string),
		Params:    make(map[string]any),
	}
}

// PutRawIfAbsent 仅在槽位缺失时写入原始输入。
// 调用方显式传入的值优先于任何补全来源。
func (sctx *ScoreContext) PutRawIfAbsent(name, value string) {
	if sctx.RawInput == nil {
		sctx.RawInput = make(map[string]string)
	}
	if _, ok := sctx.RawInput[name]; ok {
		return
	}
	sctx.RawInput[name] = value
}
