package core

import "context"

// Scorer 是外部打分服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（service）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 对调用方完全不透明：端点协议（CSV/JSON）、部署形态均不外露
//
// 实现：
//   - service.CSVRuntimeClient（分隔文本协议，SageMaker/XGBoost runtime 风格）
//   - service.JSONScorerClient（instances/predictions JSON 协议）
//   - model.LocalScorer（进程内兜底模型，测试与影子评分用）
type Scorer interface {
	// Name 返回打分服务名称（用于日志/监控）
	Name() string

	// Score 批量预测：每个 instance 是一条按 Schema 顺序编码的定长向量。
	// 单次调用对应至多一次外部请求；失败不重试，由调用方决定是否重发。
	Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error)

	// Health 健康检查
	Health(ctx context.Context) error

	// Close 关闭连接
	Close(ctx context.Context) error
}

// ScoreRequest 预测请求
type ScoreRequest struct {
	// Instances 特征实例列表（每个实例是一个定长特征向量）
	// 格式：[[f1, f2, f3, ...], [f1, f2, f3, ...], ...]
	Instances [][]float64

	// ModelName 模型名称（可选，如果服务支持多模型）
	ModelName string

	// ModelVersion 模型版本（可选）
	ModelVersion string

	// Params 额外参数（可选）
	Params map[string]any
}

// ScoreResponse 预测响应
type ScoreResponse struct {
	// Predictions 预测结果列表（与请求实例一一对应）
	Predictions []float64

	// Outputs 原始响应体（可选，用于调试）
	Outputs string

	// ModelVersion 模型版本（如果服务返回）
	ModelVersion string
}
