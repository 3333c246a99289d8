package core

// Status 是评分结果的状态标记，直接体现在响应体中。
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ScoreResult 是返回给调用方的结构化评分结果：
// 成功时携带预测值，失败时携带错误消息，二者互斥。
// Prediction 不带 omitempty：0 是合法预测值，序列化时必须始终保留该字段。
type ScoreResult struct {
	Status       Status  `json:"status"`
	Prediction   float64 `json:"prediction"`
	Message      string  `json:"message,omitempty"`
	ModelVersion string  `json:"model_version,omitempty"`
}

// NewSuccessResult 创建成功结果。
func NewSuccessResult(prediction float64) *ScoreResult {
	return &ScoreResult{
		Status:     StatusSuccess,
		Prediction: prediction,
	}
}

// NewErrorResult 创建失败结果。
func NewErrorResult(message string) *ScoreResult {
	return &ScoreResult{
		Status:  StatusError,
		Message: message,
	}
}

// OK 返回结果是否为成功状态。
func (r *ScoreResult) OK() bool {
	return r != nil && r.Status == StatusSuccess
}
