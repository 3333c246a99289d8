package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LogisticModel 是逻辑回归模型：权重与特征向量按同一槽位顺序对齐。
// 作为远程梯度提升模型的降级替身使用，输出同样落在 [0,1]。
type LogisticModel struct {
	name    string
	bias    float64
	weights []float64
}

// LogisticParams 逻辑回归参数的序列化形式。
type LogisticParams struct {
	Name    string    `json:"name"`
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// NewLogisticModel 由参数构造模型。权重长度必须与特征向量长度一致。
func NewLogisticModel(params *LogisticParams) (*LogisticModel, error) {
	if params == nil {
		return nil, fmt.Errorf("logreg: params are required")
	}
	if len(params.Weights) == 0 {
		return nil, fmt.Errorf("logreg: weights are required")
	}
	name := params.Name
	if name == "" {
		name = "logreg"
	}
	weights := make([]float64, len(params.Weights))
	copy(weights, params.Weights)
	return &LogisticModel{
		name:    name,
		bias:    params.Bias,
		weights: weights,
	}, nil
}

// LoadLogisticModel 从 JSON 文件加载模型参数。
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logreg: read %s: %w", path, err)
	}
	var params LogisticParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("logreg: parse %s: %w", path, err)
	}
	return NewLogisticModel(&params)
}

func (m *LogisticModel) Name() string { return m.name }

// Dim 返回模型期望的向量长度。
func (m *LogisticModel) Dim() int { return len(m.weights) }

// Predict 实现 Model：sigmoid(bias + w·x)。
func (m *LogisticModel) Predict(vector []float64) (float64, error) {
	if len(vector) != len(m.weights) {
		return 0, fmt.Errorf("logreg: vector length %d does not match weights length %d", len(vector), len(m.weights))
	}
	z := m.bias
	for i, w := range m.weights {
		z += w * vector[i]
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

var _ Model = (*LogisticModel)(nil)
