package feature

import (
	"errors"
	"fmt"
	"strconv"
)

// EncodingError 表示原始输入中某个槽位的值无法解析为数值。
//
// 缺失与非法是两回事：缺失槽位默认为 0.0 是合法行为，
// 而“槽位存在但值不是数字”说明调用方出了错，必须整体失败并指明槽位，
// 绝不能无声地退化为 0.0 污染预测结果。
type EncodingError struct {
	Slot  string // 出错的槽位名
	Value string // 无法解析的原始值
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("feature: slot %q has non-numeric value %q", e.Slot, e.Value)
}

// IsEncodingError 检查错误链中是否包含 EncodingError。
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}

// AsEncodingError 提取错误链中的 EncodingError，不存在时返回 nil。
func AsEncodingError(err error) *EncodingError {
	var encErr *EncodingError
	if errors.As(err, &encErr) {
		return encErr
	}
	return nil
}

// VectorEncoder 将原始输入按 Schema 顺序编码为定长数值向量。
//
// 编码规则：
//   - 逐槽位按 Schema 顺序查找原始输入
//   - 存在 → strconv.ParseFloat；缺失 → 0.0
//   - 存在但解析失败 → 整体失败，返回 EncodingError（不返回部分向量）
//   - 原始输入中未出现在 Schema 里的名字一律忽略
//
// 无副作用：相同输入永远得到逐位相同的向量。
type VectorEncoder struct {
	schema *Schema
}

// NewVectorEncoder 创建编码器。schema 为 nil 时使用内置的 BankMarketing Schema。
func NewVectorEncoder(schema *Schema) *VectorEncoder {
	if schema == nil {
		schema = BankMarketing()
	}
	return &VectorEncoder{schema: schema}
}

// Schema 返回编码器绑定的 Schema。
func (e *VectorEncoder) Schema() *Schema {
	return e.schema
}

// Encode 将原始输入编码为长度恒等于 Schema 长度的向量。
func (e *VectorEncoder) Encode(raw map[string]string) ([]float64, error) {
	vector := make([]float64, len(e.schema.names))
	for i, name := range e.schema.names {
		value, ok := raw[name]
		if !ok {
			continue // 缺失槽位默认为 0.0
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &EncodingError{Slot: name, Value: value}
		}
		vector[i] = f
	}
	return vector, nil
}

// EncodeValues 将数值形式的特征字典编码为定长向量（特征库补全、兜底模型用）。
// 数值输入不存在解析失败，缺失槽位同样默认为 0.0。
func (e *VectorEncoder) EncodeValues(features map[string]float64) []float64 {
	vector := make([]float64, len(e.schema.names))
	for i, name := range e.schema.names {
		if v, ok := features[name]; ok {
			vector[i] = v
		}
	}
	return vector
}
