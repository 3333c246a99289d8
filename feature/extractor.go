package feature

import "net/url"

// InputExtractor 从开放的查询接口中抽取原始输入：
// 只认 Schema 中的 58 个槽位名，未识别的参数名一律忽略。
//
// 抽取与编码分离：抽取器负责“认哪些名字”，编码器负责“值合不合法”。
// 这样网关可以先抽取、再交给 Pipeline，编码失败时错误归因仍然落在具体槽位上。
type InputExtractor struct {
	schema *Schema
}

// NewInputExtractor 创建抽取器。schema 为 nil 时使用内置的 BankMarketing Schema。
func NewInputExtractor(schema *Schema) *InputExtractor {
	if schema == nil {
		schema = BankMarketing()
	}
	return &InputExtractor{schema: schema}
}

// Schema 返回抽取器绑定的 Schema。
func (e *InputExtractor) Schema() *Schema {
	return e.schema
}

// FromValues 从 HTTP 查询参数/表单中抽取原始输入。
// 同名多值时取第一个（与 url.Values.Get 语义一致）。
func (e *InputExtractor) FromValues(values url.Values) map[string]string {
	raw := make(map[string]string)
	for name, vs := range values {
		if !e.schema.Has(name) {
			continue
		}
		if len(vs) == 0 {
			continue
		}
		raw[name] = vs[0]
	}
	return raw
}

// FromMap 从任意字符串映射中抽取原始输入（批量评分的 JSON 输入用）。
func (e *InputExtractor) FromMap(m map[string]string) map[string]string {
	raw := make(map[string]string)
	for name, v := range m {
		if e.schema.Has(name) {
			raw[name] = v
		}
	}
	return raw
}
