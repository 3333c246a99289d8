// Package dsl 提供基于 CEL 的准入规则求值器，供 guard 节点使用。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/marketml/scorekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("input", cel.DynType),
		cel.Variable("params", cel.DynType),
		cel.Variable("client_id", cel.StringType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Eval 是准入规则解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式可访问的变量：
//   - input: 原始输入（槽位名 → 字符串值），如 input.age == "56"
//   - params: 请求级上下文参数，如 params.debug == true
//   - client_id: 客户标识字符串
//
// 示例：
//   - `!("age" in input) || double(input.age) >= 18.0` → 年龄缺失或成年
//   - `client_id != ""` → 必须携带客户标识
//   - `"campaign" in input && double(input.campaign) <= 50.0` → 联系次数上限
type Eval struct {
	sctx *core.ScoreContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(sctx *core.ScoreContext) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	return &Eval{sctx: sctx, env: env}, nil
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式恒为 true。表达式必须返回布尔值。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；规则应使用 "key" in input 判断存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	input := make(map[string]any, len(e.sctx.RawInput))
	for k, v := range e.sctx.RawInput {
		input[k] = v
	}

	params := make(map[string]any, len(e.sctx.Params))
	for k, v := range e.sctx.Params {
		params[k] = v
	}

	return map[string]any{
		"input":     input,
		"params":    params,
		"client_id": e.sctx.ClientID,
	}
}
