// Package scorekit 是一个营销评分服务工具包（Scoring Kit）。
//
// 设计要点：
// - Pipeline-first: 单次评分请求通过 Node 串联（Guard → Enrich → Encode → Score）
// - Schema-first: 特征槽位表定长、定序、启动后不可变，编码结果与训练时严格对齐
// - 打分服务可插拔: 外部打分端点只是一个 core.Scorer 能力，CSV/JSON 协议均可替换
package scorekit

import "github.com/marketml/scorekit/pipeline"

// 轻量 facade：便于用户直接 import "scorekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindGuard       = pipeline.KindGuard
	KindEnrich      = pipeline.KindEnrich
	KindEncode      = pipeline.KindEncode
	KindScore       = pipeline.KindScore
	KindPostProcess = pipeline.KindPostProcess
)
