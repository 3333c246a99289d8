package feature

import (
	"context"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/pipeline"
)

// EncodeNode 是编码 Node：把 RawInput 编码为定长向量并写入 ScoreContext.Vector。
// 编码失败（存在非数值槽位）时整个请求失败，错误为 EncodingError。
type EncodeNode struct {
	Encoder *VectorEncoder
}

func (n *EncodeNode) Name() string        { return "feature.encode" }
func (n *EncodeNode) Kind() pipeline.Kind { return pipeline.KindEncode }

func (n *EncodeNode) Process(_ context.Context, sctx *core.ScoreContext) error {
	encoder := n.Encoder
	if encoder == nil {
		encoder = NewVectorEncoder(nil)
	}
	vector, err := encoder.Encode(sctx.RawInput)
	if err != nil {
		return err
	}
	sctx.Vector = vector
	return nil
}

var _ pipeline.Node = (*EncodeNode)(nil)
