package feature

import (
	"context"
	"strconv"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/pipeline"
)

// EnrichNode 是补全 Node：用特征库中该客户的已知取值填充缺失槽位。
//
// 规则：
//   - 只补 Schema 内、且调用方未显式提交的槽位（显式值永远优先）
//   - 没有 ClientID、特征库出错或查不到时静默跳过——补全是尽力而为的，
//     缺失槽位本来就允许默认为 0.0
type EnrichNode struct {
	// Service 客户特征服务
	Service core.FeatureService

	// Schema 槽位表；为 nil 时使用内置的 BankMarketing Schema
	Schema *Schema
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindEnrich }

func (n *EnrichNode) Process(ctx context.Context, sctx *core.ScoreContext) error {
	if n.Service == nil || sctx == nil || sctx.ClientID == "" {
		return nil
	}

	features, err := n.Service.GetClientFeatures(ctx, sctx.ClientID)
	if err != nil || len(features) == 0 {
		return nil
	}

	schema := n.Schema
	if schema == nil {
		schema = BankMarketing()
	}
	for name, v := range features {
		if !schema.Has(name) {
			continue
		}
		sctx.PutRawIfAbsent(name, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return nil
}

var _ pipeline.Node = (*EnrichNode)(nil)
