package core

import "context"

// FeatureService 是客户特征服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（feature / feast）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 评分前补全：调用方未提交的槽位，可用客户画像中已知的取值补全
//   - 请求级输入（本次通话的 campaign、contact 等）仍应由调用方显式提交，
//     而不是通过 FeatureService 获取
//
// 实现：
//   - feature.StoreFeatureService（KV 存储）
//   - feature.CachedFeatureService / feature.FallbackFeatureService（装饰器）
//   - feast.FeatureService（Feast 在线特征库）
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetClientFeatures 获取单个客户的已知特征（槽位名 → 数值）
	GetClientFeatures(ctx context.Context, clientID string) (map[string]float64, error)

	// BatchGetClientFeatures 批量获取客户特征（批量评分用，减少网络往返）
	BatchGetClientFeatures(ctx context.Context, clientIDs []string) (map[string]map[string]float64, error)

	// Close 关闭特征服务，释放资源
	Close(ctx context.Context) error
}
