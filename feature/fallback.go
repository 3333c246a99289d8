package feature

import (
	"context"

	"github.com/marketml/scorekit/core"
)

// FallbackFeatureService 是降级装饰器：primary 失败或查不到时改走 fallback。
//
// 典型组合：Feast 在线特征库为 primary，Redis 快照为 fallback；
// 两者都失败时返回空特征集而不是错误——补全是尽力而为的，
// 缺失槽位本来就允许默认为 0.0，特征库故障不应阻断评分。
type FallbackFeatureService struct {
	primary  core.FeatureService
	fallback core.FeatureService
}

// NewFallbackFeatureService 创建降级装饰器。
func NewFallbackFeatureService(primary, fallback core.FeatureService) *FallbackFeatureService {
	return &FallbackFeatureService{primary: primary, fallback: fallback}
}

func (f *FallbackFeatureService) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}

func (f *FallbackFeatureService) GetClientFeatures(ctx context.Context, clientID string) (map[string]float64, error) {
	features, err := f.primary.GetClientFeatures(ctx, clientID)
	if err == nil && len(features) > 0 {
		return features, nil
	}
	features, err = f.fallback.GetClientFeatures(ctx, clientID)
	if err != nil {
		return map[string]float64{}, nil
	}
	return features, nil
}

func (f *FallbackFeatureService) BatchGetClientFeatures(ctx context.Context, clientIDs []string) (map[string]map[string]float64, error) {
	result, err := f.primary.BatchGetClientFeatures(ctx, clientIDs)
	if err != nil {
		result = nil
	}

	// 只对 primary 没给出结果的客户走 fallback
	missing := make([]string, 0, len(clientIDs))
	for _, id := range clientIDs {
		if len(result[id]) == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := f.fallback.BatchGetClientFeatures(ctx, missing)
	if err != nil {
		if result == nil {
			result = make(map[string]map[string]float64)
		}
		return result, nil
	}
	if result == nil {
		result = make(map[string]map[string]float64, len(fetched))
	}
	for id, features := range fetched {
		result[id] = features
	}
	return result, nil
}

func (f *FallbackFeatureService) Close(ctx context.Context) error {
	err1 := f.primary.Close(ctx)
	err2 := f.fallback.Close(ctx)
	if err1 != nil {
		return err1
	}
	return err2
}

var _ core.FeatureService = (*FallbackFeatureService)(nil)
