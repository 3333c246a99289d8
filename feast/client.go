// Package feast 提供 Feast 在线特征库实现的 core.FeatureService。
// 已有 Feast 部署的团队可直接复用其客户画像，无需把特征同步进 Redis。
package feast

import (
	"context"
	"fmt"
	"strings"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/marketml/scorekit/core"
)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Host Feature Server 主机
	Host string `yaml:"host" json:"host"`
	// Port gRPC 端口，0 表示默认 6565
	Port int `yaml:"port" json:"port"`
	// Project 项目名称
	Project string `yaml:"project" json:"project"`
	// EntityName 客户标识实体名，默认 "client_id"
	EntityName string `yaml:"entity_name" json:"entity_name"`
	// Features 要拉取的特征引用（如 "client_profile:age"）
	Features []string `yaml:"features" json:"features"`
	// Timeout 请求超时
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// FeatureService 是基于官方 Feast Go SDK 的 core.FeatureService 实现。
// 特征值统一转换为 float64；非数值特征被忽略。
type FeatureService struct {
	client     *feastsdk.GrpcClient
	project    string
	entityName string
	features   []string
}

// NewFeatureService 创建 Feast 特征服务。
func NewFeatureService(cfg *ClientConfig) (*FeatureService, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, fmt.Errorf("feast: host is required")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("feast: project is required")
	}
	if len(cfg.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	port := cfg.Port
	if port == 0 {
		port = 6565
	}
	entityName := cfg.EntityName
	if entityName == "" {
		entityName = "client_id"
	}

	client, err := feastsdk.NewGrpcClient(cfg.Host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", cfg.Host, port, err)
	}

	return &FeatureService{
		client:     client,
		project:    cfg.Project,
		entityName: entityName,
		features:   cfg.Features,
	}, nil
}

func (s *FeatureService) Name() string { return "feast" }

// GetClientFeatures 实现 core.FeatureService。
func (s *FeatureService) GetClientFeatures(ctx context.Context, clientID string) (map[string]float64, error) {
	result, err := s.BatchGetClientFeatures(ctx, []string{clientID})
	if err != nil {
		return nil, err
	}
	features, ok := result[clientID]
	if !ok {
		return map[string]float64{}, nil
	}
	return features, nil
}

// BatchGetClientFeatures 实现 core.FeatureService。
func (s *FeatureService) BatchGetClientFeatures(ctx context.Context, clientIDs []string) (map[string]map[string]float64, error) {
	if len(clientIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityRows := make([]feastsdk.Row, len(clientIDs))
	for i, id := range clientIDs {
		entityRows[i] = feastsdk.Row{s.entityName: feastsdk.StrVal(id)}
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: s.features,
		Entities: entityRows,
		Project:  s.project,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, fmt.Sprintf("feast: get online features: %v", err))
	}

	rows := resp.Rows()
	if len(rows) != len(clientIDs) {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInternalError,
			fmt.Sprintf("feast: row count mismatch: expected %d, got %d", len(clientIDs), len(rows)))
	}

	result := make(map[string]map[string]float64, len(clientIDs))
	for i, id := range clientIDs {
		features := make(map[string]float64, len(s.features))
		for _, ref := range s.features {
			val, ok := rows[i][ref]
			if !ok {
				continue
			}
			if f, ok := numericValue(val); ok {
				features[slotName(ref)] = f
			}
		}
		result[id] = features
	}
	return result, nil
}

// Close 实现 core.FeatureService。SDK 的 gRPC 连接由库自身管理。
func (s *FeatureService) Close(ctx context.Context) error {
	s.client = nil
	return nil
}

// slotName 去掉特征引用中的视图前缀："client_profile:age" → "age"。
func slotName(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// numericValue 把 Feast 值转换为 float64；非数值类型返回 false。
func numericValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val), true
	case *feasttypes.Value_BoolVal:
		if val.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

var _ core.FeatureService = (*FeatureService)(nil)
