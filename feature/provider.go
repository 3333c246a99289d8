package feature

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marketml/scorekit/core"
)

// StoreFeatureService 是基于 core.Store 的客户特征服务实现，采用适配器模式。
// 每个客户的已知特征以 JSON（槽位名 → 数值）存储在 "<prefix><clientID>" 键下。
type StoreFeatureService struct {
	store      core.Store
	keyPrefix  string
	serializer FeatureSerializer
}

// FeatureSerializer 是特征序列化接口，支持不同的序列化格式（JSON、MsgPack 等）
type FeatureSerializer interface {
	Serialize(features map[string]float64) ([]byte, error)
	Deserialize(data []byte) (map[string]float64, error)
}

// JSONSerializer 是 JSON 序列化实现
type JSONSerializer struct{}

func (j *JSONSerializer) Serialize(features map[string]float64) ([]byte, error) {
	return json.Marshal(features)
}

func (j *JSONSerializer) Deserialize(data []byte) (map[string]float64, error) {
	var features map[string]float64
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, err
	}
	return features, nil
}

// NewStoreFeatureService 创建基于 Store 的客户特征服务。
// keyPrefix 为空时默认 "client:features:"。
func NewStoreFeatureService(s core.Store, keyPrefix string) *StoreFeatureService {
	if keyPrefix == "" {
		keyPrefix = "client:features:"
	}
	return &StoreFeatureService{
		store:      s,
		keyPrefix:  keyPrefix,
		serializer: &JSONSerializer{},
	}
}

// WithSerializer 设置序列化器。
func (p *StoreFeatureService) WithSerializer(serializer FeatureSerializer) *StoreFeatureService {
	p.serializer = serializer
	return p
}

func (p *StoreFeatureService) Name() string {
	return fmt.Sprintf("store.%s", p.store.Name())
}

func (p *StoreFeatureService) GetClientFeatures(ctx context.Context, clientID string) (map[string]float64, error) {
	data, err := p.store.Get(ctx, p.keyPrefix+clientID)
	if err != nil {
		if core.IsNotFound(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}
	return p.serializer.Deserialize(data)
}

func (p *StoreFeatureService) BatchGetClientFeatures(ctx context.Context, clientIDs []string) (map[string]map[string]float64, error) {
	keys := make([]string, len(clientIDs))
	for i, id := range clientIDs {
		keys[i] = p.keyPrefix + id
	}
	kvs, err := p.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}
	result := make(map[string]map[string]float64, len(clientIDs))
	for i, id := range clientIDs {
		data, ok := kvs[keys[i]]
		if !ok {
			continue
		}
		features, err := p.serializer.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("deserialize features of client %s: %w", id, err)
		}
		result[id] = features
	}
	return result, nil
}

// PutClientFeatures 写入客户特征（离线同步/测试用）。ttl 为秒，0 表示不过期。
func (p *StoreFeatureService) PutClientFeatures(ctx context.Context, clientID string, features map[string]float64, ttl int) error {
	data, err := p.serializer.Serialize(features)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, p.keyPrefix+clientID, data, ttl)
}

func (p *StoreFeatureService) Close(ctx context.Context) error {
	return p.store.Close()
}

var _ core.FeatureService = (*StoreFeatureService)(nil)
