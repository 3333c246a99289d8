package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marketml/scorekit/guard"
	"github.com/marketml/scorekit/service"
)

// AppConfig 是 scored 服务的应用级配置（YAML）。
type AppConfig struct {
	// Server HTTP 服务配置
	Server ServerConfig `yaml:"server"`

	// Scorer 外部打分服务配置
	Scorer service.ScorerConfig `yaml:"scorer"`

	// FeatureStore 客户特征存储配置
	FeatureStore FeatureStoreConfig `yaml:"feature_store"`

	// Guard 准入规则（按序求值）
	Guard []guard.Rule `yaml:"guard"`

	// Audit 审计记录配置
	Audit AuditConfig `yaml:"audit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	// Addr 监听地址，默认 ":8080"
	Addr string `yaml:"addr"`
}

// FeatureStoreConfig 客户特征存储配置
type FeatureStoreConfig struct {
	// Backend 后端类型："memory"（默认）或 "redis"
	Backend string `yaml:"backend"`

	// Addr Redis 地址（backend=redis 时必填）
	Addr string `yaml:"addr"`

	// DB Redis 库号
	DB int `yaml:"db"`

	// KeyPrefix 特征 key 前缀，默认 "client:features:"
	KeyPrefix string `yaml:"key_prefix"`

	// CacheTTL 进程内缓存时长（秒），0 表示不缓存
	CacheTTL int `yaml:"cache_ttl"`
}

// AuditConfig 审计记录配置
type AuditConfig struct {
	// Enabled 是否开启审计
	Enabled bool `yaml:"enabled"`

	// TTL 审计记录保留时长（秒），默认 7 天
	TTL int `yaml:"ttl"`
}

// LoadAppConfig 从 YAML 文件加载应用配置并填充默认值。
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := service.ValidateConfig(&cfg.Scorer); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.FeatureStore.Backend == "" {
		c.FeatureStore.Backend = "memory"
	}
	if c.FeatureStore.KeyPrefix == "" {
		c.FeatureStore.KeyPrefix = "client:features:"
	}
	if c.Audit.Enabled && c.Audit.TTL <= 0 {
		c.Audit.TTL = 7 * 24 * 3600
	}
}
