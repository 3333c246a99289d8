package service

import (
	"context"
	"fmt"
	"time"

	"github.com/marketml/scorekit/core"
)

// NewScorer 根据配置创建打分客户端。
func NewScorer(cfg *ScorerConfig) (core.Scorer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cfg.Type {
	case ScorerTypeCSV:
		return NewCSVRuntimeClient(cfg.Endpoint,
			WithCSVModelName(cfg.ModelName),
			WithCSVTimeout(timeout),
			WithCSVAuth(cfg.Auth),
		), nil
	case ScorerTypeJSON:
		return NewJSONScorerClient(cfg.Endpoint,
			WithJSONModelName(cfg.ModelName),
			WithJSONTimeout(timeout),
			WithJSONAuth(cfg.Auth),
		), nil
	default:
		return nil, fmt.Errorf("unsupported scorer type: %s", cfg.Type)
	}
}

// ValidateConfig 校验打分服务配置。
func ValidateConfig(cfg *ScorerConfig) error {
	if cfg == nil {
		return fmt.Errorf("scorer config is required")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("scorer endpoint is required")
	}
	switch cfg.Type {
	case ScorerTypeCSV, ScorerTypeJSON:
	default:
		return fmt.Errorf("unsupported scorer type: %s", cfg.Type)
	}
	if cfg.Auth != nil {
		switch cfg.Auth.Type {
		case "basic":
			if cfg.Auth.Username == "" {
				return fmt.Errorf("basic auth requires username")
			}
		case "bearer":
			if cfg.Auth.Token == "" {
				return fmt.Errorf("bearer auth requires token")
			}
		case "api_key":
			if cfg.Auth.APIKey == "" {
				return fmt.Errorf("api_key auth requires api_key")
			}
		default:
			return fmt.Errorf("unsupported auth type: %s", cfg.Auth.Type)
		}
	}
	return nil
}

// TestConnection 创建客户端并做一次健康检查，用于启动期自检。
func TestConnection(ctx context.Context, cfg *ScorerConfig) error {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return err
	}
	defer scorer.Close(ctx)
	return scorer.Health(ctx)
}
