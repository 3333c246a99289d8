package config

import (
	"fmt"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/feature"
	"github.com/marketml/scorekit/guard"
	"github.com/marketml/scorekit/model"
	"github.com/marketml/scorekit/pipeline"
	"github.com/marketml/scorekit/pkg/conv"
	"github.com/marketml/scorekit/score"
	"github.com/marketml/scorekit/service"
)

func init() {
	Register("guard", buildGuardNode)
	Register("feature.encode", buildEncodeNode)
	Register("score.remote", buildScoreRemoteNode)
	Register("score.local", buildScoreLocalNode)
}

// RegisterEnrichBuilder 注册特征补全 Node 的构建器。
// 补全依赖运行期构造的 FeatureService，无法在 init 中注册。
func RegisterEnrichBuilder(svc core.FeatureService) {
	Register("feature.enrich", func(config map[string]any) (pipeline.Node, error) {
		return &feature.EnrichNode{Service: svc}, nil
	})
}

func buildGuardNode(config map[string]any) (pipeline.Node, error) {
	rulesConfig, ok := config["rules"].([]any)
	if !ok {
		return nil, fmt.Errorf("rules not found or invalid")
	}

	rules := make([]guard.Rule, 0, len(rulesConfig))
	for _, rc := range rulesConfig {
		ruleMap, ok := rc.(map[string]any)
		if !ok {
			continue
		}
		rule := guard.Rule{
			Name:    conv.ConfigGet[string](ruleMap, "name", ""),
			Expr:    conv.ConfigGet[string](ruleMap, "expr", ""),
			Message: conv.ConfigGet[string](ruleMap, "message", ""),
		}
		if rule.Expr == "" {
			return nil, fmt.Errorf("guard rule %q has no expr", rule.Name)
		}
		rules = append(rules, rule)
	}

	return &guard.GuardNode{Rules: rules}, nil
}

func buildEncodeNode(config map[string]any) (pipeline.Node, error) {
	return &feature.EncodeNode{Encoder: feature.NewVectorEncoder(nil)}, nil
}

func buildScoreRemoteNode(config map[string]any) (pipeline.Node, error) {
	cfg := &service.ScorerConfig{
		Type:         service.ScorerType(conv.ConfigGet[string](config, "type", string(service.ScorerTypeCSV))),
		Endpoint:     conv.ConfigGet[string](config, "endpoint", ""),
		ModelName:    conv.ConfigGet[string](config, "model_name", ""),
		ModelVersion: conv.ConfigGet[string](config, "model_version", ""),
		Timeout:      int(conv.ConfigGetInt64(config, "timeout", 0)),
	}
	if authMap, ok := config["auth"].(map[string]any); ok {
		cfg.Auth = &service.AuthConfig{
			Type:     conv.ConfigGet[string](authMap, "type", ""),
			Username: conv.ConfigGet[string](authMap, "username", ""),
			Password: conv.ConfigGet[string](authMap, "password", ""),
			Token:    conv.ConfigGet[string](authMap, "token", ""),
			APIKey:   conv.ConfigGet[string](authMap, "api_key", ""),
		}
	}

	scorer, err := service.NewScorer(cfg)
	if err != nil {
		return nil, err
	}
	return &score.RemoteNode{
		Scorer:       scorer,
		ModelName:    cfg.ModelName,
		ModelVersion: cfg.ModelVersion,
	}, nil
}

func buildScoreLocalNode(config map[string]any) (pipeline.Node, error) {
	if path := conv.ConfigGet[string](config, "path", ""); path != "" {
		m, err := model.LoadLogisticModel(path)
		if err != nil {
			return nil, err
		}
		return &score.LocalNode{Model: m, Version: conv.ConfigGet[string](config, "model_version", "")}, nil
	}

	weightsMap, ok := config["weights"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("weights or path not found")
	}
	byName := conv.MapToFloat64(weightsMap)

	// 权重按 Schema 槽位顺序排列，未给出的槽位权重为 0
	schema := feature.BankMarketing()
	weights := make([]float64, schema.Len())
	for i, name := range schema.Names() {
		weights[i] = byName[name]
	}

	m, err := model.NewLogisticModel(&model.LogisticParams{
		Name:    conv.ConfigGet[string](config, "name", "logreg"),
		Bias:    conv.ConfigGet[float64](config, "bias", 0.0),
		Weights: weights,
	})
	if err != nil {
		return nil, err
	}
	return &score.LocalNode{Model: m, Version: conv.ConfigGet[string](config, "model_version", "")}, nil
}
