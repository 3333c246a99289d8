// Package service 提供 core.Scorer 的基础设施实现：对接外部打分服务的 HTTP 客户端。
package service

import "net/http"

// ScorerType 打分服务类型
type ScorerType string

const (
	ScorerTypeCSV  ScorerType = "csv"  // 分隔文本协议（SageMaker / XGBoost runtime 风格）
	ScorerTypeJSON ScorerType = "json" // instances/predictions JSON 协议（自建 runtime 常用）
)

// ScorerConfig 打分服务配置
type ScorerConfig struct {
	// Type 服务类型
	Type ScorerType `yaml:"type" json:"type"`

	// Endpoint 服务端点
	// CSV: "http://host:port/invocations"
	// JSON: "http://host:port/predict"
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// ModelName 模型名称（可选）
	ModelName string `yaml:"model_name" json:"model_name"`

	// ModelVersion 模型版本（可选）
	ModelVersion string `yaml:"model_version" json:"model_version"`

	// Timeout 超时时间（秒），0 表示默认 30s
	Timeout int `yaml:"timeout" json:"timeout"`

	// Auth 认证信息（可选）
	Auth *AuthConfig `yaml:"auth" json:"auth"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	Type     string `yaml:"type" json:"type"` // "basic", "bearer", "api_key"
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Token    string `yaml:"token" json:"token"`
	APIKey   string `yaml:"api_key" json:"api_key"`
}

// addAuth 按配置为请求附加认证头。
func addAuth(req *http.Request, auth *AuthConfig) {
	if auth == nil {
		return
	}
	switch auth.Type {
	case "basic":
		req.SetBasicAuth(auth.Username, auth.Password)
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", auth.APIKey)
	}
}
