package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marketml/scorekit/core"
)

// JSONScorerClient 是 instances/predictions JSON 协议的打分客户端，
// 用于对接自建推理服务（TF Serving / KServe v1 风格）。
//
// 协议：
//   - 请求：POST {endpoint}，Content-Type: application/json，
//     body: {"instances": [[...], ...]}
//   - 响应：{"predictions": [0.12, ...]}
type JSONScorerClient struct {
	// Endpoint 完整调用地址，如 "http://localhost:8501/v1/models/bank:predict"
	Endpoint string
	// ModelName 模型名称
	ModelName string
	// Timeout 请求超时
	Timeout time.Duration
	// Auth 认证配置
	Auth *AuthConfig
	// httpClient 自定义 HTTP 客户端（可选）
	httpClient *http.Client
}

// NewJSONScorerClient 创建 JSON 打分客户端。
func NewJSONScorerClient(endpoint string, opts ...JSONScorerOption) *JSONScorerClient {
	c := &JSONScorerClient{
		Endpoint: endpoint,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// JSONScorerOption 配置 JSON 打分客户端
type JSONScorerOption func(*JSONScorerClient)

// WithJSONModelName 设置模型名称
func WithJSONModelName(name string) JSONScorerOption {
	return func(c *JSONScorerClient) {
		c.ModelName = name
	}
}

// WithJSONTimeout 设置超时
func WithJSONTimeout(timeout time.Duration) JSONScorerOption {
	return func(c *JSONScorerClient) {
		c.Timeout = timeout
		if c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithJSONAuth 设置认证
func WithJSONAuth(auth *AuthConfig) JSONScorerOption {
	return func(c *JSONScorerClient) {
		c.Auth = auth
	}
}

// WithJSONHTTPClient 设置自定义 HTTP 客户端
func WithJSONHTTPClient(client *http.Client) JSONScorerOption {
	return func(c *JSONScorerClient) {
		c.httpClient = client
	}
}

func (c *JSONScorerClient) Name() string {
	if c.ModelName != "" {
		return "json." + c.ModelName
	}
	return "json"
}

type jsonPredictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type jsonPredictResponse struct {
	Predictions  []float64 `json:"predictions"`
	ModelVersion string    `json:"model_version,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Score 实现 core.Scorer。
func (c *JSONScorerClient) Score(ctx context.Context, req *core.ScoreRequest) (*core.ScoreResponse, error) {
	if len(req.Instances) == 0 {
		return nil, scorerError("json: instances are required")
	}

	payload, err := json.Marshal(&jsonPredictRequest{Instances: req.Instances})
	if err != nil {
		return nil, scorerError("json: marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, scorerError("json: create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	addAuth(httpReq, c.Auth)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, scorerError("json: request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scorerError("json: read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, scorerError("json: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var predictResp jsonPredictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		return nil, scorerError("json: unmarshal response: %v", err)
	}
	if predictResp.Error != "" {
		return nil, scorerError("json: remote error: %s", predictResp.Error)
	}
	if len(predictResp.Predictions) != len(req.Instances) {
		return nil, scorerError("json: prediction count mismatch: expected %d, got %d", len(req.Instances), len(predictResp.Predictions))
	}

	version := predictResp.ModelVersion
	if version == "" {
		version = req.ModelVersion
	}
	return &core.ScoreResponse{
		Predictions:  predictResp.Predictions,
		Outputs:      string(body),
		ModelVersion: version,
	}, nil
}

// Health 实现 core.Scorer：GET 端点基路径，2xx/405 均视为可达。
func (c *JSONScorerClient) Health(ctx context.Context) error {
	url := strings.TrimSuffix(c.Endpoint, ":predict")
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return scorerError("json: health create request: %v", err)
	}
	addAuth(httpReq, c.Auth)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return scorerError("json: health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return scorerError("json: health failed: status=%d", resp.StatusCode)
	}
	return nil
}

// Close 实现 core.Scorer。
func (c *JSONScorerClient) Close(ctx context.Context) error {
	return nil
}

var _ core.Scorer = (*JSONScorerClient)(nil)
