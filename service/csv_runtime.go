package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marketml/scorekit/core"
)

// CSVRuntimeClient 是分隔文本协议的打分客户端，用于对接托管推理端点
// （SageMaker XGBoost runtime 及兼容自建服务）。
//
// 协议：
//   - 请求：POST {endpoint}，Content-Type: text/csv，
//     body 为每行一条、逗号分隔的特征向量（按 Schema 顺序）
//   - 响应：纯文本，每条预测一个浮点数（换行或逗号分隔）；
//     单条请求时即一个可 trim 后解析的浮点数
//
// 每次 Score 至多发起一次外部请求；失败不重试，由调用方决定是否重发。
type CSVRuntimeClient struct {
	// Endpoint 完整调用地址，如 "http://localhost:8080/invocations"
	Endpoint string
	// ModelName 模型名称（仅用于日志/审计，不参与协议）
	ModelName string
	// Timeout 请求超时
	Timeout time.Duration
	// Auth 认证配置
	Auth *AuthConfig
	// httpClient 自定义 HTTP 客户端（可选）
	httpClient *http.Client
}

// NewCSVRuntimeClient 创建分隔文本打分客户端。
func NewCSVRuntimeClient(endpoint string, opts ...CSVRuntimeOption) *CSVRuntimeClient {
	c := &CSVRuntimeClient{
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

// CSVRuntimeOption 配置 CSV 打分客户端
type CSVRuntimeOption func(*CSVRuntimeClient)

// WithCSVModelName 设置模型名称
func WithCSVModelName(name string) CSVRuntimeOption {
	return func(c *CSVRuntimeClient) {
		c.ModelName = name
	}
}

// WithCSVTimeout 设置超时
func WithCSVTimeout(timeout time.Duration) CSVRuntimeOption {
	return func(c *CSVRuntimeClient) {
		c.Timeout = timeout
		if c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithCSVAuth 设置认证
func WithCSVAuth(auth *AuthConfig) CSVRuntimeOption {
	return func(c *CSVRuntimeClient) {
		c.Auth = auth
	}
}

// WithCSVHTTPClient 设置自定义 HTTP 客户端
func WithCSVHTTPClient(client *http.Client) CSVRuntimeOption {
	return func(c *CSVRuntimeClient) {
		c.httpClient = client
	}
}

func (c *CSVRuntimeClient) Name() string {
	if c.ModelName != "" {
		return "csv." + c.ModelName
	}
	return "csv"
}

// Score 实现 core.Scorer。
func (c *CSVRuntimeClient) Score(ctx context.Context, req *core.ScoreRequest) (*core.ScoreResponse, error) {
	if len(req.Instances) == 0 {
		return nil, scorerError("csv: instances are required")
	}

	payload := MarshalCSVLines(req.Instances)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, scorerError("csv: create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "text/csv")
	addAuth(httpReq, c.Auth)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, scorerError("csv: request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scorerError("csv: read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, scorerError("csv: status=%d, body=%s", resp.StatusCode, string(body))
	}

	predictions, err := parsePredictions(string(body))
	if err != nil {
		return nil, err
	}
	if len(predictions) != len(req.Instances) {
		return nil, scorerError("csv: prediction count mismatch: expected %d, got %d", len(req.Instances), len(predictions))
	}

	return &core.ScoreResponse{
		Predictions:  predictions,
		Outputs:      string(body),
		ModelVersion: req.ModelVersion,
	}, nil
}

// Health 实现 core.Scorer：GET {endpoint}/ping（SageMaker runtime 约定）。
func (c *CSVRuntimeClient) Health(ctx context.Context) error {
	url := strings.TrimSuffix(c.Endpoint, "/invocations") + "/ping"
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return scorerError("csv: health create request: %v", err)
	}
	addAuth(httpReq, c.Auth)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return scorerError("csv: health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return scorerError("csv: health failed: status=%d", resp.StatusCode)
	}
	return nil
}

// Close 实现 core.Scorer。
func (c *CSVRuntimeClient) Close(ctx context.Context) error {
	return nil
}

// parsePredictions 解析纯文本响应：预测值以换行或逗号分隔，单条即一个裸浮点数。
func parsePredictions(body string) ([]float64, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, scorerError("csv: empty response body")
	}
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	predictions := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, scorerError("csv: non-numeric prediction %q", field)
		}
		predictions = append(predictions, f)
	}
	if len(predictions) == 0 {
		return nil, scorerError("csv: no predictions in response")
	}
	return predictions, nil
}

// scorerError 构造统一的打分服务故障错误（SCORER_UNAVAILABLE）。
func scorerError(format string, args ...any) *core.DomainError {
	return core.NewDomainError(core.ModuleScorer, core.ErrorCodeScorerUnavailable, fmt.Sprintf(format, args...))
}

var _ core.Scorer = (*CSVRuntimeClient)(nil)
