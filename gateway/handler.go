// Package gateway 提供 HTTP 评分接口：开放的查询参数输入 → 结构化 JSON 结果。
package gateway

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/feature"
	"github.com/marketml/scorekit/pipeline"
)

// 对外暴露的失败消息。打分服务的内部错误细节只进日志/审计，不回给调用方。
const msgScorerUnavailable = "scoring service unavailable"

// Handler 处理评分请求：抽取 → Pipeline → JSON 响应。
type Handler struct {
	// Pipeline 评分流水线（guard → enrich → encode → score）
	Pipeline *pipeline.Pipeline

	// Extractor 输入抽取器；为 nil 时使用内置 Schema
	Extractor *feature.InputExtractor

	// Audit 审计记录器（可选）
	Audit *AuditRecorder
}

// HandleScore 处理 GET/POST /api/score。
//
// 输入契约：
//   - 只认 Schema 中的 58 个槽位名（查询参数或表单字段），未识别的名字忽略
//   - 缺失槽位默认为 0.0；存在但非数值 → 400，消息指明槽位
//   - client_id 参数（可选）触发特征库补全
//
// 输出契约：
//   - 成功：200 {"status":"success","prediction":<float>}
//   - 输入非法：400 {"status":"error","message":<归因消息>}
//   - 准入拒绝：422 {"status":"error","message":<规则消息>}
//   - 打分服务故障：502 {"status":"error","message":"scoring service unavailable"}
func (h *Handler) HandleScore(c echo.Context) error {
	requestID := uuid.NewString()
	values := requestValues(c)

	extractor := h.Extractor
	if extractor == nil {
		extractor = feature.NewInputExtractor(nil)
	}

	sctx := core.NewScoreContext(requestID)
	sctx.ClientID = values.Get("client_id")
	sctx.Channel = "api"
	sctx.RawInput = extractor.FromValues(values)
	sctx.Params["remote_ip"] = c.RealIP()

	result, err := h.Pipeline.Run(c.Request().Context(), sctx)
	if err != nil {
		status, message := classifyError(err)
		result = core.NewErrorResult(message)
		if status >= http.StatusInternalServerError {
			c.Logger().Errorf("score request %s failed: %v", requestID, err)
		}
		h.audit(c, sctx, result)
		return c.JSON(status, result)
	}

	h.audit(c, sctx, result)
	return c.JSON(http.StatusOK, result)
}

// classifyError 把内部错误映射为对外的状态码与消息。
func classifyError(err error) (int, string) {
	if encErr := feature.AsEncodingError(err); encErr != nil {
		return http.StatusBadRequest, encErr.Error()
	}
	if core.IsRejected(err) {
		return http.StatusUnprocessableEntity, err.Error()
	}
	if domainErr := core.GetDomainError(err); domainErr != nil && domainErr.Code == core.ErrorCodeInvalidInput {
		return http.StatusBadRequest, domainErr.Message
	}
	return http.StatusBadGateway, msgScorerUnavailable
}

// requestValues 合并查询参数与表单字段；同名时表单优先（POST 语义）。
func requestValues(c echo.Context) url.Values {
	values := url.Values{}
	for name, vs := range c.QueryParams() {
		values[name] = vs
	}
	if form, err := c.FormParams(); err == nil {
		for name, vs := range form {
			values[name] = vs
		}
	}
	return values
}

func (h *Handler) audit(c echo.Context, sctx *core.ScoreContext, result *core.ScoreResult) {
	if h.Audit == nil {
		return
	}
	record := &AuditRecord{
		RequestID: sctx.RequestID,
		ClientID:  sctx.ClientID,
		Channel:   sctx.Channel,
		SlotCount: len(sctx.RawInput),
		Status:    string(result.Status),
	}
	if result.OK() {
		record.Prediction = result.Prediction
	} else {
		record.Message = result.Message
	}
	if err := h.Audit.Record(c.Request().Context(), record); err != nil {
		c.Logger().Warnf("audit record %s failed: %v", sctx.RequestID, err)
	}
}
