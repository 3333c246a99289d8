package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/marketml/scorekit/core"
)

// AuditRecord 是一次评分请求的留痕记录。
type AuditRecord struct {
	RequestID  string    `json:"request_id"`
	ClientID   string    `json:"client_id,omitempty"`
	Channel    string    `json:"channel,omitempty"`
	SlotCount  int       `json:"slot_count"`
	Status     string    `json:"status"`
	Prediction float64   `json:"prediction,omitempty"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditRecorder 把评分留痕写入 KV 存储（带 TTL）。
// 审计是旁路行为：写入失败不影响评分结果，由调用方决定是否记日志。
type AuditRecorder struct {
	store core.Store
	ttl   int
}

// NewAuditRecorder 创建审计记录器。ttl 为秒，0 表示不过期。
func NewAuditRecorder(store core.Store, ttl int) *AuditRecorder {
	return &AuditRecorder{store: store, ttl: ttl}
}

// Record 写入一条审计记录，键为 "audit:score:<requestID>"。
func (a *AuditRecorder) Record(ctx context.Context, record *AuditRecord) error {
	if a == nil || a.store == nil || record == nil {
		return nil
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, "audit:score:"+record.RequestID, data, a.ttl)
}
