package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/feature"
	"github.com/marketml/scorekit/pipeline"
	"github.com/marketml/scorekit/score"
	"github.com/marketml/scorekit/service"
	"github.com/marketml/scorekit/store"
)

func newTestHandler(t *testing.T, scorerHandler http.HandlerFunc) (*Handler, func()) {
	t.Helper()
	srv := httptest.NewServer(scorerHandler)
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&feature.EncodeNode{},
		&score.RemoteNode{Scorer: service.NewCSVRuntimeClient(srv.URL)},
	}}
	return &Handler{Pipeline: p}, srv.Close
}

func doScore(h *Handler, target string, form url.Values) (*httptest.ResponseRecorder, *core.ScoreResult) {
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(http.MethodGet, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandleScore(c)

	var result core.ScoreResult
	_ = json.Unmarshal(rec.Body.Bytes(), &result)
	return rec, &result
}

func TestHandleScore_Success(t *testing.T) {
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0.123456"))
	})
	defer cleanup()

	rec, result := doScore(h, "/api/score?age=56&campaign=1&month_may=1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if result.Status != core.StatusSuccess {
		t.Errorf("status marker = %q, want success", result.Status)
	}
	if result.Prediction != 0.123456 {
		t.Errorf("prediction = %v, want 0.123456", result.Prediction)
	}
}

func TestHandleScore_ZeroPrediction(t *testing.T) {
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0"))
	})
	defer cleanup()

	rec, result := doScore(h, "/api/score?age=30", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result.Status != core.StatusSuccess {
		t.Errorf("status marker = %q, want success", result.Status)
	}
	// 预测值恰为 0 时，prediction 字段也必须出现在响应体中
	if !strings.Contains(rec.Body.String(), `"prediction":0`) {
		t.Errorf("body %s does not carry the prediction field", rec.Body.String())
	}
}

func TestHandleScore_EmptyInput(t *testing.T) {
	var gotBody string
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("0.03"))
	})
	defer cleanup()

	rec, result := doScore(h, "/api/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result.Prediction != 0.03 {
		t.Errorf("prediction = %v, want 0.03", result.Prediction)
	}
	// 空输入仍然产生完整的 58 槽位全零向量
	want := strings.Repeat("0,", 57) + "0"
	if gotBody != want {
		t.Errorf("payload = %q, want 58 comma-joined zeros", gotBody)
	}
}

func TestHandleScore_UnrecognizedParamsIgnored(t *testing.T) {
	var gotBody string
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("0.5"))
	})
	defer cleanup()

	rec, _ := doScore(h, "/api/score?utm_source=mailing&duration=120&age=30", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// duration / utm_source 不在 Schema 内：值再离谱也不影响编码
	if !strings.HasPrefix(gotBody, "30,") {
		t.Errorf("payload = %q, want leading 30 (age)", gotBody)
	}
}

func TestHandleScore_EncodingError(t *testing.T) {
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("scorer must not be called when encoding fails")
	})
	defer cleanup()

	rec, result := doScore(h, "/api/score?age=fifty-six", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if result.Status != core.StatusError {
		t.Errorf("status marker = %q, want error", result.Status)
	}
	if !strings.Contains(result.Message, "age") || !strings.Contains(result.Message, "fifty-six") {
		t.Errorf("message %q does not name the slot and value", result.Message)
	}
}

func TestHandleScore_ScorerFailure(t *testing.T) {
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "secret internal detail", http.StatusInternalServerError)
	})
	defer cleanup()

	rec, result := doScore(h, "/api/score?age=30", nil)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if result.Status != core.StatusError {
		t.Errorf("status marker = %q, want error", result.Status)
	}
	if result.Message != msgScorerUnavailable {
		t.Errorf("message = %q, want generic %q", result.Message, msgScorerUnavailable)
	}
	if strings.Contains(result.Message, "secret") {
		t.Error("internal error detail leaked to caller")
	}
}

func TestHandleScore_PostForm(t *testing.T) {
	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0.9"))
	})
	defer cleanup()

	form := url.Values{}
	form.Set("age", "44")
	form.Set("housing_yes", "1")
	rec, result := doScore(h, "/api/score", form)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result.Prediction != 0.9 {
		t.Errorf("prediction = %v, want 0.9", result.Prediction)
	}
}

func TestHandleScore_Audit(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	h, cleanup := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0.3"))
	})
	defer cleanup()
	h.Audit = NewAuditRecorder(ms, 60)

	rec, _ := doScore(h, "/api/score?age=30&client_id=c-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// 审计键以 request_id 结尾，这里只校验有且仅有一条记录落库
	keys := ms.Keys("audit:score:")
	if len(keys) != 1 {
		t.Fatalf("audit records = %d, want 1", len(keys))
	}

	data, err := ms.Get(context.Background(), keys[0])
	if err != nil {
		t.Fatalf("Get(audit) error = %v", err)
	}
	var record AuditRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal audit record: %v", err)
	}
	if record.Status != "success" || record.Prediction != 0.3 {
		t.Errorf("audit record = %+v", record)
	}
	if record.ClientID != "c-1" {
		t.Errorf("audit ClientID = %q, want c-1", record.ClientID)
	}
}
