package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestScoreResult_JSON(t *testing.T) {
	tests := []struct {
		name         string
		result       *ScoreResult
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "zero prediction keeps the field",
			result:       NewSuccessResult(0),
			wantContains: []string{`"status":"success"`, `"prediction":0`},
			wantAbsent:   []string{`"message"`},
		},
		{
			name:         "non-zero prediction",
			result:       NewSuccessResult(0.123456),
			wantContains: []string{`"status":"success"`, `"prediction":0.123456`},
		},
		{
			name:         "error result",
			result:       NewErrorResult("scoring service unavailable"),
			wantContains: []string{`"status":"error"`, `"message":"scoring service unavailable"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			body := string(data)
			for _, want := range tt.wantContains {
				if !strings.Contains(body, want) {
					t.Errorf("body %s does not contain %s", body, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(body, absent) {
					t.Errorf("body %s contains %s", body, absent)
				}
			}
		})
	}
}
