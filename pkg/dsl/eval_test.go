package dsl

import (
	"testing"

	"github.com/marketml/scorekit/core"
)

func TestEvaluate(t *testing.T) {
	sctx := core.NewScoreContext("req-1")
	sctx.ClientID = "c-1001"
	sctx.RawInput["age"] = "56"
	sctx.RawInput["campaign"] = "2"
	sctx.Params["debug"] = true

	eval, err := NewEval(sctx)
	if err != nil {
		t.Fatalf("NewEval() error = %v", err)
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{
			name: "empty expression is true",
			expr: "",
			want: true,
		},
		{
			name: "client_id check",
			expr: `client_id != ""`,
			want: true,
		},
		{
			name: "input membership",
			expr: `"age" in input`,
			want: true,
		},
		{
			name: "input value comparison",
			expr: `double(input.age) >= 18.0`,
			want: true,
		},
		{
			name: "absent slot guarded by membership",
			expr: `!("pdays" in input) || double(input.pdays) <= 999.0`,
			want: true,
		},
		{
			name: "params access",
			expr: `params.debug == true`,
			want: true,
		},
		{
			name: "false result",
			expr: `double(input.campaign) > 10.0`,
			want: false,
		},
		{
			name:    "compile error",
			expr:    `((`,
			wantErr: true,
		},
		{
			name:    "non-boolean result",
			expr:    `input.age`,
			wantErr: true,
		},
		{
			name:    "access to missing key errors",
			expr:    `double(input.pdays) > 0.0`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.Evaluate(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q) error = nil, want error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
