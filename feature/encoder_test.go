package feature

import (
	"testing"
)

func TestVectorEncoder_EmptyInput(t *testing.T) {
	encoder := NewVectorEncoder(nil)

	vector, err := encoder.Encode(map[string]string{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(vector) != 58 {
		t.Fatalf("len(vector) = %d, want 58", len(vector))
	}
	for i, v := range vector {
		if v != 0.0 {
			t.Errorf("vector[%d] = %v, want 0.0", i, v)
		}
	}
}

func TestVectorEncoder_PositionPreservation(t *testing.T) {
	encoder := NewVectorEncoder(nil)
	schema := encoder.Schema()

	// 同一组输入，提交顺序不同，编码结果必须相同
	raw := map[string]string{
		"age":              "56",
		"campaign":         "1",
		"pdays":            "999",
		"job_housemaid":    "1",
		"marital_married":  "1",
		"contact_cellular": "1",
	}

	vector, err := encoder.Encode(raw)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for name, wantStr := range raw {
		i, ok := schema.Index(name)
		if !ok {
			t.Fatalf("schema missing slot %q", name)
		}
		want := map[string]float64{
			"age": 56, "campaign": 1, "pdays": 999,
			"job_housemaid": 1, "marital_married": 1, "contact_cellular": 1,
		}[name]
		if vector[i] != want {
			t.Errorf("vector[%d] (%s=%s) = %v, want %v", i, name, wantStr, vector[i], want)
		}
	}

	// 未提交的槽位保持 0.0
	if i, _ := schema.Index("poutcome_success"); vector[i] != 0.0 {
		t.Errorf("vector[poutcome_success] = %v, want 0.0", vector[i])
	}
}

func TestVectorEncoder_Idempotence(t *testing.T) {
	encoder := NewVectorEncoder(nil)
	raw := map[string]string{
		"age":      "41.5",
		"pdays":    "999",
		"previous": "2",
	}

	first, err := encoder.Encode(raw)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := encoder.Encode(raw)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("vector[%d]: first = %v, second = %v", i, first[i], second[i])
		}
	}
}

func TestVectorEncoder_MalformedValue(t *testing.T) {
	encoder := NewVectorEncoder(nil)

	tests := []struct {
		name     string
		raw      map[string]string
		wantSlot string
	}{
		{
			name:     "non-numeric age",
			raw:      map[string]string{"age": "fifty-six", "campaign": "1"},
			wantSlot: "age",
		},
		{
			name:     "empty string value",
			raw:      map[string]string{"campaign": ""},
			wantSlot: "campaign",
		},
		{
			name:     "trailing garbage",
			raw:      map[string]string{"pdays": "999x"},
			wantSlot: "pdays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vector, err := encoder.Encode(tt.raw)
			if err == nil {
				t.Fatal("Encode() error = nil, want EncodingError")
			}
			if vector != nil {
				t.Errorf("Encode() vector = %v, want nil (no partial vector)", vector)
			}
			encErr := AsEncodingError(err)
			if encErr == nil {
				t.Fatalf("error %T is not an EncodingError", err)
			}
			if encErr.Slot != tt.wantSlot {
				t.Errorf("EncodingError.Slot = %q, want %q", encErr.Slot, tt.wantSlot)
			}
			if encErr.Value != tt.raw[tt.wantSlot] {
				t.Errorf("EncodingError.Value = %q, want %q", encErr.Value, tt.raw[tt.wantSlot])
			}
		})
	}
}

func TestVectorEncoder_UnrecognizedNamesIgnored(t *testing.T) {
	encoder := NewVectorEncoder(nil)

	vector, err := encoder.Encode(map[string]string{
		"age":       "30",
		"duration":  "not-a-number", // 不在 Schema 内，值非法也不报错
		"utm_source": "mailing",
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if vector[0] != 30.0 {
		t.Errorf("vector[0] = %v, want 30.0", vector[0])
	}
}

func TestVectorEncoder_WorkedExample(t *testing.T) {
	encoder := NewVectorEncoder(nil)
	schema := encoder.Schema()

	// 一个完整客户样本：56 岁女仆，已婚，basic.4y 学历，5 月周一被座机联系
	raw := map[string]string{
		"age":                  "56",
		"campaign":             "1",
		"pdays":                "999",
		"previous":             "0",
		"no_previous_contact":  "1",
		"job_housemaid":        "1",
		"marital_married":      "1",
		"education_basic_4y":   "1",
		"default_no":           "1",
		"housing_no":           "1",
		"loan_no":              "1",
		"contact_telephone":    "1",
		"month_may":            "1",
		"day_of_week_mon":      "1",
		"poutcome_nonexistent": "1",
	}

	vector, err := encoder.Encode(raw)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(vector) != 58 {
		t.Fatalf("len(vector) = %d, want 58", len(vector))
	}

	want := map[string]float64{
		"age": 56, "campaign": 1, "pdays": 999, "previous": 0,
		"no_previous_contact": 1, "job_housemaid": 1, "marital_married": 1,
		"education_basic_4y": 1, "default_no": 1, "housing_no": 1,
		"loan_no": 1, "contact_telephone": 1, "month_may": 1,
		"day_of_week_mon": 1, "poutcome_nonexistent": 1,
	}
	hot := make(map[int]float64, len(want))
	for name, v := range want {
		i, ok := schema.Index(name)
		if !ok {
			t.Fatalf("schema missing slot %q", name)
		}
		hot[i] = v
	}
	for i, v := range vector {
		if v != hot[i] {
			t.Errorf("vector[%d] (%s) = %v, want %v", i, schema.Names()[i], v, hot[i])
		}
	}
}

func TestEncodeValues(t *testing.T) {
	encoder := NewVectorEncoder(nil)

	vector := encoder.EncodeValues(map[string]float64{
		"age":        44,
		"campaign":   2,
		"irrelevant": 7, // 不在 Schema 内
	})
	if len(vector) != 58 {
		t.Fatalf("len(vector) = %d, want 58", len(vector))
	}
	if vector[0] != 44 || vector[1] != 2 {
		t.Errorf("vector[0:2] = %v, want [44 2]", vector[0:2])
	}
}
