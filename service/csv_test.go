package service

import (
	"strings"
	"testing"
)

func TestMarshalCSV(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
		want   string
	}{
		{
			name:   "zeros",
			vector: []float64{0, 0, 0},
			want:   "0,0,0",
		},
		{
			name:   "mixed values",
			vector: []float64{56, 1, 999, 0.5},
			want:   "56,1,999,0.5",
		},
		{
			name:   "empty vector",
			vector: []float64{},
			want:   "",
		},
		{
			name:   "negative and fractional",
			vector: []float64{-1.25, 41.5},
			want:   "-1.25,41.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarshalCSV(tt.vector); got != tt.want {
				t.Errorf("MarshalCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	vectors := [][]float64{
		{0, 0, 0, 0},
		{56, 1, 999, 0, 1},
		{41.5, -2.25, 0.000125, 1e16},
		{1, 0, 1, 0, 1, 0},
	}

	for _, vector := range vectors {
		line := MarshalCSV(vector)
		got, err := UnmarshalCSV(line)
		if err != nil {
			t.Fatalf("UnmarshalCSV(%q) error = %v", line, err)
		}
		if len(got) != len(vector) {
			t.Fatalf("round trip length = %d, want %d", len(got), len(vector))
		}
		for i := range vector {
			if got[i] != vector[i] {
				t.Errorf("round trip [%d] = %v, want %v", i, got[i], vector[i])
			}
		}
	}
}

func TestUnmarshalCSV_Malformed(t *testing.T) {
	tests := []string{"", "1,abc,3", "1,,3"}
	for _, line := range tests {
		if _, err := UnmarshalCSV(line); err == nil {
			t.Errorf("UnmarshalCSV(%q) error = nil, want error", line)
		}
	}
}

func TestMarshalCSVLines(t *testing.T) {
	got := MarshalCSVLines([][]float64{{1, 2}, {3, 4}})
	want := "1,2\n3,4"
	if got != want {
		t.Errorf("MarshalCSVLines() = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("MarshalCSVLines() has trailing newline")
	}
}
