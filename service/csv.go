package service

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalCSV 将一条定长向量序列化为逗号分隔的 ASCII 文本。
// 使用 'g' 格式与最短精度，保证与 UnmarshalCSV 往返后逐位一致。
func MarshalCSV(vector []float64) string {
	var b strings.Builder
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// MarshalCSVLines 将多条向量序列化为多行分隔文本（每行一条）。
func MarshalCSVLines(instances [][]float64) string {
	lines := make([]string, len(instances))
	for i, vector := range instances {
		lines[i] = MarshalCSV(vector)
	}
	return strings.Join(lines, "\n")
}

// UnmarshalCSV 将一行逗号分隔文本解析为向量。
func UnmarshalCSV(line string) ([]float64, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("csv: empty line")
	}
	fields := strings.Split(line, ",")
	vector := make([]float64, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("csv: field %d is not a number: %q", i, field)
		}
		vector[i] = f
	}
	return vector, nil
}
