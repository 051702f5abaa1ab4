package anomaly

import (
	"testing"

	"ScoreRadar/pkg/model"
)

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		composite int
		expected  model.Severity
	}{
		{0, model.SeverityLow},
		{29, model.SeverityLow},
		{30, model.SeverityModerate},
		{59, model.SeverityModerate},
		{60, model.SeverityHigh},
		{85, model.SeverityHigh}, // 85属High，边界不含于Critical
		{86, model.SeverityCritical},
		{100, model.SeverityCritical},
	}

	for _, tc := range cases {
		if got := Classify(tc.composite); got != tc.expected {
			t.Fatalf("综合分%d: 期望 %s，得到 %s", tc.composite, tc.expected, got)
		}
	}
}
