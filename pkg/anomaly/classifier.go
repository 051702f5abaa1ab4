package anomaly

import "ScoreRadar/pkg/model"

// Classify 将综合分映射到离散严重程度
// 边界约定：85分属High，超过85才是Critical
func Classify(composite int) model.Severity {
	switch {
	case composite < 30:
		return model.SeverityLow
	case composite < 60:
		return model.SeverityModerate
	case composite <= 85:
		return model.SeverityHigh
	default:
		return model.SeverityCritical
	}
}
