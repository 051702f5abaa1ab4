package scoring

import "ScoreRadar/pkg/model"

// 四大支柱的基础权重，和为1.0
const (
	BaseWeightSurvival   = 0.35
	BaseWeightEfficiency = 0.25
	BaseWeightStructure  = 0.25
	BaseWeightSentiment  = 0.15
)

// Redistribute 对不可用支柱做权重重分配
// 全部不可用时所有调整权重为0；全部可用时调整权重等于基础权重；
// 否则可用支柱按 base/totalAvailable 等比例放大，不可用支柱权重为0
func Redistribute(pillars []model.PillarScore) []model.PillarScore {
	var totalAvailable float64
	anyAvailable := false
	for _, p := range pillars {
		if p.Available {
			totalAvailable += p.BaseWeight
			anyAvailable = true
		}
	}

	for i := range pillars {
		if !anyAvailable || !pillars[i].Available {
			pillars[i].AdjustedWeight = 0
			continue
		}
		pillars[i].AdjustedWeight = pillars[i].BaseWeight / totalAvailable
	}

	return pillars
}
