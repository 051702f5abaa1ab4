package anomaly

import (
	"math"
	"time"

	"ScoreRadar/pkg/model"
)

// Inputs 一次红旗分析所需的全部只读数据
type Inputs struct {
	Entity      *model.Entity
	Personnel   []*model.PersonnelRecord
	Disclosures []*model.DisclosureRecord // 最新在前
	Now         time.Time
}

// Analyze 运行全部检测器并产出红旗画像
// 纯函数：相同输入必然产出相同结果
func Analyze(in Inputs) *model.AnomalyResult {
	marketCap := 0.0
	entityKey := ""
	if in.Entity != nil {
		marketCap = in.Entity.MarketCap
		entityKey = in.Entity.Key
	}

	detectors := []model.DetectorScore{
		detectConsolidation(in.Disclosures, in.Now),
		detectFinancing(in.Disclosures, marketCap, in.Now),
		detectChurn(in.Personnel),
		detectGaps(in.Disclosures, in.Now),
		detectDebtTrend(in.Disclosures, in.Now),
	}

	var weighted float64
	for _, d := range detectors {
		weighted += d.Weighted
	}
	composite := int(math.Min(100, math.Max(0, math.Round(weighted))))

	return &model.AnomalyResult{
		EntityKey:  entityKey,
		Detectors:  detectors,
		Composite:  composite,
		Severity:   Classify(composite),
		ComputedAt: in.Now,
	}
}
