package anomaly

import (
	"fmt"
	"math"
	"time"

	"ScoreRadar/pkg/model"
)

// 五个检测器的固定权重，和为1.0
const (
	WeightConsolidation = 0.30
	WeightFinancing     = 0.25
	WeightChurn         = 0.20
	WeightGaps          = 0.15
	WeightDebtTrend     = 0.10
)

// 融资频率的阶段阈值：市值低于5亿按3次计，否则按5次计
const (
	financingSmallCapThreshold = 500_000_000.0
	financingSmallCapEvents    = 3
	financingLargeCapEvents    = 5
)

// 债务趋势的比率阶梯与营收占比下限
const (
	debtRatioTier1       = 0.10
	debtRatioTier2       = 0.25
	debtRatioTier3       = 0.40
	debtRatioTier4       = 0.60
	revenueRatioEscalate = 0.20
)

// trailingWindow 红旗检测的回看窗口
const trailingWindow = 365 * 24 * time.Hour

// withinWindow 过滤出回看窗口内的披露
func withinWindow(disclosures []*model.DisclosureRecord, now time.Time) []*model.DisclosureRecord {
	cutoff := now.Add(-trailingWindow)
	var recent []*model.DisclosureRecord
	for _, d := range disclosures {
		if !d.Date.Before(cutoff) {
			recent = append(recent, d)
		}
	}
	return recent
}

// detectConsolidation 并购整合频率
// 12个月内并购类披露0/1/2/3/4/5+次分别对应0/20/40/60/80/100分
func detectConsolidation(disclosures []*model.DisclosureRecord, now time.Time) model.DetectorScore {
	count := countMatches(withinWindow(disclosures, now), consolidationKeywords)
	score := math.Min(100, float64(count)*20)
	return newDetectorScore(model.DetectorConsolidation, score, WeightConsolidation,
		fmt.Sprintf("近12个月并购类披露%d次", count))
}

// detectFinancing 融资频率
// 按市值阶段选择事件阈值，得分为 min(100, round(count/threshold×100))
func detectFinancing(disclosures []*model.DisclosureRecord, marketCap float64, now time.Time) model.DetectorScore {
	count := countMatches(withinWindow(disclosures, now), financingKeywords)

	threshold := financingLargeCapEvents
	if marketCap < financingSmallCapThreshold {
		threshold = financingSmallCapEvents
	}

	score := math.Min(100, math.Round(float64(count)/float64(threshold)*100))
	return newDetectorScore(model.DetectorFinancing, score, WeightFinancing,
		fmt.Sprintf("近12个月融资类披露%d次（阈值%d次）", count, threshold))
}

// detectChurn 高管更替
// 任期不满一年的人员0/1/2/3/4+人分别对应0/25/50/75/100分
func detectChurn(personnel []*model.PersonnelRecord) model.DetectorScore {
	count := 0
	for _, p := range personnel {
		if p.TenureYears < 1 {
			count++
		}
	}
	score := math.Min(100, float64(count)*25)
	return newDetectorScore(model.DetectorChurn, score, WeightChurn,
		fmt.Sprintf("任期不满一年的高管%d人", count))
}

// detectGaps 披露空窗
// 距最近一次披露的天数分档：<30/30-59/60-89/90-119/≥120对应0/25/50/75/100，无披露记录给100
func detectGaps(disclosures []*model.DisclosureRecord, now time.Time) model.DetectorScore {
	if len(disclosures) == 0 {
		return newDetectorScore(model.DetectorGaps, 100, WeightGaps, "无任何披露记录")
	}

	latest := disclosures[0].Date
	for _, d := range disclosures[1:] {
		if d.Date.After(latest) {
			latest = d.Date
		}
	}
	days := int(now.Sub(latest).Hours() / 24)

	var score float64
	switch {
	case days < 30:
		score = 0
	case days < 60:
		score = 25
	case days < 90:
		score = 50
	case days < 120:
		score = 75
	default:
		score = 100
	}
	return newDetectorScore(model.DetectorGaps, score, WeightGaps,
		fmt.Sprintf("距最近披露%d天", days))
}

// detectDebtTrend 债务趋势
// 在12个月披露中比较债务类与营收类披露占比，营收占比过低时升一档
func detectDebtTrend(disclosures []*model.DisclosureRecord, now time.Time) model.DetectorScore {
	recent := withinWindow(disclosures, now)
	total := len(recent)
	if total == 0 {
		return newDetectorScore(model.DetectorDebtTrend, 0, WeightDebtTrend, "近12个月无披露")
	}

	debtCount := countMatches(recent, debtKeywords)
	revenueCount := countMatches(recent, revenueKeywords)
	debtRatio := float64(debtCount) / float64(total)
	revenueRatio := float64(revenueCount) / float64(total)

	var score float64
	switch {
	case debtRatio < debtRatioTier1:
		score = 0
	case debtRatio < debtRatioTier2:
		score = 25
	case debtRatio < debtRatioTier3:
		score = 50
	case debtRatio < debtRatioTier4:
		score = 75
	default:
		score = 100
	}

	// 债务信号存在且营收信号稀薄时升一档
	if score > 0 && revenueRatio < revenueRatioEscalate {
		score = math.Min(100, score+25)
	}

	return newDetectorScore(model.DetectorDebtTrend, score, WeightDebtTrend,
		fmt.Sprintf("债务类披露占比%.0f%%，营收类披露占比%.0f%%", debtRatio*100, revenueRatio*100))
}

func newDetectorScore(t model.DetectorType, score, weight float64, description string) model.DetectorScore {
	return model.DetectorScore{
		Type:        t,
		Score:       score,
		Weight:      weight,
		Weighted:    score * weight,
		Description: description,
	}
}
