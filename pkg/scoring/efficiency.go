package scoring

import "strings"

// 运营效率支柱的常量
const efficiencyTargetRatio = 0.70 // 比率0.70视为满分

// EfficiencyInput 运营效率支柱输入
type EfficiencyInput struct {
	Sector             string
	OperatingExpense   Opt
	OverheadExpense    Opt
	RevenueTTM         Opt
	ExplorationExpense Opt
	RnDExpense         Opt
}

// Efficiency 计算运营效率支柱
// 按行业路由不同的效率比率：矿业类用勘探/运营支出，科技类用研发/运营支出，
// 其余行业用(营收-管理费用)/营收
func Efficiency(in EfficiencyInput) Outcome {
	switch {
	case isMiningSector(in.Sector):
		return ratioEfficiency(in.ExplorationExpense, in.OperatingExpense, "exploration_ratio")
	case isTechSector(in.Sector):
		return ratioEfficiency(in.RnDExpense, in.OperatingExpense, "rnd_ratio")
	default:
		return revenueEfficiency(in.RevenueTTM, in.OverheadExpense)
	}
}

// ratioEfficiency 比率类行业的效率得分
func ratioEfficiency(numerator, opex Opt, subName string) Outcome {
	// 运营支出为零无法形成比率，给中性分
	if opex.Valid && opex.Value == 0 {
		return Outcome{
			Score:     50,
			SubScores: map[string]float64{subName: 50},
			Available: true,
		}
	}
	if !numerator.Valid || !opex.Valid {
		return unavailable()
	}

	score := normalizeRatio(numerator.Value / opex.Value)
	return Outcome{
		Score:     score,
		SubScores: map[string]float64{subName: score},
		Available: true,
	}
}

// revenueEfficiency 一般行业的效率得分
func revenueEfficiency(revenue, overhead Opt) Outcome {
	if revenue.Valid && revenue.Value == 0 {
		return Outcome{
			Score:     0,
			SubScores: map[string]float64{"margin_ratio": 0},
			Available: true,
		}
	}
	if !revenue.Valid || !overhead.Valid {
		return unavailable()
	}

	score := normalizeRatio((revenue.Value - overhead.Value) / revenue.Value)
	return Outcome{
		Score:     score,
		SubScores: map[string]float64{"margin_ratio": score},
		Available: true,
	}
}

// normalizeRatio 比率归一化：0.70映射到100，上限100，下限0
func normalizeRatio(ratio float64) float64 {
	if ratio > 1 {
		return 100
	}
	return clamp(ratio/efficiencyTargetRatio*100, 0, 100)
}

var miningKeywords = []string{"mining", "metals", "materials", "gold", "silver", "exploration"}

var techKeywords = []string{"technology", "tech", "software", "semiconductor", "biotech", "pharma"}

func isMiningSector(sector string) bool {
	return sectorMatches(sector, miningKeywords)
}

func isTechSector(sector string) bool {
	return sectorMatches(sector, techKeywords)
}

func sectorMatches(sector string, keywords []string) bool {
	s := strings.ToLower(sector)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
