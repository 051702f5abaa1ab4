package scoring

import (
	"strings"

	"ScoreRadar/pkg/model"
)

// 股东结构支柱的子指标权重
const (
	pedigreeSubWeight = 0.50
	dilutionSubWeight = 0.30
	insiderSubWeight  = 0.20
)

// StructureInput 股东结构支柱输入
type StructureInput struct {
	Personnel       []*model.PersonnelRecord
	SharesCurrent   Opt
	SharesPriorYear Opt
	SharesInsider   Opt
	SharesTotal     Opt
}

// Structure 计算股东结构支柱
// 只有当人员列表为空且四个股本字段全部缺失时支柱才不可用
func Structure(in StructureInput) Outcome {
	if len(in.Personnel) == 0 &&
		!in.SharesCurrent.Valid && !in.SharesPriorYear.Valid &&
		!in.SharesInsider.Valid && !in.SharesTotal.Valid {
		return unavailable()
	}

	pedigree := pedigreeScore(in.Personnel)
	dilution := dilutionScore(in.SharesCurrent, in.SharesPriorYear)
	insider := insiderScore(in.SharesInsider, in.SharesTotal)

	score := pedigree*pedigreeSubWeight + dilution*dilutionSubWeight + insider*insiderSubWeight
	return Outcome{
		Score: score,
		SubScores: map[string]float64{
			"pedigree":          pedigree,
			"dilution_penalty":  dilution,
			"insider_alignment": insider,
		},
		Available: true,
	}
}

// pedigreeScore 管理团队履历得分
// E×0.40 + C×0.25 + A×0.20 + M×0.15
func pedigreeScore(personnel []*model.PersonnelRecord) float64 {
	if len(personnel) == 0 {
		return 50
	}

	// E：平均(任期 + 3×前公司数)×5
	var experienceSum float64
	distinctCompanies := make(map[string]struct{})
	var educationSum float64

	for _, p := range personnel {
		experienceSum += p.TenureYears + 3*float64(len(p.PriorCompanies))
		for _, company := range p.PriorCompanies {
			distinctCompanies[strings.ToLower(strings.TrimSpace(company))] = struct{}{}
		}
		educationSum += educationScore(p.Education)
	}

	experience := clamp(experienceSum/float64(len(personnel))*5, 0, 100)

	// C：不同前公司数×10，上限100
	connections := float64(len(distinctCompanies)) * 10
	if connections > 100 {
		connections = 100
	}

	// A：教育背景平均分
	academics := educationSum / float64(len(personnel))

	// M：无市场对齐信号，固定50
	const market = 50.0

	return experience*0.40 + connections*0.25 + academics*0.20 + market*0.15
}

// 教育背景关键词到得分的映射，取匹配到的最高档
var educationRanks = []struct {
	keywords []string
	score    float64
}{
	{[]string{"phd", "ph.d", "doctorate"}, 100},
	{[]string{"mba"}, 90},
	{[]string{"cfa", "cpa"}, 85},
	{[]string{"p.eng", "p.geo", "peng", "pgeo"}, 80},
	{[]string{"bachelor", "bsc", "b.sc", "beng", "b.eng", "bcom", "b.com", "ba "}, 70},
	{[]string{"diploma"}, 50},
	{[]string{"certificate"}, 40},
}

func educationScore(education string) float64 {
	s := strings.ToLower(education)
	for _, rank := range educationRanks {
		for _, kw := range rank.keywords {
			if strings.Contains(s, kw) {
				return rank.score
			}
		}
	}
	return 50
}

// dilutionScore 稀释惩罚得分
// 上年股本缺失或为零、或股本减少（回购）时不做惩罚
func dilutionScore(current, prior Opt) float64 {
	if !prior.Valid || prior.Value == 0 || !current.Valid || current.Value <= prior.Value {
		return 100
	}
	return clamp(100-200*((current.Value-prior.Value)/prior.Value), 0, 100)
}

// insiderScore 内部人持股对齐得分
// 持股20%视为满分，数据缺失时给中性分
func insiderScore(insider, total Opt) float64 {
	if !insider.Valid || !total.Valid || total.Value == 0 {
		return 50
	}
	return clamp(100*(insider.Value/total.Value)/0.20, 0, 100)
}
