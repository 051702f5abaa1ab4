package scoring

import (
	"math"
	"time"

	"ScoreRadar/pkg/model"
)

// Inputs 一次评分所需的全部只读数据
type Inputs struct {
	Entity      *model.Entity
	Snapshot    *model.FinancialSnapshot // 可为nil，等价于全字段缺失
	Personnel   []*model.PersonnelRecord
	Disclosures []*model.DisclosureRecord // 最新在前
	Now         time.Time
}

// Compute 计算完整的健康评分结果
// 纯函数：相同输入必然产出相同结果
func Compute(in Inputs) *model.ScoreResult {
	snapshot := in.Snapshot
	if snapshot == nil {
		snapshot = &model.FinancialSnapshot{}
	}

	sector := ""
	if in.Entity != nil {
		sector = in.Entity.Sector
	}

	survival := Survival(SurvivalInput{
		Cash:        FromPtr(snapshot.Cash),
		MonthlyBurn: FromPtr(snapshot.MonthlyBurn),
		Debt:        FromPtr(snapshot.Debt),
		Assets:      FromPtr(snapshot.Assets),
	})

	efficiency := Efficiency(EfficiencyInput{
		Sector:             sector,
		OperatingExpense:   FromPtr(snapshot.OperatingExpense),
		OverheadExpense:    FromPtr(snapshot.OverheadExpense),
		RevenueTTM:         FromPtr(snapshot.RevenueTTM),
		ExplorationExpense: FromPtr(snapshot.ExplorationExpense),
		RnDExpense:         FromPtr(snapshot.RnDExpense),
	})

	structure := Structure(StructureInput{
		Personnel:       in.Personnel,
		SharesCurrent:   FromPtr(snapshot.SharesCurrent),
		SharesPriorYear: FromPtr(snapshot.SharesPriorYear),
		SharesInsider:   FromPtr(snapshot.SharesInsider),
		SharesTotal:     FromPtr(snapshot.SharesTotal),
	})

	price := None()
	if in.Entity != nil && in.Entity.Price > 0 {
		price = Some(in.Entity.Price)
	}
	sentiment := Sentiment(SentimentInput{
		AvgVolume:           FromPtr(snapshot.AvgVolume),
		Price:               price,
		DaysSinceDisclosure: FromIntPtr(snapshot.DaysSinceDisclosure),
		Disclosures:         in.Disclosures,
		Now:                 in.Now,
	})

	pillars := []model.PillarScore{
		toPillar(model.PillarSurvival, BaseWeightSurvival, survival),
		toPillar(model.PillarEfficiency, BaseWeightEfficiency, efficiency),
		toPillar(model.PillarStructure, BaseWeightStructure, structure),
		toPillar(model.PillarSentiment, BaseWeightSentiment, sentiment),
	}
	pillars = Redistribute(pillars)

	var weighted float64
	var nullPillars []string
	for _, p := range pillars {
		if !p.Available {
			nullPillars = append(nullPillars, p.Name)
			continue
		}
		weighted += p.Score * p.AdjustedWeight
	}

	overall := int(clamp(math.Round(weighted), 0, 100))

	entityKey := ""
	if in.Entity != nil {
		entityKey = in.Entity.Key
	}

	return &model.ScoreResult{
		EntityKey:   entityKey,
		Pillars:     pillars,
		NullPillars: nullPillars,
		Overall:     overall,
		ComputedAt:  in.Now,
	}
}

func toPillar(name string, baseWeight float64, outcome Outcome) model.PillarScore {
	return model.PillarScore{
		Name:       name,
		Score:      outcome.Score,
		SubScores:  outcome.SubScores,
		BaseWeight: baseWeight,
		Available:  outcome.Available,
	}
}
