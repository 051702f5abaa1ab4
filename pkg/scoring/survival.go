package scoring

// 财务生存支柱的常量
const (
	runwayTargetMonths = 18.0 // 18个月跑道视为满分
	runwaySubWeight    = 0.6
	solvencySubWeight  = 0.4
)

// SurvivalInput 财务生存支柱输入
type SurvivalInput struct {
	Cash        Opt
	MonthlyBurn Opt // 负值代表盈利
	Debt        Opt
	Assets      Opt
}

// Survival 计算财务生存支柱
// 两个子指标：现金跑道60%、偿付能力40%；只有一个可用时单独使用，全缺失时支柱不可用
func Survival(in SurvivalInput) Outcome {
	runway, runwayOK := runwayScore(in.Cash, in.MonthlyBurn)
	solvency, solvencyOK := solvencyScore(in.Debt, in.Assets)

	if !runwayOK && !solvencyOK {
		return unavailable()
	}

	subScores := make(map[string]float64)
	var score float64
	switch {
	case runwayOK && solvencyOK:
		subScores["cash_runway"] = runway
		subScores["solvency"] = solvency
		score = runway*runwaySubWeight + solvency*solvencySubWeight
	case runwayOK:
		subScores["cash_runway"] = runway
		score = runway
	default:
		subScores["solvency"] = solvency
		score = solvency
	}

	return Outcome{Score: score, SubScores: subScores, Available: true}
}

// runwayScore 现金跑道得分
// 盈利规则优先于现金为零规则
func runwayScore(cash, burn Opt) (float64, bool) {
	if !cash.Valid || !burn.Valid {
		return 0, false
	}
	if burn.Value <= 0 {
		return 100, true // 盈利，跑道无限
	}
	if cash.Value == 0 {
		return 0, true
	}
	months := cash.Value / burn.Value
	return clamp(months/runwayTargetMonths*100, 0, 100), true
}

// solvencyScore 偿付能力得分
func solvencyScore(debt, assets Opt) (float64, bool) {
	if !debt.Valid || !assets.Valid {
		return 0, false
	}
	if debt.Value == 0 {
		return 100, true
	}
	if assets.Value == 0 {
		return 0, true
	}
	return clamp(100-200*(debt.Value/assets.Value), 0, 100), true
}
