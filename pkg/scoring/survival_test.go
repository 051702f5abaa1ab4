package scoring

import (
	"math"
	"testing"
)

func TestSurvivalProfitableOverridesZeroCash(t *testing.T) {
	t.Parallel()

	// 现金为零但burn也为零：盈利规则优先，跑道满分
	out := Survival(SurvivalInput{Cash: Some(0), MonthlyBurn: Some(0)})
	if !out.Available {
		t.Fatal("支柱应可用")
	}
	if out.SubScores["cash_runway"] != 100 {
		t.Fatalf("期望跑道得分100，得到 %v", out.SubScores["cash_runway"])
	}
	if out.Score != 100 {
		t.Fatalf("期望支柱得分100，得到 %v", out.Score)
	}
}

func TestSurvivalRunway(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		cash     float64
		burn     float64
		expected float64
	}{
		{"盈利", 1000, -5, 100},
		{"现金为零", 0, 100, 0},
		{"9个月跑道", 900, 100, 50},
		{"18个月跑道", 1800, 100, 100},
		{"超长跑道截断", 10000, 100, 100},
	}

	for _, tc := range cases {
		out := Survival(SurvivalInput{Cash: Some(tc.cash), MonthlyBurn: Some(tc.burn)})
		if !out.Available {
			t.Fatalf("%s: 支柱应可用", tc.name)
		}
		if math.Abs(out.Score-tc.expected) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", tc.name, tc.expected, out.Score)
		}
	}
}

func TestSurvivalSolvency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		debt     float64
		assets   float64
		expected float64
	}{
		{"无债务", 0, 0, 100},
		{"有债务无资产", 50, 0, 0},
		{"债务占比25%", 25, 100, 50},
		{"债务占比过半清零", 60, 100, 0},
	}

	for _, tc := range cases {
		out := Survival(SurvivalInput{Debt: Some(tc.debt), Assets: Some(tc.assets)})
		if !out.Available {
			t.Fatalf("%s: 支柱应可用", tc.name)
		}
		if math.Abs(out.Score-tc.expected) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", tc.name, tc.expected, out.Score)
		}
	}
}

func TestSurvivalCombines(t *testing.T) {
	t.Parallel()

	// 跑道50、偿付100 → 0.6×50 + 0.4×100 = 70
	out := Survival(SurvivalInput{
		Cash:        Some(900),
		MonthlyBurn: Some(100),
		Debt:        Some(0),
		Assets:      Some(1000),
	})
	if math.Abs(out.Score-70) > 1e-9 {
		t.Fatalf("期望70，得到 %v", out.Score)
	}
	if len(out.SubScores) != 2 {
		t.Fatalf("期望两个子指标，得到 %d", len(out.SubScores))
	}
}

func TestSurvivalUnavailable(t *testing.T) {
	t.Parallel()

	out := Survival(SurvivalInput{})
	if out.Available {
		t.Fatal("全部输入缺失时支柱应不可用")
	}

	// 只缺一侧输入时仍然可用
	out = Survival(SurvivalInput{Cash: Some(100), MonthlyBurn: Some(10)})
	if !out.Available {
		t.Fatal("跑道输入存在时支柱应可用")
	}
}
