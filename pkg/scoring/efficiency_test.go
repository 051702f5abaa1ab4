package scoring

import (
	"math"
	"testing"
)

func TestEfficiencySectorRouting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       EfficiencyInput
		expected float64
	}{
		{
			name: "矿业按勘探比率",
			in: EfficiencyInput{
				Sector:             "Metals & Mining",
				ExplorationExpense: Some(35),
				OperatingExpense:   Some(100),
			},
			expected: 50, // 0.35 / 0.70 × 100
		},
		{
			name: "科技按研发比率",
			in: EfficiencyInput{
				Sector:           "Technology",
				RnDExpense:       Some(70),
				OperatingExpense: Some(100),
			},
			expected: 100,
		},
		{
			name: "一般行业按毛利率",
			in: EfficiencyInput{
				Sector:          "Consumer Goods",
				RevenueTTM:      Some(100),
				OverheadExpense: Some(30),
			},
			expected: 100, // (100-30)/100 = 0.70
		},
		{
			name: "比率超过1截断到100",
			in: EfficiencyInput{
				Sector:             "Gold Exploration",
				ExplorationExpense: Some(150),
				OperatingExpense:   Some(100),
			},
			expected: 100,
		},
		{
			name: "负毛利清零",
			in: EfficiencyInput{
				Sector:          "Consumer Goods",
				RevenueTTM:      Some(100),
				OverheadExpense: Some(150),
			},
			expected: 0,
		},
	}

	for _, tc := range cases {
		out := Efficiency(tc.in)
		if !out.Available {
			t.Fatalf("%s: 支柱应可用", tc.name)
		}
		if math.Abs(out.Score-tc.expected) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", tc.name, tc.expected, out.Score)
		}
	}
}

func TestEfficiencyZeroDenominators(t *testing.T) {
	t.Parallel()

	// 比率类行业运营支出为零给中性分
	out := Efficiency(EfficiencyInput{
		Sector:           "Mining",
		OperatingExpense: Some(0),
	})
	if !out.Available || out.Score != 50 {
		t.Fatalf("期望中性分50，得到 %v (available=%v)", out.Score, out.Available)
	}

	// 一般行业营收为零得零分
	out = Efficiency(EfficiencyInput{
		Sector:     "Consumer Goods",
		RevenueTTM: Some(0),
	})
	if !out.Available || out.Score != 0 {
		t.Fatalf("期望0分，得到 %v (available=%v)", out.Score, out.Available)
	}
}

func TestEfficiencyUnavailable(t *testing.T) {
	t.Parallel()

	if out := Efficiency(EfficiencyInput{Sector: "Mining"}); out.Available {
		t.Fatal("矿业全输入缺失时应不可用")
	}
	if out := Efficiency(EfficiencyInput{Sector: "Software"}); out.Available {
		t.Fatal("科技全输入缺失时应不可用")
	}
	if out := Efficiency(EfficiencyInput{Sector: "Consumer Goods"}); out.Available {
		t.Fatal("一般行业全输入缺失时应不可用")
	}
}
