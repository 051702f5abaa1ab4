package scoring

import (
	"math"
	"testing"

	"ScoreRadar/pkg/model"
)

func basePillars() []model.PillarScore {
	return []model.PillarScore{
		{Name: model.PillarSurvival, BaseWeight: BaseWeightSurvival, Available: true},
		{Name: model.PillarEfficiency, BaseWeight: BaseWeightEfficiency, Available: true},
		{Name: model.PillarStructure, BaseWeight: BaseWeightStructure, Available: true},
		{Name: model.PillarSentiment, BaseWeight: BaseWeightSentiment, Available: true},
	}
}

// 除全不可用外的任意不可用组合，可用支柱的调整权重之和必须为1
func TestRedistributeSumProperty(t *testing.T) {
	t.Parallel()

	for mask := 0; mask < 15; mask++ { // mask位为1表示该支柱不可用，1111（全不可用）单独测试
		pillars := basePillars()
		for i := range pillars {
			if mask&(1<<i) != 0 {
				pillars[i].Available = false
			}
		}

		pillars = Redistribute(pillars)

		var sum float64
		for _, p := range pillars {
			if !p.Available && p.AdjustedWeight != 0 {
				t.Fatalf("mask=%d: 不可用支柱 %s 的调整权重应为0，得到 %v", mask, p.Name, p.AdjustedWeight)
			}
			sum += p.AdjustedWeight
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("mask=%d: 调整权重之和期望1.0，得到 %v", mask, sum)
		}
	}
}

func TestRedistributeAllUnavailable(t *testing.T) {
	t.Parallel()

	pillars := basePillars()
	for i := range pillars {
		pillars[i].Available = false
	}

	pillars = Redistribute(pillars)
	for _, p := range pillars {
		if p.AdjustedWeight != 0 {
			t.Fatalf("全不可用时 %s 的调整权重应为0，得到 %v", p.Name, p.AdjustedWeight)
		}
	}
}

func TestRedistributeNoneUnavailable(t *testing.T) {
	t.Parallel()

	pillars := Redistribute(basePillars())
	for _, p := range pillars {
		if math.Abs(p.AdjustedWeight-p.BaseWeight) > 1e-9 {
			t.Fatalf("%s: 期望调整权重等于基础权重 %v，得到 %v", p.Name, p.BaseWeight, p.AdjustedWeight)
		}
	}
}

// 财务生存不可用时的权重重分配数值
func TestRedistributeSurvivalUnavailable(t *testing.T) {
	t.Parallel()

	pillars := basePillars()
	pillars[0].Available = false

	pillars = Redistribute(pillars)

	expected := map[string]float64{
		model.PillarSurvival:   0,
		model.PillarEfficiency: 0.25 / 0.65,
		model.PillarStructure:  0.25 / 0.65,
		model.PillarSentiment:  0.15 / 0.65,
	}
	for _, p := range pillars {
		if math.Abs(p.AdjustedWeight-expected[p.Name]) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", p.Name, expected[p.Name], p.AdjustedWeight)
		}
	}

	// 具体数值：0.25/0.65≈0.3846，0.15/0.65≈0.2308
	if math.Abs(pillars[1].AdjustedWeight-0.3846) > 1e-4 {
		t.Fatalf("期望约0.3846，得到 %v", pillars[1].AdjustedWeight)
	}
	if math.Abs(pillars[3].AdjustedWeight-0.2308) > 1e-4 {
		t.Fatalf("期望约0.2308，得到 %v", pillars[3].AdjustedWeight)
	}
}
