package scoring

import (
	"math"
	"testing"

	"ScoreRadar/pkg/model"
)

func TestStructureUnavailableOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	if out := Structure(StructureInput{}); out.Available {
		t.Fatal("人员与股本全缺失时应不可用")
	}

	// 任何一个股本字段存在即可用
	out := Structure(StructureInput{SharesTotal: Some(1000)})
	if !out.Available {
		t.Fatal("存在股本字段时应可用")
	}

	// 只有人员也可用
	out = Structure(StructureInput{
		Personnel: []*model.PersonnelRecord{{TenureYears: 3}},
	})
	if !out.Available {
		t.Fatal("存在人员记录时应可用")
	}
}

func TestPedigreeScore(t *testing.T) {
	t.Parallel()

	// 无人员默认50
	if got := pedigreeScore(nil); got != 50 {
		t.Fatalf("期望50，得到 %v", got)
	}

	// 单人：任期5年、1家前公司
	// E = (5+3)×5 = 40，C = 10，A = 50（无学历关键词），M = 50
	// 40×0.40 + 10×0.25 + 50×0.20 + 50×0.15 = 36
	personnel := []*model.PersonnelRecord{
		{TenureYears: 5, PriorCompanies: []string{"Acme Corp"}},
	}
	if got := pedigreeScore(personnel); math.Abs(got-36) > 1e-9 {
		t.Fatalf("期望36，得到 %v", got)
	}
}

func TestEducationScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		education string
		expected  float64
	}{
		{"PhD in Geology, University of Toronto", 100},
		{"Doctorate of Philosophy", 100},
		{"MBA, Rotman School", 90},
		{"CFA charterholder", 85},
		{"P.Eng, mining engineer", 80},
		{"Bachelor of Commerce", 70},
		{"Mining Diploma", 50},
		{"Safety Certificate", 40},
		{"", 50},
		{"self taught", 50},
	}

	for _, tc := range cases {
		if got := educationScore(tc.education); got != tc.expected {
			t.Fatalf("%q: 期望 %v，得到 %v", tc.education, tc.expected, got)
		}
	}
}

func TestDilutionScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		current  Opt
		prior    Opt
		expected float64
	}{
		{"上年缺失不惩罚", Some(100), None(), 100},
		{"上年为零不惩罚", Some(100), Some(0), 100},
		{"回购不惩罚", Some(90), Some(100), 100},
		{"增发20%", Some(120), Some(100), 60},
		{"增发翻倍清零", Some(200), Some(100), 0},
	}

	for _, tc := range cases {
		if got := dilutionScore(tc.current, tc.prior); math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", tc.name, tc.expected, got)
		}
	}
}

func TestInsiderScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		insider  Opt
		total    Opt
		expected float64
	}{
		{"持股20%满分", Some(20), Some(100), 100},
		{"持股5%", Some(5), Some(100), 25},
		{"持股超过20%截断", Some(50), Some(100), 100},
		{"数据缺失中性分", None(), Some(100), 50},
		{"总股本为零中性分", Some(10), Some(0), 50},
	}

	for _, tc := range cases {
		if got := insiderScore(tc.insider, tc.total); math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("%s: 期望 %v，得到 %v", tc.name, tc.expected, got)
		}
	}
}

func TestStructureCombinesSubScores(t *testing.T) {
	t.Parallel()

	// pedigree=50（无人员），dilution=60，insider=100
	// 50×0.5 + 60×0.3 + 100×0.2 = 63
	out := Structure(StructureInput{
		SharesCurrent:   Some(120),
		SharesPriorYear: Some(100),
		SharesInsider:   Some(30),
		SharesTotal:     Some(120),
	})
	if !out.Available {
		t.Fatal("支柱应可用")
	}
	if math.Abs(out.Score-63) > 1e-9 {
		t.Fatalf("期望63，得到 %v", out.Score)
	}
}
