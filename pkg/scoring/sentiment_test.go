package scoring

import (
	"math"
	"testing"
	"time"

	"ScoreRadar/pkg/model"
)

var sentimentNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestSentimentCombines(t *testing.T) {
	t.Parallel()

	// 流动性 100×(1000×50)/100000 = 50；披露间隔14天 → 100
	// 0.6×50 + 0.4×100 = 70
	out := Sentiment(SentimentInput{
		AvgVolume:           Some(1000),
		Price:               Some(50),
		DaysSinceDisclosure: Some(14),
		Now:                 sentimentNow,
	})
	if !out.Available {
		t.Fatal("支柱应可用")
	}
	if math.Abs(out.Score-70) > 1e-9 {
		t.Fatalf("期望70，得到 %v", out.Score)
	}
}

func TestNewsVelocityMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		days     float64
		expected float64
	}{
		{0, 100},
		{13, 100},
		{14, 100}, // 公式在14天处取100
		{37, 50},
		{60, 0},
		{90, 0},
	}

	for _, tc := range cases {
		got := newsVelocityScore(Some(tc.days), nil, sentimentNow)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("%v天: 期望 %v，得到 %v", tc.days, tc.expected, got)
		}
	}
}

func TestNewsVelocityFallbacks(t *testing.T) {
	t.Parallel()

	// 间隔字段缺失时从最近披露日期推算：37天前 → 50
	disclosures := []*model.DisclosureRecord{
		{Date: sentimentNow.AddDate(0, 0, -37)},
		{Date: sentimentNow.AddDate(0, 0, -200)},
	}
	if got := newsVelocityScore(None(), disclosures, sentimentNow); math.Abs(got-50) > 1e-9 {
		t.Fatalf("期望50，得到 %v", got)
	}

	// 两者都缺失时默认90天 → 0
	if got := newsVelocityScore(None(), nil, sentimentNow); got != 0 {
		t.Fatalf("期望0，得到 %v", got)
	}
}

func TestSentimentNewsOnly(t *testing.T) {
	t.Parallel()

	// 流动性输入不全时披露节奏占100%
	out := Sentiment(SentimentInput{
		DaysSinceDisclosure: Some(10),
		Now:                 sentimentNow,
	})
	if !out.Available {
		t.Fatal("支柱应可用")
	}
	if out.Score != 100 {
		t.Fatalf("期望100，得到 %v", out.Score)
	}
	if _, exists := out.SubScores["liquidity"]; exists {
		t.Fatal("流动性子指标不应存在")
	}
}

func TestSentimentUnavailable(t *testing.T) {
	t.Parallel()

	out := Sentiment(SentimentInput{Now: sentimentNow})
	if out.Available {
		t.Fatal("成交量、价格、间隔与披露历史全缺失时应不可用")
	}
}
