package scoring

import (
	"time"

	"ScoreRadar/pkg/model"
)

// 市场情绪支柱的常量
const (
	liquidityTarget    = 100000.0 // 日成交额10万视为满分
	liquiditySubWeight = 0.6
	velocitySubWeight  = 0.4

	velocityFreshDays  = 14 // 两周内有披露视为满分
	velocityStaleDays  = 60 // 超过60天无披露得零分
	velocityDefaultDay = 90 // 完全无披露信息时的默认天数
)

// SentimentInput 市场情绪支柱输入
type SentimentInput struct {
	AvgVolume           Opt
	Price               Opt
	DaysSinceDisclosure Opt
	Disclosures         []*model.DisclosureRecord // 最新在前
	Now                 time.Time
}

// Sentiment 计算市场情绪支柱
// 只有当成交量、价格、披露间隔与披露历史全部缺失时支柱才不可用
func Sentiment(in SentimentInput) Outcome {
	allAbsent := !in.AvgVolume.Valid && !in.Price.Valid &&
		!in.DaysSinceDisclosure.Valid && len(in.Disclosures) == 0
	if allAbsent {
		return unavailable()
	}

	velocity := newsVelocityScore(in.DaysSinceDisclosure, in.Disclosures, in.Now)

	// 流动性需要成交量与价格同时存在
	if !in.AvgVolume.Valid || !in.Price.Valid {
		return Outcome{
			Score:     velocity,
			SubScores: map[string]float64{"news_velocity": velocity},
			Available: true,
		}
	}

	liquidity := clamp(100*(in.AvgVolume.Value*in.Price.Value)/liquidityTarget, 0, 100)
	score := liquidity*liquiditySubWeight + velocity*velocitySubWeight
	return Outcome{
		Score: score,
		SubScores: map[string]float64{
			"liquidity":     liquidity,
			"news_velocity": velocity,
		},
		Available: true,
	}
}

// newsVelocityScore 披露节奏得分
// 间隔天数优先取快照字段，缺失时从最近披露日期推算，再缺失时默认90天
func newsVelocityScore(daysSince Opt, disclosures []*model.DisclosureRecord, now time.Time) float64 {
	days := velocityDefaultDay
	switch {
	case daysSince.Valid:
		days = int(daysSince.Value)
	case len(disclosures) > 0:
		latest := disclosures[0].Date
		for _, d := range disclosures[1:] {
			if d.Date.After(latest) {
				latest = d.Date
			}
		}
		days = int(now.Sub(latest).Hours() / 24)
	}

	switch {
	case days < velocityFreshDays:
		return 100
	case days > velocityStaleDays:
		return 0
	default:
		return 100 - float64(days-velocityFreshDays)*100/float64(velocityStaleDays-velocityFreshDays)
	}
}
