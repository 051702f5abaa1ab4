package anomaly

import (
	"strings"

	"ScoreRadar/pkg/model"
)

// 披露文本的关键词族，匹配标题、类型与摘要（不区分大小写）
var (
	consolidationKeywords = []string{
		"merger", "acquisition", "amalgamation", "business combination",
		"takeover", "arrangement agreement",
	}

	financingKeywords = []string{
		"financing", "private placement", "placement", "offering",
		"prospectus", "bought deal", "capital raise",
	}

	debtKeywords = []string{
		"debt", "loan", "credit facility", "debenture",
		"promissory note", "borrowing",
	}

	revenueKeywords = []string{
		"revenue", "sales", "profit", "earnings", "cash flow positive",
	}
)

// matchesAny 披露记录是否命中任一关键词
func matchesAny(d *model.DisclosureRecord, keywords []string) bool {
	text := strings.ToLower(d.Title + " " + d.Type + " " + d.Summary)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// countMatches 统计命中关键词的披露条数
func countMatches(disclosures []*model.DisclosureRecord, keywords []string) int {
	count := 0
	for _, d := range disclosures {
		if matchesAny(d, keywords) {
			count++
		}
	}
	return count
}
