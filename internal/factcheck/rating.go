package factcheck

import "strings"

// Label 核查结论归类
type Label string

const (
	LabelTrue       Label = "TRUE"
	LabelFalse      Label = "FALSE"
	LabelMisleading Label = "MISLEADING"
	LabelUnproven   Label = "UNPROVEN"
)

// labelOrder 同时是计数并列时的优先顺序
var labelOrder = []Label{LabelTrue, LabelFalse, LabelMisleading, LabelUnproven}

// 按顺序匹配，先命中者为准；都不命中归为 UNPROVEN
var labelKeywords = []struct {
	label    Label
	keywords []string
}{
	{LabelTrue, []string{"TRUE", "صحيح", "حقيقي"}},
	{LabelFalse, []string{"FALSE", "خاطئ", "مزيف"}},
	{LabelMisleading, []string{"MISLEADING", "مضلل"}},
}

// Summary 多条核查记录的汇总结论
type Summary struct {
	Rating Label `json:"rating"`
	Count  int   `json:"count"`
	Total  int   `json:"total"`
}

// Classify 把一条文字评级归入四类之一
func Classify(rating string) Label {
	upper := strings.ToUpper(rating)
	for _, lk := range labelKeywords {
		for _, kw := range lk.keywords {
			if strings.Contains(upper, kw) {
				return lk.label
			}
		}
	}
	return LabelUnproven
}

// Summarize 取出现次数最多的归类；并列时按 TRUE、FALSE、MISLEADING、UNPROVEN 的顺序取第一个。
// 没有记录时返回 false。
func Summarize(reviews []ClaimReview) (Summary, bool) {
	if len(reviews) == 0 {
		return Summary{}, false
	}

	counts := make(map[Label]int, len(labelOrder))
	for _, r := range reviews {
		counts[Classify(r.Rating)]++
	}

	best := labelOrder[0]
	for _, l := range labelOrder[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}

	return Summary{Rating: best, Count: counts[best], Total: len(reviews)}, true
}
