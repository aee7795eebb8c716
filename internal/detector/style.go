package detector

import (
	"fmt"
	"strings"
)

// 文风信号权重
const (
	punctuationMin    = 3
	punctuationWeight = 20
	shoutingWeight    = 15
	clickbaitWeight   = 10
	sensationalMin    = 3
	sensationalWeight = 15
	shortTextWords    = 30
	shortTextWeight   = 10
	credibilityBonus  = 5
)

// AnalyzeStyle 对单段文本（标题或正文）做文风打分，结果可能为负
func (d *Detector) AnalyzeStyle(text string) Contribution {
	score := 0
	var reasons []string

	clean := Normalize(text)

	// 感叹号与阿拉伯问号统计原始文本
	if n := strings.Count(text, "!") + strings.Count(text, "؟"); n >= punctuationMin {
		score += punctuationWeight
		reasons = append(reasons, fmt.Sprintf("exclamation density (%d)", n))
	}

	if isAllUpper(text) {
		score += shoutingWeight
		reasons = append(reasons, "text written entirely in capitals")
	}

	for _, p := range d.lex.clickbait {
		if strings.Contains(clean, p.match) {
			score += clickbaitWeight
			reasons = append(reasons, "clickbait phrase: "+p.raw)
		}
	}

	emotional := 0
	for _, w := range d.lex.sensational {
		emotional += strings.Count(clean, w)
	}
	if emotional >= sensationalMin {
		score += sensationalWeight
		reasons = append(reasons, fmt.Sprintf("sensational word density (%d)", emotional))
	}

	if len(strings.Fields(clean)) < shortTextWords {
		score += shortTextWeight
		reasons = append(reasons, fmt.Sprintf("text too short (fewer than %d words)", shortTextWords))
	}

	// 引用信源的表述只扣分，不产生理由
	discount := 0
	for _, indicator := range d.lex.credibility {
		if strings.Contains(text, indicator) {
			discount += credibilityBonus
		}
	}
	score -= discount

	return Contribution{Score: score, Reasons: reasons}
}
