package detector

import "regexp"

const shortLinkWeight = 15

// 短链域名，按顺序匹配
var shortLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`bit\.ly/[\p{L}\p{N}_]+`),
	regexp.MustCompile(`tinyurl\.com/[\p{L}\p{N}_]+`),
	regexp.MustCompile(`goo\.gl/[\p{L}\p{N}_]+`),
	regexp.MustCompile(`is\.gd/[\p{L}\p{N}_]+`),
}

// CheckURLPatterns 检查原始文本中的短链，多个短链只计一次
func (d *Detector) CheckURLPatterns(text string) Contribution {
	for _, p := range shortLinkPatterns {
		if p.MatchString(text) {
			return Contribution{Score: shortLinkWeight, Reasons: []string{"contains shortened/suspicious link"}}
		}
	}
	return Contribution{}
}
