package factcheck

import (
	"strings"
	"unicode"
)

// DetectLanguage 粗略判断文本语言，阿拉伯字母占多数时返回 "ar"，否则 "en"；
// 没有任何字母时返回 fallback
func DetectLanguage(text, fallback string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	var arabic, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Arabic, r) {
			arabic++
		}
	}
	if letters == 0 {
		return fallback
	}
	if arabic*2 >= letters {
		return "ar"
	}
	return "en"
}
