package detector

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 阿拉伯文 Unicode 区块
const (
	arabicBlockStart = 0x0600
	arabicBlockEnd   = 0x06FF
)

// Normalize 小写化，去掉非文字字符，并把连续空白压缩为一个空格。
// 对任意输入都有定义，且 Normalize(Normalize(s)) == Normalize(s)。
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// cases.Caser 有状态，不能跨 goroutine 复用，这里每次新建
	lower := cases.Lower(language.Und).String(text)

	mapped := strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, lower)

	return strings.Join(strings.Fields(mapped), " ")
}

func keepRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return true
	case r >= arabicBlockStart && r <= arabicBlockEnd:
		return true
	}
	return false
}

// isAllUpper 至少包含一个区分大小写的字符，且没有小写/标题字符
func isAllUpper(text string) bool {
	cased := false
	for _, r := range text {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
