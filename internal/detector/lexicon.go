package detector

import "strings"

// Lexicons 是检测器使用的全部词表，进程启动时构造一次，之后只读
type Lexicons struct {
	Clickbait      []string `json:"clickbait"`
	Sensational    []string `json:"sensational"`
	Credibility    []string `json:"credibility"`
	TrustedSources []string `json:"trustedSources"`
	// 可信来源优先匹配，命中后不再检查不可信列表
	UntrustedSources []string `json:"untrustedSources"`
}

// DefaultLexicons 返回内置词表（阿拉伯语 + 英语）
func DefaultLexicons() Lexicons {
	return Lexicons{
		Clickbait: []string{
			"عاجل", "خطير", "لن تصدق", "صدمة", "كارثة", "تحذير",
			"فضيحة", "مذهل", "مفاجأة", "مروع", "صادم", "لا تعليق",
			"breaking", "urgent", "shocking", "unbelievable", "you won't believe",
		},
		// "فضيحة" 出现两次：按词表累计计数，重复条目会被重复计入
		Sensational: []string{
			"كارثة", "إنهيار", "حرب", "أزمة", "إغتيال", "موت",
			"فضيحة", "إتهام", "فضيحة", "إعتقال", "سجن",
		},
		Credibility: []string{
			"مصدر مسؤول", "حسب مصادر", "صرح لـ", "ذكرت وكالة",
			"نقلاً عن", "حسب ما أفاد", "بحسب",
		},
		TrustedSources: []string{
			"reuters", "associated press", "apnews", "bbc", "aljazeera", "الجزيرة",
			"alarabiya", "العربية", "france24", "skynews", "وكالة الأنباء", "afp",
		},
		UntrustedSources: []string{
			"facebook", "فيسبوك", "whatsapp", "واتساب", "telegram", "تلغرام",
			"tiktok", "تيك توك", "منشور", "blogspot",
		},
	}
}

// Clone 返回深拷贝，避免调用方后续修改影响已构造的检测器
func (l Lexicons) Clone() Lexicons {
	return Lexicons{
		Clickbait:        cloneStrings(l.Clickbait),
		Sensational:      cloneStrings(l.Sensational),
		Credibility:      cloneStrings(l.Credibility),
		TrustedSources:   cloneStrings(l.TrustedSources),
		UntrustedSources: cloneStrings(l.UntrustedSources),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// phrase 保存原始词条（用于理由文案）与用于匹配的形式
type phrase struct {
	raw   string
	match string
}

// compiled 是检测器内部使用的不可变词表
type compiled struct {
	clickbait   []phrase
	sensational []string
	credibility []string
	trusted     []string
	untrusted   []string
}

func compile(l Lexicons) compiled {
	c := compiled{
		clickbait:   make([]phrase, 0, len(l.Clickbait)),
		sensational: make([]string, 0, len(l.Sensational)),
		credibility: nonEmpty(l.Credibility, func(s string) string { return s }),
		trusted:     nonEmpty(l.TrustedSources, strings.ToLower),
		untrusted:   nonEmpty(l.UntrustedSources, strings.ToLower),
	}
	// 标题/正文会先经过 Normalize，词条也按同样规则归一化，
	// 否则 "you won't believe" 中的撇号永远无法命中
	for _, w := range l.Clickbait {
		if m := Normalize(w); m != "" {
			c.clickbait = append(c.clickbait, phrase{raw: w, match: m})
		}
	}
	for _, w := range l.Sensational {
		if m := Normalize(w); m != "" {
			c.sensational = append(c.sensational, m)
		}
	}
	return c
}

func nonEmpty(in []string, fn func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, fn(s))
	}
	return out
}
