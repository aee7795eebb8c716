package detector

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestDetector() *Detector {
	fixed := time.Date(2024, 1, 3, 10, 20, 30, 0, time.Local)
	return New(DefaultLexicons(), WithClock(func() time.Time { return fixed }))
}

// neutralText 生成不含任何词表命中的中性长句
func neutralText(words int) string {
	return strings.TrimSpace(strings.Repeat("the committee met today ", words/4))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello, World!!", "hello world"},
		{"  عاجل:   خبر  ", "عاجل خبر"},
		{"snake_case\tand\nlines", "snake_case and lines"},
		{"ما هذا؟", "ما هذا؟"},
		{"100% (sure)", "100 sure"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"BREAKING: You Won't Believe This!!!",
		"İstanbul ΟΔΟΣ",
		"عاجل!!! صدمة... بحسب مصادر",
		"bit.ly/abc123 -- tinyurl.com/xyz",
		"\xff\xfe invalid utf8",
		" non breaking　spaces",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score      int
		verdict    Verdict
		confidence Confidence
		color      ColorTag
	}{
		{75, VerdictFake, ConfidenceHigh, ColorDanger},
		{50, VerdictFake, ConfidenceHigh, ColorDanger},
		{49, VerdictSuspicious, ConfidenceMedium, ColorWarning},
		{30, VerdictSuspicious, ConfidenceMedium, ColorWarning},
		{29, VerdictReal, ConfidenceLow, ColorSuccess},
		{-20, VerdictReal, ConfidenceLow, ColorSuccess},
	}
	for _, c := range cases {
		v, conf, color := Classify(c.score)
		if v != c.verdict || conf != c.confidence || color != c.color {
			t.Fatalf("Classify(%d) = %s/%s/%s, want %s/%s/%s", c.score, v, conf, color, c.verdict, c.confidence, c.color)
		}
	}
}

func TestAnalyzeStylePunctuation(t *testing.T) {
	d := newTestDetector()
	text := neutralText(40) + " wow!!! really؟"
	got := d.AnalyzeStyle(text)
	if got.Score != punctuationWeight {
		t.Fatalf("score = %d, want %d (%v)", got.Score, punctuationWeight, got.Reasons)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "exclamation density (4)" {
		t.Fatalf("unexpected reasons: %v", got.Reasons)
	}
}

func TestAnalyzeStyleShoutingAndOrder(t *testing.T) {
	d := newTestDetector()
	got := d.AnalyzeStyle("BREAKING NEWS")
	if got.Score != shoutingWeight+clickbaitWeight+shortTextWeight {
		t.Fatalf("score = %d, want 35 (%v)", got.Score, got.Reasons)
	}
	want := []string{
		"text written entirely in capitals",
		"clickbait phrase: breaking",
		"text too short (fewer than 30 words)",
	}
	if strings.Join(got.Reasons, "|") != strings.Join(want, "|") {
		t.Fatalf("reasons = %v, want %v", got.Reasons, want)
	}
}

func TestAnalyzeStyleArabicIsNotShouting(t *testing.T) {
	d := newTestDetector()
	got := d.AnalyzeStyle("اجتماع اللجنة اليوم")
	for _, r := range got.Reasons {
		if r == "text written entirely in capitals" {
			t.Fatalf("arabic text must not count as upper-case: %v", got.Reasons)
		}
	}
}

func TestAnalyzeStyleClickbaitWithApostrophe(t *testing.T) {
	d := newTestDetector()
	got := d.AnalyzeStyle("You Won't Believe this")
	if got.Score != clickbaitWeight+shortTextWeight {
		t.Fatalf("score = %d, want 20 (%v)", got.Score, got.Reasons)
	}
	if got.Reasons[0] != "clickbait phrase: you won't believe" {
		t.Fatalf("unexpected first reason: %q", got.Reasons[0])
	}
}

func TestAnalyzeStyleSensationalDensity(t *testing.T) {
	d := newTestDetector()

	got := d.AnalyzeStyle("حرب حرب أزمة")
	if got.Score != sensationalWeight+shortTextWeight {
		t.Fatalf("score = %d, want 25 (%v)", got.Score, got.Reasons)
	}
	if got.Reasons[0] != "sensational word density (3)" {
		t.Fatalf("unexpected reasons: %v", got.Reasons)
	}

	// 词表中重复的条目会被重复计数
	got = d.AnalyzeStyle("فضيحة و سجن")
	found := false
	for _, r := range got.Reasons {
		if r == "sensational word density (3)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicated lexicon entry to count twice: %v", got.Reasons)
	}
}

func TestAnalyzeStyleCredibilityDiscount(t *testing.T) {
	d := newTestDetector()
	text := neutralText(40) + " بحسب الوزارة نقلاً عن المتحدث"
	got := d.AnalyzeStyle(text)
	if got.Score != -2*credibilityBonus {
		t.Fatalf("score = %d, want -10 (%v)", got.Score, got.Reasons)
	}
	if len(got.Reasons) != 0 {
		t.Fatalf("discount must not add reasons: %v", got.Reasons)
	}
}

func TestAnalyzeSource(t *testing.T) {
	d := newTestDetector()
	cases := []struct {
		source string
		score  int
		reason string
	}{
		{"", 15, "source unknown"},
		{"Reuters World", -20, "trusted source: reuters"},
		{"Facebook page", 25, "untrusted source: facebook"},
		{"reuters via facebook", -20, "trusted source: reuters"},
		{"Local Gazette", 10, "source unclassified"},
	}
	for _, c := range cases {
		got := d.AnalyzeSource(c.source)
		if got.Score != c.score {
			t.Fatalf("AnalyzeSource(%q) score = %d, want %d", c.source, got.Score, c.score)
		}
		if len(got.Reasons) != 1 || got.Reasons[0] != c.reason {
			t.Fatalf("AnalyzeSource(%q) reasons = %v, want [%s]", c.source, got.Reasons, c.reason)
		}
	}
}

func TestAnalyzeSourceFirstMatchWins(t *testing.T) {
	d := New(Lexicons{UntrustedSources: []string{"", "Blog", "blogspot"}})
	got := d.AnalyzeSource("myblogspot.com")
	if got.Score != untrustedSourceWeight || got.Reasons[0] != "untrusted source: blog" {
		t.Fatalf("unexpected contribution: %+v", got)
	}
}

func TestCheckURLPatternsCountsOnce(t *testing.T) {
	d := newTestDetector()
	got := d.CheckURLPatterns("see bit.ly/abc123 and tinyurl.com/xyz")
	if got.Score != shortLinkWeight || len(got.Reasons) != 1 {
		t.Fatalf("expected single 15-point contribution, got %+v", got)
	}

	if got := d.CheckURLPatterns("bit.ly/ without path"); got.Score != 0 {
		t.Fatalf("bare domain should not match: %+v", got)
	}
}

func TestDetectTrustedNeutralArticle(t *testing.T) {
	d := newTestDetector()
	res := d.Detect(Article{Text: neutralText(40), Source: String("Reuters")})
	if res.Score != -20 {
		t.Fatalf("score = %d, want -20 (%v)", res.Score, res.Reasons)
	}
	if res.Result != VerdictReal || res.Confidence != ConfidenceLow || res.Color != ColorSuccess {
		t.Fatalf("unexpected verdict: %+v", res)
	}
	if res.Timestamp != "2024-01-03 10:20:30" {
		t.Fatalf("timestamp = %q", res.Timestamp)
	}
}

func TestDetectClickbaitTitle(t *testing.T) {
	d := newTestDetector()

	// 5 个感叹号 + 2 个标题党词 + 短文本 = 50
	res := d.Detect(Article{Title: "عاجل!!!!! صدمة"})
	if res.Score != 50 || res.Result != VerdictFake {
		t.Fatalf("got %d/%s, want 50/FAKE (%v)", res.Score, res.Result, res.Reasons)
	}

	// 引用信源扣 5 分后落入可疑区间
	res = d.Detect(Article{Title: "عاجل!!!!! صدمة بحسب"})
	if res.Score != 45 || res.Result != VerdictSuspicious || res.Confidence != ConfidenceMedium {
		t.Fatalf("got %d/%s, want 45/SUSPICIOUS (%v)", res.Score, res.Result, res.Reasons)
	}
	if res.Reasons[0] != "exclamation density (5)" {
		t.Fatalf("unexpected first reason: %v", res.Reasons)
	}
}

func TestDetectAbsentVersusEmptySource(t *testing.T) {
	d := newTestDetector()

	res := d.Detect(Article{})
	if res.Score != 0 || len(res.Reasons) != 0 || res.Result != VerdictReal {
		t.Fatalf("empty article should score 0: %+v", res)
	}

	res = d.Detect(Article{Source: String("")})
	if res.Score != unknownSourceWeight || res.Reasons[0] != "source unknown" {
		t.Fatalf("explicit empty source should be unknown: %+v", res)
	}

	if a, b := d.AnalyzeSource(""), d.AnalyzeSource(*String("")); a.Score != b.Score {
		t.Fatalf("absent and empty source differ: %+v vs %+v", a, b)
	}
}

func TestDetectTruncatesReasons(t *testing.T) {
	d := newTestDetector()
	res := d.Detect(Article{Title: "BREAKING URGENT SHOCKING!!!"})
	if res.Score != 75 {
		t.Fatalf("score = %d, want 75 (%v)", res.Score, res.Reasons)
	}
	if len(res.Reasons) != MaxReasons {
		t.Fatalf("reasons len = %d, want %d", len(res.Reasons), MaxReasons)
	}
	if res.Reasons[0] != "exclamation density (3)" {
		t.Fatalf("unexpected first reason: %v", res.Reasons)
	}
}

func TestDetectReasonOrder(t *testing.T) {
	d := newTestDetector()
	res := d.Detect(Article{
		Title:  "urgent",
		Text:   neutralText(40) + " bit.ly/abc",
		Source: String("whatsapp group"),
	})
	want := []string{
		"clickbait phrase: urgent",
		"text too short (fewer than 30 words)",
		"contains shortened/suspicious link",
		"untrusted source: whatsapp",
	}
	if strings.Join(res.Reasons, "|") != strings.Join(want, "|") {
		t.Fatalf("reasons = %v, want %v", res.Reasons, want)
	}
	if res.Score != 10+10+15+25 {
		t.Fatalf("score = %d, want 60", res.Score)
	}
}

func TestDetectNeverPanicsAndBoundsReasons(t *testing.T) {
	d := newTestDetector()
	inputs := []string{"", "!", "\xff\xfe", strings.Repeat("كارثة! ", 200), "IS.GD/X", "ALL CAPS ONLY"}
	for _, title := range inputs {
		for _, text := range inputs {
			res := d.Detect(Article{Title: title, Text: text, Source: String(text)})
			if len(res.Reasons) > MaxReasons {
				t.Fatalf("reasons exceed bound for %q/%q: %d", title, text, len(res.Reasons))
			}
			if v, _, _ := Classify(res.Score); v != res.Result {
				t.Fatalf("verdict %s does not match score %d", res.Result, res.Score)
			}
		}
	}
}

func TestDetectorConcurrentUse(t *testing.T) {
	d := newTestDetector()
	want := d.Detect(Article{Title: "عاجل!!!!! صدمة"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := d.Detect(Article{Title: "عاجل!!!!! صدمة"}); got.Score != want.Score {
				t.Errorf("concurrent score = %d, want %d", got.Score, want.Score)
			}
		}()
	}
	wg.Wait()
}

func TestNewCopiesLexicons(t *testing.T) {
	lex := DefaultLexicons()
	d := New(lex)
	lex.TrustedSources[0] = "mutated"

	if got := d.Lexicons().TrustedSources[0]; got != "reuters" {
		t.Fatalf("detector lexicon changed after construction: %q", got)
	}
	if got := d.AnalyzeSource("Reuters"); got.Score != trustedSourceWeight {
		t.Fatalf("detector matching changed after construction: %+v", got)
	}
}
