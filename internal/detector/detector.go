package detector

import (
	"time"
)

// Verdict 最终判定
type Verdict string

const (
	VerdictReal       Verdict = "REAL"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictFake       Verdict = "FAKE"
)

// Confidence 判定置信度
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// ColorTag 展示层使用的颜色标签
type ColorTag string

const (
	ColorSuccess ColorTag = "success"
	ColorWarning ColorTag = "warning"
	ColorDanger  ColorTag = "danger"
)

// 分级阈值（含下界）
const (
	FakeThreshold       = 50
	SuspiciousThreshold = 30
	MaxReasons          = 5
)

// TimestampLayout 结果时间戳格式
const TimestampLayout = "2006-01-02 15:04:05"

// Contribution 单个检测器的打分结果
type Contribution struct {
	Score   int
	Reasons []string
}

// Add 返回两个结果相加后的新值，不修改接收者
func (c Contribution) Add(o Contribution) Contribution {
	reasons := make([]string, 0, len(c.Reasons)+len(o.Reasons))
	reasons = append(reasons, c.Reasons...)
	reasons = append(reasons, o.Reasons...)
	return Contribution{Score: c.Score + o.Score, Reasons: reasons}
}

// Result 一次检测的完整输出
type Result struct {
	Result     Verdict    `json:"result"`
	Score      int        `json:"score"`
	Reasons    []string   `json:"reasons"`
	Color      ColorTag   `json:"color"`
	Confidence Confidence `json:"confidence"`
	Timestamp  string     `json:"timestamp"`
}

// Article 检测输入。Source 为 nil 表示未提供来源；指向空串表示提供了但为空
type Article struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Source *string `json:"source,omitempty"`
}

// String 返回 s 的指针，便于构造 Article.Source
func String(s string) *string {
	return &s
}

// Detector 基于规则的虚假新闻检测器。构造后只读，可并发使用
type Detector struct {
	lex      compiled
	lexicons Lexicons
	now      func() time.Time
}

// Option 配置 Detector
type Option func(*Detector)

// WithClock 注入时钟，测试中用于固定时间戳
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

func New(lex Lexicons, opts ...Option) *Detector {
	d := &Detector{
		lex:      compile(lex),
		lexicons: lex.Clone(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lexicons 返回当前生效词表的副本
func (d *Detector) Lexicons() Lexicons {
	return d.lexicons.Clone()
}

// Detect 汇总标题、正文、来源三部分的得分并给出判定
func (d *Detector) Detect(a Article) Result {
	var total Contribution

	if a.Title != "" {
		total = total.Add(d.AnalyzeStyle(a.Title))
	}

	if a.Text != "" {
		total = total.Add(d.AnalyzeStyle(a.Text))
		total = total.Add(d.CheckURLPatterns(a.Text))
	}

	// 显式传入的空来源同样会走“来源未知”分支
	if a.Source != nil {
		total = total.Add(d.AnalyzeSource(*a.Source))
	}

	verdict, confidence, color := Classify(total.Score)

	reasons := total.Reasons
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	return Result{
		Result:     verdict,
		Score:      total.Score,
		Reasons:    reasons,
		Color:      color,
		Confidence: confidence,
		Timestamp:  d.now().Format(TimestampLayout),
	}
}

// Classify 按固定阈值把总分映射到判定等级
func Classify(score int) (Verdict, Confidence, ColorTag) {
	switch {
	case score >= FakeThreshold:
		return VerdictFake, ConfidenceHigh, ColorDanger
	case score >= SuspiciousThreshold:
		return VerdictSuspicious, ConfidenceMedium, ColorWarning
	default:
		return VerdictReal, ConfidenceLow, ColorSuccess
	}
}
