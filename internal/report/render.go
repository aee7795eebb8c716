package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorDanger  = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
	colorSuccess = lipgloss.Color("78")
	colorMuted   = lipgloss.Color("241")
)

var badgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	MarginTop(1)

var mutedStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

func badgeColor(tag detector.ColorTag) lipgloss.Color {
	switch tag {
	case detector.ColorDanger:
		return colorDanger
	case detector.ColorWarning:
		return colorWarning
	default:
		return colorSuccess
	}
}

// Render 以终端友好的格式输出检测结果；reviews 为空时只输出检测部分
func Render(w io.Writer, res detector.Result, reviews []factcheck.ClaimReview, sum *factcheck.Summary) error {
	var b strings.Builder

	badge := badgeStyle.Background(badgeColor(res.Color)).Render(string(res.Result))
	fmt.Fprintf(&b, "%s  score %d  confidence %s\n", badge, res.Score, res.Confidence)
	b.WriteString(mutedStyle.Render(res.Timestamp))
	b.WriteString("\n")

	if len(res.Reasons) > 0 {
		b.WriteString(headingStyle.Render("Reasons"))
		b.WriteString("\n")
		for i, r := range res.Reasons {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, r)
		}
	}

	if len(reviews) > 0 {
		b.WriteString(headingStyle.Render("Fact checks"))
		b.WriteString("\n")
		for _, rv := range reviews {
			fmt.Fprintf(&b, "  - [%s] %s\n", rv.Rating, rv.Text)
			line := fmt.Sprintf("    %s / %s", rv.Reviewer, rv.Claimant)
			if rv.URL != "" {
				line += "  " + rv.URL
			}
			b.WriteString(mutedStyle.Render(line))
			b.WriteString("\n")
		}
		if sum != nil {
			fmt.Fprintf(&b, "  overall: %s (%d/%d)\n", sum.Rating, sum.Count, sum.Total)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
