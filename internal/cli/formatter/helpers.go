package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders t as YYYY-MM-DD, or a dim "--" when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(dateLayout)
}

// FormatDateString is FormatDate for an already formatted date.
func FormatDateString(s *string) string {
	if s == nil || *s == "" {
		return Dim("--")
	}
	return *s
}

// TruncID shortens a UUID to its first block.
func TruncID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Tenure renders whole months, or "unknown" for the -1 sentinel.
func Tenure(months int) string {
	if months < 0 {
		return Dim("unknown")
	}
	if months == 1 {
		return "1 month"
	}
	return strconv.Itoa(months) + " months"
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
