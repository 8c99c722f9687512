package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chokolattee/avocare/internal/markup"
)

var (
	markupH1Style = lipgloss.NewStyle().Bold(true).Foreground(chatGreen)
	markupH2Style = lipgloss.NewStyle().Bold(true).Foreground(chatLime)
	markupH3Style = lipgloss.NewStyle().Bold(true).Foreground(chatBrown)

	markupBoldStyle   = lipgloss.NewStyle().Bold(true)
	markupBulletStyle = lipgloss.NewStyle().Foreground(chatLime)
)

// bulletGlyph is fixed regardless of which marker the input used.
const bulletGlyph = "•"

// renderMarkup formats assistant text for the terminal using the structural
// parse from the markup package.
func renderMarkup(text string) string {
	var sb strings.Builder

	for i, block := range markup.Render(text) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderBlock(block))
	}

	return sb.String()
}

func renderBlock(block markup.Block) string {
	switch block.Kind {
	case markup.Spacer:
		return ""

	case markup.Heading:
		text := renderSpans(block.Spans)
		switch block.Level {
		case 1:
			return markupH1Style.Render(text)
		case 2:
			return markupH2Style.Render(text)
		default:
			return markupH3Style.Render(text)
		}

	case markup.Bullet:
		return "  " + markupBulletStyle.Render(bulletGlyph) + " " + renderSpans(block.Spans)

	case markup.Numbered:
		return "  " + markupBulletStyle.Render(block.Ordinal+".") + " " + renderSpans(block.Spans)

	default:
		return renderSpans(block.Spans)
	}
}

func renderSpans(spans []markup.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		if span.Bold {
			sb.WriteString(markupBoldStyle.Render(span.Text))
		} else {
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}
