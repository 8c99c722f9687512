// Package markup parses the assistant's constrained markdown dialect into
// structured blocks. Parsing is a total function: any input yields a block
// sequence, never an error.
package markup

import (
	"regexp"
	"strings"
)

// BlockKind classifies a rendered line.
type BlockKind int

const (
	// Spacer is an empty or whitespace-only line.
	Spacer BlockKind = iota
	// Heading is a 1-3 level heading.
	Heading
	// Bullet is an unordered list item. The glyph is fixed, not taken
	// from the input marker.
	Bullet
	// Numbered is an ordered list item labelled with its literal number.
	Numbered
	// Paragraph is any other line.
	Paragraph
)

// Span is a run of text, optionally bold.
type Span struct {
	Text string
	Bold bool
}

// Block is one parsed line.
type Block struct {
	Kind BlockKind
	// Level is the heading level (1-3) for Heading blocks.
	Level int
	// Ordinal is the literal leading number for Numbered blocks. It is
	// preserved as written, never renumbered.
	Ordinal string
	Spans   []Span
}

// Line classification, evaluated top to bottom per line.
var (
	headingPattern  = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	bulletPattern   = regexp.MustCompile(`^[*\-•]\s+(.*)$`)
	numberedPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Render splits text into lines and classifies each into a block. It is
// deterministic and side-effect free; rendering the same string twice yields
// the same block sequence.
func Render(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, renderLine(line))
	}
	return blocks
}

func renderLine(line string) Block {
	if strings.TrimSpace(line) == "" {
		return Block{Kind: Spacer}
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:  Heading,
			Level: len(m[1]),
			Spans: Spans(m[2]),
		}
	}

	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:  Bullet,
			Spans: Spans(m[1]),
		}
	}

	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:    Numbered,
			Ordinal: m[1],
			Spans:   Spans(m[2]),
		}
	}

	return Block{Kind: Paragraph, Spans: Spans(line)}
}

// Spans splits text on non-overlapping **bold** tokens. Stray or unbalanced
// markers are left as literal text; bold spans are not re-parsed for nested
// markup.
func Spans(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	last := 0
	for _, idx := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		if idx[0] > last {
			spans = append(spans, Span{Text: text[last:idx[0]]})
		}
		spans = append(spans, Span{Text: text[idx[2]:idx[3]], Bold: true})
		last = idx[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// Text flattens a block's spans back to plain text, dropping bold markers.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
