// Package markdown renders the constrained, line-oriented markdown dialect
// used by generated diet recommendations. Classification is strictly per
// line; there are no multi-line constructs, so consecutive list items are
// independent blocks. Every display surface (dashboard card, results view,
// history, print/export, previews) goes through this package.
package markdown

import (
	"regexp"
	"strings"
)

type Kind int

const (
	KindHeading1 Kind = iota
	KindHeading2
	KindHeading3
	KindHeading4
	KindBoldParagraph
	KindItalicParagraph
	KindListItem
	KindOrderedItem
	KindSpacer
	KindMixedParagraph
	KindParagraph
)

// Span is one segment of a mixed-inline paragraph.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold"`
}

// Block is one rendered line. Spans is populated only for KindMixedParagraph.
type Block struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
	Spans   []Span `json:"spans,omitempty"`
}

var (
	orderedItemRe = regexp.MustCompile(`^(\d+)\. (.*)$`)
	boldRunRe     = regexp.MustCompile(`\*\*[^*]+\*\*`)
)

// Render splits text on newlines and classifies each line. It is pure and
// total: any input yields a block per line, unmatched syntax falls through
// to a plain paragraph.
func Render(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classify(line))
	}
	return blocks
}

func classify(line string) Block {
	switch {
	case strings.HasPrefix(line, "# "):
		return Block{Kind: KindHeading1, Content: line[2:]}
	case strings.HasPrefix(line, "## "):
		return Block{Kind: KindHeading2, Content: line[3:]}
	case strings.HasPrefix(line, "### "):
		return Block{Kind: KindHeading3, Content: line[4:]}
	case strings.HasPrefix(line, "#### "):
		return Block{Kind: KindHeading4, Content: line[5:]}
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4:
		return Block{Kind: KindBoldParagraph, Content: line[2 : len(line)-2]}
	case strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*") &&
		!strings.Contains(line, "**") && len(line) > 2:
		return Block{Kind: KindItalicParagraph, Content: line[1 : len(line)-1]}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Block{Kind: KindListItem, Content: line[2:]}
	case orderedItemRe.MatchString(line):
		m := orderedItemRe.FindStringSubmatch(line)
		return Block{Kind: KindOrderedItem, Content: m[2]}
	case strings.TrimSpace(line) == "":
		return Block{Kind: KindSpacer}
	case strings.Contains(line, "**"):
		return Block{Kind: KindMixedParagraph, Content: line, Spans: splitInline(line)}
	default:
		return Block{Kind: KindParagraph, Content: line}
	}
}

// splitInline alternates plain and bold spans on **...** runs, preserving
// order. A lone ** with no closing pair stays literal plain text.
func splitInline(line string) []Span {
	var spans []Span
	rest := line
	for {
		loc := boldRunRe.FindStringIndex(rest)
		if loc == nil {
			if rest != "" {
				spans = append(spans, Span{Text: rest})
			}
			return spans
		}
		if loc[0] > 0 {
			spans = append(spans, Span{Text: rest[:loc[0]]})
		}
		run := rest[loc[0]:loc[1]]
		spans = append(spans, Span{Text: run[2 : len(run)-2], Bold: true})
		rest = rest[loc[1]:]
	}
}

const previewCharLimit = 200

// Preview strips markup from the raw text (bullets become "• ") and
// truncates to the first 200 characters. This is a text-level transform
// used for compact display, independent of Render.
func Preview(text string) string {
	lines := strings.Split(text, "\n")
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped = append(stripped, stripMarkers(line))
	}
	plain := strings.Join(stripped, "\n")

	runes := []rune(plain)
	if len(runes) <= previewCharLimit {
		return plain
	}
	return string(runes[:previewCharLimit]) + "..."
}

func stripMarkers(line string) string {
	for _, prefix := range []string{"#### ", "### ", "## ", "# "} {
		if strings.HasPrefix(line, prefix) {
			return strings.ReplaceAll(line[len(prefix):], "**", "")
		}
	}
	if strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*") &&
		!strings.Contains(line, "**") && len(line) > 2 {
		return line[1 : len(line)-1]
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return "• " + strings.ReplaceAll(line[2:], "**", "")
	}
	if m := orderedItemRe.FindStringSubmatch(line); m != nil {
		return strings.ReplaceAll(m[2], "**", "")
	}
	return strings.ReplaceAll(line, "**", "")
}

const previewWordLimit = 50

// WordPreview keeps the first 50 whitespace-separated tokens, rejoined with
// single spaces. Text within the budget is returned unchanged, newlines and
// all. Used by the dashboard "read more" collapse; deliberately a different
// budget than Preview.
func WordPreview(text string) string {
	words := strings.Fields(text)
	if len(words) <= previewWordLimit {
		return text
	}
	return strings.Join(words[:previewWordLimit], " ") + "..."
}

// PrintHTML renders the same per-line classification to minimal HTML for
// the standalone printable document. Fragments are concatenated without
// separators.
func PrintHTML(text string) string {
	var sb strings.Builder
	for _, block := range Render(text) {
		switch block.Kind {
		case KindHeading1:
			sb.WriteString("<h1>" + block.Content + "</h1>")
		case KindHeading2:
			sb.WriteString("<h2>" + block.Content + "</h2>")
		case KindHeading3:
			sb.WriteString("<h3>" + block.Content + "</h3>")
		case KindHeading4:
			sb.WriteString("<h4>" + block.Content + "</h4>")
		case KindBoldParagraph:
			sb.WriteString("<h4>" + block.Content + "</h4>")
		case KindItalicParagraph:
			sb.WriteString("<h5>" + block.Content + "</h5>")
		case KindListItem, KindOrderedItem:
			sb.WriteString("<li>" + block.Content + "</li>")
		case KindSpacer:
			sb.WriteString("<br>")
		case KindMixedParagraph:
			sb.WriteString("<p>")
			for _, span := range block.Spans {
				if span.Bold {
					sb.WriteString("<strong>" + span.Text + "</strong>")
				} else {
					sb.WriteString(span.Text)
				}
			}
			sb.WriteString("</p>")
		default:
			sb.WriteString("<p>" + block.Content + "</p>")
		}
	}
	return sb.String()
}

// FirstLines returns the first n lines of text and whether anything was
// cut off. The history view shows a 5-line excerpt per entry.
func FirstLines(text string, n int) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text, false
	}
	return strings.Join(lines[:n], "\n"), true
}
