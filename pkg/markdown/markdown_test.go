package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClassifiesEachLineKind(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    Kind
		content string
	}{
		{"heading 1", "# Your Plan", KindHeading1, "Your Plan"},
		{"heading 2", "## Breakfast", KindHeading2, "Breakfast"},
		{"heading 3", "### Monday", KindHeading3, "Monday"},
		{"heading 4", "#### Notes", KindHeading4, "Notes"},
		{"bold standalone", "**Key takeaway**", KindBoldParagraph, "Key takeaway"},
		{"italic standalone", "*remember this*", KindItalicParagraph, "remember this"},
		{"dash list item", "- oatmeal with berries", KindListItem, "oatmeal with berries"},
		{"star list item", "* greek yogurt", KindListItem, "greek yogurt"},
		{"ordered item", "12. drink water", KindOrderedItem, "drink water"},
		{"empty line", "", KindSpacer, ""},
		{"whitespace line", "   \t", KindSpacer, ""},
		{"plain paragraph", "Eat slowly and mindfully.", KindParagraph, "Eat slowly and mindfully."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Render(tt.line)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.kind, blocks[0].Kind)
			assert.Equal(t, tt.content, blocks[0].Content)
		})
	}
}

func TestRenderPlainLinesPassThroughVerbatim(t *testing.T) {
	lines := []string{
		"No markers here at all.",
		"#hashtag without a space is not a heading",
		"1.not an ordered item",
		"-dash without space",
		"ends with a star *",
	}
	for _, line := range lines {
		blocks := Render(line)
		require.Len(t, blocks, 1)
		assert.Equal(t, KindParagraph, blocks[0].Kind, "line %q", line)
		assert.Equal(t, line, blocks[0].Content)
	}
}

func TestRenderPlainBlobRoundTrips(t *testing.T) {
	blob := "First sentence of advice.\nSecond sentence of advice.\nThird one."
	blocks := Render(blob)
	require.Len(t, blocks, 3)

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		assert.Equal(t, KindParagraph, b.Kind)
		parts = append(parts, b.Content)
	}
	assert.Equal(t, blob, strings.Join(parts, "\n"))
}

func TestRenderHeadingPrecedence(t *testing.T) {
	blocks := Render("## not an h1")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindHeading2, blocks[0].Kind)
}

func TestRenderMixedInlineAlternatesSpans(t *testing.T) {
	blocks := Render("Eat **more** leafy **greens** daily")
	require.Len(t, blocks, 1)
	require.Equal(t, KindMixedParagraph, blocks[0].Kind)
	assert.Equal(t, []Span{
		{Text: "Eat "},
		{Text: "more", Bold: true},
		{Text: " leafy "},
		{Text: "greens", Bold: true},
		{Text: " daily"},
	}, blocks[0].Spans)
}

func TestRenderUnmatchedBoldStaysLiteral(t *testing.T) {
	blocks := Render("a lone ** marker mid-line")
	require.Len(t, blocks, 1)
	require.Equal(t, KindMixedParagraph, blocks[0].Kind)
	require.Len(t, blocks[0].Spans, 1)
	assert.Equal(t, Span{Text: "a lone ** marker mid-line"}, blocks[0].Spans[0])
}

func TestRenderShortDelimiterLinesAreNotEmphasis(t *testing.T) {
	// "**" and "****" are too short to be bold-standalone lines.
	for _, line := range []string{"**", "****"} {
		blocks := Render(line)
		require.Len(t, blocks, 1)
		assert.NotEqual(t, KindBoldParagraph, blocks[0].Kind, "line %q", line)
		assert.NotEqual(t, KindItalicParagraph, blocks[0].Kind, "line %q", line)
	}
}

func TestRenderNeverPanicsOnArbitraryInput(t *testing.T) {
	inputs := []string{"", "\n\n\n", "***", "*", "# ", "- ", "0. ", strings.Repeat("*", 500)}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Render(in) })
	}
}

func TestPreviewTruncatesAtCharacterBudget(t *testing.T) {
	blob := strings.Repeat("a", 500)
	got := Preview(blob)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)

	short := strings.Repeat("b", 150)
	assert.Equal(t, short, Preview(short))
}

func TestPreviewStripsMarkers(t *testing.T) {
	blob := "# Your Plan\n- eat **well**\n**Stay hydrated**"
	assert.Equal(t, "Your Plan\n• eat well\nStay hydrated", Preview(blob))
}

func TestPreviewStripsOrderedListMarkers(t *testing.T) {
	blob := "1. drink water\n12. eat **slowly**"
	assert.Equal(t, "drink water\neat slowly", Preview(blob))
}

func TestWordPreviewKeepsFirstFiftyWords(t *testing.T) {
	exact := strings.TrimSpace(strings.Repeat("word ", 50))
	assert.Equal(t, exact, WordPreview(exact))

	over := strings.TrimSpace(strings.Repeat("word ", 51))
	got := WordPreview(over)
	assert.Equal(t, exact+"...", got)
	assert.Equal(t, 50, len(strings.Fields(strings.TrimSuffix(got, "..."))))
}

func TestWordPreviewUnderBudgetIsReturnedVerbatim(t *testing.T) {
	// Multi-line text within the word budget keeps its newlines and spacing.
	blob := "Eat more vegetables.\nDrink water daily.\n\n  Stay active."
	assert.Equal(t, blob, WordPreview(blob))
}

func TestPrintHTMLRendersMinimalTags(t *testing.T) {
	blob := "# Plan\n**Summary**\n*note*\n- item one\n2. item two\n\nplain **bold** text"
	got := PrintHTML(blob)
	want := "<h1>Plan</h1>" +
		"<h4>Summary</h4>" +
		"<h5>note</h5>" +
		"<li>item one</li>" +
		"<li>item two</li>" +
		"<br>" +
		"<p>plain <strong>bold</strong> text</p>"
	assert.Equal(t, want, got)
}

func TestFirstLines(t *testing.T) {
	blob := "1\n2\n3\n4\n5\n6\n7"
	head, truncated := FirstLines(blob, 5)
	assert.True(t, truncated)
	assert.Equal(t, "1\n2\n3\n4\n5", head)

	head, truncated = FirstLines("only\ntwo", 5)
	assert.False(t, truncated)
	assert.Equal(t, "only\ntwo", head)
}
