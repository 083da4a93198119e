package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
)

func insertedTexts(reqs []*docs.Request) []string {
	var out []string
	for _, r := range reqs {
		if r.InsertText != nil {
			out = append(out, r.InsertText.Text)
		}
	}
	return out
}

func paragraphStyles(reqs []*docs.Request) []string {
	var out []string
	for _, r := range reqs {
		if r.UpdateParagraphStyle != nil {
			out = append(out, r.UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
		}
	}
	return out
}

func TestTranslateHeadingAndParagraph(t *testing.T) {
	reqs := Translate("# Report\nBody text")

	require.Len(t, reqs, 4)

	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "Report\n", reqs[0].InsertText.Text)
	assert.Equal(t, int64(1), reqs[0].InsertText.Location.Index)

	require.NotNil(t, reqs[1].UpdateParagraphStyle)
	assert.Equal(t, "HEADING_1", reqs[1].UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
	assert.Equal(t, int64(1), reqs[1].UpdateParagraphStyle.Range.StartIndex)
	assert.Equal(t, int64(8), reqs[1].UpdateParagraphStyle.Range.EndIndex)

	require.NotNil(t, reqs[2].InsertText)
	assert.Equal(t, "Body text\n", reqs[2].InsertText.Text)
	assert.Equal(t, int64(8), reqs[2].InsertText.Location.Index)

	require.NotNil(t, reqs[3].UpdateParagraphStyle)
	assert.Equal(t, "NORMAL_TEXT", reqs[3].UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
}

func TestTranslateHeadingLevels(t *testing.T) {
	reqs := Translate("## Section\n\n### Subsection\n")
	styles := paragraphStyles(reqs)
	assert.Equal(t, []string{"HEADING_2", "HEADING_3"}, styles)
}

func TestTranslateBulletList(t *testing.T) {
	reqs := Translate("- alpha\n- beta\n")

	assert.Equal(t, []string{"alpha\n", "beta\n"}, insertedTexts(reqs))

	var bullets *docs.CreateParagraphBulletsRequest
	for _, r := range reqs {
		if r.CreateParagraphBullets != nil {
			bullets = r.CreateParagraphBullets
		}
	}
	require.NotNil(t, bullets)
	assert.Equal(t, "BULLET_DISC_CIRCLE_SQUARE", bullets.BulletPreset)
	assert.Equal(t, int64(1), bullets.Range.StartIndex)
	assert.Equal(t, int64(1+6+5), bullets.Range.EndIndex)
}

func TestTranslateOrderedList(t *testing.T) {
	reqs := Translate("1. first\n2. second\n")
	var preset string
	for _, r := range reqs {
		if r.CreateParagraphBullets != nil {
			preset = r.CreateParagraphBullets.BulletPreset
		}
	}
	assert.Equal(t, "NUMBERED_DECIMAL_ALPHA_ROMAN", preset)
}

func TestTranslateNestedListFlattens(t *testing.T) {
	reqs := Translate("- parent\n  - child\n")
	assert.Equal(t, []string{"parent\n", "child\n"}, insertedTexts(reqs))
}

func TestTranslateInlineStyles(t *testing.T) {
	reqs := Translate("plain **bold** and *italic* and `code`\n")

	assert.Equal(t, []string{"plain bold and italic and code\n"}, insertedTexts(reqs))

	var bold, italic, code *docs.UpdateTextStyleRequest
	for _, r := range reqs {
		if r.UpdateTextStyle == nil {
			continue
		}
		switch {
		case r.UpdateTextStyle.TextStyle.Bold:
			bold = r.UpdateTextStyle
		case r.UpdateTextStyle.TextStyle.Italic:
			italic = r.UpdateTextStyle
		case r.UpdateTextStyle.TextStyle.WeightedFontFamily != nil:
			code = r.UpdateTextStyle
		}
	}

	// "plain " is 6 chars, so bold covers [7,11)
	require.NotNil(t, bold)
	assert.Equal(t, int64(7), bold.Range.StartIndex)
	assert.Equal(t, int64(11), bold.Range.EndIndex)

	require.NotNil(t, italic)
	assert.Equal(t, int64(16), italic.Range.StartIndex)
	assert.Equal(t, int64(22), italic.Range.EndIndex)

	require.NotNil(t, code)
	assert.Equal(t, monoFont, code.TextStyle.WeightedFontFamily.FontFamily)
	assert.Equal(t, int64(27), code.Range.StartIndex)
	assert.Equal(t, int64(31), code.Range.EndIndex)
}

func TestTranslateFencedCode(t *testing.T) {
	reqs := Translate("```\nfmt.Println(\"hi\")\n```\n")

	assert.Equal(t, []string{"fmt.Println(\"hi\")\n"}, insertedTexts(reqs))

	var mono *docs.UpdateTextStyleRequest
	for _, r := range reqs {
		if r.UpdateTextStyle != nil && r.UpdateTextStyle.TextStyle.WeightedFontFamily != nil {
			mono = r.UpdateTextStyle
		}
	}
	require.NotNil(t, mono)
	assert.Equal(t, monoFont, mono.TextStyle.WeightedFontFamily.FontFamily)
}

func TestTranslateEmpty(t *testing.T) {
	assert.Empty(t, Translate(""))
}

func TestDocLenCountsUTF16Units(t *testing.T) {
	assert.Equal(t, int64(5), docLen("hello"))
	// surrogate pair
	assert.Equal(t, int64(2), docLen("𝒳"))
}

func TestTranslateIndexesAreSequential(t *testing.T) {
	reqs := Translate("# A\n\nfirst\n\nsecond\n")
	var next int64 = 1
	for _, r := range reqs {
		if r.InsertText == nil {
			continue
		}
		assert.Equal(t, next, r.InsertText.Location.Index)
		next += docLen(r.InsertText.Text)
	}
}
