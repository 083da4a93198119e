package publisher

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"google.golang.org/api/docs/v1"
)

const monoFont = "Courier New"

// Translate maps markdown to Docs batchUpdate requests. The mapping is
// structural best effort: headings, paragraphs, flat lists, fenced code and
// inline emphasis survive; deeper nesting degrades to plain text.
func Translate(md string) []*docs.Request {
	source := []byte(md)
	root := goldmark.New().Parser().Parse(gtext.NewReader(source))

	t := &translator{source: source, index: 1}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		t.block(n)
	}
	return t.reqs
}

type translator struct {
	source []byte
	reqs   []*docs.Request
	index  int64
}

type styleSpan struct {
	start, end int64
	bold       bool
	italic     bool
	code       bool
}

// docLen measures s in UTF-16 code units, which is what Docs indexes count.
func docLen(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

func (t *translator) block(n ast.Node) {
	switch b := n.(type) {
	case *ast.Heading:
		text, spans := t.inlines(b, t.index)
		if text == "" {
			return
		}
		start, end := t.insert(text + "\n")
		level := b.Level
		if level > 6 {
			level = 6
		}
		t.paragraphStyle(start, end, fmt.Sprintf("HEADING_%d", level))
		t.spanStyles(spans)
	case *ast.List:
		t.list(b)
	case *ast.FencedCodeBlock:
		t.codeBlock(b)
	case *ast.CodeBlock:
		t.codeBlock(b)
	case *ast.Blockquote:
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			t.block(c)
		}
	case *ast.ThematicBreak:
		// no Docs equivalent worth mapping
	default:
		// paragraphs, text blocks, and unknown blocks degrade to text
		text, spans := t.inlines(n, t.index)
		if text == "" {
			return
		}
		start, end := t.insert(text + "\n")
		t.paragraphStyle(start, end, "NORMAL_TEXT")
		t.spanStyles(spans)
	}
}

func (t *translator) list(l *ast.List) {
	preset := "BULLET_DISC_CIRCLE_SQUARE"
	if l.IsOrdered() {
		preset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
	}
	start := t.index
	t.listItems(l)
	if t.index == start {
		return
	}
	t.reqs = append(t.reqs, &docs.Request{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: start, EndIndex: t.index},
			BulletPreset: preset,
		},
	})
}

// listItems flattens items, including nested lists, into consecutive
// bulleted lines.
func (t *translator) listItems(l *ast.List) {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				t.listItems(nested)
				continue
			}
			text, spans := t.inlines(c, t.index)
			if text == "" {
				continue
			}
			t.insert(text + "\n")
			t.spanStyles(spans)
		}
	}
}

func (t *translator) codeBlock(n ast.Node) {
	lines := n.Lines()
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(t.source))
	}
	body := sb.String()
	if body == "" {
		return
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	start, end := t.insert(body)
	t.paragraphStyle(start, end, "NORMAL_TEXT")
	t.reqs = append(t.reqs, &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range: &docs.Range{StartIndex: start, EndIndex: end - 1},
			TextStyle: &docs.TextStyle{
				WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: monoFont},
			},
			Fields: "weightedFontFamily",
		},
	})
}

// inlines flattens the inline children of n to plain text plus style spans
// positioned as if the text were inserted at base.
func (t *translator) inlines(n ast.Node, base int64) (string, []styleSpan) {
	var sb strings.Builder
	var spans []styleSpan

	pos := func() int64 { return base + docLen(sb.String()) }

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch cc := c.(type) {
			case *ast.Text:
				sb.Write(cc.Segment.Value(t.source))
				if cc.SoftLineBreak() || cc.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(cc.Value)
			case *ast.Emphasis:
				start := pos()
				walk(cc)
				span := styleSpan{start: start, end: pos()}
				if cc.Level >= 2 {
					span.bold = true
				} else {
					span.italic = true
				}
				spans = append(spans, span)
			case *ast.CodeSpan:
				start := pos()
				walk(cc)
				spans = append(spans, styleSpan{start: start, end: pos(), code: true})
			case *ast.AutoLink:
				sb.Write(cc.URL(t.source))
			case *ast.Image:
				// no image mapping
			default:
				walk(c)
			}
		}
	}
	walk(n)

	return strings.TrimRight(sb.String(), " "), spans
}

func (t *translator) insert(s string) (start, end int64) {
	start = t.index
	t.reqs = append(t.reqs, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     s,
			Location: &docs.Location{Index: start},
		},
	})
	t.index += docLen(s)
	return start, t.index
}

func (t *translator) paragraphStyle(start, end int64, named string) {
	t.reqs = append(t.reqs, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: named},
			Fields:         "namedStyleType",
		},
	})
}

func (t *translator) spanStyles(spans []styleSpan) {
	for _, s := range spans {
		if s.end <= s.start {
			continue
		}
		style := &docs.TextStyle{}
		var fields []string
		if s.bold {
			style.Bold = true
			fields = append(fields, "bold")
		}
		if s.italic {
			style.Italic = true
			fields = append(fields, "italic")
		}
		if s.code {
			style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: monoFont}
			fields = append(fields, "weightedFontFamily")
		}
		if len(fields) == 0 {
			continue
		}
		t.reqs = append(t.reqs, &docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     &docs.Range{StartIndex: s.start, EndIndex: s.end},
				TextStyle: style,
				Fields:    strings.Join(fields, ","),
			},
		})
	}
}
