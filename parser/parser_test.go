package parser

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/htmltok/parser/dom"
)

func parseDoc(t *testing.T, input string) (*dom.Document, []*ParseError) {
	t.Helper()
	p, err := NewParser(strings.NewReader(input), nil)
	require.NoError(t, err)
	doc, errs, err := p.Parse()
	require.NoError(t, err)
	return doc, errs
}

func TestParserReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewParser(iotest.ErrReader(boom), nil)
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "reading input")
}

func TestQuirks(t *testing.T) {
	tests := []struct {
		in     string
		quirks bool
	}{
		{"<!DOCTYPE html>", false},
		{"<!doctype HTML>", false},
		{"<!DOCTYPE>", true},
		{"<!DOCTYPE xhtml>", true},
		{`<!DOCTYPE html SYSTEM "x" y>`, false},
		{"<p>", false},
	}
	for _, tt := range tests {
		doc, _ := parseDoc(t, tt.in)
		assert.Equal(t, tt.quirks, doc.Quirks, tt.in)
	}
}

func TestParseSwitchesTextStates(t *testing.T) {
	tests := []struct {
		in, text string
	}{
		{"<title><b>&amp;</title>", "<b>&"},
		{"<textarea></p></textarea>", "</p>"},
		{"<style>&amp;</style>", "&amp;"},
		{"<xmp><b></xmp>", "<b>"},
		{"<iframe><b></iframe>", "<b>"},
		{"<noembed><b></noembed>", "<b>"},
		{"<noframes><b></noframes>", "<b>"},
		{"<script><!--<b>--></script>", "<!--<b>-->"},
		{"<plaintext></plaintext>", "</plaintext>"},
	}
	for _, tt := range tests {
		doc, errs := parseDoc(t, tt.in)
		assert.Empty(t, errs, tt.in)

		el := doc.Node(doc.Node(doc.Root()).Children[0])
		require.Len(t, el.Children, 1, tt.in)
		assert.Equal(t, tt.text, doc.Node(el.Children[0]).Data, tt.in)
	}
}

func TestParseNulls(t *testing.T) {
	doc, errs := parseDoc(t, "<p>a\x00b</p><svg>c\x00d</svg>")
	require.Len(t, errs, 2)
	assert.Equal(t, UnexpectedNullCharacter, errs[0].Code)

	root := doc.Node(doc.Root())
	p := doc.Node(root.Children[0])
	assert.Equal(t, "ab", doc.Node(p.Children[0]).Data)

	svg := doc.Node(root.Children[1])
	assert.True(t, svg.IsForeign())
	assert.Equal(t, "c�d", doc.Node(svg.Children[0]).Data)
}

func TestParseForeignContent(t *testing.T) {
	doc, errs := parseDoc(t, "<math><mi>x</mi></math><svg><g><rect/></g></svg><p>")
	assert.Empty(t, errs)

	root := doc.Node(doc.Root())
	require.Len(t, root.Children, 3)

	math := doc.Node(root.Children[0])
	assert.Equal(t, dom.MathMLNamespace, math.Namespace)
	assert.Equal(t, dom.MathMLNamespace, doc.Node(math.Children[0]).Namespace)

	g := doc.Node(doc.Node(root.Children[1]).Children[0])
	assert.Equal(t, dom.SVGNamespace, g.Namespace)
	require.Len(t, g.Children, 1)
	assert.Equal(t, "rect", doc.Node(g.Children[0]).Name)

	p := doc.Node(root.Children[2])
	assert.Equal(t, dom.HTMLNamespace, p.Namespace)
}

func TestDedupeAttributes(t *testing.T) {
	got := dedupeAttributes(Attributes{{"a", "1"}, {"b", "2"}, {"a", "3"}})
	assert.Equal(t, []dom.Attr{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, got)
	assert.Empty(t, dedupeAttributes(nil))
}

func TestTreeConstructorLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p, err := NewParser(strings.NewReader("<div><b></div></i>"), &Config{Logger: logger})
	require.NoError(t, err)
	_, _, err = p.Parse()
	require.NoError(t, err)

	var msgs []string
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "tree", e.Data["component"])
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"push", "push", "pop", "ignored end tag", "end of file"}, msgs)
	assert.Equal(t, 2, hook.AllEntries()[2].Data["popped"])
}

func TestTreeConstructorProgress(t *testing.T) {
	c := NewHTMLTreeConstructor(nil)

	progress := c.ProcessToken(NewStartTag("title", false))
	require.NotNil(t, progress.TokenizerState)
	assert.Equal(t, RCDataState, *progress.TokenizerState)
	assert.Equal(t, dom.HTMLNamespace, progress.AdjustedCurrentNamespace)

	progress = c.ProcessToken(NewEndTag("title"))
	assert.Nil(t, progress.TokenizerState)

	progress = c.ProcessToken(NewStartTag("svg", false))
	assert.Equal(t, dom.SVGNamespace, progress.AdjustedCurrentNamespace)
	progress = c.ProcessToken(NewStartTag("title", false))
	// a title inside svg is not RCDATA.
	assert.Nil(t, progress.TokenizerState)

	progress = c.ProcessToken(NewStartTag("br", true))
	assert.Equal(t, dom.SVGNamespace, progress.AdjustedCurrentNamespace)

	assert.NoError(t, c.Finish())
}
