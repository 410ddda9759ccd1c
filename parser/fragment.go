package parser

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/heathj/htmltok/parser/dom"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

// rawTextParents hold text that is written out as is.
var rawTextParents = map[string]bool{
	"style":     true,
	"script":    true,
	"xmp":       true,
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
}

// SerializeHTMLFragment writes the children of parent back out as HTML.
func SerializeHTMLFragment(d *dom.Document, parent dom.NodeID) string {
	var b strings.Builder
	serializeChildren(&b, d, parent)
	return b.String()
}

func serializeChildren(b *strings.Builder, d *dom.Document, parent dom.NodeID) {
	p := d.Node(parent)
	if p == nil {
		return
	}
	for _, id := range p.Children {
		child := d.Node(id)
		switch child.Type {
		case dom.ElementNode:
			b.WriteString("<" + child.Name)

			attrs := make([]dom.Attr, len(child.Attributes))
			copy(attrs, child.Attributes)
			sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
			for _, a := range attrs {
				b.WriteString(" " + a.Name + "=\"" + escapeString(a.Value, true) + "\"")
			}
			b.WriteString(">")
			if !child.IsForeign() && dom.IsVoid(child.Name) {
				continue
			}
			serializeChildren(b, d, id)
			b.WriteString("</" + child.Name + ">")
		case dom.TextNode:
			if p.Type == dom.ElementNode && rawTextParents[p.Name] {
				b.WriteString(child.Data)
			} else {
				b.WriteString(escapeString(child.Data, false))
			}
		case dom.CommentNode:
			b.WriteString("<!--" + child.Data + "-->")
		case dom.DocumentTypeNode:
			b.WriteString("<!DOCTYPE " + child.Name + ">")
		}
	}
}

// fragmentStartState is the tokenizer state the contents of context start
// in.
func fragmentStartState(context string) TokenizerState {
	switch context {
	case "title", "textarea":
		return RCDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		return RawTextState
	case "script":
		return ScriptDataState
	case "plaintext":
		return PlaintextState
	}
	return DataState
}

// ParseHTMLFragment parses input as the contents of a context element. The
// returned document has a single html element holding the parsed nodes.
// "svg" and "math" contexts parse as foreign content.
func ParseHTMLFragment(context, input string, cfg *Config) (*dom.Document, dom.NodeID, []*ParseError, error) {
	fcfg := Config{}
	if cfg != nil {
		fcfg = *cfg
	}
	fcfg.InitialState = fragmentStartState(context)

	ns := dom.HTMLNamespace
	switch context {
	case "svg":
		ns = dom.SVGNamespace
	case "math":
		ns = dom.MathMLNamespace
	}
	fcfg.AllowCDATA = ns != dom.HTMLNamespace

	p, err := NewParser(strings.NewReader(input), &fcfg)
	if err != nil {
		return nil, dom.NoNode, nil, err
	}

	tc := p.TreeConstructor
	root := tc.Document.CreateElement("html", dom.HTMLNamespace, nil)
	if err := tc.Document.AppendChild(tc.Document.Root(), root); err != nil {
		return nil, dom.NoNode, nil, errors.Wrap(err, "creating fragment root")
	}
	tc.push(root, "html")
	if ns != dom.HTMLNamespace {
		ctx := tc.Document.CreateElement(context, ns, nil)
		tc.insert(ctx)
		tc.push(ctx, context)
	}

	doc, perrs, err := p.Parse()
	if err != nil {
		return nil, dom.NoNode, perrs, err
	}
	if ns != dom.HTMLNamespace {
		root = doc.Node(root).Children[0]
	}
	return doc, root, perrs, nil
}
