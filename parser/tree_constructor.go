package parser

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"

	"github.com/heathj/htmltok/parser/dom"
)

// HTMLTreeConstructor builds a dom.Document out of tokens. It is not the full
// set of insertion modes: it keeps a stack of open elements, switches the
// tokenizer into the text states elements call for and tracks foreign
// content so CDATA sections are recognized.
type HTMLTreeConstructor struct {
	Document            *dom.Document
	stackOfOpenElements []dom.NodeID
	err                 error
	log                 logrus.FieldLogger
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor.
func NewHTMLTreeConstructor(log logrus.FieldLogger) *HTMLTreeConstructor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HTMLTreeConstructor{
		Document: dom.NewDocument(),
		log:      log.WithField("component", "tree"),
	}
}

func (c *HTMLTreeConstructor) getCurrentNode() dom.NodeID {
	if len(c.stackOfOpenElements) == 0 {
		return c.Document.Root()
	}
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

// adjustedCurrentNamespace is the namespace of the current node, HTML when
// nothing is open.
func (c *HTMLTreeConstructor) adjustedCurrentNamespace() dom.Namespace {
	n := c.Document.Node(c.getCurrentNode())
	if n.Type != dom.ElementNode {
		return dom.HTMLNamespace
	}
	return n.Namespace
}

func (c *HTMLTreeConstructor) check(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *HTMLTreeConstructor) insert(id dom.NodeID) {
	c.check(c.Document.AppendChild(c.getCurrentNode(), id))
}

// textStates maps HTML elements whose contents are not markup to the
// tokenizer state their contents are read in.
var textStates = map[atom.Atom]TokenizerState{
	atom.Title:     RCDataState,
	atom.Textarea:  RCDataState,
	atom.Style:     RawTextState,
	atom.Xmp:       RawTextState,
	atom.Iframe:    RawTextState,
	atom.Noembed:   RawTextState,
	atom.Noframes:  RawTextState,
	atom.Script:    ScriptDataState,
	atom.Plaintext: PlaintextState,
}

// ProcessToken adds t to the document and returns what the tokenizer needs
// to know before producing the next token.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	var next *TokenizerState
	switch t.Type {
	case DoctypeToken:
		c.processDoctype(t)
	case TagToken:
		if t.Kind == StartTag {
			next = c.processStartTag(t)
		} else {
			c.processEndTag(t)
		}
	case CommentToken:
		c.insert(c.Document.CreateComment(t.Data))
	case CharacterToken:
		// NUL is dropped in HTML content and replaced in foreign content.
		r := t.Char
		if r == 0 {
			if c.adjustedCurrentNamespace() == dom.HTMLNamespace {
				break
			}
			r = '�'
		}
		_, err := c.Document.AppendText(c.getCurrentNode(), string(r))
		c.check(err)
	case EndOfFileToken:
		c.log.WithField("open", len(c.stackOfOpenElements)).Debug("end of file")
	}
	return MakeProgress(c.adjustedCurrentNamespace(), next)
}

func (c *HTMLTreeConstructor) processDoctype(t *Token) {
	var name string
	if t.Name != nil {
		name = *t.Name
	}
	if t.ForceQuirks || name != "html" {
		c.Document.Quirks = true
	}
	c.check(c.Document.AppendChild(c.Document.Root(), c.Document.CreateDoctype(name, t.PublicIdentifier, t.SystemIdentifier)))
}

// dedupeAttributes keeps the first of any attributes sharing a name.
func dedupeAttributes(attrs Attributes) []dom.Attr {
	seen := make(map[string]bool, len(attrs))
	out := make([]dom.Attr, 0, len(attrs))
	for _, a := range attrs {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, dom.Attr{Name: a.Name, Value: a.Value})
	}
	return out
}

func (c *HTMLTreeConstructor) processStartTag(t *Token) *TokenizerState {
	ns := c.adjustedCurrentNamespace()
	switch t.Atom {
	case atom.Svg:
		ns = dom.SVGNamespace
	case atom.Math:
		ns = dom.MathMLNamespace
	}

	id := c.Document.CreateElement(t.TagName, ns, dedupeAttributes(t.Attributes))
	c.insert(id)

	if ns != dom.HTMLNamespace {
		if !t.SelfClosing {
			c.push(id, t.TagName)
		}
		return nil
	}
	if dom.IsVoid(t.TagName) {
		return nil
	}
	c.push(id, t.TagName)

	if state, ok := textStates[t.Atom]; ok {
		return &state
	}
	return nil
}

func (c *HTMLTreeConstructor) push(id dom.NodeID, name string) {
	c.stackOfOpenElements = append(c.stackOfOpenElements, id)
	c.log.WithFields(logrus.Fields{
		"element": name,
		"depth":   len(c.stackOfOpenElements),
	}).Debug("push")
}

// processEndTag pops up to and including the nearest open element with the
// same name. End tags with nothing to close are ignored.
func (c *HTMLTreeConstructor) processEndTag(t *Token) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.Document.Node(c.stackOfOpenElements[i])
		if n.Name != t.TagName {
			continue
		}
		c.log.WithFields(logrus.Fields{
			"element": n.Name,
			"popped":  len(c.stackOfOpenElements) - i,
		}).Debug("pop")
		c.stackOfOpenElements = c.stackOfOpenElements[:i]
		return
	}
	c.log.WithField("element", t.TagName).Debug("ignored end tag")
}

// Finish reports the first construction error, wrapped with where it
// happened.
func (c *HTMLTreeConstructor) Finish() error {
	return errors.Wrap(c.err, "building document")
}
