package parser

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html/atom"
)

//go:generate stringer -type=TokenType
type TokenType uint8

const (
	CharacterToken TokenType = iota
	TagToken
	CommentToken
	DoctypeToken
	EndOfFileToken
)

// TagKind tells start tags from end tags.
type TagKind uint8

const (
	StartTag TagKind = iota
	EndTag
)

func (k TagKind) String() string {
	if k == EndTag {
		return "EndTag"
	}
	return "StartTag"
}

// Attribute is a single name/value pair of a tag token.
type Attribute struct {
	Name, Value string
}

// Attributes keeps attributes in source order. Duplicate names are allowed
// here; the tree constructor drops all but the first.
type Attributes []Attribute

func (a Attributes) sorted() Attributes {
	s := make(Attributes, len(a))
	copy(s, a)
	sort.Slice(s, func(i, j int) bool {
		if s[i].Name != s[j].Name {
			return s[i].Name < s[j].Name
		}
		return s[i].Value < s[j].Value
	})
	return s
}

// Equal compares two attribute lists regardless of order. Every pair,
// duplicates included, must appear in both.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := a.sorted(), b.sorted()
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// Get returns the value of the first attribute called name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	Type TokenType

	Kind        TagKind
	TagName     string
	Atom        atom.Atom
	SelfClosing bool
	Attributes  Attributes

	Name             *string
	PublicIdentifier *string
	SystemIdentifier *string
	ForceQuirks      bool

	Data string
	Char rune
}

// NewStartTag creates a start tag token.
func NewStartTag(name string, selfClosing bool, attrs ...Attribute) *Token {
	return &Token{
		Type:        TagToken,
		Kind:        StartTag,
		TagName:     name,
		Atom:        atom.Lookup([]byte(name)),
		SelfClosing: selfClosing,
		Attributes:  attrs,
	}
}

// NewEndTag creates an end tag token.
func NewEndTag(name string) *Token {
	return &Token{
		Type:    TagToken,
		Kind:    EndTag,
		TagName: name,
		Atom:    atom.Lookup([]byte(name)),
	}
}

// NewDoctype creates a doctype token. Nil strings are missing values.
func NewDoctype(name, publicID, systemID *string, forceQuirks bool) *Token {
	return &Token{
		Type:             DoctypeToken,
		Name:             name,
		PublicIdentifier: publicID,
		SystemIdentifier: systemID,
		ForceQuirks:      forceQuirks,
	}
}

// NewComment creates a comment token.
func NewComment(data string) *Token {
	return &Token{Type: CommentToken, Data: data}
}

// NewCharacter creates a character token.
func NewCharacter(r rune) *Token {
	return &Token{Type: CharacterToken, Char: r}
}

// NewEndOfFile creates an end of file token.
func NewEndOfFile() *Token {
	return &Token{Type: EndOfFileToken}
}

// StringPtr is a helper for building doctype tokens.
func StringPtr(s string) *string {
	return &s
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Equal reports whether t and o carry the same token. Attribute order is
// ignored.
func (t *Token) Equal(o *Token) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Type != o.Type {
		return false
	}
	switch t.Type {
	case CharacterToken:
		return t.Char == o.Char
	case TagToken:
		return t.Kind == o.Kind &&
			t.TagName == o.TagName &&
			t.SelfClosing == o.SelfClosing &&
			t.Attributes.Equal(o.Attributes)
	case CommentToken:
		return t.Data == o.Data
	case DoctypeToken:
		return equalOptional(t.Name, o.Name) &&
			equalOptional(t.PublicIdentifier, o.PublicIdentifier) &&
			equalOptional(t.SystemIdentifier, o.SystemIdentifier) &&
			t.ForceQuirks == o.ForceQuirks
	}
	return true
}

func optionalString(s *string) string {
	if s == nil {
		return "None"
	}
	return fmt.Sprintf("%q", *s)
}

func (t *Token) String() string {
	switch t.Type {
	case CharacterToken:
		return fmt.Sprintf("Character(%q)", t.Char)
	case TagToken:
		var b strings.Builder
		fmt.Fprintf(&b, "%s(%s", t.Kind, t.TagName)
		for _, a := range t.Attributes {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
		b.WriteByte(')')
		return b.String()
	case CommentToken:
		return fmt.Sprintf("Comment(%q)", t.Data)
	case DoctypeToken:
		return fmt.Sprintf("Doctype(name=%s public=%s system=%s quirks=%t)",
			optionalString(t.Name), optionalString(t.PublicIdentifier), optionalString(t.SystemIdentifier), t.ForceQuirks)
	case EndOfFileToken:
		return "EndOfFile"
	}
	return t.Type.String()
}
