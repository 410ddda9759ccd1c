package parser

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/atom"
)

const maxCodePoint = 0x10FFFF

type incompleteToken interface {
	kind() TokenType
}

// IncompleteDoctype is a doctype token under construction. A nil builder
// means the field is missing; a non-nil empty builder is an empty value.
type IncompleteDoctype struct {
	name, publicID, systemID *strings.Builder
	ForceQuirks              bool
}

func (*IncompleteDoctype) kind() TokenType { return DoctypeToken }

// AppendName appends to the doctype name, creating it on first use.
func (d *IncompleteDoctype) AppendName(r rune) {
	if d.name == nil {
		d.name = &strings.Builder{}
	}
	d.name.WriteRune(r)
}

// StartPublicIdentifier sets the public identifier to the empty string.
func (d *IncompleteDoctype) StartPublicIdentifier() {
	d.publicID = &strings.Builder{}
}

func (d *IncompleteDoctype) AppendPublicIdentifier(r rune) {
	if d.publicID == nil {
		d.StartPublicIdentifier()
	}
	d.publicID.WriteRune(r)
}

// StartSystemIdentifier sets the system identifier to the empty string.
func (d *IncompleteDoctype) StartSystemIdentifier() {
	d.systemID = &strings.Builder{}
}

func (d *IncompleteDoctype) AppendSystemIdentifier(r rune) {
	if d.systemID == nil {
		d.StartSystemIdentifier()
	}
	d.systemID.WriteRune(r)
}

func builderValue(b *strings.Builder) *string {
	if b == nil {
		return nil
	}
	s := b.String()
	return &s
}

func (d *IncompleteDoctype) token() (*Token, error) {
	t := NewDoctype(builderValue(d.name), builderValue(d.publicID), builderValue(d.systemID), d.ForceQuirks)
	if t.Name != nil && *t.Name == "" {
		return t, ErrEmptyDoctypeName
	}
	return t, nil
}

// IncompleteTag is a start or end tag under construction, including the
// attribute currently being read.
type IncompleteTag struct {
	Kind        TagKind
	SelfClosing bool

	name       strings.Builder
	attributes Attributes

	attributeName    strings.Builder
	attributeValue   strings.Builder
	attributePending bool
}

func (*IncompleteTag) kind() TokenType { return TagToken }

// AppendName appends r to the tag name.
func (t *IncompleteTag) AppendName(r rune) {
	t.name.WriteRune(r)
}

// Name returns the tag name built so far.
func (t *IncompleteTag) Name() string {
	return t.name.String()
}

// StartAttribute commits the attribute being read, if any, and starts a
// new one with an empty name and value.
func (t *IncompleteTag) StartAttribute() {
	t.commitAttribute()
	t.attributePending = true
}

func (t *IncompleteTag) AppendAttributeName(r rune) error {
	if !t.attributePending {
		return ErrNoAttributeStarted
	}
	t.attributeName.WriteRune(r)
	return nil
}

func (t *IncompleteTag) AppendAttributeValue(r rune) error {
	if !t.attributePending {
		return ErrNoAttributeStarted
	}
	t.attributeValue.WriteRune(r)
	return nil
}

// PendingAttributeIsDuplicate reports whether the attribute being read has
// the same name as one already committed to this tag.
func (t *IncompleteTag) PendingAttributeIsDuplicate() bool {
	if !t.attributePending {
		return false
	}
	_, ok := t.attributes.Get(t.attributeName.String())
	return ok
}

func (t *IncompleteTag) commitAttribute() {
	if !t.attributePending {
		return
	}
	t.attributes = append(t.attributes, Attribute{
		Name:  t.attributeName.String(),
		Value: t.attributeValue.String(),
	})
	t.attributeName.Reset()
	t.attributeValue.Reset()
	t.attributePending = false
}

// Attributes commits the pending attribute and returns every attribute of
// the tag so far.
func (t *IncompleteTag) Attributes() Attributes {
	t.commitAttribute()
	return t.attributes
}

func (t *IncompleteTag) token() (*Token, error) {
	attrs := t.Attributes()
	name := t.name.String()
	tok := &Token{
		Type:        TagToken,
		Kind:        t.Kind,
		TagName:     name,
		Atom:        atom.Lookup([]byte(name)),
		SelfClosing: t.SelfClosing,
		Attributes:  attrs,
	}
	if tok.Kind == EndTag {
		tok.Attributes = nil
		tok.SelfClosing = false
	}
	if name == "" {
		return tok, ErrEmptyTagName
	}
	return tok, nil
}

// IncompleteComment is a comment token under construction. Empty data is
// legal.
type IncompleteComment struct {
	data strings.Builder
}

func (*IncompleteComment) kind() TokenType { return CommentToken }

func (c *IncompleteComment) Append(r rune) {
	c.data.WriteRune(r)
}

func (c *IncompleteComment) AppendString(s string) {
	c.data.WriteString(s)
}

func (c *IncompleteComment) token() (*Token, error) {
	return NewComment(c.data.String()), nil
}

// TokenBuilder holds the token currently being built along with the
// scratch state some states share: the temporary buffer and the character
// reference code.
type TokenBuilder struct {
	staged                 incompleteToken
	tempBuffer             strings.Builder
	characterReferenceCode int
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

func (b *TokenBuilder) begin(t incompleteToken) error {
	if b.staged != nil {
		err := errors.Wrapf(ErrTokenAlreadyStaged, "begin %s while %s is staged", t.kind(), b.staged.kind())
		b.staged = t
		return err
	}
	b.staged = t
	return nil
}

// BeginTag stages an empty tag of the given kind.
func (b *TokenBuilder) BeginTag(kind TagKind) error {
	return b.begin(&IncompleteTag{Kind: kind})
}

// BeginDoctype stages an empty doctype.
func (b *TokenBuilder) BeginDoctype() error {
	return b.begin(&IncompleteDoctype{})
}

// BeginComment stages an empty comment.
func (b *TokenBuilder) BeginComment() error {
	return b.begin(&IncompleteComment{})
}

// Staged reports whether a token is being built.
func (b *TokenBuilder) Staged() bool {
	return b.staged != nil
}

func (b *TokenBuilder) wrongKind(want TokenType) error {
	if b.staged == nil {
		return errors.Wrapf(ErrNoTokenStaged, "want %s", want)
	}
	return errors.Wrapf(ErrWrongTokenKind, "want %s, have %s", want, b.staged.kind())
}

// Tag returns the staged tag.
func (b *TokenBuilder) Tag() (*IncompleteTag, error) {
	if t, ok := b.staged.(*IncompleteTag); ok {
		return t, nil
	}
	return nil, b.wrongKind(TagToken)
}

// Doctype returns the staged doctype.
func (b *TokenBuilder) Doctype() (*IncompleteDoctype, error) {
	if d, ok := b.staged.(*IncompleteDoctype); ok {
		return d, nil
	}
	return nil, b.wrongKind(DoctypeToken)
}

// Comment returns the staged comment.
func (b *TokenBuilder) Comment() (*IncompleteComment, error) {
	if c, ok := b.staged.(*IncompleteComment); ok {
		return c, nil
	}
	return nil, b.wrongKind(CommentToken)
}

// Emit converts the staged value into a Token and clears the slot. A token
// is returned alongside an invariant error so callers that choose to carry
// on still have something to hand out.
func (b *TokenBuilder) Emit() (*Token, error) {
	var (
		t   *Token
		err error
	)
	switch staged := b.staged.(type) {
	case *IncompleteTag:
		t, err = staged.token()
	case *IncompleteDoctype:
		t, err = staged.token()
	case *IncompleteComment:
		t, err = staged.token()
	default:
		return nil, errors.WithStack(ErrNoTokenStaged)
	}
	b.staged = nil
	if err != nil {
		return t, errors.Wrapf(err, "emit %s", t)
	}
	return t, nil
}

// Discard drops the staged token without emitting it.
func (b *TokenBuilder) Discard() {
	b.staged = nil
}

// WriteTempBuffer appends a character to the temporary buffer.
func (b *TokenBuilder) WriteTempBuffer(r rune) {
	b.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer.
func (b *TokenBuilder) ResetTempBuffer() {
	b.tempBuffer.Reset()
}

// TempBuffer returns the contents of the temporary buffer.
func (b *TokenBuilder) TempBuffer() string {
	return b.tempBuffer.String()
}

// SetCharRef sets the character reference code.
func (b *TokenBuilder) SetCharRef(i int) {
	b.characterReferenceCode = i
}

// CharRef returns the character reference code.
func (b *TokenBuilder) CharRef() int {
	return b.characterReferenceCode
}

// AppendCharRefDigit shifts digit into the character reference code in the
// given base. Once the code leaves the Unicode range it stops growing, which
// keeps long digit runs from overflowing.
func (b *TokenBuilder) AppendCharRefDigit(base, digit int) {
	if b.characterReferenceCode > maxCodePoint {
		return
	}
	b.characterReferenceCode = b.characterReferenceCode*base + digit
}
