package parser

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/htmltok/parser/dom"
)

// Config controls how a tokenizer starts. A nil *Config means start in the
// data state with no last start tag and CDATA sections disabled.
type Config struct {
	// InitialState is used for fragments and tests, e.g. RCDataState for
	// the contents of a <title>.
	InitialState TokenizerState
	// LastStartTag seeds the "appropriate end tag" check.
	LastStartTag string
	// AllowCDATA lets <![CDATA[ open a CDATA section instead of a bogus
	// comment. The tree constructor normally drives this through Progress.
	AllowCDATA bool
	// Debug traces every transition and emission at trace level.
	Debug  bool
	Logger logrus.FieldLogger
}

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done, eofEmitted          bool
	returnState, currentState TokenizerState
	reconsume                 bool
	current                   Codepoint
	stream                    *codepointStream
	tokenBuilder              *TokenBuilder
	queue                     tokenQueue
	lastEmittedStartTagName   string
	allowCDATA                bool
	debug                     bool
	log                       logrus.FieldLogger
}

// NewHTMLTokenizer creates an HTML tokenizer that can be used to process
// an HTML string.
func NewHTMLTokenizer(input string, cfg *Config) *HTMLTokenizer {
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HTMLTokenizer{
		currentState:            cfg.InitialState,
		stream:                  newCodepointStream(input),
		tokenBuilder:            newTokenBuilder(),
		lastEmittedStartTagName: cfg.LastStartTag,
		allowCDATA:              cfg.AllowCDATA,
		debug:                   cfg.Debug,
		log:                     log.WithField("component", "tokenizer"),
	}
}

// a parserStateHandler runs one transition of the state it belongs to.
type parserStateHandler func()

func (p *HTMLTokenizer) stateToParser(state TokenizerState) parserStateHandler {
	switch state {
	case DataState:
		return p.dataStateParser
	case RCDataState:
		return p.rcDataStateParser
	case RawTextState:
		return p.rawTextStateParser
	case ScriptDataState:
		return p.scriptDataStateParser
	case PlaintextState:
		return p.plaintextStateParser
	case TagOpenState:
		return p.tagOpenStateParser
	case EndTagOpenState:
		return p.endTagOpenStateParser
	case TagNameState:
		return p.tagNameStateParser
	case RCDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case RCDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case RCDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case RawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case RawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case RawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case ScriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case ScriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case ScriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case ScriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case ScriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case ScriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case ScriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case ScriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case ScriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case ScriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case ScriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case ScriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case ScriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case ScriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case ScriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case ScriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case ScriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case BeforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case AttributeNameState:
		return p.attributeNameStateParser
	case AfterAttributeNameState:
		return p.afterAttributeNameStateParser
	case BeforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case AttributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case AttributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case AttributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case AfterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case SelfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case BogusCommentState:
		return p.bogusCommentStateParser
	case MarkupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case CommentStartState:
		return p.commentStartStateParser
	case CommentStartDashState:
		return p.commentStartDashStateParser
	case CommentState:
		return p.commentStateParser
	case CommentLessThanSignState:
		return p.commentLessThanSignStateParser
	case CommentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case CommentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case CommentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case CommentEndDashState:
		return p.commentEndDashStateParser
	case CommentEndState:
		return p.commentEndStateParser
	case CommentEndBangState:
		return p.commentEndBangStateParser
	case DoctypeState:
		return p.doctypeStateParser
	case BeforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case DoctypeNameState:
		return p.doctypeNameStateParser
	case AfterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case AfterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case BeforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case DoctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case DoctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case AfterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case BetweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case AfterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case BeforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case DoctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case DoctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case AfterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case BogusDoctypeState:
		return p.bogusDoctypeStateParser
	case CDATASectionState:
		return p.cdataSectionStateParser
	case CDATASectionBracketState:
		return p.cdataSectionBracketStateParser
	case CDATASectionEndState:
		return p.cdataSectionEndStateParser
	case CharacterReferenceState:
		return p.characterReferenceStateParser
	case NamedCharacterReferenceState:
		return p.namedCharacterReferenceStateParser
	case AmbiguousAmpersandState:
		return p.ambiguousAmpersandStateParser
	case NumericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case HexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case DecimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case HexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case DecimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	case NumericCharacterReferenceEndState:
		return p.numericCharacterReferenceEndStateParser
	}

	return nil
}

// step runs exactly one transition.
func (p *HTMLTokenizer) step() {
	handler := p.stateToParser(p.currentState)
	if handler == nil {
		p.invariant(errors.Wrapf(ErrUnknownTokenizerState, "%d", p.currentState))
		p.reconsume = false
		p.currentState = DataState
		return
	}
	handler()
}

// consume returns the next input character, or the previous one again if
// a reconsume is pending.
func (p *HTMLTokenizer) consume() Codepoint {
	if p.reconsume {
		p.reconsume = false
		return p.current
	}
	p.current = p.stream.ConsumeNext()
	return p.current
}

func (p *HTMLTokenizer) switchTo(state TokenizerState) {
	if state == p.currentState {
		return
	}
	if p.debug {
		p.log.WithFields(logrus.Fields{
			"from": p.currentState,
			"to":   state,
			"rune": string(rune(p.current)),
		}).Trace("switch")
	}
	p.currentState = state
}

func (p *HTMLTokenizer) reconsumeIn(state TokenizerState) {
	if p.reconsume {
		p.invariant(ErrReconsumePending)
	}
	if p.debug {
		p.log.WithFields(logrus.Fields{
			"from": p.currentState,
			"to":   state,
			"rune": string(rune(p.current)),
		}).Trace("reconsume")
	}
	p.reconsume = true
	p.currentState = state
}

func (p *HTMLTokenizer) emit(t *Token) {
	switch t.Type {
	case TagToken:
		if t.Kind == StartTag {
			p.lastEmittedStartTagName = t.TagName
		}
	case EndOfFileToken:
		p.eofEmitted = true
	}
	if p.debug {
		p.log.WithField("token", t).Trace("emit")
	}
	p.queue.pushToken(t)
}

func (p *HTMLTokenizer) emitCharacter(r rune) {
	p.emit(NewCharacter(r))
}

func (p *HTMLTokenizer) emitString(s string) {
	for _, r := range s {
		p.emitCharacter(r)
	}
}

func (p *HTMLTokenizer) emitEndOfFile() {
	p.emit(NewEndOfFile())
}

func (p *HTMLTokenizer) parseError(code ErrorCode) {
	e := &ParseError{Code: code, Offset: p.stream.Offset()}
	if p.debug {
		p.log.WithField("error", e).Trace("parse error")
	}
	p.queue.pushError(e)
}

// emitCurrentToken hands the staged tag, doctype or comment to the output
// queue. End tag errors are reported first so they precede the token.
func (p *HTMLTokenizer) emitCurrentToken() {
	if tag, err := p.tokenBuilder.Tag(); err == nil && tag.Kind == EndTag {
		if len(tag.Attributes()) > 0 {
			p.parseError(EndTagWithAttributes)
		}
		if tag.SelfClosing {
			p.parseError(EndTagWithTrailingSolidus)
		}
	}
	t, err := p.tokenBuilder.Emit()
	p.invariant(err)
	if t != nil {
		p.emit(t)
	}
}

func (p *HTMLTokenizer) beginTag(kind TagKind) {
	p.invariant(p.tokenBuilder.BeginTag(kind))
}

func (p *HTMLTokenizer) beginDoctype() {
	p.invariant(p.tokenBuilder.BeginDoctype())
}

func (p *HTMLTokenizer) beginComment() {
	p.invariant(p.tokenBuilder.BeginComment())
}

func (p *HTMLTokenizer) currentTag() *IncompleteTag {
	t, err := p.tokenBuilder.Tag()
	if err != nil {
		p.invariant(err)
		return &IncompleteTag{}
	}
	return t
}

func (p *HTMLTokenizer) currentDoctype() *IncompleteDoctype {
	d, err := p.tokenBuilder.Doctype()
	if err != nil {
		p.invariant(err)
		return &IncompleteDoctype{}
	}
	return d
}

func (p *HTMLTokenizer) currentComment() *IncompleteComment {
	c, err := p.tokenBuilder.Comment()
	if err != nil {
		p.invariant(err)
		return &IncompleteComment{}
	}
	return c
}

func (p *HTMLTokenizer) appendAttributeName(r rune) {
	p.invariant(p.currentTag().AppendAttributeName(r))
}

func (p *HTMLTokenizer) appendAttributeValue(r rune) {
	p.invariant(p.currentTag().AppendAttributeValue(r))
}

func (p *HTMLTokenizer) isAppropriateEndTag() bool {
	return p.lastEmittedStartTagName != "" && p.lastEmittedStartTagName == p.currentTag().Name()
}

// Progress is what the tree constructor hands back after each token so the
// tokenizer can follow the parser's lead.
type Progress struct {
	// AdjustedCurrentNamespace is the namespace of the adjusted current
	// node; anything but HTML allows CDATA sections.
	AdjustedCurrentNamespace dom.Namespace
	// TokenizerState, when set, is switched to before the next pull.
	TokenizerState *TokenizerState
}

func MakeProgress(ns dom.Namespace, tokenizerState *TokenizerState) *Progress {
	return &Progress{
		AdjustedCurrentNamespace: ns,
		TokenizerState:           tokenizerState,
	}
}

// Adjust applies the tree constructor's view of the document.
func (p *HTMLTokenizer) Adjust(progress *Progress) {
	p.allowCDATA = progress.AdjustedCurrentNamespace != dom.HTMLNamespace
	if progress.TokenizerState != nil {
		p.SwitchTo(*progress.TokenizerState)
	}
}

// SwitchTo moves the tokenizer into state before the next pull. Tree
// construction uses it for RCDATA, RAWTEXT, script data and PLAINTEXT.
func (p *HTMLTokenizer) SwitchTo(state TokenizerState) {
	p.switchTo(state)
}

// SetLastStartTag sets the tag name used by the appropriate end tag check.
func (p *HTMLTokenizer) SetLastStartTag(name string) {
	p.lastEmittedStartTagName = name
}

// SetAllowCDATA toggles whether <![CDATA[ starts a CDATA section.
func (p *HTMLTokenizer) SetAllowCDATA(allow bool) {
	p.allowCDATA = allow
}

// State is the current state. Diagnostic only.
func (p *HTMLTokenizer) State() TokenizerState {
	return p.currentState
}

// Offset is the number of codepoints consumed. Diagnostic only.
func (p *HTMLTokenizer) Offset() int {
	return p.stream.Offset()
}

// Input returns the newline-normalized input that offsets refer to.
func (p *HTMLTokenizer) Input() string {
	return p.stream.String()
}

// Next reports whether the end of file token has not been handed out yet.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next item: a token, or a *ParseError with a nil token.
// progress may be nil. Once the end of file token has been returned every
// later call returns another end of file token.
func (p *HTMLTokenizer) Token(progress *Progress) (*Token, error) {
	if progress != nil {
		p.Adjust(progress)
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 item is queued and then take it.
	for p.queue.len() == 0 {
		if p.eofEmitted {
			p.done = true
			return NewEndOfFile(), nil
		}
		p.step()
	}

	item, _ := p.queue.pop()
	if item.err != nil {
		return nil, item.err
	}
	if item.token.Type == EndOfFileToken {
		p.done = true
	}
	return item.token, nil
}

// Tokens drains the tokenizer, returning every token up to and including
// end of file along with the parse errors in the order they were found.
func (p *HTMLTokenizer) Tokens() ([]*Token, []*ParseError) {
	var (
		tokens []*Token
		errs   []*ParseError
	)
	for p.Next() {
		t, err := p.Token(nil)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				errs = append(errs, perr)
			}
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, errs
}
