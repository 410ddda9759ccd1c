package parser

import (
	"strings"

	"github.com/pkg/errors"
)

//go:generate stringer -type=TokenizerState
type TokenizerState uint8

const (
	DataState TokenizerState = iota
	RCDataState
	RawTextState
	ScriptDataState
	PlaintextState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDataLessThanSignState
	RCDataEndTagOpenState
	RCDataEndTagNameState
	RawTextLessThanSignState
	RawTextEndTagOpenState
	RawTextEndTagNameState
	ScriptDataLessThanSignState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	ScriptDataEscapeStartState
	ScriptDataEscapeStartDashState
	ScriptDataEscapedState
	ScriptDataEscapedDashState
	ScriptDataEscapedDashDashState
	ScriptDataEscapedLessThanSignState
	ScriptDataEscapedEndTagOpenState
	ScriptDataEscapedEndTagNameState
	ScriptDataDoubleEscapeStartState
	ScriptDataDoubleEscapedState
	ScriptDataDoubleEscapedDashState
	ScriptDataDoubleEscapedDashDashState
	ScriptDataDoubleEscapedLessThanSignState
	ScriptDataDoubleEscapeEndState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanSignState
	CommentLessThanSignBangState
	CommentLessThanSignBangDashState
	CommentLessThanSignBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	DoctypeState
	BeforeDoctypeNameState
	DoctypeNameState
	AfterDoctypeNameState
	AfterDoctypePublicKeywordState
	BeforeDoctypePublicIdentifierState
	DoctypePublicIdentifierDoubleQuotedState
	DoctypePublicIdentifierSingleQuotedState
	AfterDoctypePublicIdentifierState
	BetweenDoctypePublicAndSystemIdentifiersState
	AfterDoctypeSystemKeywordState
	BeforeDoctypeSystemIdentifierState
	DoctypeSystemIdentifierDoubleQuotedState
	DoctypeSystemIdentifierSingleQuotedState
	AfterDoctypeSystemIdentifierState
	BogusDoctypeState
	CDATASectionState
	CDATASectionBracketState
	CDATASectionEndState
	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

// html5lib fixtures name their initial states in prose.
var html5libStateNames = map[string]TokenizerState{
	"Data state":          DataState,
	"PLAINTEXT state":     PlaintextState,
	"RCDATA state":        RCDataState,
	"RAWTEXT state":       RawTextState,
	"Script data state":   ScriptDataState,
	"CDATA section state": CDATASectionState,
}

// ParseTokenizerState accepts either a constant name such as "RCDataState"
// (case-insensitive, the State suffix optional) or an html5lib state name.
func ParseTokenizerState(name string) (TokenizerState, error) {
	if s, ok := html5libStateNames[name]; ok {
		return s, nil
	}
	want := strings.ToLower(strings.TrimSuffix(name, "State"))
	for s := DataState; s <= NumericCharacterReferenceEndState; s++ {
		if strings.ToLower(strings.TrimSuffix(s.String(), "State")) == want {
			return s, nil
		}
	}
	return DataState, errors.Wrapf(ErrUnknownTokenizerState, "%q", name)
}

// isAttributeValueState reports whether a character reference that returns
// to s is part of an attribute value.
func isAttributeValueState(s TokenizerState) bool {
	switch s {
	case AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState, AttributeValueUnquotedState:
		return true
	}
	return false
}
