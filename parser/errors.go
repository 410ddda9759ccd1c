package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a tokenizer parse error. The string form is the code
// used by the HTML standard and the html5lib test suite.
type ErrorCode uint8

const (
	AbruptClosingOfEmptyComment ErrorCode = iota
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	AbsenceOfDigitsInNumericCharacterReference
	CDATAInHTMLContent
	CharacterReferenceOutsideUnicodeRange
	ControlCharacterReference
	DuplicateAttribute
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	EOFBeforeTagName
	EOFInCDATA
	EOFInComment
	EOFInDoctype
	EOFInScriptHTMLCommentLikeText
	EOFInTag
	IncorrectlyClosedComment
	IncorrectlyOpenedComment
	InvalidCharacterSequenceAfterDoctypeName
	InvalidFirstCharacterOfTagName
	MissingAttributeValue
	MissingDoctypeName
	MissingDoctypePublicIdentifier
	MissingDoctypeSystemIdentifier
	MissingEndTagName
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	MissingSemicolonAfterCharacterReference
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceBetweenAttributes
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	NestedComment
	NoncharacterCharacterReference
	NullCharacterReference
	SurrogateCharacterReference
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedNullCharacter
	UnexpectedQuestionMarkInsteadOfTagName
	UnexpectedSolidusInTag
	UnknownNamedCharacterReference
)

var errorCodeNames = [...]string{
	AbruptClosingOfEmptyComment:                               "abrupt-closing-of-empty-comment",
	AbruptDoctypePublicIdentifier:                             "abrupt-doctype-public-identifier",
	AbruptDoctypeSystemIdentifier:                             "abrupt-doctype-system-identifier",
	AbsenceOfDigitsInNumericCharacterReference:                "absence-of-digits-in-numeric-character-reference",
	CDATAInHTMLContent:                                        "cdata-in-html-content",
	CharacterReferenceOutsideUnicodeRange:                     "character-reference-outside-unicode-range",
	ControlCharacterReference:                                 "control-character-reference",
	DuplicateAttribute:                                        "duplicate-attribute",
	EndTagWithAttributes:                                      "end-tag-with-attributes",
	EndTagWithTrailingSolidus:                                 "end-tag-with-trailing-solidus",
	EOFBeforeTagName:                                          "eof-before-tag-name",
	EOFInCDATA:                                                "eof-in-cdata",
	EOFInComment:                                              "eof-in-comment",
	EOFInDoctype:                                              "eof-in-doctype",
	EOFInScriptHTMLCommentLikeText:                            "eof-in-script-html-comment-like-text",
	EOFInTag:                                                  "eof-in-tag",
	IncorrectlyClosedComment:                                  "incorrectly-closed-comment",
	IncorrectlyOpenedComment:                                  "incorrectly-opened-comment",
	InvalidCharacterSequenceAfterDoctypeName:                  "invalid-character-sequence-after-doctype-name",
	InvalidFirstCharacterOfTagName:                            "invalid-first-character-of-tag-name",
	MissingAttributeValue:                                     "missing-attribute-value",
	MissingDoctypeName:                                        "missing-doctype-name",
	MissingDoctypePublicIdentifier:                            "missing-doctype-public-identifier",
	MissingDoctypeSystemIdentifier:                            "missing-doctype-system-identifier",
	MissingEndTagName:                                         "missing-end-tag-name",
	MissingQuoteBeforeDoctypePublicIdentifier:                 "missing-quote-before-doctype-public-identifier",
	MissingQuoteBeforeDoctypeSystemIdentifier:                 "missing-quote-before-doctype-system-identifier",
	MissingSemicolonAfterCharacterReference:                   "missing-semicolon-after-character-reference",
	MissingWhitespaceAfterDoctypePublicKeyword:                "missing-whitespace-after-doctype-public-keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword:                "missing-whitespace-after-doctype-system-keyword",
	MissingWhitespaceBeforeDoctypeName:                        "missing-whitespace-before-doctype-name",
	MissingWhitespaceBetweenAttributes:                        "missing-whitespace-between-attributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "missing-whitespace-between-doctype-public-and-system-identifiers",
	NestedComment:                                             "nested-comment",
	NoncharacterCharacterReference:                            "noncharacter-character-reference",
	NullCharacterReference:                                    "null-character-reference",
	SurrogateCharacterReference:                               "surrogate-character-reference",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:           "unexpected-character-after-doctype-system-identifier",
	UnexpectedCharacterInAttributeName:                        "unexpected-character-in-attribute-name",
	UnexpectedCharacterInUnquotedAttributeValue:               "unexpected-character-in-unquoted-attribute-value",
	UnexpectedEqualsSignBeforeAttributeName:                   "unexpected-equals-sign-before-attribute-name",
	UnexpectedNullCharacter:                                   "unexpected-null-character",
	UnexpectedQuestionMarkInsteadOfTagName:                    "unexpected-question-mark-instead-of-tag-name",
	UnexpectedSolidusInTag:                                    "unexpected-solidus-in-tag",
	UnknownNamedCharacterReference:                            "unknown-named-character-reference",
}

func (c ErrorCode) String() string {
	if int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", c)
}

// ParseErrorCode looks up an error code by its hyphenated name.
func ParseErrorCode(name string) (ErrorCode, bool) {
	for i, n := range errorCodeNames {
		if n == name {
			return ErrorCode(i), true
		}
	}
	return 0, false
}

// ParseError is a recoverable problem found in the input. Offset is the
// number of codepoints consumed when the error was reported.
type ParseError struct {
	Code   ErrorCode
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Code, e.Offset)
}

// Programming errors. These never come from the input; they mean a state
// handler broke a builder or dispatch invariant.
var (
	ErrTokenAlreadyStaged    = errors.New("a token is already being built")
	ErrNoTokenStaged         = errors.New("no token is being built")
	ErrWrongTokenKind        = errors.New("staged token has a different kind")
	ErrReconsumePending      = errors.New("reconsume requested while one is pending")
	ErrEmptyTagName          = errors.New("tag token has an empty name")
	ErrEmptyDoctypeName      = errors.New("doctype token has an empty name")
	ErrNoAttributeStarted    = errors.New("no attribute has been started")
	ErrUnknownTokenizerState = errors.New("unknown tokenizer state")
)
