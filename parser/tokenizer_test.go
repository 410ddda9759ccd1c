package parser

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// items pulls everything out of a tokenizer. Tokens are rendered with
// String and parse errors as "!" plus their code so the interleaving can be
// checked.
func items(input string, cfg *Config) []string {
	p := NewHTMLTokenizer(input, cfg)
	var out []string
	for p.Next() {
		t, err := p.Token(nil)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				out = append(out, "!"+perr.Code.String())
			}
			continue
		}
		out = append(out, t.String())
	}
	return out
}

func codes(errs []*ParseError) []ErrorCode {
	var out []ErrorCode
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestTokenizerOutput(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"EndOfFile"}},
		{"<html></html>", []string{"StartTag(html)", "EndTag(html)", "EndOfFile"}},
		{"<DIV>", []string{"StartTag(div)", "EndOfFile"}},
		{"<!DOCTYPE html>", []string{
			`Doctype(name="html" public=None system=None quirks=false)`,
			"EndOfFile",
		}},
		{`<!DOCTYPE html PUBLIC "A" "B">`, []string{
			`Doctype(name="html" public="A" system="B" quirks=false)`,
			"EndOfFile",
		}},
		{"<!-- a <!-- nested --> ", []string{
			"!nested-comment",
			`Comment(" a <!-- nested ")`,
			"Character(' ')",
			"EndOfFile",
		}},
		{"<!-- This is a <!-- nested comment -->", []string{
			"!nested-comment",
			`Comment(" This is a <!-- nested comment ")`,
			"EndOfFile",
		}},
		{"a\x00b", []string{
			"Character('a')",
			"!unexpected-null-character",
			`Character('\x00')`,
			"Character('b')",
			"EndOfFile",
		}},
		{"<", []string{"!eof-before-tag-name", "Character('<')", "EndOfFile"}},
		{"</", []string{"!eof-before-tag-name", "Character('<')", "Character('/')", "EndOfFile"}},
		{"</>", []string{"!missing-end-tag-name", "EndOfFile"}},
		{"<1", []string{"!invalid-first-character-of-tag-name", "Character('<')", "Character('1')", "EndOfFile"}},
		{"<div", []string{"!eof-in-tag", "EndOfFile"}},
		{"<div id='x'", []string{"!eof-in-tag", "EndOfFile"}},
		{"<?php ?>", []string{"!unexpected-question-mark-instead-of-tag-name", `Comment("?php ?")`, "EndOfFile"}},
		{"</1>", []string{"!invalid-first-character-of-tag-name", `Comment("1")`, "EndOfFile"}},
		{`</div id="a">`, []string{"!end-tag-with-attributes", "EndTag(div)", "EndOfFile"}},
		{"</br/>", []string{"!end-tag-with-trailing-solidus", "EndTag(br)", "EndOfFile"}},
		{"<br/>", []string{"StartTag(br /)", "EndOfFile"}},
		{"<a b=1 b=2>", []string{"!duplicate-attribute", `StartTag(a b="1" b="2")`, "EndOfFile"}},
		{`<a b="1"c="2">`, []string{"!missing-whitespace-between-attributes", `StartTag(a b="1" c="2")`, "EndOfFile"}},
		{"<a/b>", []string{"!unexpected-solidus-in-tag", `StartTag(a b="")`, "EndOfFile"}},
		{"<a b=>", []string{"!missing-attribute-value", `StartTag(a b="")`, "EndOfFile"}},
		{"<!x>", []string{"!incorrectly-opened-comment", `Comment("x")`, "EndOfFile"}},
		{"<!-->", []string{"!abrupt-closing-of-empty-comment", `Comment("")`, "EndOfFile"}},
		{"<!--->", []string{"!abrupt-closing-of-empty-comment", `Comment("")`, "EndOfFile"}},
		{"<!--a--!>", []string{"!incorrectly-closed-comment", `Comment("a")`, "EndOfFile"}},
		{"<!--a--!-->", []string{`Comment("a--!")`, "EndOfFile"}},
		{"<!--a---->", []string{`Comment("a--")`, "EndOfFile"}},
		{"<!--a", []string{"!eof-in-comment", `Comment("a")`, "EndOfFile"}},
		{"<![CDATA[x]]>", []string{"!cdata-in-html-content", `Comment("[CDATA[x]]")`, "EndOfFile"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, items(tt.in, nil)); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDoctypes(t *testing.T) {
	tests := []struct {
		in   string
		want *Token
		errs []ErrorCode
	}{
		{"<!DOCTYPE>", NewDoctype(nil, nil, nil, true), []ErrorCode{MissingDoctypeName}},
		{"<!DOCTYPE", NewDoctype(nil, nil, nil, true), []ErrorCode{EOFInDoctype}},
		{"<!DOCTYPE html", NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{EOFInDoctype}},
		{"<!doctype HTML>", NewDoctype(StringPtr("html"), nil, nil, false), nil},
		{"<!DOCTYPEhtml>", NewDoctype(StringPtr("html"), nil, nil, false), []ErrorCode{MissingWhitespaceBeforeDoctypeName}},
		{"<!DOCTYPE \x00>", NewDoctype(StringPtr("�"), nil, nil, false), []ErrorCode{UnexpectedNullCharacter}},
		{"<!DOCTYPE html foo>", NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{InvalidCharacterSequenceAfterDoctypeName}},
		{`<!DOCTYPE html public "x">`, NewDoctype(StringPtr("html"), StringPtr("x"), nil, false), nil},
		{`<!DOCTYPE html PUBLIC"x">`, NewDoctype(StringPtr("html"), StringPtr("x"), nil, false), []ErrorCode{MissingWhitespaceAfterDoctypePublicKeyword}},
		{`<!DOCTYPE html PUBLIC x>`, NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{MissingQuoteBeforeDoctypePublicIdentifier}},
		{`<!DOCTYPE html PUBLIC "x>`, NewDoctype(StringPtr("html"), StringPtr("x"), nil, true), []ErrorCode{AbruptDoctypePublicIdentifier}},
		{`<!DOCTYPE html PUBLIC>`, NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{MissingDoctypePublicIdentifier}},
		{`<!DOCTYPE html PUBLIC "">`, NewDoctype(StringPtr("html"), StringPtr(""), nil, false), nil},
		{`<!DOCTYPE html PUBLIC "a"'b'>`, NewDoctype(StringPtr("html"), StringPtr("a"), StringPtr("b"), false), []ErrorCode{MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers}},
		{`<!DOCTYPE html SYSTEM "s">`, NewDoctype(StringPtr("html"), nil, StringPtr("s"), false), nil},
		{`<!DOCTYPE html SYSTEM>`, NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{MissingDoctypeSystemIdentifier}},
		{`<!DOCTYPE html SYSTEM 's`, NewDoctype(StringPtr("html"), nil, StringPtr("s"), true), []ErrorCode{EOFInDoctype}},
		{`<!DOCTYPE html SYSTEM "s>`, NewDoctype(StringPtr("html"), nil, StringPtr("s"), true), []ErrorCode{AbruptDoctypeSystemIdentifier}},
		{`<!DOCTYPE html SYSTEM "s" x>`, NewDoctype(StringPtr("html"), nil, StringPtr("s"), false), []ErrorCode{UnexpectedCharacterAfterDoctypeSystemIdentifier}},
		{`<!DOCTYPE html SYSTEMx>`, NewDoctype(StringPtr("html"), nil, nil, true), []ErrorCode{MissingQuoteBeforeDoctypeSystemIdentifier}},
		{"<!DOCTYPE html PUBLIC \"\x00\">", NewDoctype(StringPtr("html"), StringPtr("�"), nil, false), []ErrorCode{UnexpectedNullCharacter}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, errs := NewHTMLTokenizer(tt.in, nil).Tokens()
			require.Len(t, tokens, 2)
			assert.True(t, tt.want.Equal(tokens[0]), "want %s, got %s", tt.want, tokens[0])
			assert.Equal(t, EndOfFileToken, tokens[1].Type)
			assert.Equal(t, tt.errs, codes(errs))
		})
	}
}

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string     // snippet of HTML to tokenize (should only be one element)
	attrs  Attributes // expected attributes of the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", Attributes{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", Attributes{
		{"href", "https://google.com"},
		{"onclick", "alert(1)"},
	}},
	// both are kept; tree construction drops the second.
	{"<script src='123' src='456'></script>", Attributes{
		{"src", "123"},
		{"src", "456"},
	}},
	{"<script src=123 onload=test></script>", Attributes{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script src='123' onload='test' ></script>", Attributes{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script =src='123'onload='test' ></script>", Attributes{
		{"=src", "123"},
		{"onload", "test"},
	}},
	{"<script src></script>", Attributes{{"src", ""}}},
	{"<script src test></script>", Attributes{
		{"src", ""},
		{"test", ""},
	}},
	{"<script 'asd></script>", Attributes{{"'asd", ""}}},
	{"<script <asd></script>", Attributes{{"<asd", ""}}},
	{"<script ABC=123></script>", Attributes{{"abc", "123"}}},
	{"<script abc='\u0000123'></script>", Attributes{{"abc", "�123"}}},
	{"<script abc=></script>", Attributes{{"abc", ""}}},
	{"<script\tabc=123></script>", Attributes{{"abc", "123"}}},
	{"<a b=x\"y>", Attributes{{"b", "x\"y"}}},
	{"<a b\"c>", Attributes{{"b\"c", ""}}},
	{"<a \x00=1>", Attributes{{"�", "1"}}},
}

// TestTokenizerAttributeAccuracy just makes sure that we have the
// correct attribute names and values
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

// helper function to parallelize the above test case.
func runTestTokenizerAttributeAccuracy(tt tokenizerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		tokens, _ := NewHTMLTokenizer(tt.inHTML, nil).Tokens()
		require.NotEmpty(t, tokens)
		require.Equal(t, TagToken, tokens[0].Type)
		if !tt.attrs.Equal(tokens[0].Attributes) {
			t.Errorf("Expected attributes %v, got %v", tt.attrs, tokens[0].Attributes)
		}
	})
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     TokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState TokenizerState // the next state
}

// TestStateParsers checks that each handler moves to the next expected state
// for a single character. Handlers that need a staged token are covered by
// the full tokenizer tests instead.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', DataState, false, CharacterReferenceState},
		{'<', DataState, false, TagOpenState},
		{'\u0000', DataState, false, DataState},
		{'a', DataState, false, DataState},
		{'A', DataState, false, DataState},
		{'1', DataState, false, DataState},

		{'&', RCDataState, false, CharacterReferenceState},
		{'<', RCDataState, false, RCDataLessThanSignState},
		{'\u0000', RCDataState, false, RCDataState},
		{'#', RCDataState, false, RCDataState},

		{'<', RawTextState, false, RawTextLessThanSignState},
		{'&', RawTextState, false, RawTextState},
		{'<', ScriptDataState, false, ScriptDataLessThanSignState},
		{'<', PlaintextState, false, PlaintextState},

		{'!', TagOpenState, false, MarkupDeclarationOpenState},
		{'/', TagOpenState, false, EndTagOpenState},
		{'a', TagOpenState, true, TagNameState},
		{'?', TagOpenState, true, BogusCommentState},
		{'1', TagOpenState, true, DataState},
		{'a', EndTagOpenState, true, TagNameState},
		{'>', EndTagOpenState, false, DataState},
		{'1', EndTagOpenState, true, BogusCommentState},

		{'/', RCDataLessThanSignState, false, RCDataEndTagOpenState},
		{'a', RCDataLessThanSignState, true, RCDataState},
		{'a', RCDataEndTagOpenState, true, RCDataEndTagNameState},
		{'1', RCDataEndTagOpenState, true, RCDataState},
		{'/', RawTextLessThanSignState, false, RawTextEndTagOpenState},
		{'!', ScriptDataLessThanSignState, false, ScriptDataEscapeStartState},
		{'/', ScriptDataLessThanSignState, false, ScriptDataEndTagOpenState},
		{'-', ScriptDataEscapeStartState, false, ScriptDataEscapeStartDashState},
		{'a', ScriptDataEscapeStartState, true, ScriptDataState},
		{'-', ScriptDataEscapeStartDashState, false, ScriptDataEscapedDashDashState},
		{'-', ScriptDataEscapedState, false, ScriptDataEscapedDashState},
		{'<', ScriptDataEscapedState, false, ScriptDataEscapedLessThanSignState},
		{'a', ScriptDataEscapedDashState, false, ScriptDataEscapedState},
		{'-', ScriptDataEscapedDashDashState, false, ScriptDataEscapedDashDashState},
		{'>', ScriptDataEscapedDashDashState, false, ScriptDataState},
		{'s', ScriptDataEscapedLessThanSignState, true, ScriptDataDoubleEscapeStartState},
		{'/', ScriptDataEscapedLessThanSignState, false, ScriptDataEscapedEndTagOpenState},
		{' ', ScriptDataDoubleEscapeStartState, false, ScriptDataEscapedState},
		{'-', ScriptDataDoubleEscapedState, false, ScriptDataDoubleEscapedDashState},
		{'<', ScriptDataDoubleEscapedState, false, ScriptDataDoubleEscapedLessThanSignState},
		{'>', ScriptDataDoubleEscapedDashDashState, false, ScriptDataState},
		{'/', ScriptDataDoubleEscapedLessThanSignState, false, ScriptDataDoubleEscapeEndState},
		{'x', ScriptDataDoubleEscapedLessThanSignState, true, ScriptDataDoubleEscapedState},
		{'>', ScriptDataDoubleEscapeEndState, false, ScriptDataDoubleEscapedState},

		{' ', BeforeAttributeNameState, false, BeforeAttributeNameState},
		{'/', BeforeAttributeNameState, true, AfterAttributeNameState},
		{'"', BeforeAttributeValueState, false, AttributeValueDoubleQuotedState},
		{'\'', BeforeAttributeValueState, false, AttributeValueSingleQuotedState},
		{'a', BeforeAttributeValueState, true, AttributeValueUnquotedState},
		{'x', AfterAttributeValueQuotedState, true, BeforeAttributeNameState},
		{'/', AfterAttributeValueQuotedState, false, SelfClosingStartTagState},
		{'x', SelfClosingStartTagState, true, BeforeAttributeNameState},
		{'&', AttributeValueUnquotedState, false, CharacterReferenceState},

		{'-', CommentStartState, false, CommentStartDashState},
		{'-', CommentStartDashState, false, CommentEndState},
		{'-', CommentEndDashState, false, CommentEndState},
		{'!', CommentEndState, false, CommentEndBangState},
		{'-', CommentLessThanSignBangState, false, CommentLessThanSignBangDashState},
		{'x', CommentLessThanSignBangState, true, CommentState},
		{'-', CommentLessThanSignBangDashState, false, CommentLessThanSignBangDashDashState},
		{'x', CommentLessThanSignBangDashState, true, CommentEndDashState},
		{'>', CommentLessThanSignBangDashDashState, true, CommentEndState},

		{' ', DoctypeState, false, BeforeDoctypeNameState},
		{'a', DoctypeState, true, BeforeDoctypeNameState},
		{'>', DoctypeState, true, BeforeDoctypeNameState},
		{' ', BeforeDoctypeNameState, false, BeforeDoctypeNameState},
		{' ', AfterDoctypeNameState, false, AfterDoctypeNameState},
		{' ', AfterDoctypeSystemIdentifierState, false, AfterDoctypeSystemIdentifierState},
		{'a', AfterDoctypeSystemIdentifierState, true, BogusDoctypeState},

		{']', CDATASectionState, false, CDATASectionBracketState},
		{'x', CDATASectionState, false, CDATASectionState},
		{']', CDATASectionBracketState, false, CDATASectionEndState},
		{'x', CDATASectionBracketState, true, CDATASectionState},
		{']', CDATASectionEndState, false, CDATASectionEndState},
		{'>', CDATASectionEndState, false, DataState},

		{'a', CharacterReferenceState, true, NamedCharacterReferenceState},
		{'#', CharacterReferenceState, false, NumericCharacterReferenceState},
		{' ', CharacterReferenceState, true, DataState},
		{'a', AmbiguousAmpersandState, false, AmbiguousAmpersandState},
		{';', AmbiguousAmpersandState, true, DataState},
		{'x', NumericCharacterReferenceState, false, HexadecimalCharacterReferenceStartState},
		{'X', NumericCharacterReferenceState, false, HexadecimalCharacterReferenceStartState},
		{'1', NumericCharacterReferenceState, true, DecimalCharacterReferenceStartState},
		{'f', HexadecimalCharacterReferenceStartState, true, HexadecimalCharacterReferenceState},
		{'g', HexadecimalCharacterReferenceStartState, true, DataState},
		{'1', DecimalCharacterReferenceStartState, true, DecimalCharacterReferenceState},
		{'f', HexadecimalCharacterReferenceState, false, HexadecimalCharacterReferenceState},
		{';', HexadecimalCharacterReferenceState, false, NumericCharacterReferenceEndState},
		{'!', DecimalCharacterReferenceState, true, NumericCharacterReferenceEndState},
		{'a', DecimalCharacterReferenceState, true, NumericCharacterReferenceEndState},
		{';', DecimalCharacterReferenceState, false, NumericCharacterReferenceEndState},
	}

	for _, tt := range stateParserTests {
		runStateParserTest(tt, t)
	}
}

// helper function to parallelize the above test case
func runStateParserTest(testcase stateMachineTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%#U", testcase.startingState, testcase.inRune)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(string(testcase.inRune), &Config{InitialState: testcase.startingState})
		p.step()
		if p.currentState != testcase.nextExpectedState {
			t.Errorf("Expected %s state, got %s", testcase.nextExpectedState, p.currentState)
		}

		if p.reconsume != testcase.shouldReconsume {
			t.Errorf("Expected reconsume to be %+v", testcase.shouldReconsume)
		}
	})
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to tokenize
	startState TokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // since we are testing internal state, we need a function that can look inside the tokenizer
}

func stagedTagName(p *HTMLTokenizer) string {
	tag, err := p.tokenBuilder.Tag()
	if err != nil {
		return err.Error()
	}
	return tag.Name()
}

func stagedCommentData(p *HTMLTokenizer) string {
	c, err := p.tokenBuilder.Comment()
	if err != nil {
		return err.Error()
	}
	return c.data.String()
}

// TestParseStatefulness steps the tokenizer through its whole input, stopping
// before end of input so the token builder can be inspected. The end of
// input handlers would otherwise flush or discard what was staged.
func TestParseStatefulness(t *testing.T) {
	parserStatefulnessTestCases := []parserStatefulnessTestCase{
		{"&", DataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), DataState.String() }},
		{"&", RCDataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), RCDataState.String() }},
		{"b", TagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "b" }},
		{"ba", TagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "ba" }},
		{"bAc", TagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "bac" }},
		{"bA\u0000c", TagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "ba�c" }},
		{"a", EndTagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "a" }},
		{"P", EndTagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedTagName(p), "p" }},
		{"1", EndTagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedCommentData(p), "1" }},
		{"?x", TagOpenState, func(p *HTMLTokenizer) (string, string) { return stagedCommentData(p), "?x" }},
		{"#x4", CharacterReferenceState, func(p *HTMLTokenizer) (string, string) { return fmt.Sprint(p.tokenBuilder.CharRef()), "4" }},
		{"#12", CharacterReferenceState, func(p *HTMLTokenizer) (string, string) { return fmt.Sprint(p.tokenBuilder.CharRef()), "12" }},
		{"#x", CharacterReferenceState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "&#x" }},
	}

	for _, testcase := range parserStatefulnessTestCases {
		runParserStatefulnessTest(testcase, t)
	}
}

// helper function to parallelize the above tests
func runParserStatefulnessTest(testcase parserStatefulnessTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%s", testcase.startState, testcase.inHTML)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(testcase.inHTML, &Config{InitialState: testcase.startState})
		for p.stream.Peek(0) != EndOfInput || p.reconsume {
			p.step()
		}
		answer, expected := testcase.testFunc(p)
		if expected != answer {
			t.Errorf("Expected %s, but got %s", expected, answer)
		}
	})
}

func TestEveryStateEndsWithOneEndOfFile(t *testing.T) {
	for s := DataState; s <= NumericCharacterReferenceEndState; s++ {
		s := s
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer("", &Config{InitialState: s})
			stageFor(p, s)

			tokens, _ := p.Tokens()
			require.NotEmpty(t, tokens)
			eofs := 0
			for _, tok := range tokens {
				if tok.Type == EndOfFileToken {
					eofs++
				}
			}
			assert.Equal(t, 1, eofs)
			assert.Equal(t, EndOfFileToken, tokens[len(tokens)-1].Type)

			// terminal from here on.
			assert.False(t, p.Next())
			again, err := p.Token(nil)
			require.NoError(t, err)
			assert.Equal(t, EndOfFileToken, again.Type)
		})
	}
}

// stageFor stages whatever token a state expects to find in the builder
// when it is entered in the middle of a document.
func stageFor(p *HTMLTokenizer, s TokenizerState) {
	switch s {
	case TagNameState, RCDataEndTagNameState, RawTextEndTagNameState,
		ScriptDataEndTagNameState, ScriptDataEscapedEndTagNameState,
		BeforeAttributeNameState, AfterAttributeNameState, BeforeAttributeValueState,
		AfterAttributeValueQuotedState, SelfClosingStartTagState:
		p.beginTag(StartTag)
	case AttributeNameState, AttributeValueDoubleQuotedState,
		AttributeValueSingleQuotedState, AttributeValueUnquotedState:
		p.beginTag(StartTag)
		p.currentTag().StartAttribute()
	case BogusCommentState, CommentStartState, CommentStartDashState, CommentState,
		CommentLessThanSignState, CommentLessThanSignBangState,
		CommentLessThanSignBangDashState, CommentLessThanSignBangDashDashState,
		CommentEndDashState, CommentEndState, CommentEndBangState:
		p.beginComment()
	case DoctypeNameState, AfterDoctypeNameState, AfterDoctypePublicKeywordState,
		BeforeDoctypePublicIdentifierState, DoctypePublicIdentifierDoubleQuotedState,
		DoctypePublicIdentifierSingleQuotedState, AfterDoctypePublicIdentifierState,
		BetweenDoctypePublicAndSystemIdentifiersState, AfterDoctypeSystemKeywordState,
		BeforeDoctypeSystemIdentifierState, DoctypeSystemIdentifierDoubleQuotedState,
		DoctypeSystemIdentifierSingleQuotedState, AfterDoctypeSystemIdentifierState,
		BogusDoctypeState:
		p.beginDoctype()
		p.currentDoctype().AppendName('x')
	}
}

func TestTextStates(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		state TokenizerState
		last  string
		want  []string
	}{
		{"rcdata end tag", "a&amp;</title>", RCDataState, "title", []string{
			"Character('a')", "Character('&')", "EndTag(title)", "EndOfFile",
		}},
		{"rcdata wrong end tag", "</b>", RCDataState, "title", []string{
			"Character('<')", "Character('/')", "Character('b')", "Character('>')", "EndOfFile",
		}},
		{"rcdata no last start tag", "</title>", RCDataState, "", []string{
			"Character('<')", "Character('/')", "Character('t')", "Character('i')",
			"Character('t')", "Character('l')", "Character('e')", "Character('>')", "EndOfFile",
		}},
		{"rcdata uppercase end tag", "</TITLE >", RCDataState, "title", []string{"EndTag(title)", "EndOfFile"}},
		{"rawtext ignores references", "&lt;</style>", RawTextState, "style", []string{
			"Character('&')", "Character('l')", "Character('t')", "Character(';')", "EndTag(style)", "EndOfFile",
		}},
		{"rawtext nul", "\x00", RawTextState, "", []string{"!unexpected-null-character", "Character('�')", "EndOfFile"}},
		{"plaintext never ends", "</plaintext>", PlaintextState, "plaintext", []string{
			"Character('<')", "Character('/')", "Character('p')", "Character('l')", "Character('a')",
			"Character('i')", "Character('n')", "Character('t')", "Character('e')", "Character('x')",
			"Character('t')", "Character('>')", "EndOfFile",
		}},
		{"script end tag", "x</script>", ScriptDataState, "script", []string{"Character('x')", "EndTag(script)", "EndOfFile"}},
		{"script end tag with attribute", "</script a>", ScriptDataState, "script", []string{
			"!end-tag-with-attributes", "EndTag(script)", "EndOfFile",
		}},
		{"script escaped eof", "<!--x", ScriptDataState, "script", []string{
			"Character('<')", "Character('!')", "Character('-')", "Character('-')", "Character('x')",
			"!eof-in-script-html-comment-like-text", "EndOfFile",
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := items(tt.in, &Config{InitialState: tt.state, LastStartTag: tt.last})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// charactersOf joins the character tokens and reports the first non
// character token.
func charactersOf(tokens []*Token) (string, *Token) {
	var b []rune
	for _, t := range tokens {
		if t.Type != CharacterToken {
			return string(b), t
		}
		b = append(b, t.Char)
	}
	return string(b), nil
}

func TestScriptDoubleEscape(t *testing.T) {
	in := "<!--<script>x</script>-->"
	tokens, errs := NewHTMLTokenizer(in+"</script>", &Config{
		InitialState: ScriptDataState,
		LastStartTag: "script",
	}).Tokens()
	assert.Empty(t, errs)

	text, next := charactersOf(tokens)
	assert.Equal(t, in, text)
	require.NotNil(t, next)
	assert.True(t, NewEndTag("script").Equal(next), "got %s", next)

	// inside the double escape an end tag does not close the script.
	in = "<!--<script></script x>"
	tokens, _ = NewHTMLTokenizer(in, &Config{
		InitialState: ScriptDataState,
		LastStartTag: "script",
	}).Tokens()
	text, next = charactersOf(tokens)
	assert.Equal(t, in, text)
	assert.Equal(t, EndOfFileToken, next.Type)
}

func TestCDATA(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"<![CDATA[x]]>", []string{"Character('x')", "EndOfFile"}},
		{"<![CDATA[a]b]]]>", []string{
			"Character('a')", "Character(']')", "Character('b')", "Character(']')", "EndOfFile",
		}},
		{"<![CDATA[x", []string{"Character('x')", "!eof-in-cdata", "EndOfFile"}},
		{"<![cdata[x]]>", []string{"!incorrectly-opened-comment", `Comment("[cdata[x]]")`, "EndOfFile"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, items(tt.in, &Config{AllowCDATA: true})); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProgressAdjustsTokenizer(t *testing.T) {
	p := NewHTMLTokenizer("<title><b></title><![CDATA[x]]>", nil)

	tok, err := p.Token(nil)
	require.NoError(t, err)
	require.True(t, NewStartTag("title", false).Equal(tok))

	rcdata := RCDataState
	text, _ := charactersOfPulls(p, MakeProgress(0, &rcdata), 3)
	assert.Equal(t, "<b>", text)

	tok, err = p.Token(nil)
	require.NoError(t, err)
	assert.True(t, NewEndTag("title").Equal(tok))

	// a foreign adjusted current node enables CDATA sections.
	p.Adjust(MakeProgress(1, nil))
	tok, err = p.Token(nil)
	require.NoError(t, err)
	assert.True(t, NewCharacter('x').Equal(tok), "got %s", tok)
}

// charactersOfPulls pulls n tokens, applying progress before the first.
func charactersOfPulls(p *HTMLTokenizer, progress *Progress, n int) (string, error) {
	var b []rune
	for i := 0; i < n; i++ {
		tok, err := p.Token(progress)
		progress = nil
		if err != nil {
			return string(b), err
		}
		b = append(b, tok.Char)
	}
	return string(b), nil
}

func TestTokenAfterEndOfFile(t *testing.T) {
	p := NewHTMLTokenizer("a", nil)
	tokens, errs := p.Tokens()
	assert.Empty(t, errs)
	assert.Len(t, tokens, 2)
	assert.False(t, p.Next())

	for i := 0; i < 3; i++ {
		tok, err := p.Token(nil)
		require.NoError(t, err)
		assert.Equal(t, EndOfFileToken, tok.Type)
	}
}

func TestErrorsPrecedeTheirToken(t *testing.T) {
	p := NewHTMLTokenizer("<!DOCTYPE>", nil)

	_, err := p.Token(nil)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, MissingDoctypeName, perr.Code)
	assert.Equal(t, "missing-doctype-name at offset 10", err.Error())

	tok, err := p.Token(nil)
	require.NoError(t, err)
	assert.Equal(t, DoctypeToken, tok.Type)
	assert.True(t, tok.ForceQuirks)
}

func TestDiagnostics(t *testing.T) {
	p := NewHTMLTokenizer("a\r\nb", &Config{Debug: true})
	assert.Equal(t, "a\nb", p.Input())
	assert.Equal(t, DataState, p.State())

	_, err := p.Token(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Offset())

	p.SwitchTo(PlaintextState)
	assert.Equal(t, PlaintextState, p.State())
	p.SetLastStartTag("x")
	assert.Equal(t, "x", p.lastEmittedStartTagName)
	p.SetAllowCDATA(true)
	assert.True(t, p.allowCDATA)
}
