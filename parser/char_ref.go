package parser

import (
	"golang.org/x/net/html"
)

// longestEntityName is the length of the longest named character
// reference, "CounterClockwiseContourIntegral;".
const longestEntityName = 32

// windows1252Replacements maps the C1 control range to what legacy content
// meant by those numeric references.
var windows1252Replacements = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	// the last two code points of every plane.
	return code <= maxCodePoint && code&0xFFFE == 0xFFFE
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

// matchCharacterReference finds the longest named reference at the start of
// run, which holds the ASCII alphanumerics after an ampersand and possibly
// a closing semicolon. It returns the matched name and its expansion.
//
// The entity table lives unexported in x/net/html, so the match is
// recovered from UnescapeString: the shortest prefix that decodes and
// leaves the rest of run untouched is the one UnescapeString picked.
func matchCharacterReference(run string) (name, decoded string, ok bool) {
	full := html.UnescapeString("&" + run)
	for k := 1; k <= len(run); k++ {
		prefix := "&" + run[:k]
		d := html.UnescapeString(prefix)
		if d != prefix && d+run[k:] == full {
			return run[:k], d, true
		}
	}
	return "", "", false
}

func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	if isAttributeValueState(p.returnState) {
		for _, r := range p.tokenBuilder.TempBuffer() {
			p.appendAttributeValue(r)
		}
		return
	}
	p.emitString(p.tokenBuilder.TempBuffer())
}

func (p *HTMLTokenizer) characterReferenceStateParser() {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')
	c := p.consume()
	switch {
	case isASCIIAlphanumeric(rune(c)):
		p.reconsumeIn(NamedCharacterReferenceState)
	case c == '#':
		p.tokenBuilder.WriteTempBuffer(rune(c))
		p.switchTo(NumericCharacterReferenceState)
	default:
		p.flushCodePointsAsCharacterReference()
		p.reconsumeIn(p.returnState)
	}
}

func (p *HTMLTokenizer) namedCharacterReferenceStateParser() {
	first := p.consume()
	run := []rune{rune(first)}
	for i := 0; len(run) < longestEntityName; i++ {
		c := p.stream.Peek(i)
		if c == ';' {
			run = append(run, ';')
			break
		}
		if !isASCIIAlphanumeric(rune(c)) {
			break
		}
		run = append(run, rune(c))
	}

	name, decoded, ok := matchCharacterReference(string(run))
	if !ok {
		p.flushCodePointsAsCharacterReference()
		p.reconsumeIn(AmbiguousAmpersandState)
		return
	}

	// names are ASCII, and the first character is already consumed.
	for i := 1; i < len(name); i++ {
		p.stream.ConsumeNext()
	}
	for _, r := range name {
		p.tokenBuilder.WriteTempBuffer(r)
	}

	semicolon := name[len(name)-1] == ';'
	if !semicolon && isAttributeValueState(p.returnState) {
		if next := p.stream.Peek(0); next == '=' || isASCIIAlphanumeric(rune(next)) {
			p.flushCodePointsAsCharacterReference()
			p.switchTo(p.returnState)
			return
		}
	}
	if !semicolon {
		p.parseError(MissingSemicolonAfterCharacterReference)
	}
	p.tokenBuilder.ResetTempBuffer()
	for _, r := range decoded {
		p.tokenBuilder.WriteTempBuffer(r)
	}
	p.flushCodePointsAsCharacterReference()
	p.switchTo(p.returnState)
}

func (p *HTMLTokenizer) ambiguousAmpersandStateParser() {
	c := p.consume()
	switch {
	case isASCIIAlphanumeric(rune(c)):
		if isAttributeValueState(p.returnState) {
			p.appendAttributeValue(rune(c))
		} else {
			p.emitCharacter(rune(c))
		}
	case c == ';':
		p.parseError(UnknownNamedCharacterReference)
		p.reconsumeIn(p.returnState)
	default:
		p.reconsumeIn(p.returnState)
	}
}

func (p *HTMLTokenizer) numericCharacterReferenceStateParser() {
	p.tokenBuilder.SetCharRef(0)
	switch c := p.consume(); c {
	case 'x', 'X':
		p.tokenBuilder.WriteTempBuffer(rune(c))
		p.switchTo(HexadecimalCharacterReferenceStartState)
	default:
		p.reconsumeIn(DecimalCharacterReferenceStartState)
	}
}

func (p *HTMLTokenizer) absenceOfDigits() {
	p.parseError(AbsenceOfDigitsInNumericCharacterReference)
	p.flushCodePointsAsCharacterReference()
	p.reconsumeIn(p.returnState)
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser() {
	if c := p.consume(); isASCIIHexDigit(rune(c)) {
		p.reconsumeIn(HexadecimalCharacterReferenceState)
		return
	}
	p.absenceOfDigits()
}

func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser() {
	if c := p.consume(); isASCIIDigit(rune(c)) {
		p.reconsumeIn(DecimalCharacterReferenceState)
		return
	}
	p.absenceOfDigits()
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser() {
	c := p.consume()
	switch {
	case isASCIIDigit(rune(c)):
		p.tokenBuilder.AppendCharRefDigit(16, int(c)-0x30)
	case isASCIIUpperHexDigit(rune(c)):
		p.tokenBuilder.AppendCharRefDigit(16, int(c)-0x37)
	case isASCIILowerHexDigit(rune(c)):
		p.tokenBuilder.AppendCharRefDigit(16, int(c)-0x57)
	case c == ';':
		p.switchTo(NumericCharacterReferenceEndState)
	default:
		p.parseError(MissingSemicolonAfterCharacterReference)
		p.reconsumeIn(NumericCharacterReferenceEndState)
	}
}

func (p *HTMLTokenizer) decimalCharacterReferenceStateParser() {
	c := p.consume()
	switch {
	case isASCIIDigit(rune(c)):
		p.tokenBuilder.AppendCharRefDigit(10, int(c)-0x30)
	case c == ';':
		p.switchTo(NumericCharacterReferenceEndState)
	default:
		p.parseError(MissingSemicolonAfterCharacterReference)
		p.reconsumeIn(NumericCharacterReferenceEndState)
	}
}

// numericCharacterReferenceEndStateParser is the one state that does not
// consume. A reconsume left pending by the previous state carries over to
// the return state.
func (p *HTMLTokenizer) numericCharacterReferenceEndStateParser() {
	code := p.tokenBuilder.CharRef()
	switch {
	case code == 0x00:
		p.parseError(NullCharacterReference)
		code = 0xFFFD
	case code > maxCodePoint:
		p.parseError(CharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case isSurrogate(code):
		p.parseError(SurrogateCharacterReference)
		code = 0xFFFD
	case isNonCharacter(code):
		p.parseError(NoncharacterCharacterReference)
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		p.parseError(ControlCharacterReference)
		if r, ok := windows1252Replacements[code]; ok {
			code = int(r)
		}
	}

	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
	p.switchTo(p.returnState)
}
