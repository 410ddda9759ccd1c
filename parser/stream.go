package parser

import "strings"

// Codepoint is a single Unicode scalar value read from the input, or
// EndOfInput once the input is exhausted.
type Codepoint rune

// EndOfInput is returned by every read past the end of the stream.
const EndOfInput Codepoint = -1

// IsEndOfInput reports whether c is the end of input marker.
func (c Codepoint) IsEndOfInput() bool {
	return c == EndOfInput
}

// Equal compares c against r. When caseSensitive is false only ASCII
// letters are folded.
func (c Codepoint) Equal(r rune, caseSensitive bool) bool {
	if c == EndOfInput {
		return false
	}
	if caseSensitive {
		return rune(c) == r
	}
	return toASCIILower(rune(c)) == toASCIILower(r)
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIILower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isASCIIAlpha(r rune) bool {
	return isASCIIUpper(r) || isASCIILower(r)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIUpperHexDigit(r rune) bool {
	return r >= 'A' && r <= 'F'
}

func isASCIILowerHexDigit(r rune) bool {
	return r >= 'a' && r <= 'f'
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || isASCIIUpperHexDigit(r) || isASCIILowerHexDigit(r)
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

// codepointStream is the tokenizer's view of the input. The cursor counts
// scalar values, not bytes.
type codepointStream struct {
	input []rune
	pos   int
}

func newCodepointStream(input string) *codepointStream {
	return &codepointStream{input: []rune(NormalizeNewlines(input))}
}

// NormalizeNewlines turns every CRLF pair and every lone CR into a single LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}

// Peek returns the codepoint offset positions ahead of the cursor.
func (s *codepointStream) Peek(offset int) Codepoint {
	i := s.pos + offset
	if offset < 0 || i >= len(s.input) {
		return EndOfInput
	}
	return Codepoint(s.input[i])
}

// ConsumeNext returns the codepoint at the cursor and advances past it.
func (s *codepointStream) ConsumeNext() Codepoint {
	if s.pos >= len(s.input) {
		return EndOfInput
	}
	c := s.input[s.pos]
	s.pos++
	return Codepoint(c)
}

// TryConsumeLiteral consumes len(expected) codepoints only if every one of
// them matches expected under the given case rule. The matched input text is
// returned with its original casing.
func (s *codepointStream) TryConsumeLiteral(expected string, caseSensitive bool) (string, bool) {
	i := 0
	for _, r := range expected {
		if !s.Peek(i).Equal(r, caseSensitive) {
			return "", false
		}
		i++
	}
	matched := string(s.input[s.pos : s.pos+i])
	s.pos += i
	return matched, true
}

// Offset is the number of codepoints consumed so far.
func (s *codepointStream) Offset() int {
	return s.pos
}

// Len is the number of codepoints in the normalized input.
func (s *codepointStream) Len() int {
	return len(s.input)
}

// String returns the normalized input.
func (s *codepointStream) String() string {
	return string(s.input)
}
