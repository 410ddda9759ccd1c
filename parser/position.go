package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
)

// Locate resolves a parse error to a line, column and the text of that line.
// input must be the text the error offsets refer to, i.e. the tokenizer's
// Input().
func Locate(input string, e *ParseError) *parse.Error {
	return parse.NewError(strings.NewReader(input), byteOffset(input, e.Offset), e.Code.String())
}

// byteOffset converts a codepoint offset into a byte offset.
func byteOffset(s string, codepoints int) int {
	i := 0
	for n := 0; n < codepoints && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
