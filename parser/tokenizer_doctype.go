package parser

func (p *HTMLTokenizer) eofInDoctype() {
	p.parseError(EOFInDoctype)
	p.currentDoctype().ForceQuirks = true
	p.emitCurrentToken()
	p.emitEndOfFile()
}

// bogusDoctype gives up on the rest of the doctype. Force-quirks is only
// set by callers whose error calls for it.
func (p *HTMLTokenizer) bogusDoctype(code ErrorCode, forceQuirks bool) {
	p.parseError(code)
	if forceQuirks {
		p.currentDoctype().ForceQuirks = true
	}
	p.reconsumeIn(BogusDoctypeState)
}

// abruptDoctype emits the doctype at a premature '>'.
func (p *HTMLTokenizer) abruptDoctype(code ErrorCode) {
	p.parseError(code)
	p.currentDoctype().ForceQuirks = true
	p.switchTo(DataState)
	p.emitCurrentToken()
}

func (p *HTMLTokenizer) doctypeStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BeforeDoctypeNameState)
	case '>':
		p.reconsumeIn(BeforeDoctypeNameState)
	case EndOfInput:
		p.beginDoctype()
		p.eofInDoctype()
	default:
		p.parseError(MissingWhitespaceBeforeDoctypeName)
		p.reconsumeIn(BeforeDoctypeNameState)
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.beginDoctype()
		p.currentDoctype().AppendName('\uFFFD')
		p.switchTo(DoctypeNameState)
	case '>':
		p.beginDoctype()
		p.abruptDoctype(MissingDoctypeName)
	case EndOfInput:
		p.beginDoctype()
		p.eofInDoctype()
	default:
		p.beginDoctype()
		p.currentDoctype().AppendName(toASCIILower(rune(c)))
		p.switchTo(DoctypeNameState)
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(AfterDoctypeNameState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentDoctype().AppendName('\uFFFD')
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.currentDoctype().AppendName(toASCIILower(rune(c)))
	}
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser() {
	c := p.consume()
	switch c {
	case '\t', '\n', '\f', ' ':
		return
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
		return
	case EndOfInput:
		p.eofInDoctype()
		return
	}

	// the keyword starts at the character just consumed.
	if c.Equal('p', false) {
		if _, ok := p.stream.TryConsumeLiteral("UBLIC", false); ok {
			p.switchTo(AfterDoctypePublicKeywordState)
			return
		}
	}
	if c.Equal('s', false) {
		if _, ok := p.stream.TryConsumeLiteral("YSTEM", false); ok {
			p.switchTo(AfterDoctypeSystemKeywordState)
			return
		}
	}
	p.bogusDoctype(InvalidCharacterSequenceAfterDoctypeName, true)
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BeforeDoctypePublicIdentifierState)
	case '"':
		p.parseError(MissingWhitespaceAfterDoctypePublicKeyword)
		p.currentDoctype().StartPublicIdentifier()
		p.switchTo(DoctypePublicIdentifierDoubleQuotedState)
	case '\'':
		p.parseError(MissingWhitespaceAfterDoctypePublicKeyword)
		p.currentDoctype().StartPublicIdentifier()
		p.switchTo(DoctypePublicIdentifierSingleQuotedState)
	case '>':
		p.abruptDoctype(MissingDoctypePublicIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypePublicIdentifier, true)
	}
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '"':
		p.currentDoctype().StartPublicIdentifier()
		p.switchTo(DoctypePublicIdentifierDoubleQuotedState)
	case '\'':
		p.currentDoctype().StartPublicIdentifier()
		p.switchTo(DoctypePublicIdentifierSingleQuotedState)
	case '>':
		p.abruptDoctype(MissingDoctypePublicIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypePublicIdentifier, true)
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierQuoted(quote rune) {
	switch c := p.consume(); c {
	case Codepoint(quote):
		p.switchTo(AfterDoctypePublicIdentifierState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentDoctype().AppendPublicIdentifier('\uFFFD')
	case '>':
		p.abruptDoctype(AbruptDoctypePublicIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.currentDoctype().AppendPublicIdentifier(rune(c))
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser() {
	p.doctypePublicIdentifierQuoted('"')
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser() {
	p.doctypePublicIdentifierQuoted('\'')
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BetweenDoctypePublicAndSystemIdentifiersState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '"':
		p.parseError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierDoubleQuotedState)
	case '\'':
		p.parseError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierSingleQuotedState)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '"':
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierDoubleQuotedState)
	case '\'':
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierSingleQuotedState)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BeforeDoctypeSystemIdentifierState)
	case '"':
		p.parseError(MissingWhitespaceAfterDoctypeSystemKeyword)
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierDoubleQuotedState)
	case '\'':
		p.parseError(MissingWhitespaceAfterDoctypeSystemKeyword)
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierSingleQuotedState)
	case '>':
		p.abruptDoctype(MissingDoctypeSystemIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '"':
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierDoubleQuotedState)
	case '\'':
		p.currentDoctype().StartSystemIdentifier()
		p.switchTo(DoctypeSystemIdentifierSingleQuotedState)
	case '>':
		p.abruptDoctype(MissingDoctypeSystemIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.bogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) doctypeSystemIdentifierQuoted(quote rune) {
	switch c := p.consume(); c {
	case Codepoint(quote):
		p.switchTo(AfterDoctypeSystemIdentifierState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentDoctype().AppendSystemIdentifier('\uFFFD')
	case '>':
		p.abruptDoctype(AbruptDoctypeSystemIdentifier)
	case EndOfInput:
		p.eofInDoctype()
	default:
		p.currentDoctype().AppendSystemIdentifier(rune(c))
	}
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser() {
	p.doctypeSystemIdentifierQuoted('"')
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser() {
	p.doctypeSystemIdentifierQuoted('\'')
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInDoctype()
	default:
		// the only doctype error that leaves quirks mode alone.
		p.bogusDoctype(UnexpectedCharacterAfterDoctypeSystemIdentifier, false)
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser() {
	switch c := p.consume(); c {
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
	case EndOfInput:
		p.emitCurrentToken()
		p.emitEndOfFile()
	}
}
