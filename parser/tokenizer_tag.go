package parser

func (p *HTMLTokenizer) tagOpenStateParser() {
	c := p.consume()
	switch {
	case c == '!':
		p.switchTo(MarkupDeclarationOpenState)
	case c == '/':
		p.switchTo(EndTagOpenState)
	case isASCIIAlpha(rune(c)):
		p.beginTag(StartTag)
		p.reconsumeIn(TagNameState)
	case c == '?':
		p.parseError(UnexpectedQuestionMarkInsteadOfTagName)
		p.beginComment()
		p.reconsumeIn(BogusCommentState)
	case c == EndOfInput:
		p.parseError(EOFBeforeTagName)
		p.emitCharacter('<')
		p.emitEndOfFile()
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.emitCharacter('<')
		p.reconsumeIn(DataState)
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser() {
	c := p.consume()
	switch {
	case isASCIIAlpha(rune(c)):
		p.beginTag(EndTag)
		p.reconsumeIn(TagNameState)
	case c == '>':
		p.parseError(MissingEndTagName)
		p.switchTo(DataState)
	case c == EndOfInput:
		p.parseError(EOFBeforeTagName)
		p.emitString("</")
		p.emitEndOfFile()
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.beginComment()
		p.reconsumeIn(BogusCommentState)
	}
}

// eofInTag drops the unfinished tag; it is never emitted.
func (p *HTMLTokenizer) eofInTag() {
	p.parseError(EOFInTag)
	p.tokenBuilder.Discard()
	p.emitEndOfFile()
}

func (p *HTMLTokenizer) tagNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ': // tab, line feed, form feed, space
		p.switchTo(BeforeAttributeNameState)
	case '/':
		p.switchTo(SelfClosingStartTagState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentTag().AppendName('\uFFFD')
	case EndOfInput:
		p.eofInTag()
	default:
		p.currentTag().AppendName(toASCIILower(rune(c)))
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '/', '>', EndOfInput:
		p.reconsumeIn(AfterAttributeNameState)
	case '=':
		p.parseError(UnexpectedEqualsSignBeforeAttributeName)
		p.currentTag().StartAttribute()
		p.appendAttributeName(rune(c))
		p.switchTo(AttributeNameState)
	default:
		p.currentTag().StartAttribute()
		p.reconsumeIn(AttributeNameState)
	}
}

// leaveAttributeName reports a duplicate name. The attribute itself is
// kept; tree construction drops it.
func (p *HTMLTokenizer) leaveAttributeName() {
	if p.currentTag().PendingAttributeIsDuplicate() {
		p.parseError(DuplicateAttribute)
	}
}

func (p *HTMLTokenizer) attributeNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ', '/', '>', EndOfInput:
		p.leaveAttributeName()
		p.reconsumeIn(AfterAttributeNameState)
	case '=':
		p.leaveAttributeName()
		p.switchTo(BeforeAttributeValueState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.appendAttributeName('\uFFFD')
	case '"', '\'', '<':
		p.parseError(UnexpectedCharacterInAttributeName)
		p.appendAttributeName(rune(c))
	default:
		p.appendAttributeName(toASCIILower(rune(c)))
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '/':
		p.switchTo(SelfClosingStartTagState)
	case '=':
		p.switchTo(BeforeAttributeValueState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInTag()
	default:
		p.currentTag().StartAttribute()
		p.reconsumeIn(AttributeNameState)
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
	case '"':
		p.switchTo(AttributeValueDoubleQuotedState)
	case '\'':
		p.switchTo(AttributeValueSingleQuotedState)
	case '>':
		p.parseError(MissingAttributeValue)
		p.switchTo(DataState)
		p.emitCurrentToken()
	default:
		p.reconsumeIn(AttributeValueUnquotedState)
	}
}

func (p *HTMLTokenizer) attributeValueQuoted(quote rune, self TokenizerState) {
	switch c := p.consume(); c {
	case Codepoint(quote):
		p.switchTo(AfterAttributeValueQuotedState)
	case '&':
		p.returnState = self
		p.switchTo(CharacterReferenceState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.appendAttributeValue('\uFFFD')
	case EndOfInput:
		p.eofInTag()
	default:
		p.appendAttributeValue(rune(c))
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser() {
	p.attributeValueQuoted('"', AttributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser() {
	p.attributeValueQuoted('\'', AttributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BeforeAttributeNameState)
	case '&':
		p.returnState = AttributeValueUnquotedState
		p.switchTo(CharacterReferenceState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.appendAttributeValue('\uFFFD')
	case '"', '\'', '<', '=', '`':
		p.parseError(UnexpectedCharacterInUnquotedAttributeValue)
		p.appendAttributeValue(rune(c))
	case EndOfInput:
		p.eofInTag()
	default:
		p.appendAttributeValue(rune(c))
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser() {
	switch c := p.consume(); c {
	case '\t', '\n', '\f', ' ':
		p.switchTo(BeforeAttributeNameState)
	case '/':
		p.switchTo(SelfClosingStartTagState)
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInTag()
	default:
		p.parseError(MissingWhitespaceBetweenAttributes)
		p.reconsumeIn(BeforeAttributeNameState)
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser() {
	switch c := p.consume(); c {
	case '>':
		p.currentTag().SelfClosing = true
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInTag()
	default:
		p.parseError(UnexpectedSolidusInTag)
		p.reconsumeIn(BeforeAttributeNameState)
	}
}
