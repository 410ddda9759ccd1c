package parser

func (p *HTMLTokenizer) dataStateParser() {
	switch c := p.consume(); c {
	case '&':
		p.returnState = DataState
		p.switchTo(CharacterReferenceState)
	case '<':
		p.switchTo(TagOpenState)
	case '\u0000':
		// the one place a NUL is passed through untouched.
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter(rune(c))
	case EndOfInput:
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) rcDataStateParser() {
	switch c := p.consume(); c {
	case '&':
		p.returnState = RCDataState
		p.switchTo(CharacterReferenceState)
	case '<':
		p.switchTo(RCDataLessThanSignState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) rawTextStateParser() {
	switch c := p.consume(); c {
	case '<':
		p.switchTo(RawTextLessThanSignState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataStateParser() {
	switch c := p.consume(); c {
	case '<':
		p.switchTo(ScriptDataLessThanSignState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) plaintextStateParser() {
	switch c := p.consume(); c {
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

// lessThanSign is shared by the RCDATA and RAWTEXT less-than sign states.
func (p *HTMLTokenizer) lessThanSign(endTagOpen, text TokenizerState) {
	if c := p.consume(); c == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.switchTo(endTagOpen)
		return
	}
	p.emitCharacter('<')
	p.reconsumeIn(text)
}

// endTagOpen is shared by the end tag open states of the text modes.
func (p *HTMLTokenizer) endTagOpen(endTagName, text TokenizerState) {
	if c := p.consume(); isASCIIAlpha(rune(c)) {
		p.beginTag(EndTag)
		p.reconsumeIn(endTagName)
		return
	}
	p.emitString("</")
	p.reconsumeIn(text)
}

// endTagName is shared by the end tag name states of the text modes. Only
// an end tag matching the last start tag closes the text; anything else is
// flushed back out as characters.
func (p *HTMLTokenizer) endTagName(text TokenizerState) {
	c := p.consume()
	switch {
	case c == '\t' || c == '\n' || c == '\f' || c == ' ':
		if p.isAppropriateEndTag() {
			p.switchTo(BeforeAttributeNameState)
			return
		}
	case c == '/':
		if p.isAppropriateEndTag() {
			p.switchTo(SelfClosingStartTagState)
			return
		}
	case c == '>':
		if p.isAppropriateEndTag() {
			p.switchTo(DataState)
			p.emitCurrentToken()
			return
		}
	case isASCIIUpper(rune(c)):
		p.currentTag().AppendName(toASCIILower(rune(c)))
		p.tokenBuilder.WriteTempBuffer(rune(c))
		return
	case isASCIILower(rune(c)):
		p.currentTag().AppendName(rune(c))
		p.tokenBuilder.WriteTempBuffer(rune(c))
		return
	}

	p.tokenBuilder.Discard()
	p.emitString("</")
	p.emitString(p.tokenBuilder.TempBuffer())
	p.reconsumeIn(text)
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser() {
	p.lessThanSign(RCDataEndTagOpenState, RCDataState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser() {
	p.endTagOpen(RCDataEndTagNameState, RCDataState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser() {
	p.endTagName(RCDataState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser() {
	p.lessThanSign(RawTextEndTagOpenState, RawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser() {
	p.endTagOpen(RawTextEndTagNameState, RawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser() {
	p.endTagName(RawTextState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser() {
	switch c := p.consume(); c {
	case '/':
		p.tokenBuilder.ResetTempBuffer()
		p.switchTo(ScriptDataEndTagOpenState)
	case '!':
		p.switchTo(ScriptDataEscapeStartState)
		p.emitString("<!")
	default:
		p.emitCharacter('<')
		p.reconsumeIn(ScriptDataState)
	}
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser() {
	p.endTagOpen(ScriptDataEndTagNameState, ScriptDataState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser() {
	p.endTagName(ScriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser() {
	if c := p.consume(); c == '-' {
		p.switchTo(ScriptDataEscapeStartDashState)
		p.emitCharacter('-')
		return
	}
	p.reconsumeIn(ScriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser() {
	if c := p.consume(); c == '-' {
		p.switchTo(ScriptDataEscapedDashDashState)
		p.emitCharacter('-')
		return
	}
	p.reconsumeIn(ScriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(ScriptDataEscapedDashState)
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataEscapedLessThanSignState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(ScriptDataEscapedDashDashState)
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataEscapedLessThanSignState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.switchTo(ScriptDataEscapedState)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.switchTo(ScriptDataEscapedState)
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataEscapedLessThanSignState)
	case '>':
		p.switchTo(ScriptDataState)
		p.emitCharacter('>')
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.switchTo(ScriptDataEscapedState)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.switchTo(ScriptDataEscapedState)
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser() {
	c := p.consume()
	switch {
	case c == '/':
		p.tokenBuilder.ResetTempBuffer()
		p.switchTo(ScriptDataEscapedEndTagOpenState)
	case isASCIIAlpha(rune(c)):
		p.tokenBuilder.ResetTempBuffer()
		p.emitCharacter('<')
		p.reconsumeIn(ScriptDataDoubleEscapeStartState)
	default:
		p.emitCharacter('<')
		p.reconsumeIn(ScriptDataEscapedState)
	}
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser() {
	p.endTagOpen(ScriptDataEscapedEndTagNameState, ScriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser() {
	p.endTagName(ScriptDataEscapedState)
}

// doubleEscapeBoundary is shared by the double escape start and end states.
// The temporary buffer decides which way a "script" boundary goes.
func (p *HTMLTokenizer) doubleEscapeBoundary(onScript, otherwise TokenizerState) {
	c := p.consume()
	switch {
	case c == '\t' || c == '\n' || c == '\f' || c == ' ' || c == '/' || c == '>':
		if p.tokenBuilder.TempBuffer() == "script" {
			p.switchTo(onScript)
		} else {
			p.switchTo(otherwise)
		}
		p.emitCharacter(rune(c))
	case isASCIIUpper(rune(c)):
		p.tokenBuilder.WriteTempBuffer(toASCIILower(rune(c)))
		p.emitCharacter(rune(c))
	case isASCIILower(rune(c)):
		p.tokenBuilder.WriteTempBuffer(rune(c))
		p.emitCharacter(rune(c))
	default:
		p.reconsumeIn(otherwise)
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser() {
	p.doubleEscapeBoundary(ScriptDataDoubleEscapedState, ScriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(ScriptDataDoubleEscapedDashState)
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataDoubleEscapedLessThanSignState)
		p.emitCharacter('<')
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(ScriptDataDoubleEscapedDashDashState)
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataDoubleEscapedLessThanSignState)
		p.emitCharacter('<')
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.switchTo(ScriptDataDoubleEscapedState)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.switchTo(ScriptDataDoubleEscapedState)
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.emitCharacter('-')
	case '<':
		p.switchTo(ScriptDataDoubleEscapedLessThanSignState)
		p.emitCharacter('<')
	case '>':
		p.switchTo(ScriptDataState)
		p.emitCharacter('>')
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.switchTo(ScriptDataDoubleEscapedState)
		p.emitCharacter('\uFFFD')
	case EndOfInput:
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEndOfFile()
	default:
		p.switchTo(ScriptDataDoubleEscapedState)
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser() {
	if c := p.consume(); c == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.switchTo(ScriptDataDoubleEscapeEndState)
		p.emitCharacter('/')
		return
	}
	p.reconsumeIn(ScriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser() {
	p.doubleEscapeBoundary(ScriptDataEscapedState, ScriptDataDoubleEscapedState)
}
