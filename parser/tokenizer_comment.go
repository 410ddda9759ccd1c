package parser

func (p *HTMLTokenizer) bogusCommentStateParser() {
	switch c := p.consume(); c {
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.emitCurrentToken()
		p.emitEndOfFile()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentComment().Append('\uFFFD')
	default:
		p.currentComment().Append(rune(c))
	}
}

// markupDeclarationOpenStateParser looks ahead instead of consuming; only a
// full keyword match moves the cursor.
func (p *HTMLTokenizer) markupDeclarationOpenStateParser() {
	if p.reconsume {
		p.invariant(ErrReconsumePending)
		p.reconsume = false
	}

	if _, ok := p.stream.TryConsumeLiteral("--", true); ok {
		p.beginComment()
		p.switchTo(CommentStartState)
		return
	}
	if _, ok := p.stream.TryConsumeLiteral("DOCTYPE", false); ok {
		p.switchTo(DoctypeState)
		return
	}
	if _, ok := p.stream.TryConsumeLiteral("[CDATA[", true); ok {
		if p.allowCDATA {
			p.switchTo(CDATASectionState)
			return
		}
		p.parseError(CDATAInHTMLContent)
		p.beginComment()
		p.currentComment().AppendString("[CDATA[")
		p.switchTo(BogusCommentState)
		return
	}

	p.parseError(IncorrectlyOpenedComment)
	p.beginComment()
	p.switchTo(BogusCommentState)
}

func (p *HTMLTokenizer) eofInComment() {
	p.parseError(EOFInComment)
	p.emitCurrentToken()
	p.emitEndOfFile()
}

func (p *HTMLTokenizer) commentStartStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(CommentStartDashState)
	case '>':
		p.parseError(AbruptClosingOfEmptyComment)
		p.switchTo(DataState)
		p.emitCurrentToken()
	default:
		p.reconsumeIn(CommentState)
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(CommentEndState)
	case '>':
		p.parseError(AbruptClosingOfEmptyComment)
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInComment()
	default:
		p.currentComment().Append('-')
		p.reconsumeIn(CommentState)
	}
}

func (p *HTMLTokenizer) commentStateParser() {
	switch c := p.consume(); c {
	case '<':
		p.currentComment().Append(rune(c))
		p.switchTo(CommentLessThanSignState)
	case '-':
		p.switchTo(CommentEndDashState)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.currentComment().Append('\uFFFD')
	case EndOfInput:
		p.eofInComment()
	default:
		p.currentComment().Append(rune(c))
	}
}

func (p *HTMLTokenizer) commentLessThanSignStateParser() {
	switch c := p.consume(); c {
	case '!':
		p.currentComment().Append(rune(c))
		p.switchTo(CommentLessThanSignBangState)
	case '<':
		p.currentComment().Append(rune(c))
	default:
		p.reconsumeIn(CommentState)
	}
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser() {
	if c := p.consume(); c == '-' {
		p.switchTo(CommentLessThanSignBangDashState)
		return
	}
	p.reconsumeIn(CommentState)
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser() {
	if c := p.consume(); c == '-' {
		p.switchTo(CommentLessThanSignBangDashDashState)
		return
	}
	p.reconsumeIn(CommentEndDashState)
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser() {
	switch c := p.consume(); c {
	case '>', EndOfInput:
	default:
		p.parseError(NestedComment)
	}
	p.reconsumeIn(CommentEndState)
}

func (p *HTMLTokenizer) commentEndDashStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.switchTo(CommentEndState)
	case EndOfInput:
		p.eofInComment()
	default:
		p.currentComment().Append('-')
		p.reconsumeIn(CommentState)
	}
}

func (p *HTMLTokenizer) commentEndStateParser() {
	switch c := p.consume(); c {
	case '>':
		p.switchTo(DataState)
		p.emitCurrentToken()
	case '!':
		p.switchTo(CommentEndBangState)
	case '-':
		p.currentComment().Append('-')
	case EndOfInput:
		p.eofInComment()
	default:
		p.currentComment().AppendString("--")
		p.reconsumeIn(CommentState)
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser() {
	switch c := p.consume(); c {
	case '-':
		p.currentComment().AppendString("--!")
		p.switchTo(CommentEndDashState)
	case '>':
		p.parseError(IncorrectlyClosedComment)
		p.switchTo(DataState)
		p.emitCurrentToken()
	case EndOfInput:
		p.eofInComment()
	default:
		p.currentComment().AppendString("--!")
		p.reconsumeIn(CommentState)
	}
}

// NUL inside CDATA is left for tree construction to deal with.
func (p *HTMLTokenizer) cdataSectionStateParser() {
	switch c := p.consume(); c {
	case ']':
		p.switchTo(CDATASectionBracketState)
	case EndOfInput:
		p.parseError(EOFInCDATA)
		p.emitEndOfFile()
	default:
		p.emitCharacter(rune(c))
	}
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser() {
	if c := p.consume(); c == ']' {
		p.switchTo(CDATASectionEndState)
		return
	}
	p.emitCharacter(']')
	p.reconsumeIn(CDATASectionState)
}

func (p *HTMLTokenizer) cdataSectionEndStateParser() {
	switch c := p.consume(); c {
	case ']':
		p.emitCharacter(']')
	case '>':
		p.switchTo(DataState)
	default:
		p.emitString("]]")
		p.reconsumeIn(CDATASectionState)
	}
}
