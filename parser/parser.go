package parser

import (
	"io"

	"github.com/pkg/errors"

	"github.com/heathj/htmltok/parser/dom"
)

// Parser couples a tokenizer with the tree constructor that drives it.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

// NewParser reads all of htmlIn up front; the tokenizer works on a string.
func NewParser(htmlIn io.Reader, cfg *Config) (*Parser, error) {
	b, err := io.ReadAll(htmlIn)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(string(b), cfg),
		TreeConstructor: NewHTMLTreeConstructor(cfg.Logger),
	}, nil
}

// Parse runs the tokenizer to the end, returning the document built and the
// parse errors in the order they were found.
func (p *Parser) Parse() (*dom.Document, []*ParseError, error) {
	var (
		progress *Progress
		perrs    []*ParseError
	)
	for p.Tokenizer.Next() {
		t, err := p.Tokenizer.Token(progress)
		// progress is applied once; errors come out between tokens.
		progress = nil
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				return nil, perrs, err
			}
			perrs = append(perrs, perr)
			continue
		}
		progress = p.TreeConstructor.ProcessToken(t)
	}

	if err := p.TreeConstructor.Finish(); err != nil {
		return nil, perrs, err
	}
	return p.TreeConstructor.Document, perrs, nil
}
