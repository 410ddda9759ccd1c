package parser

import "github.com/pkg/errors"

// debugAssertions turns invariant violations into panics. It is set by the
// htmltok_debug build tag and by the package tests.
var debugAssertions = false

// InvariantError is the panic value used for a broken tokenizer invariant.
type InvariantError struct {
	State TokenizerState
	Err   error
}

func (e *InvariantError) Error() string {
	return "tokenizer invariant violated in " + e.State.String() + ": " + e.Err.Error()
}

func (e *InvariantError) Cause() error {
	return e.Err
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// invariant reports a programming error in the state table. Release builds
// log it and keep going so untrusted input can never crash the caller.
func (p *HTMLTokenizer) invariant(err error) {
	if err == nil {
		return
	}
	ie := &InvariantError{State: p.currentState, Err: errors.WithStack(err)}
	if debugAssertions {
		panic(ie)
	}
	p.log.WithError(err).WithField("state", p.currentState).Error("tokenizer invariant violated")
}
