package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/heathj/htmltok/parser"
	"github.com/heathj/htmltok/parser/dom"
)

type options struct {
	state     parser.TokenizerState
	errors    bool
	tree      bool
	serialize bool
	fragment  string
	jobs      int
	log       logrus.FieldLogger
}

// source is one input: a file, or stdin when name is "-".
type source struct {
	name  string
	input string
}

func readSource(name string) (source, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return source{}, errors.Wrapf(err, "reading %s", name)
	}
	return source{name: name, input: string(b)}, nil
}

// run handles every file concurrently and writes the results to w in the
// order the files were given.
func run(ctx context.Context, opts *options, names []string, w io.Writer) error {
	out := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := readSource(name)
			if err != nil {
				return err
			}
			out[i], err = render(src, opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range out {
		if len(names) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", names[i])
		}
		if _, err := io.WriteString(w, s); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}

func render(src source, opts *options) (string, error) {
	cfg := &parser.Config{
		InitialState: opts.state,
		Logger:       opts.log.WithField("file", src.name),
		Debug:        logrus.IsLevelEnabled(logrus.TraceLevel),
	}

	var b strings.Builder
	switch {
	case opts.fragment != "":
		doc, root, perrs, err := parser.ParseHTMLFragment(opts.fragment, src.input, cfg)
		if err != nil {
			return "", errors.Wrapf(err, "parsing %s", src.name)
		}
		writeFragment(&b, doc, root, opts)
		writeErrors(&b, src, perrs, opts)
	case opts.tree || opts.serialize:
		p, err := parser.NewParser(strings.NewReader(src.input), cfg)
		if err != nil {
			return "", err
		}
		doc, perrs, err := p.Parse()
		if err != nil {
			return "", errors.Wrapf(err, "parsing %s", src.name)
		}
		writeFragment(&b, doc, doc.Root(), opts)
		writeErrors(&b, src, perrs, opts)
	default:
		tokenizer := parser.NewHTMLTokenizer(src.input, cfg)
		tokens, perrs := tokenizer.Tokens()
		for _, t := range tokens {
			b.WriteString(t.String() + "\n")
		}
		writeErrors(&b, src, perrs, opts)
	}
	return b.String(), nil
}

func writeFragment(b *strings.Builder, doc *dom.Document, root dom.NodeID, opts *options) {
	if opts.serialize {
		b.WriteString(parser.SerializeHTMLFragment(doc, root) + "\n")
		return
	}
	b.WriteString(doc.String())
}

func writeErrors(b *strings.Builder, src source, perrs []*parser.ParseError, opts *options) {
	if !opts.errors {
		return
	}
	// offsets are into the newline-normalized text.
	input := parser.NormalizeNewlines(src.input)
	for _, e := range perrs {
		loc := parser.Locate(input, e)
		fmt.Fprintf(b, "%s:%d:%d: %s\n", src.name, loc.Line, loc.Column, e.Code)
	}
}
