// Command htmltok prints the tokens, parse errors or document tree of HTML
// files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/heathj/htmltok/parser"
)

func main() {
	var (
		state     = flag.String("state", "Data state", "initial tokenizer state, by html5lib name")
		showErrs  = flag.Bool("errors", false, "also print parse errors with line and column")
		tree      = flag.Bool("tree", false, "print the document tree instead of tokens")
		serialize = flag.Bool("serialize", false, "print the document serialized back to HTML")
		fragment  = flag.String("fragment", "", "parse as the contents of this context element")
		watchMode = flag.Bool("watch", false, "re-run whenever a file changes")
		jobs      = flag.Int("j", 4, "number of files processed at once")
		verbose   = flag.Bool("v", false, "debug logging")
		trace     = flag.Bool("trace", false, "trace every tokenizer transition")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	switch {
	case *trace:
		logrus.SetLevel(logrus.TraceLevel)
	case *verbose:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}

	initial, err := parser.ParseTokenizerState(*state)
	if err != nil {
		logrus.WithError(err).Fatal("bad -state")
	}

	opts := &options{
		state:     initial,
		errors:    *showErrs,
		tree:      *tree,
		serialize: *serialize,
		fragment:  *fragment,
		jobs:      *jobs,
		log:       logrus.StandardLogger(),
	}

	names := flag.Args()
	if len(names) == 0 {
		if *watchMode {
			logrus.Fatal("-watch needs at least one file")
		}
		names = []string{"-"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, names, os.Stdout); err != nil {
		logrus.WithError(err).Error("htmltok")
		os.Exit(1)
	}
	if *watchMode {
		if err := watch(ctx, opts, names, os.Stdout); err != nil {
			logrus.WithError(err).Error("htmltok")
			os.Exit(1)
		}
	}
}
