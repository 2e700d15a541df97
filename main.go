package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/heathj/html5parse/parser"
	"github.com/heathj/html5parse/parser/inputstream"
	"github.com/heathj/html5parse/parser/spec"
	"github.com/heathj/html5parse/parser/tree"
)

type options struct {
	fragment   string
	strict     bool
	scripting  bool
	encoding   string
	errors     bool
	html       bool
	tokens     bool
	logLevel   string
	traceTree  bool
	isFragment bool
}

func main() {
	var opts options
	flags := pflag.NewFlagSet("html5parse", pflag.ExitOnError)
	flags.StringVarP(&opts.fragment, "fragment", "f", "", "Parse as a fragment of this context element (e.g. div, \"svg path\")")
	flags.BoolVar(&opts.strict, "strict", false, "Stop at the first parse error")
	flags.BoolVar(&opts.scripting, "scripting", false, "Parse with the scripting flag enabled")
	flags.StringVarP(&opts.encoding, "encoding", "e", "", "Transport layer encoding, skips sniffing")
	flags.BoolVar(&opts.errors, "errors", false, "Print the parse errors to stderr")
	flags.BoolVar(&opts.html, "html", false, "Serialize the tree as HTML instead of the test format")
	flags.BoolVar(&opts.tokens, "tokens", false, "Print the token stream instead of building a tree")
	flags.StringVar(&opts.logLevel, "log-level", "warning", "Log level: trace|debug|info|warning|error")
	flags.BoolVar(&opts.traceTree, "trace-tree", false, "Log a diff of the tree after every mutation (debug level)")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: html5parse [flags] [file]\n")
		fmt.Fprintln(os.Stderr, "\nIf no file is given, HTML is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	opts.isFragment = flags.Changed("fragment")

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	raw, err := readInput(flags.Args())
	if err != nil {
		logger.WithError(err).Error("read input")
		os.Exit(1)
	}

	if opts.tokens {
		err = printTokens(os.Stdout, raw, opts.encoding)
	} else {
		err = run(os.Stdout, os.Stderr, raw, opts, logger)
	}
	if err != nil {
		logger.WithError(err).Error("parse failed")
		os.Exit(1)
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:   isTerminal(os.Stderr),
		DisableColors: !isTerminal(os.Stderr),
	})
	return logger, nil
}

func readInput(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		return io.ReadAll(os.Stdin)
	case 1:
		raw, err := os.ReadFile(args[0])
		return raw, errors.Wrapf(err, "open %s", args[0])
	default:
		return nil, errors.Errorf("expected at most one input file, got %d", len(args))
	}
}

func run(stdout, stderr io.Writer, raw []byte, opts options, logger *logrus.Logger) error {
	popts := []parser.Option{
		parser.WithStrict(opts.strict),
		parser.WithScripting(opts.scripting),
		parser.WithEncoding(opts.encoding),
		parser.WithLogger(logger),
	}
	if opts.traceTree {
		popts = append(popts, parser.WithTreeFactory(func() tree.Tree {
			doc := spec.NewDocument()
			doc.TraceMutations(logger)
			return doc
		}))
	}

	var (
		res *parser.Result
		err error
	)
	if opts.isFragment {
		res, err = parser.ParseFragment(bytes.NewReader(raw), opts.fragment, popts...)
	} else {
		res, err = parser.Parse(bytes.NewReader(raw), popts...)
	}
	if err != nil {
		if perr, ok := parser.AsParseError(err); ok {
			fmt.Fprintln(stderr, perr)
		}
		return err
	}

	if opts.errors {
		for _, perr := range res.Errors {
			fmt.Fprintln(stderr, perr)
		}
	}
	return writeTree(stdout, res, opts)
}

func writeTree(w io.Writer, res *parser.Result, opts options) error {
	if opts.html {
		nodes := []tree.Node{res.Document}
		if opts.isFragment {
			nodes = res.Fragment
		}
		for _, n := range nodes {
			sn, ok := n.(*spec.Node)
			if !ok {
				return errors.Errorf("cannot serialize %T", n)
			}
			if err := spec.Render(w, sn, opts.scripting); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	if opts.isFragment {
		_, err := fmt.Fprintln(w, spec.DumpFragment(res.Fragment))
		return err
	}
	sn, ok := res.Document.(*spec.Node)
	if !ok {
		return errors.Errorf("cannot dump %T", res.Document)
	}
	_, err := fmt.Fprintln(w, sn.String())
	return err
}

// printTokens runs the tokenizer alone, without tree construction feedback.
func printTokens(w io.Writer, raw []byte, encoding string) error {
	stream, err := inputstream.New(raw, inputstream.Config{Encoding: encoding})
	if err != nil {
		return err
	}
	tokenizer := parser.NewHTMLTokenizer(stream)
	for {
		t, ok := tokenizer.Token(nil)
		if !ok {
			return nil
		}
		if _, err := fmt.Fprintln(w, t); err != nil {
			return errors.Wrap(err, "write token")
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
