package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/html5parse/parser/inputstream"
	"github.com/heathj/html5parse/parser/spec"
	"github.com/heathj/html5parse/parser/tree"
)

// maxRestarts bounds how many times a <meta> declaration can restart the
// parse with another encoding.
const maxRestarts = 3

// Option configures a parse.
type Option func(*config)

type config struct {
	scripting   bool
	strict      bool
	encoding    string
	contentType string
	logger      *logrus.Logger
	newTree     func() tree.Tree
}

func defaultConfig() *config {
	return &config{
		logger: logrus.StandardLogger(),
		newTree: func() tree.Tree {
			return spec.NewDocument()
		},
	}
}

// WithScripting parses noscript content as raw text, the way a browser with
// scripting enabled does.
func WithScripting(enabled bool) Option {
	return func(c *config) { c.scripting = enabled }
}

// WithStrict stops the parse at the first parse error.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithEncoding sets a transport layer encoding. The encoding is then
// certain and <meta> declarations are ignored.
func WithEncoding(label string) Option {
	return func(c *config) { c.encoding = label }
}

// WithContentType passes an HTTP Content-Type header to the encoding sniffer.
func WithContentType(contentType string) Option {
	return func(c *config) { c.contentType = contentType }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithTreeFactory builds into trees made by newTree instead of spec.Document.
func WithTreeFactory(newTree func() tree.Tree) Option {
	return func(c *config) { c.newTree = newTree }
}

// Progress is the feedback the tree constructor gives the tokenizer after
// each token.
type Progress struct {
	// TokenizerState is a state switch to apply before the next token.
	TokenizerState *tokenizerState
	// ForeignContent is true when the adjusted current node is not an
	// HTML element, which enables CDATA sections.
	ForeignContent bool
}

// Result is a finished parse.
type Result struct {
	Tree     tree.Tree
	Document tree.Node
	// Fragment holds the top level nodes of a fragment parse.
	Fragment []tree.Node
	Errors   []*ParseError
	// Encoding is the name of the encoding the input was decoded with.
	Encoding string
}

// Parser pulls tokens from the tokenizer and pushes them through the tree
// constructor.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor

	stream *inputstream.Stream
	tree   tree.Tree
	log    *logrus.Entry
	start  tokenizerState
	root   tree.Node
}

// NewParser prepares a document parser over raw. Unlike Parse it does not
// restart when a <meta> declaration changes the encoding: Start returns the
// *inputstream.EncodingChangedError instead.
func NewParser(raw []byte, opts ...Option) (*Parser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newParser(raw, cfg.encoding, cfg)
}

// newParser prepares a parser over raw decoded with encoding. An empty
// encoding lets the stream sniff one.
func newParser(raw []byte, encoding string, cfg *config) (*Parser, error) {
	stream, err := inputstream.New(raw, inputstream.Config{
		Encoding:    encoding,
		ContentType: cfg.contentType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open input stream")
	}

	name, certain := stream.Encoding()
	log := cfg.logger.WithFields(logrus.Fields{
		"method":   "Parse",
		"encoding": name,
		"certain":  certain,
	})
	t := cfg.newTree()
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(stream),
		TreeConstructor: NewHTMLTreeConstructor(stream, t, log, treeConfig{scripting: cfg.scripting, strict: cfg.strict}),
		stream:          stream,
		tree:            t,
		log:             log,
		start:           dataState,
	}, nil
}

// Start runs the parse to the end of the input.
func (p *Parser) Start() (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok || errors.Cause(rerr) != errReprocessLimit {
				panic(r)
			}
			err = rerr
		}
	}()

	start := p.start
	progress := &Progress{TokenizerState: &start}
	for {
		t, ok := p.Tokenizer.Token(progress)
		if !ok {
			break
		}
		progress = p.TreeConstructor.ProcessToken(t)
		if err := p.TreeConstructor.Err(); err != nil {
			return err
		}
	}
	p.TreeConstructor.ProcessEOF()
	return p.TreeConstructor.Err()
}

// Result returns what was built so far.
func (p *Parser) Result() *Result {
	name, _ := p.stream.Encoding()
	res := &Result{
		Tree:     p.tree,
		Document: p.tree.Document(),
		Errors:   p.TreeConstructor.Errors(),
		Encoding: name,
	}
	if p.root != nil {
		res.Fragment = p.tree.Children(p.root)
	}
	return res
}

// Parse parses a complete document.
func Parse(r io.Reader, opts ...Option) (*Result, error) {
	return parse(r, "", opts)
}

func parse(r io.Reader, context string, opts []Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	encoding := cfg.encoding
	for restarts := 0; ; restarts++ {
		p, err := newParser(raw, encoding, cfg)
		if err != nil {
			return nil, err
		}
		if context != "" {
			p.startFragment(context)
		}

		err = p.Start()
		var changed *inputstream.EncodingChangedError
		if errors.As(err, &changed) {
			if restarts == maxRestarts {
				return nil, errors.Wrapf(err, "gave up after %d encoding restarts", restarts)
			}
			p.log.WithFields(logrus.Fields{
				"from": changed.From,
				"to":   changed.To,
			}).Info("restarting parse with declared encoding")
			encoding = changed.To
			continue
		}
		if err != nil {
			return nil, err
		}
		return p.Result(), nil
	}
}
