// Package mukuro compiles MukuroL wireframe descriptions into self-contained
// HTML documents.
//
// A MukuroL file has one element per line. The first word is the command,
// the rest are key:value attributes and free text. Indentation nests elements
// inside page, box, grid and flex containers:
//
//	page title:Login
//	  box Header
//	  flex direction:column align:center
//	    textfield label:Username
//	    button Sign in
package mukuro

import (
	"github.com/pipe01/mukuro/internal/css"
	"github.com/pipe01/mukuro/internal/generator"
	"github.com/pipe01/mukuro/internal/lexer"
	"github.com/pipe01/mukuro/internal/parser"
	"github.com/tliron/commonlog"
)

const (
	DefaultMaxLines      = lexer.DefaultMaxLines
	DefaultMaxLineLength = lexer.DefaultMaxLineLength
	DefaultMaxDepth      = parser.DefaultMaxDepth
	DefaultTitle         = generator.DefaultTitle
	DefaultFontURL       = generator.DefaultFontURL
)

// log is looked up on use so it picks up the backend configured by main.
func log() commonlog.Logger {
	return commonlog.GetLogger("mukuro")
}

type (
	Fragment     = generator.Fragment
	ListDetector = generator.ListDetector
)

// Options controls a compilation. The zero value uses the defaults.
type Options struct {
	// Limits; zero picks the default and a negative value disables the limit.
	MaxLines      int
	MaxLineLength int
	MaxDepth      int

	// StrictIDs rejects explicit ids that have the shape of generated ones,
	// like "box_2", so they can't collide with an element further down.
	StrictIDs bool

	// DefaultTitle is used when the top-level page has no title.
	DefaultTitle string

	// FontURL is linked from the document head, DefaultFontURL if empty.
	FontURL string
	// NoFont drops the font link so the document has no external reference.
	NoFont bool

	// ListDetector finds implicit lists among plain text lines, see
	// generator.NavigationDetector for the default.
	ListDetector ListDetector
}

func limit(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	}
	return v
}

func (o *Options) fontURL() string {
	if o.NoFont {
		return ""
	}
	if o.FontURL == "" {
		return DefaultFontURL
	}
	return o.FontURL
}

// Document is the result of a compilation.
type Document struct {
	Title     string
	Fragments []Fragment
	Styles    *css.Table

	// HTML is the assembled document.
	HTML string
}

// Compiler compiles MukuroL sources. It holds no state between calls and can
// be used from multiple goroutines.
type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile compiles src with the default options.
func Compile(src string) (*Document, error) {
	return New(Options{}).CompileFile([]byte(src), "<input>")
}

func (c *Compiler) Compile(src string) (*Document, error) {
	return c.CompileFile([]byte(src), "<input>")
}

// CompileFile compiles src, using fileName in error locations. On error no
// document is returned.
func (c *Compiler) CompileFile(src []byte, fileName string) (*Document, error) {
	l := lexer.New(src, fileName)
	l.MaxLines = limit(c.opts.MaxLines, DefaultMaxLines)
	l.MaxLineLength = limit(c.opts.MaxLineLength, DefaultMaxLineLength)

	lines, err := l.Collect()
	if err != nil {
		return nil, err
	}

	tree, err := parser.Parse(fileName, lines, parser.Options{
		MaxDepth:  limit(c.opts.MaxDepth, DefaultMaxDepth),
		StrictIDs: c.opts.StrictIDs,
	})
	if err != nil {
		return nil, err
	}

	out, err := generator.Generate(tree, generator.Options{
		DefaultTitle: c.opts.DefaultTitle,
		ListDetector: c.opts.ListDetector,
	})
	if err != nil {
		return nil, err
	}

	log().Debugf("compiled %s: %d elements, %d style rules", fileName, len(tree.Nodes), out.Styles.Len())

	return &Document{
		Title:     out.Title,
		Fragments: out.Fragments,
		Styles:    out.Styles,
		HTML: generator.AssembleString(out, generator.AssembleOptions{
			FontURL: c.opts.fontURL(),
		}),
	}, nil
}
