package parser

import (
	"fmt"
	"regexp"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/pipe01/mukuro/internal/ids"
	"github.com/pipe01/mukuro/internal/lexer"
	. "github.com/pipe01/mukuro/internal/parser/ast"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/slices"
)

const (
	DefaultMaxDepth = 64

	// textPrefix is used for the ids of lines that aren't a known command.
	textPrefix = "text"
)

func log() commonlog.Logger {
	return commonlog.GetLogger("mukuro.parser")
}

type ParserError struct {
	Inner    error
	Location lexer.Location
	Line     string
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location
}

func (e *ParserError) RawLine() string {
	return e.Line
}

type Options struct {
	// MaxDepth is the maximum number of containers open at once, zero means
	// no limit.
	MaxDepth int

	// StrictIDs rejects explicit ids that look like generated ones.
	StrictIDs bool
}

type frame struct {
	depth int
	node  int
}

type parser struct {
	opts Options

	tree  *Tree
	stack []frame
	ids   *ids.Allocator
}

// Parse nests lines into a tree using their indentation. A line closes every
// open container whose depth is greater than or equal to its own, and becomes
// a child of the innermost container left open.
func Parse(fileName string, lines []lexer.Line, opts Options) (*Tree, error) {
	p := parser{
		opts: opts,
		tree: &Tree{
			File:  fileName,
			Nodes: make([]Node, 0, len(lines)),
		},
		ids: ids.New(),
	}

	if opts.StrictIDs {
		prefixes := []string{textPrefix}
		for _, c := range Commands {
			prefixes = append(prefixes, string(c))
		}
		p.ids.Reserve(prefixes...)
	}

	for i := range lines {
		if err := p.parseLine(&lines[i]); err != nil {
			return nil, err
		}
	}

	return p.tree, nil
}

func (p *parser) parseLine(line *lexer.Line) error {
	for len(p.stack) > 0 && p.stack[len(p.stack)-1].depth >= line.Depth {
		p.stack = p.stack[:len(p.stack)-1]
	}

	command, rest := line.Command()
	attrs, text := lexer.ParseAttributes(rest)

	n := Node{
		Pos:        Pos(line.Start),
		Index:      len(p.tree.Nodes),
		Parent:     NoParent,
		Command:    Command(command),
		Attributes: attrs,
		Content:    resolveContent(Command(command), &attrs, text, line.Text),
		Depth:      line.Depth,
		Raw:        line.Raw,
	}

	id, err := p.resolveID(&n)
	if err != nil {
		return p.errorAt(err, line)
	}
	n.ID = id

	if !n.Command.Known() {
		log().Debugf("unrecognized command %q at %s", command, &line.Start)
	}

	if len(p.stack) > 0 {
		n.Parent = p.stack[len(p.stack)-1].node
		parent := &p.tree.Nodes[n.Parent]
		parent.Children = append(parent.Children, n.Index)
	} else {
		p.tree.Roots = append(p.tree.Roots, n.Index)
	}

	p.tree.Nodes = append(p.tree.Nodes, n)

	if n.Command.IsContainer() {
		if p.opts.MaxDepth > 0 && len(p.stack) >= p.opts.MaxDepth {
			return p.errorAt(&mkerrors.ResourceLimitError{Limit: "nesting depth", Max: p.opts.MaxDepth}, line)
		}

		p.stack = append(p.stack, frame{depth: line.Depth, node: n.Index})
	}

	return nil
}

// explicitIDRE limits ids to characters that are safe both as an HTML
// attribute and unescaped in a CSS id selector.
var explicitIDRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

func (p *parser) resolveID(n *Node) (string, error) {
	if id := n.Attributes.Value("id"); id != "" {
		if !explicitIDRE.MatchString(id) {
			return "", &mkerrors.StructuralFormatError{Attribute: "id", Value: id, Reason: "expected letters, digits, '_' or '-'"}
		}
		return p.ids.RegisterExplicit(id)
	}

	prefix := textPrefix
	if n.Command.Known() {
		prefix = string(n.Command)
	}

	return p.ids.Allocate(prefix), nil
}

func (p *parser) errorAt(err error, line *lexer.Line) *ParserError {
	return &ParserError{
		Inner:    err,
		Location: line.Start,
		Line:     line.Raw,
	}
}

var contentKeys = []string{"text", "label"}

// resolveContent picks the text shown for an element. A line that isn't a
// known command is shown whole, attributes included, unless it sets text or
// label.
func resolveContent(command Command, attrs *lexer.Attributes, text, line string) string {
	keys := attrs.Keys()

	for _, k := range contentKeys {
		if slices.Contains(keys, k) {
			return attrs.Value(k)
		}
	}

	if !command.Known() {
		return line
	}

	return text
}
