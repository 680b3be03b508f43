package generator

import (
	"fmt"
	"strings"

	"github.com/pipe01/mukuro/internal/css"
	"github.com/pipe01/mukuro/internal/lexer"
	"github.com/pipe01/mukuro/internal/parser/ast"
	"github.com/tliron/commonlog"
)

const DefaultTitle = "MukuroL Wireframe"

// log is looked up on use so it picks up the backend configured by main.
func log() commonlog.Logger {
	return commonlog.GetLogger("mukuro.generator")
}

type GeneratorError struct {
	Inner    error
	Location lexer.Location
	Line     string
}

func (e *GeneratorError) Unwrap() error {
	return e.Inner
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *GeneratorError) At() lexer.Location {
	return e.Location
}

func (e *GeneratorError) RawLine() string {
	return e.Line
}

type Options struct {
	// DefaultTitle is used when no top-level page sets a title.
	DefaultTitle string

	// ListDetector defaults to a NavigationDetector.
	ListDetector ListDetector
}

// Output is the generated body of a wireframe, ready to be assembled.
type Output struct {
	Title     string
	Fragments []Fragment
	Styles    *css.Table
}

// Generate renders every node of the tree into fragments and style rules.
func Generate(tree *ast.Tree, opts Options) (*Output, error) {
	ctx := context{
		tree:   tree,
		styles: css.NewTable(),
		lists:  opts.ListDetector,
		title:  opts.DefaultTitle,
	}

	if ctx.lists == nil {
		ctx.lists = &NavigationDetector{}
	}
	if ctx.title == "" {
		ctx.title = DefaultTitle
	}

	if err := tree.Walk(ctx.enter, ctx.leave); err != nil {
		return nil, err
	}

	return &Output{
		Title:     ctx.title,
		Fragments: WrapLists(ctx.fragments),
		Styles:    ctx.styles,
	}, nil
}

type rule func(c *context, n *ast.Node) error

var rules = map[ast.Command]rule{
	ast.CommandPage:      (*context).visitPage,
	ast.CommandBox:       (*context).visitBox,
	ast.CommandTextField: (*context).visitTextField,
	ast.CommandTextArea:  (*context).visitTextArea,
	ast.CommandSelect:    (*context).visitSelect,
	ast.CommandRadio:     (*context).visitRadio,
	ast.CommandCheckbox:  (*context).visitCheckbox,
	ast.CommandButton:    (*context).visitButton,
	ast.CommandGrid:      (*context).visitGrid,
	ast.CommandFlex:      (*context).visitFlex,
}

type context struct {
	tree   *ast.Tree
	styles *css.Table
	lists  ListDetector

	fragments []Fragment
	title     string
	hasTitle  bool
}

func (c *context) enter(n *ast.Node) error {
	rule, ok := rules[n.Command]
	if !ok {
		c.visitText(n)
		return nil
	}

	c.addBaseline(n)

	if err := rule(c, n); err != nil {
		return &GeneratorError{
			Inner:    err,
			Location: n.Position(),
			Line:     n.Raw,
		}
	}

	return nil
}

func (c *context) leave(n *ast.Node) error {
	if n.Command.IsContainer() {
		c.emit(&FragmentClose{Tag: "div"})
	}
	return nil
}

func (c *context) emit(frags ...Fragment) {
	c.fragments = append(c.fragments, frags...)
}

func (c *context) addStyle(n *ast.Node, decls ...css.Declaration) {
	c.styles.Add(css.IDSelector(n.ID), decls...)
}

func (c *context) addBaseline(n *ast.Node) {
	c.addStyle(n,
		css.Decl("border", "1px dashed #555"),
		css.Decl("background-color", "rgba(255, 255, 255, 0.05)"),
		css.Decl("padding", "10px"),
		css.Decl("margin", "5px"),
		css.Decl("box-sizing", "border-box"),
		css.Decl("color", "#CCC"),
		css.Decl("font-size", "0.8em"),
		css.Decl("position", "relative"),
		css.Decl("word-wrap", "break-word"),
		css.Decl("overflow", "hidden"),
	)
}

// elementAttrs returns the id, class and style attributes of the element that
// represents n.
func elementAttrs(n *ast.Node, classes ...string) []Attr {
	attrs := []Attr{{Name: "id", Value: n.ID}}

	if extra := n.Attributes.Value("class"); extra != "" {
		classes = append(classes, strings.Fields(extra)...)
	}
	if len(classes) > 0 {
		attrs = append(attrs, Attr{Name: "class", Value: strings.Join(classes, " ")})
	}

	if style := n.Attributes.Value("style"); style != "" {
		attrs = append(attrs, Attr{Name: "style", Value: style})
	}

	return attrs
}

// visitText renders a line that has no rule. It never fails.
func (c *context) visitText(n *ast.Node) {
	if n.Content == "" {
		loc := n.Position()
		log().Debugf("unhandled line %q at %s", n.Raw, &loc)
		c.emit(&FragmentComment{Text: "Unhandled MukuroL line: " + strings.TrimSpace(n.Raw)})
		return
	}

	c.addBaseline(n)

	if c.lists.IsListItem(c.tree, n) {
		c.emit(&FragmentListItem{ID: n.ID, Text: n.Content})
	} else {
		c.emit(&FragmentText{ID: n.ID, Text: n.Content})
	}
}
