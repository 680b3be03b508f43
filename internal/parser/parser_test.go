package parser

import (
	"errors"
	"testing"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/pipe01/mukuro/internal/lexer"
	. "github.com/pipe01/mukuro/internal/parser/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestTree struct {
	*Tree
	T *testing.T
}

func (t *TestTree) OnlyRoot() TestNode {
	if len(t.Roots) != 1 {
		t.T.Fatalf("expected 1 root, got %d", len(t.Roots))
	}

	return TestNode{Node: t.Node(t.Roots[0]), tree: t}
}

type TestNode struct {
	*Node
	tree *TestTree
}

func (n TestNode) Child(idx int) TestNode {
	if len(n.Children) <= idx {
		n.tree.T.Fatalf("expected at least %d children on %s, got %d", idx+1, n.ID, len(n.Children))
	}

	return TestNode{Node: n.tree.Node(n.Children[idx]), tree: n.tree}
}

func (n TestNode) ChildCount(expected int) TestNode {
	if len(n.Children) != expected {
		n.tree.T.Fatalf("expected %d children on %s, got %d", expected, n.ID, len(n.Children))
	}
	return n
}

func parse(t *testing.T, src string, opts Options) (*TestTree, error) {
	lines, err := lexer.New([]byte(src), "test.mkl").Collect()
	require.NoError(t, err)

	tree, err := Parse("test.mkl", lines, opts)
	if err != nil {
		return nil, err
	}

	return &TestTree{Tree: tree, T: t}, nil
}

func mustParse(t *testing.T, src string) *TestTree {
	tree, err := parse(t, src, Options{})
	require.NoError(t, err)
	return tree
}

func TestParseSingle(t *testing.T) {
	tree := mustParse(t, "page title:Test")

	root := tree.OnlyRoot().ChildCount(0)
	assert.Equal(t, CommandPage, root.Command)
	assert.Equal(t, "page_1", root.ID)
	assert.Equal(t, "Test", root.Attributes.Value("title"))
	assert.True(t, root.IsRoot())
}

func TestParseNesting(t *testing.T) {
	src := `page title:Login
  box Header
    button Home
  box id:main
    textfield label:User
    textfield label:Password
  button Submit`

	tree := mustParse(t, src)
	root := tree.OnlyRoot().ChildCount(3)

	header := root.Child(0).ChildCount(1)
	assert.Equal(t, "box_1", header.ID)
	assert.Equal(t, "Header", header.Content)
	assert.Equal(t, "button_1", header.Child(0).ID)

	main := root.Child(1).ChildCount(2)
	assert.Equal(t, "main", main.ID)
	assert.Equal(t, "textfield_1", main.Child(0).ID)
	assert.Equal(t, "textfield_2", main.Child(1).ID)
	assert.Equal(t, "Password", main.Child(1).Content)

	submit := root.Child(2)
	assert.Equal(t, "button_2", submit.ID)
	assert.Equal(t, root.Index, submit.Parent)
}

func TestParseSiblingCloses(t *testing.T) {
	tree := mustParse(t, "box A\nbox B\n  box C")

	require.Len(t, tree.Roots, 2)
	assert.Empty(t, tree.Node(tree.Roots[0]).Children)
	assert.Len(t, tree.Node(tree.Roots[1]).Children, 1)
}

func TestParseLeafDoesNotNest(t *testing.T) {
	tree := mustParse(t, "box\n  button A\n    button B")

	root := tree.OnlyRoot().ChildCount(2)
	assert.Equal(t, "button_2", root.Child(1).ID)
}

func TestParseUnevenDedent(t *testing.T) {
	tree := mustParse(t, "page\n    box\n        box\n  button")

	root := tree.OnlyRoot().ChildCount(2)
	assert.Equal(t, CommandButton, root.Child(1).Command)
}

func TestParseContent(t *testing.T) {
	cases := []struct {
		line, content string
	}{
		{"button Click me", "Click me"},
		{"button label:Go", "Go"},
		{"button text:Save label:Ignored", "Save"},
		{"button Free label:Go", "Go"},
		{"button text: label:Go", ""},
	}

	for _, c := range cases {
		tree := mustParse(t, c.line)
		assert.Equal(t, c.content, tree.OnlyRoot().Content, c.line)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	tree := mustParse(t, "box\n  Dashboard\n  foo bar:baz")

	root := tree.OnlyRoot().ChildCount(2)
	assert.Equal(t, "text_1", root.Child(0).ID)
	assert.Equal(t, "Dashboard", string(root.Child(0).Command))
	assert.Equal(t, "Dashboard", root.Child(0).Content)
	assert.Equal(t, "foo bar:baz", root.Child(1).Content)
	assert.Equal(t, "text_2", root.Child(1).ID)
	assert.Equal(t, "baz", root.Child(1).Attributes.Value("bar"))

	box := &tree.Nodes[tree.Roots[0]]
	assert.Equal(t, tree.Roots, tree.Siblings(box))
	assert.Equal(t, []int{1, 2}, tree.Siblings(&tree.Nodes[2]))
}

func TestParseDuplicateID(t *testing.T) {
	_, err := parse(t, "page\n  button id:login_btn\n  button id:login_btn", Options{})
	require.Error(t, err)

	var perr *ParserError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.At().Line)
	assert.Equal(t, "  button id:login_btn", perr.RawLine())
	assert.Equal(t, mkerrors.KindDuplicateIdentifier, mkerrors.KindOf(err))
}

func TestParseInvalidID(t *testing.T) {
	for _, id := range []string{"a{}</style>", "1st", "a.b", "-x", "a#b"} {
		_, err := parse(t, "box id:"+id, Options{})
		assert.Equal(t, mkerrors.KindStructuralFormat, mkerrors.KindOf(err), "id %q", id)
	}

	for _, id := range []string{"login_btn", "Header-2", "_x"} {
		_, err := parse(t, "box id:"+id, Options{})
		assert.NoError(t, err, "id %q", id)
	}
}

func TestParseStrictIDs(t *testing.T) {
	_, err := parse(t, "box id:box_2\nbox\nbox", Options{})
	require.NoError(t, err, "explicit ids matching future generated ids are not detected")

	_, err = parse(t, "box id:box_2\nbox\nbox", Options{StrictIDs: true})
	assert.Equal(t, mkerrors.KindDuplicateIdentifier, mkerrors.KindOf(err))
}

func TestParseMaxDepth(t *testing.T) {
	src := "box\n box\n  box\n   box"

	_, err := parse(t, src, Options{MaxDepth: 4})
	require.NoError(t, err)

	_, err = parse(t, src, Options{MaxDepth: 3})
	assert.Equal(t, mkerrors.KindResourceLimit, mkerrors.KindOf(err))
}

func TestWalkPreorder(t *testing.T) {
	tree := mustParse(t, "page\n  box\n    button\n  grid\n    box")

	var events []string
	err := tree.Walk(func(n *Node) error {
		events = append(events, "+"+n.ID)
		return nil
	}, func(n *Node) error {
		events = append(events, "-"+n.ID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"+page_1", "+box_1", "+button_1", "-button_1", "-box_1",
		"+grid_1", "+box_2", "-box_2", "-grid_1", "-page_1",
	}, events)
}
