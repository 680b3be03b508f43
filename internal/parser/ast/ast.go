package ast

import (
	"github.com/pipe01/mukuro/internal/lexer"
	"golang.org/x/exp/slices"
)

type Pos lexer.Location

func (p Pos) Position() lexer.Location {
	return lexer.Location(p)
}

type Command string

const (
	CommandPage      Command = "page"
	CommandBox       Command = "box"
	CommandTextField Command = "textfield"
	CommandTextArea  Command = "textarea"
	CommandSelect    Command = "select"
	CommandRadio     Command = "radio"
	CommandCheckbox  Command = "checkbox"
	CommandButton    Command = "button"
	CommandGrid      Command = "grid"
	CommandFlex      Command = "flex"
)

// Commands lists every command with a generation rule.
var Commands = []Command{
	CommandPage, CommandBox, CommandTextField, CommandTextArea, CommandSelect,
	CommandRadio, CommandCheckbox, CommandButton, CommandGrid, CommandFlex,
}

func (c Command) Known() bool {
	return slices.Contains(Commands, c)
}

// IsContainer reports whether lines indented below the command nest inside it.
func (c Command) IsContainer() bool {
	switch c {
	case CommandPage, CommandBox, CommandGrid, CommandFlex:
		return true
	}
	return false
}

const NoParent = -1

type Node struct {
	Pos

	Index    int
	Parent   int
	Children []int

	// Command is the leading keyword of the line, which may not be Known.
	Command    Command
	ID         string
	Attributes lexer.Attributes
	// Content is the text attribute, else the label attribute, else the
	// free text of the line.
	Content string

	Depth int
	Raw   string
}

func (n *Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Tree holds every element of a file, in source order.
type Tree struct {
	File  string
	Nodes []Node
	Roots []int
}

func (t *Tree) Node(idx int) *Node {
	return &t.Nodes[idx]
}

func (t *Tree) Parent(n *Node) *Node {
	if n.IsRoot() {
		return nil
	}
	return &t.Nodes[n.Parent]
}

// Siblings returns the indices of the nodes that share n's parent, n included.
func (t *Tree) Siblings(n *Node) []int {
	if n.IsRoot() {
		return t.Roots
	}
	return t.Nodes[n.Parent].Children
}

// Walk visits the tree in preorder. leave is called after a node's children
// and may be nil.
func (t *Tree) Walk(enter, leave func(n *Node) error) error {
	var visit func(idx int) error

	visit = func(idx int) error {
		n := &t.Nodes[idx]

		if err := enter(n); err != nil {
			return err
		}

		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}

		if leave != nil {
			return leave(n)
		}
		return nil
	}

	for _, r := range t.Roots {
		if err := visit(r); err != nil {
			return err
		}
	}

	return nil
}
