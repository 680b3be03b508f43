package generator

import (
	"strings"

	"github.com/pipe01/mukuro/internal/parser/ast"
)

// ListDetector decides whether a line without a generation rule is an item of
// an implicit list. Detected items are emitted as FragmentListItem and grouped
// by WrapLists.
type ListDetector interface {
	IsListItem(tree *ast.Tree, n *ast.Node) bool
}

// NoLists never detects list items.
type NoLists struct{}

func (NoLists) IsListItem(*ast.Tree, *ast.Node) bool { return false }

var DefaultNavigationKeywords = []string{"sidebar", "nav", "navigation", "menu"}

// NavigationDetector treats text lines inside a box as navigation items when
// the heading they appear under mentions one of the keywords. The heading is
// the nearest preceding sibling with content that has its own rule, or the
// box itself when there is none.
type NavigationDetector struct {
	Keywords []string
}

func (d *NavigationDetector) IsListItem(tree *ast.Tree, n *ast.Node) bool {
	parent := tree.Parent(n)
	if parent == nil || parent.Command != ast.CommandBox {
		return false
	}

	return d.mentionsKeyword(heading(tree, n, parent))
}

func (d *NavigationDetector) mentionsKeyword(s string) bool {
	keywords := d.Keywords
	if keywords == nil {
		keywords = DefaultNavigationKeywords
	}

	s = strings.ToLower(s)
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}

	return false
}

func heading(tree *ast.Tree, n, parent *ast.Node) string {
	siblings := tree.Siblings(n)

	for i := len(siblings) - 1; i >= 0; i-- {
		if siblings[i] >= n.Index {
			continue
		}

		s := tree.Node(siblings[i])
		if s.Command.Known() && s.Content != "" {
			return s.Content
		}
	}

	return parent.Content + " " + parent.ID
}

// WrapLists encloses every run of consecutive list items in a <ul>.
func WrapLists(frags []Fragment) []Fragment {
	out := make([]Fragment, 0, len(frags))
	inList := false

	for _, f := range frags {
		_, isItem := f.(*FragmentListItem)

		switch {
		case isItem && !inList:
			out = append(out, &FragmentOpen{Tag: "ul"})
			inList = true
		case !isItem && inList:
			out = append(out, &FragmentClose{Tag: "ul"})
			inList = false
		}

		out = append(out, f)
	}

	if inList {
		out = append(out, &FragmentClose{Tag: "ul"})
	}

	return out
}
