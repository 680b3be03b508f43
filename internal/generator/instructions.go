package generator

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Fragment is a piece of body markup. Containers are emitted as a
// FragmentOpen/FragmentClose pair around their children.
type Fragment interface {
	WriteTo(w io.Writer)
}

type Attr struct {
	Name, Value string
}

func writeAttrs(w io.Writer, attrs []Attr) {
	for _, a := range attrs {
		fmt.Fprintf(w, ` %s="%s"`, a.Name, html.EscapeString(a.Value))
	}
}

type FragmentOpen struct {
	Tag   string
	Attrs []Attr
}

func (f *FragmentOpen) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "<%s", f.Tag)
	writeAttrs(w, f.Attrs)
	fmt.Fprint(w, ">")
}

type FragmentClose struct {
	Tag string
}

func (f *FragmentClose) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "</%s>", f.Tag)
}

// FragmentElement is a complete element with text content.
type FragmentElement struct {
	Tag   string
	Attrs []Attr
	Text  string
}

func (f *FragmentElement) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "<%s", f.Tag)
	writeAttrs(w, f.Attrs)
	fmt.Fprintf(w, ">%s</%s>", html.EscapeString(f.Text), f.Tag)
}

type FragmentVoid struct {
	Tag   string
	Attrs []Attr
}

func (f *FragmentVoid) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "<%s", f.Tag)
	writeAttrs(w, f.Attrs)
	fmt.Fprint(w, ">")
}

// FragmentText is the inert rendering of a line without a generation rule.
type FragmentText struct {
	ID   string
	Text string
}

func (f *FragmentText) WriteTo(w io.Writer) {
	fmt.Fprintf(w, `<p id="%s" class="mkl-text-content">%s</p>`, html.EscapeString(f.ID), html.EscapeString(f.Text))
}

// FragmentListItem is a line detected as the item of an implicit list.
type FragmentListItem struct {
	ID   string
	Text string
}

func (f *FragmentListItem) WriteTo(w io.Writer) {
	fmt.Fprintf(w, `<li id="%s">%s</li>`, html.EscapeString(f.ID), html.EscapeString(f.Text))
}

type FragmentComment struct {
	Text string
}

func (f *FragmentComment) WriteTo(w io.Writer) {
	text := strings.ReplaceAll(f.Text, "--", "- -")
	fmt.Fprintf(w, "<!-- %s -->", text)
}

// Render writes fragments without any indentation.
func Render(w io.Writer, frags []Fragment) {
	for _, f := range frags {
		f.WriteTo(w)
	}
}
