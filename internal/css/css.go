// Package css accumulates the style rules generated for a wireframe.
package css

import (
	"fmt"
	"io"
	"strings"
)

type Declaration struct {
	Property string
	Value    string
}

// Decl is shorthand for building a Declaration.
func Decl(property, value string) Declaration {
	return Declaration{Property: property, Value: value}
}

type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of property in the rule.
func (r *Rule) Get(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Table maps selectors to declarations. Rules are kept in the order their
// selector was first used; declarations in the order their property was first
// set, with later values replacing earlier ones.
type Table struct {
	rules []*Rule
	index map[string]int
}

func NewTable() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

func IDSelector(id string) string {
	return "#" + id
}

func ClassSelector(class string) string {
	return "." + class
}

// Add merges decls into the rule for selector.
func (t *Table) Add(selector string, decls ...Declaration) {
	idx, ok := t.index[selector]
	if !ok {
		idx = len(t.rules)
		t.index[selector] = idx
		t.rules = append(t.rules, &Rule{Selector: selector})
	}

	rule := t.rules[idx]

outer:
	for _, d := range decls {
		for i := range rule.Declarations {
			if rule.Declarations[i].Property == d.Property {
				rule.Declarations[i].Value = d.Value
				continue outer
			}
		}

		rule.Declarations = append(rule.Declarations, d)
	}
}

func (t *Table) Rule(selector string) (*Rule, bool) {
	idx, ok := t.index[selector]
	if !ok {
		return nil, false
	}
	return t.rules[idx], true
}

func (t *Table) Rules() []*Rule {
	return t.rules
}

func (t *Table) Len() int {
	return len(t.rules)
}

func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, r := range t.rules {
		n, err := fmt.Fprintf(w, "%s {\n", inert(r.Selector))
		total += int64(n)
		if err != nil {
			return total, err
		}

		for _, d := range r.Declarations {
			n, err = fmt.Fprintf(w, "  %s: %s;\n", d.Property, inert(d.Value))
			total += int64(n)
			if err != nil {
				return total, err
			}
		}

		n, err = io.WriteString(w, "}\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// inert escapes '<' so nothing in a rule can close the enclosing <style>.
func inert(s string) string {
	return strings.ReplaceAll(s, "<", `\3c `)
}

func (t *Table) String() string {
	var sb strings.Builder
	t.WriteTo(&sb)
	return sb.String()
}
