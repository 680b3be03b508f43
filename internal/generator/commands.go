package generator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/pipe01/mukuro/internal/css"
	"github.com/pipe01/mukuro/internal/parser/ast"
)

var flexAlignments = map[string]string{
	"start":  "flex-start",
	"center": "center",
	"end":    "flex-end",
}

func (c *context) visitPage(n *ast.Node) error {
	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-page-container")})

	if title, ok := n.Attributes.Get("title"); ok && n.IsRoot() && !c.hasTitle {
		c.title = title
		c.hasTitle = true
	}

	c.styles.Add(css.ClassSelector("mkl-page-container"),
		css.Decl("background-color", "#555"),
		css.Decl("border", "2px solid #AAA"),
		css.Decl("box-shadow", "0 0 10px rgba(0, 0, 0, 0.5)"),
		css.Decl("margin", "20px auto"),
		css.Decl("min-height", "calc(100vh - 40px)"),
		css.Decl("width", "90%"),
		css.Decl("max-width", "1200px"),
		css.Decl("padding", "10px"),
		css.Decl("box-sizing", "border-box"),
		css.Decl("position", "relative"),
		css.Decl("display", "block"),
		css.Decl("font-family", "'Press Start 2P', monospace"),
	)

	return nil
}

func (c *context) visitBox(n *ast.Node) error {
	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-box")})

	if err := c.applySize(n); err != nil {
		return err
	}
	if err := c.applyGridPosition(n); err != nil {
		return err
	}

	switch n.Attributes.Value("scroll") {
	case "x":
		c.addStyle(n, css.Decl("overflow-x", "scroll"), css.Decl("overflow-y", "hidden"))
	case "y":
		c.addStyle(n, css.Decl("overflow-y", "scroll"), css.Decl("overflow-x", "hidden"))
	case "both":
		c.addStyle(n, css.Decl("overflow", "scroll"))
	}

	c.emitLabel(n)
	return nil
}

func (c *context) visitTextField(n *ast.Node) error {
	inputID := n.ID + "_input"

	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-form-group")})
	c.emitInputLabel(n, inputID)

	if n.Attributes.Has("cols") {
		cols, err := intAttribute(n, "cols")
		if err != nil {
			return err
		}

		c.styles.Add(css.IDSelector(inputID),
			css.Decl("width", fmt.Sprintf("%dpx", cols*8)),
			css.Decl("max-width", "100%"),
		)
	}

	c.emit(
		&FragmentVoid{Tag: "input", Attrs: []Attr{
			{Name: "id", Value: inputID},
			{Name: "type", Value: "text"},
			{Name: "placeholder", Value: n.Content},
			{Name: "class", Value: "mkl-textfield"},
		}},
		&FragmentClose{Tag: "div"},
	)
	return nil
}

func (c *context) visitTextArea(n *ast.Node) error {
	areaID := n.ID + "_area"

	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-form-group")})
	c.emitInputLabel(n, areaID)

	attrs := []Attr{
		{Name: "id", Value: areaID},
		{Name: "placeholder", Value: n.Content},
	}

	if n.Attributes.Has("cols") {
		cols, err := intAttribute(n, "cols")
		if err != nil {
			return err
		}

		attrs = append(attrs, Attr{Name: "cols", Value: strconv.Itoa(cols)})
		c.styles.Add(css.IDSelector(areaID),
			css.Decl("width", fmt.Sprintf("%dpx", cols*8)),
			css.Decl("max-width", "100%"),
		)
	}

	if n.Attributes.Has("rows") {
		rows, err := intAttribute(n, "rows")
		if err != nil {
			return err
		}

		attrs = append(attrs, Attr{Name: "rows", Value: strconv.Itoa(rows)})
		c.styles.Add(css.IDSelector(areaID),
			css.Decl("height", fmt.Sprintf("%dpx", rows*20)),
			css.Decl("min-height", "40px"),
		)
	}

	attrs = append(attrs, Attr{Name: "class", Value: "mkl-textarea"})

	c.emit(
		&FragmentElement{Tag: "textarea", Attrs: attrs},
		&FragmentClose{Tag: "div"},
	)
	return nil
}

func (c *context) visitSelect(n *ast.Node) error {
	selectID := n.ID + "_select"

	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-form-group")})
	c.emitInputLabel(n, selectID)

	c.emit(&FragmentOpen{Tag: "select", Attrs: []Attr{
		{Name: "id", Value: selectID},
		{Name: "class", Value: "mkl-select"},
	}})
	if n.Content != "" {
		c.emit(&FragmentElement{Tag: "option", Attrs: []Attr{{Name: "value", Value: ""}}, Text: n.Content})
	}
	c.emit(&FragmentClose{Tag: "select"}, &FragmentClose{Tag: "div"})

	return nil
}

func (c *context) visitRadio(n *ast.Node) error {
	radioID := n.ID + "_radio"

	group := "global"
	if parent := c.tree.Parent(n); parent != nil {
		group = strconv.Itoa(parent.Depth)
	}

	c.emit(
		&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-form-group", "mkl-radio-group")},
		&FragmentVoid{Tag: "input", Attrs: []Attr{
			{Name: "id", Value: radioID},
			{Name: "type", Value: "radio"},
			{Name: "name", Value: "radio_group_" + group},
			{Name: "class", Value: "mkl-radio"},
		}},
		&FragmentElement{Tag: "label", Attrs: []Attr{
			{Name: "for", Value: radioID},
			{Name: "class", Value: "mkl-radio-label"},
		}, Text: n.Content},
		&FragmentClose{Tag: "div"},
	)
	return nil
}

func (c *context) visitCheckbox(n *ast.Node) error {
	checkboxID := n.ID + "_checkbox"

	c.emit(
		&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-form-group", "mkl-checkbox-group")},
		&FragmentVoid{Tag: "input", Attrs: []Attr{
			{Name: "id", Value: checkboxID},
			{Name: "type", Value: "checkbox"},
			{Name: "class", Value: "mkl-checkbox"},
		}},
		&FragmentElement{Tag: "label", Attrs: []Attr{
			{Name: "for", Value: checkboxID},
			{Name: "class", Value: "mkl-checkbox-label"},
		}, Text: n.Content},
		&FragmentClose{Tag: "div"},
	)
	return nil
}

func (c *context) visitButton(n *ast.Node) error {
	c.emit(&FragmentElement{Tag: "button", Attrs: elementAttrs(n, "mkl-button"), Text: n.Content})
	return nil
}

func (c *context) visitGrid(n *ast.Node) error {
	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-grid")})
	c.addStyle(n, css.Decl("display", "grid"), css.Decl("gap", "5px"))

	if tile := n.Attributes.Value("tile"); strings.Contains(tile, "x") {
		cols, rows, err := splitDimensions(tile)
		if err != nil {
			return &mkerrors.StructuralFormatError{Attribute: "tile", Value: tile, Reason: err.Error()}
		}

		colCount, errCols := strconv.Atoi(cols)
		rowCount, errRows := strconv.Atoi(rows)
		if errCols != nil || errRows != nil {
			return &mkerrors.StructuralFormatError{Attribute: "tile", Value: tile, Reason: "expected 'colsxrows'"}
		}

		c.addStyle(n,
			css.Decl("grid-template-columns", fmt.Sprintf("repeat(%d, 1fr)", colCount)),
			css.Decl("grid-template-rows", fmt.Sprintf("repeat(%d, 1fr)", rowCount)),
		)
	} else if err := c.applySize(n); err != nil {
		return err
	}

	if err := c.applyGridPosition(n); err != nil {
		return err
	}

	c.emitLabel(n)
	return nil
}

func (c *context) visitFlex(n *ast.Node) error {
	c.emit(&FragmentOpen{Tag: "div", Attrs: elementAttrs(n, "mkl-flex")})
	c.addStyle(n, css.Decl("display", "flex"), css.Decl("gap", "5px"))

	if err := c.applySize(n); err != nil {
		return err
	}
	if err := c.applyGridPosition(n); err != nil {
		return err
	}

	for _, attr := range [...]struct{ key, property string }{
		{"direction", "flex-direction"},
		{"wrap", "flex-wrap"},
	} {
		if !n.Attributes.Has(attr.key) {
			continue
		}

		v, err := keywordAttribute(n, attr.key)
		if err != nil {
			return err
		}
		c.addStyle(n, css.Decl(attr.property, v))
	}
	if v, ok := n.Attributes.Get("align"); ok {
		c.addStyle(n, css.Decl("align-items", lookupOr(flexAlignments, v, "stretch")))
	}
	if v, ok := n.Attributes.Get("justify"); ok {
		c.addStyle(n, css.Decl("justify-content", lookupOr(flexAlignments, v, "flex-start")))
	}

	c.emitLabel(n)
	return nil
}

func (c *context) emitLabel(n *ast.Node) {
	if n.Content != "" {
		c.emit(&FragmentElement{Tag: "p", Attrs: []Attr{{Name: "class", Value: "mkl-label"}}, Text: n.Content})
	}
}

func (c *context) emitInputLabel(n *ast.Node, forID string) {
	if label := n.Attributes.Value("label"); label != "" {
		c.emit(&FragmentElement{Tag: "label", Attrs: []Attr{
			{Name: "for", Value: forID},
			{Name: "class", Value: "mkl-input-label"},
		}, Text: label})
	}
}

// applySize handles "size:WxH" and "size:full". Sizes that can't be split
// are ignored.
func (c *context) applySize(n *ast.Node) error {
	size := n.Attributes.Value("size")

	switch {
	case size == "full":
		c.addStyle(n, css.Decl("width", "100%"), css.Decl("height", "100%"))

	case strings.Contains(size, "x"):
		width, height, err := splitDimensions(size)
		if err != nil {
			loc := n.Position()
			log().Debugf("ignoring size %q at %s: %s", size, &loc, err)
			return nil
		}

		c.addStyle(n, css.Decl("width", cssLength(width)), css.Decl("height", cssLength(height)))
	}

	return nil
}

func (c *context) applyGridPosition(n *ast.Node) error {
	gpos, ok := n.Attributes.Get("gpos")
	if !ok {
		return nil
	}

	decls, err := gridPositionRules(gpos)
	if err != nil {
		return err
	}

	c.addStyle(n, decls...)
	return nil
}

var lengthRE = regexp.MustCompile(`^(\d+(\.\d+)?(px|%|em|rem|vh|vw|fr|pt|ch)?|auto)$`)

// splitDimensions splits "AxB" where A and B are lengths. Lengths can end in a
// unit containing an x, as in "300pxx200px", so every x is tried in turn.
func splitDimensions(s string) (a, b string, err error) {
	for i := 0; i < len(s); i++ {
		if s[i] != 'x' {
			continue
		}

		a, b = s[:i], s[i+1:]
		if lengthRE.MatchString(a) && lengthRE.MatchString(b) {
			return a, b, nil
		}
	}

	return "", "", errors.New("expected two lengths separated by 'x'")
}

// cssLength adds a px unit to bare numbers.
func cssLength(s string) string {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s + "px"
	}
	return s
}

func intAttribute(n *ast.Node, key string) (int, error) {
	v := n.Attributes.Value(key)

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &mkerrors.StructuralFormatError{Attribute: key, Value: v, Reason: "expected an integer"}
	}

	return i, nil
}

var keywordRE = regexp.MustCompile(`^[A-Za-z][A-Za-z-]*$`)

// keywordAttribute returns an attribute that is copied into a stylesheet as a
// CSS keyword, like "row-reverse".
func keywordAttribute(n *ast.Node, key string) (string, error) {
	v := n.Attributes.Value(key)

	if !keywordRE.MatchString(v) {
		return "", &mkerrors.StructuralFormatError{Attribute: key, Value: v, Reason: "expected a CSS keyword"}
	}

	return v, nil
}

func lookupOr(m map[string]string, key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}
