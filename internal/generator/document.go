package generator

import (
	_ "embed"
	"html"
	"io"
	"strings"
)

// DefaultFontURL is the one external resource a document may reference.
const DefaultFontURL = "https://fonts.googleapis.com/css2?family=Press+Start+2P&display=swap"

// baseStylesheet holds the static rules every document starts with.
//
//go:embed base.css
var baseStylesheet string

type AssembleOptions struct {
	// FontURL is linked from the document head when not empty.
	FontURL string
}

// Assemble writes out as a complete HTML document.
func Assemble(w io.Writer, out *Output, opts AssembleOptions) {
	ow := &outputWriter{w: w}

	ow.WriteLine("<!DOCTYPE html>")
	ow.WriteLine(`<html lang="en">`)
	ow.WriteLine("<head>")
	ow.indent(1)
	ow.WriteLine(`<meta charset="UTF-8">`)
	ow.WriteLine(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	ow.WriteLinef("<title>%s</title>", html.EscapeString(out.Title))
	if opts.FontURL != "" {
		ow.WriteLinef(`<link href="%s" rel="stylesheet">`, html.EscapeString(opts.FontURL))
	}

	ow.WriteLine("<style>")
	ow.WriteBlock(baseStylesheet)
	if out.Styles.Len() > 0 {
		ow.WriteBlock(out.Styles.String())
	}
	ow.WriteLine("</style>")
	ow.indent(-1)
	ow.WriteLine("</head>")

	ow.WriteLine("<body>")
	ow.indent(1)
	for _, f := range out.Fragments {
		ow.WriteFragment(f)
	}
	ow.indent(-1)
	ow.WriteLine("</body>")
	ow.WriteLine("</html>")
}

// AssembleString is Assemble into a string.
func AssembleString(out *Output, opts AssembleOptions) string {
	var sb strings.Builder
	Assemble(&sb, out, opts)
	return sb.String()
}
