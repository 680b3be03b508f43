package generator

import (
	"fmt"
	"io"
	"strings"
)

type outputWriter struct {
	w           io.Writer
	indentation int
}

func (w *outputWriter) indent(delta int) {
	w.indentation += delta
	if w.indentation < 0 {
		w.indentation = 0
	}
}

func (w *outputWriter) writeIndentation() {
	fmt.Fprint(w.w, strings.Repeat("  ", w.indentation))
}

func (w *outputWriter) WriteLine(s string) {
	w.writeIndentation()
	fmt.Fprintln(w.w, s)
}

func (w *outputWriter) WriteLinef(format string, a ...any) {
	w.WriteLine(fmt.Sprintf(format, a...))
}

func (w *outputWriter) WriteBlock(block string) {
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(w.w)
			continue
		}
		w.WriteLine(line)
	}
}

// WriteFragment writes f on its own line, indented by how many containers
// are open.
func (w *outputWriter) WriteFragment(f Fragment) {
	if _, ok := f.(*FragmentClose); ok {
		w.indent(-1)
	}

	w.writeIndentation()
	f.WriteTo(w.w)
	fmt.Fprintln(w.w)

	if _, ok := f.(*FragmentOpen); ok {
		w.indent(1)
	}
}
