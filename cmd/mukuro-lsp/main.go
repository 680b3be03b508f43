package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sync"
	"unicode/utf16"

	"github.com/pipe01/mukuro"
	"github.com/pipe01/mukuro/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "mukuro"

var version string = "0.1.0"
var handler protocol.Handler

var (
	documentsMu sync.Mutex
	documents   = map[string]string{}
)

var ws = workspace.New("", nil)

func main() {
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			setDocument(params.TextDocument.URI, params.TextDocument.Text)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := getDocument(params.TextDocument.URI)
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					content = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					content = content[:startIndex] + change.Text + content[endIndex:]
				}
			}
			setDocument(params.TextDocument.URI, content)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documentsMu.Lock()
			delete(documents, params.TextDocument.URI)
			documentsMu.Unlock()

			if path, err := documentPath(params.TextDocument.URI); err == nil {
				ws.Forget(path)
			}
			return nil
		},
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func getDocument(uri string) (string, bool) {
	documentsMu.Lock()
	defer documentsMu.Unlock()

	content, ok := documents[uri]
	return content, ok
}

func setDocument(uri, content string) {
	documentsMu.Lock()
	documents[uri] = content
	documentsMu.Unlock()
}

func documentPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return filepath.Clean(url.Path), nil
}

func handleDocument(context *glsp.Context, docURI string) error {
	filePath, err := documentPath(docURI)
	if err != nil {
		return err
	}

	contents, ok := getDocument(docURI)
	if !ok {
		return nil
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diagnose(filePath, contents),
	})

	return nil
}

// diagnose compiles contents and reports the error, if any, on the line that
// caused it.
func diagnose(filePath, contents string) []protocol.Diagnostic {
	diag := []protocol.Diagnostic{}

	_, err := ws.LoadWithContents(filePath, []byte(contents))
	if err == nil {
		return diag
	}

	if serr, ok := mukuro.Situate(err); ok {
		raw := serr.RawLine()

		start := pos(serr.At(), raw)
		end := start
		end.Character = utf16Len(raw)

		diag = append(diag, protocol.Diagnostic{
			Range: protocol.Range{
				Start: start,
				End:   end,
			},
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Code:     &protocol.IntegerOrString{Value: mukuro.KindOf(err).String()},
			Message:  serr.Unwrap().Error(),
		})
	} else {
		diag = append(diag, protocol.Diagnostic{
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Message:  err.Error(),
		})
	}

	return diag
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

// pos converts l, whose column counts runes of line, into an LSP position,
// which counts UTF-16 code units.
func pos(l mukuro.Location, line string) protocol.Position {
	prefix := line
	for i := range line {
		if l.Column == 0 {
			prefix = line[:i]
			break
		}
		l.Column--
	}

	return protocol.Position{
		Line:      uint32(l.Line),
		Character: utf16Len(prefix),
	}
}

func utf16Len(s string) uint32 {
	var n int
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return uint32(n)
}
