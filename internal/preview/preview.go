// Package preview serves the most recently compiled wireframe over HTTP and
// tells open browser tabs to reload through a websocket whenever a new one is
// published.
package preview

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pipe01/mukuro"
	"github.com/pipe01/mukuro/internal/workspace"
	"github.com/tliron/commonlog"
)

const reloadMessage = "reload"

const reloadScript = `<script>
(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (ev) { if (ev.data === "reload") location.reload(); };
})();
</script>
`

const placeholder = `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>mukuro</title></head>
<body><p>Nothing compiled yet.</p></body></html>
`

func log() commonlog.Logger {
	return commonlog.GetLogger("mukuro.preview")
}

type Server struct {
	hub *hub

	mu   sync.RWMutex
	page []byte
	etag string
}

func New() *Server {
	s := &Server{hub: newHub()}
	s.setPage([]byte(injectScript(placeholder)))
	return s
}

// Publish replaces the served document and asks every connected tab to
// reload. Publishing the same document again is a no-op.
func (s *Server) Publish(doc *mukuro.Document) {
	page := []byte(injectScript(doc.HTML))

	if !s.setPage(page) {
		return
	}

	log().Infof("publishing %q", doc.Title)
	s.hub.broadcast([]byte(reloadMessage))
}

func (s *Server) setPage(page []byte) (changed bool) {
	etag := `"` + workspace.Hash(page) + `"`

	s.mu.Lock()
	defer s.mu.Unlock()

	if etag == s.etag {
		return false
	}

	s.page = page
	s.etag = etag
	return true
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveDocument)
	mux.HandleFunc("/ws", s.hub.serveWS)
	return mux
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.RLock()
	page, etag := s.page, s.etag
	s.mu.RUnlock()

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.hub.closeAll()
		srv.Shutdown(shutdownCtx)
	}()

	log().Noticef("serving preview on http://%s", addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func injectScript(doc string) string {
	if i := strings.LastIndex(doc, "</body>"); i >= 0 {
		return doc[:i] + reloadScript + doc[i:]
	}
	return doc + reloadScript
}
