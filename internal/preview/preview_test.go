package preview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pipe01/mukuro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url, etag string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestServeDocument(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp := get(t, srv.URL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Nothing compiled yet")

	doc, err := mukuro.Compile("page title:Preview\n  button Go")
	require.NoError(t, err)
	s.Publish(doc)

	resp = get(t, srv.URL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<title>Preview</title>")
	assert.Contains(t, string(body), reloadScript+"</body>")

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	resp = get(t, srv.URL, etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp = get(t, srv.URL+"/other", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishReloads(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	doc, err := mukuro.Compile("box")
	require.NoError(t, err)
	s.Publish(doc)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, reloadMessage, string(msg))
}

func TestPublishUnchanged(t *testing.T) {
	s := New()

	doc, err := mukuro.Compile("box")
	require.NoError(t, err)

	assert.True(t, s.setPage([]byte(injectScript(doc.HTML))))
	assert.False(t, s.setPage([]byte(injectScript(doc.HTML))))
}

func TestInjectScript(t *testing.T) {
	assert.Equal(t, "<body>"+reloadScript+"</body>", injectScript("<body></body>"))
	assert.Equal(t, "text"+reloadScript, injectScript("text"))
}
