package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipe01/mukuro"
	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "login.mkl", "page title:Login\n  button Sign in")

	ws := New(dir, nil)

	e, err := ws.Load("login.mkl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "login.mkl"), e.Path)
	assert.Equal(t, "Login", e.Document.Title)
	assert.Len(t, e.Hash, 64)
}

func TestLoadCached(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mkl", "box")

	ws := New(dir, nil)

	first, err := ws.Load("a.mkl")
	require.NoError(t, err)

	second, err := ws.Load("a.mkl")
	require.NoError(t, err)
	assert.Same(t, first, second)

	writeFile(t, dir, "a.mkl", "box\nbox")

	third, err := ws.Load("a.mkl")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.NotEqual(t, first.Hash, third.Hash)

	ws.Forget("a.mkl")

	fourth, err := ws.Load("a.mkl")
	require.NoError(t, err)
	assert.NotSame(t, third, fourth)
	assert.Equal(t, third.Hash, fourth.Hash)
}

func TestLoadWithContents(t *testing.T) {
	ws := New(t.TempDir(), mukuro.New(mukuro.Options{DefaultTitle: "Unsaved"}))

	e, err := ws.LoadWithContents("draft.mkl", []byte("box"))
	require.NoError(t, err)
	assert.Equal(t, "Unsaved", e.Document.Title)
}

func TestLoadErrors(t *testing.T) {
	ws := New(t.TempDir(), nil)

	_, err := ws.Load("missing.mkl")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ws.LoadWithContents("dup.mkl", []byte("box id:a\nbox id:a"))
	require.Error(t, err)
	assert.Equal(t, mkerrors.KindDuplicateIdentifier, mukuro.KindOf(err))

	serr, ok := mukuro.Situate(err)
	require.True(t, ok)
	assert.Equal(t, "dup.mkl", serr.At().File)
	assert.Equal(t, 1, serr.At().Line)
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("box")), Hash([]byte("box")))
	assert.NotEqual(t, Hash([]byte("box")), Hash([]byte("grid")))
}
