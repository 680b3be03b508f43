package workspace

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pipe01/mukuro"
	"github.com/zeebo/blake3"
)

// Entry is a compiled file along with the hash of the source it came from.
type Entry struct {
	Path     string
	Hash     string
	Document *mukuro.Document
}

// Workspace compiles files under a root directory and keeps the last result
// of every file, so unchanged sources aren't compiled again.
type Workspace struct {
	rootPath string
	compiler *mukuro.Compiler

	mu      sync.Mutex
	entries map[string]*Entry
}

func New(rootPath string, compiler *mukuro.Compiler) *Workspace {
	if compiler == nil {
		compiler = mukuro.New(mukuro.Options{})
	}

	return &Workspace{
		rootPath: rootPath,
		compiler: compiler,
		entries:  make(map[string]*Entry),
	}
}

func (w *Workspace) Load(relPath string) (*Entry, error) {
	fullPath := w.fullPath(relPath)

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.LoadWithContents(relPath, bytes)
}

// LoadWithContents compiles contents as if they were the file at relPath.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) (*Entry, error) {
	fullPath := w.fullPath(relPath)
	hash := Hash(contents)

	w.mu.Lock()
	if e, ok := w.entries[fullPath]; ok && e.Hash == hash {
		w.mu.Unlock()
		return e, nil
	}
	w.mu.Unlock()

	doc, err := w.compiler.CompileFile(contents, relPath)
	if err != nil {
		return nil, fmt.Errorf("compile file: %w", err)
	}

	e := &Entry{
		Path:     fullPath,
		Hash:     hash,
		Document: doc,
	}

	w.mu.Lock()
	w.entries[fullPath] = e
	w.mu.Unlock()

	return e, nil
}

// Forget drops the cached result of relPath.
func (w *Workspace) Forget(relPath string) {
	w.mu.Lock()
	delete(w.entries, w.fullPath(relPath))
	w.mu.Unlock()
}

func (w *Workspace) fullPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}
	return filepath.Join(w.rootPath, relPath)
}

// Hash returns the hex encoded BLAKE3 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
