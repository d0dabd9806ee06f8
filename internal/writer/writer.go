package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gubarz/mdscaffold/internal/parser"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// ============================================================================
// Path Safety
// ============================================================================

// SafeJoin joins root and a slash- or backslash-separated relative path and
// makes sure the result stays strictly inside root
func SafeJoin(root, rel string) (string, error) {
	rel = filepath.FromSlash(strings.ReplaceAll(rel, `\`, "/"))
	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, rel)

	r, err := filepath.Rel(cleanRoot, target)
	if err != nil {
		return "", err
	}
	r = filepath.ToSlash(r)
	if r == "." || r == ".." || strings.HasPrefix(r, "../") {
		return "", fmt.Errorf("path %q escapes %s", rel, root)
	}
	return target, nil
}

// ============================================================================
// Materializer
// ============================================================================

// Materializer writes extracted code blocks under a root folder
type Materializer struct {
	fs          afero.Fs
	root        string
	dirPerm     os.FileMode
	filePerm    os.FileMode
	log         *zap.Logger
	onWrite     func(rel string)
	diagnostics []parser.Diagnostic
}

// New creates a materializer rooted at root on the given filesystem
func New(fs afero.Fs, root string) *Materializer {
	return &Materializer{
		fs:       fs,
		root:     root,
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
		log:      zap.NewNop(),
	}
}

// WithLogger sets the diagnostics logger
func (m *Materializer) WithLogger(l *zap.Logger) *Materializer {
	if l != nil {
		m.log = l
	}
	return m
}

// OnWrite registers a callback invoked after each successful write
func (m *Materializer) OnWrite(fn func(rel string)) *Materializer {
	m.onWrite = fn
	return m
}

// Diagnostics returns blocks that were refused
func (m *Materializer) Diagnostics() []parser.Diagnostic {
	return m.diagnostics
}

// Put writes a block to root/b.Path, creating parent directories and
// overwriting any existing file. Paths escaping root are skipped.
func (m *Materializer) Put(b parser.Block) (bool, error) {
	target, err := SafeJoin(m.root, b.Path)
	if err != nil {
		d := parser.Diagnostic{Kind: parser.KindUnsafePath, Line: b.Line, Text: b.Path, Detail: err.Error()}
		m.diagnostics = append(m.diagnostics, d)
		return false, nil
	}

	if err := m.fs.MkdirAll(filepath.Dir(target), m.dirPerm); err != nil {
		return false, fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(m.fs, target, []byte(b.Content), m.filePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", target, err)
	}

	m.log.Debug("wrote block",
		zap.String("path", b.Path),
		zap.String("lang", b.Lang),
		zap.Int("line", b.Line),
		zap.Int("bytes", len(b.Content)))
	if m.onWrite != nil {
		m.onWrite(b.Path)
	}
	return true, nil
}
