// Package reconcile compares the files a tree promises with the files that were written.
package reconcile

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ReportHeader is the first line of the missing files report
const ReportHeader = "The following files were found in the tree structure but no code block was found for them:"

// Mode selects how expected and created paths are compared
type Mode string

const (
	ModeStrict   Mode = "strict"   // Exact match after normalization
	ModeFold     Mode = "fold"     // Case-insensitive match
	ModeBasename Mode = "basename" // Exact match, then same file name anywhere
)

// ParseMode validates a mode name; the empty string selects ModeStrict
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModeFold, ModeBasename:
		return m, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (supported: strict, fold, basename)", s)
	}
}

// Relaxed records an expected path that was only matched by a relaxed mode
type Relaxed struct {
	Expected string `yaml:"expected"`
	Created  string `yaml:"created"`
}

// Result is the outcome of a reconciliation
type Result struct {
	Missing []string  // Expected paths with no created counterpart, in expected order
	Relaxed []Relaxed // Expected paths matched only by relaxed rules
}

// Normalize converts a path to canonical "/"-separated form
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}

// Reconcile returns the expected paths that were never created
func Reconcile(expected, created []string, mode Mode) Result {
	exact := make(map[string]string, len(created))
	folded := make(map[string]string, len(created))
	byBase := make(map[string]string, len(created))
	for _, c := range created {
		n := Normalize(c)
		if _, ok := exact[n]; !ok {
			exact[n] = c
		}
		if _, ok := folded[strings.ToLower(n)]; !ok {
			folded[strings.ToLower(n)] = c
		}
		if _, ok := byBase[path.Base(n)]; !ok {
			byBase[path.Base(n)] = c
		}
	}

	var result Result
	for _, e := range expected {
		n := Normalize(e)
		if _, ok := exact[n]; ok {
			continue
		}

		var match string
		switch mode {
		case ModeFold:
			match = folded[strings.ToLower(n)]
		case ModeBasename:
			match = byBase[path.Base(n)]
		}
		if match != "" {
			result.Relaxed = append(result.Relaxed, Relaxed{Expected: e, Created: match})
			continue
		}
		result.Missing = append(result.Missing, e)
	}
	return result
}

// FormatReport renders the missing files report
func FormatReport(missing []string) string {
	var sb strings.Builder
	sb.WriteString(ReportHeader)
	sb.WriteString("\n\n")
	for _, m := range missing {
		sb.WriteString("- ")
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteReport writes root/name when anything is missing and returns the report
// path. With nothing missing no file is written and an older report is kept.
func WriteReport(fs afero.Fs, root, name string, missing []string) (string, error) {
	if len(missing) == 0 {
		return "", nil
	}
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", root, err)
	}
	reportPath := filepath.Join(root, name)
	if err := afero.WriteFile(fs, reportPath, []byte(FormatReport(missing)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return reportPath, nil
}
