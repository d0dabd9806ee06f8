package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIndent is the number of characters a tree renderer uses per level
const DefaultIndent = 4

var (
	treeNameRe = regexp.MustCompile(`[\w\-.\[\]]+/?$`)
	treeGlyphs = []string{"├──", "└──", "│"}
)

// TreeLine is a single recognized entry of an ASCII tree
type TreeLine struct {
	Name  string // Entry name, trailing "/" kept for directories
	Depth int    // Prefix width divided by the indent width
	Dir   bool
}

// StackEntry is one open ancestor on the tree path stack
type StackEntry struct {
	Name  string
	Depth int
}

// PathStack tracks the ancestors of the current tree entry.
// Entry i always has depth i: depths strictly increase with no gaps.
type PathStack struct {
	entries []StackEntry
}

// Push truncates the stack to depth and appends name. A depth beyond the
// current length is clamped; the returned bool reports whether that happened.
func (s *PathStack) Push(name string, depth int) (clamped bool) {
	if depth > len(s.entries) {
		depth = len(s.entries)
		clamped = true
	}
	s.entries = append(s.entries[:depth], StackEntry{Name: name, Depth: depth})
	return clamped
}

// Entries returns a copy of the open ancestors
func (s *PathStack) Entries() []StackEntry {
	return append([]StackEntry(nil), s.entries...)
}

// Path joins all stack names with "/"
func (s *PathStack) Path() string {
	parts := make([]string, len(s.entries))
	for i, e := range s.entries {
		parts[i] = strings.TrimSuffix(e.Name, "/")
	}
	return strings.Join(parts, "/")
}

// TreeOptions configures tree parsing
type TreeOptions struct {
	Root   string   // Root folder name stripped from every expected path
	Indent int      // Characters per level, DefaultIndent when zero
	Ignore []string // gitignore-style patterns matched against expected paths
}

// TreeResult holds the expected files implied by the tree
type TreeResult struct {
	Expected    []string
	Diagnostics []Diagnostic
}

// HasTreeGlyph reports whether a line contains a branch-drawing glyph
func HasTreeGlyph(line string) bool {
	for _, g := range treeGlyphs {
		if strings.Contains(line, g) {
			return true
		}
	}
	return false
}

// RecognizeTreeLine extracts the trailing entry name and its depth
func RecognizeTreeLine(line string, indent int) (TreeLine, bool) {
	if indent <= 0 {
		indent = DefaultIndent
	}
	clean := strings.TrimRightFunc(line, unicode.IsSpace)
	loc := treeNameRe.FindStringIndex(clean)
	if loc == nil {
		return TreeLine{}, false
	}
	name := clean[loc[0]:loc[1]]
	return TreeLine{
		Name:  name,
		Depth: utf8.RuneCountInString(clean[:loc[0]]) / indent,
		Dir:   strings.HasSuffix(name, "/"),
	}, true
}

// ParseTree scans lines for tree regions and returns the expected file paths
// relative to the root folder, in document order
func ParseTree(lines []string, opts TreeOptions) TreeResult {
	var result TreeResult
	var gi *ignore.GitIgnore
	if len(opts.Ignore) > 0 {
		gi = ignore.CompileIgnoreLines(opts.Ignore...)
	}
	rootPrefix := strings.TrimSuffix(opts.Root, "/") + "/"

	var stack PathStack
	inTree := false
	// Set when the open block was started by a bare directory line;
	// only such blocks accept indented name-only continuation lines
	indented := false

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || isFence(line) {
			// Blank lines and fences end the current tree block
			inTree = false
			continue
		}
		entry, ok := RecognizeTreeLine(line, opts.Indent)
		bare := ok && trimmed == entry.Name

		switch {
		case HasTreeGlyph(line):
			inTree, indented = true, false
		case bare && entry.Dir:
			if !inTree {
				indented = true
			}
			inTree = true
		case strings.HasSuffix(trimmed, "/"):
			// Counts as a tree line but does not open a block by itself
		case inTree && indented && bare:
			// Indented continuation inside an open block
		default:
			inTree = false
			continue
		}

		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: KindUnmatchedTreeLine, Line: lineNo, Text: trimmed,
			})
			continue
		}

		if stack.Push(entry.Name, entry.Depth) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: KindDepthGap, Line: lineNo, Text: trimmed, Detail: stack.Path(),
			})
		}
		if entry.Dir {
			continue
		}

		full := stack.Path()
		if !strings.HasPrefix(full, rootPrefix) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: KindOutsideRoot, Line: lineNo, Text: trimmed, Detail: full,
			})
			continue
		}
		rel := strings.TrimPrefix(full, rootPrefix)

		if gi != nil && gi.MatchesPath(rel) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: KindIgnored, Line: lineNo, Text: trimmed, Detail: rel,
			})
			continue
		}
		result.Expected = append(result.Expected, rel)
	}

	return result
}
