package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DiagnosticKind names the reason a line was skipped
type DiagnosticKind string

const (
	KindUnmatchedTreeLine DiagnosticKind = "unmatched-tree-line"
	KindOutsideRoot       DiagnosticKind = "outside-root"
	KindDepthGap          DiagnosticKind = "depth-gap"
	KindIgnored           DiagnosticKind = "ignored"
	KindUnresolvedHeader  DiagnosticKind = "unresolved-header"
	KindOrphanBlock       DiagnosticKind = "orphan-block"
	KindUnclosedBlock     DiagnosticKind = "unclosed-block"
	KindUnsafePath        DiagnosticKind = "unsafe-path"
)

// Diagnostic is a structured warning for input that was skipped rather than failed
type Diagnostic struct {
	Kind   DiagnosticKind `yaml:"kind"`
	Line   int            `yaml:"line"`             // 1-based source line, 0 when unknown
	Text   string         `yaml:"text"`             // Offending source text
	Detail string         `yaml:"detail,omitempty"` // Extra context, e.g. a resolved path
}

func (d Diagnostic) String() string {
	if d.Detail != "" {
		return fmt.Sprintf("line %d: %s: %q (%s)", d.Line, d.Kind, d.Text, d.Detail)
	}
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Kind, d.Text)
}

var (
	fenceRe      = regexp.MustCompile("^```")
	closeFenceRe = regexp.MustCompile("^`{3,}$")
)

// ReadLines reads the whole document into memory, one entry per line.
// Line terminators, including a trailing \r, are removed.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// isFence reports whether a line opens a fenced code block
func isFence(line string) bool {
	return fenceRe.MatchString(strings.TrimSpace(line))
}

// isClosingFence reports whether a line is a bare fence with no language tag
func isClosingFence(line string) bool {
	return closeFenceRe.MatchString(strings.TrimSpace(line))
}
