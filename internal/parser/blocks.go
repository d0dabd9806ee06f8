package parser

import (
	"regexp"
	"strings"
)

var (
	// "1. Package.json" or "4. Middleware (app/middleware.ts)"
	headerRegex    = regexp.MustCompile(`^\d+\.\s+.*?(?:\((.*?)\))?$`)
	codeBlockStart = regexp.MustCompile("^```\\s*(\\S*)")
)

// Header is a recognized numbered section header
type Header struct {
	Line     int
	Title    string // Text between the first "." and the first "("
	Path     string // Resolved target path, empty when unresolved
	Explicit bool   // Path came from a parenthesized fragment
}

// Resolved reports whether the header names a target file
func (h Header) Resolved() bool {
	return h.Path != ""
}

// Block is a closed fenced code block bound to a target path
type Block struct {
	Path    string
	Lang    string
	Content string
	Line    int // Line of the opening fence
}

// BlockSink receives each block as soon as its closing fence is seen.
// The returned bool reports whether the block was persisted; an error aborts extraction.
type BlockSink interface {
	Put(b Block) (bool, error)
}

// BlockSinkFunc adapts a function to BlockSink
type BlockSinkFunc func(b Block) (bool, error)

// Put calls f(b)
func (f BlockSinkFunc) Put(b Block) (bool, error) {
	return f(b)
}

// BlockResult holds the outcome of block extraction
type BlockResult struct {
	Headers     []Header
	Created     []string // Relative paths in first-write order, each once
	Blocks      int      // Number of blocks handed to the sink
	Diagnostics []Diagnostic
}

// ParseHeader recognizes a numbered header and resolves its target path
func ParseHeader(line string) (Header, bool) {
	line = strings.TrimRight(line, " \t\r")
	matches := headerRegex.FindStringSubmatch(line)
	if matches == nil {
		return Header{}, false
	}

	h := Header{Title: headerTitle(line)}
	if p := strings.TrimSpace(matches[1]); p != "" {
		h.Path = p
		h.Explicit = true
		return h, true
	}
	// A dotted title such as "Package.json" names a root-level file
	if strings.Contains(h.Title, ".") {
		h.Path = strings.ToLower(h.Title)
	}
	return h, true
}

// headerTitle returns the text between the first "." and the first "(" or end of line
func headerTitle(line string) string {
	idx := strings.Index(line, ".")
	if idx == -1 {
		return ""
	}
	title := line[idx+1:]
	if p := strings.Index(title, "("); p != -1 {
		title = title[:p]
	}
	return strings.TrimSpace(title)
}

// ExtractBlocks walks lines, binds fenced code blocks to the header before them
// and hands every closed block to sink
func ExtractBlocks(lines []string, sink BlockSink) (BlockResult, error) {
	var result BlockResult
	seen := make(map[string]bool)

	var current *Header
	var inCodeBlock bool
	var block Block
	var content []string

	for i, line := range lines {
		lineNo := i + 1

		// Header check - only outside code blocks
		if !inCodeBlock {
			if h, ok := ParseHeader(line); ok {
				h.Line = lineNo
				result.Headers = append(result.Headers, h)
				if h.Resolved() {
					current = &h
				} else {
					current = nil
					result.Diagnostics = append(result.Diagnostics, Diagnostic{
						Kind: KindUnresolvedHeader, Line: lineNo, Text: strings.TrimSpace(line), Detail: h.Title,
					})
				}
				continue
			}
		}

		// Code block end
		if inCodeBlock && isClosingFence(line) {
			inCodeBlock = false
			block.Content = strings.Join(content, "\n")
			content = nil
			current = nil

			stored, err := sink.Put(block)
			if err != nil {
				return result, err
			}
			result.Blocks++
			if stored && !seen[block.Path] {
				seen[block.Path] = true
				result.Created = append(result.Created, block.Path)
			}
			continue
		}

		// Inside code block
		if inCodeBlock {
			content = append(content, line)
			continue
		}

		// Code block start
		if matches := codeBlockStart.FindStringSubmatch(strings.TrimSpace(line)); matches != nil {
			if current == nil {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Kind: KindOrphanBlock, Line: lineNo, Text: strings.TrimSpace(line),
				})
				continue
			}
			inCodeBlock = true
			block = Block{Path: current.Path, Lang: matches[1], Line: lineNo}
			content = content[:0]
			continue
		}
	}

	if inCodeBlock {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind: KindUnclosedBlock, Line: block.Line, Text: "```" + block.Lang, Detail: block.Path,
		})
	}

	return result, nil
}
