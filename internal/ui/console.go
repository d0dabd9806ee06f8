package ui

import (
	"fmt"
	"io"

	"github.com/gubarz/mdscaffold/internal/reconcile"
)

// Console prints human-readable progress lines. Nothing it prints is a stable contract.
type Console struct {
	out    io.Writer
	styles *StyleManager
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer, styles *StyleManager) *Console {
	if styles == nil {
		styles = DefaultStyles()
	}
	return &Console{out: out, styles: styles}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// SourceNotFound reports a missing input document
func (c *Console) SourceNotFound(source string) {
	c.println(c.styles.Error.Render(fmt.Sprintf("Error: %s not found!", source)))
}

// Analyzing announces the start of a run
func (c *Console) Analyzing(dryRun bool) {
	msg := "Analyzing structure and parsing code..."
	if dryRun {
		msg += c.styles.Dim.Render(" (dry run, nothing is written to disk)")
	}
	c.println(c.styles.Title.Render(msg))
}

// Found reports how many files the tree lists
func (c *Console) Found(n int) {
	c.println(fmt.Sprintf("Found %d files in the tree structure.", n))
}

// Created reports a written file
func (c *Console) Created(rel string) {
	c.println(c.styles.Created.Render("Created: ") + c.styles.Path.Render(rel))
}

// Relaxed reports expected files matched only by a relaxed rule
func (c *Console) Relaxed(matches []reconcile.Relaxed) {
	for _, m := range matches {
		c.println(c.styles.Dim.Render(fmt.Sprintf("Matched %s as %s", m.Expected, m.Created)))
	}
}

// Skipped reports how many inputs were skipped
func (c *Console) Skipped(n int) {
	if n == 0 {
		return
	}
	c.println(c.styles.Dim.Render(fmt.Sprintf("Skipped %d lines or blocks (use --verbose for details).", n)))
}

// Summary prints the final count line and the warning or success message.
// In a dry run the report is never written, so the warning says so.
func (c *Console) Summary(created, missing int, reportPath string, dryRun bool) {
	c.println(fmt.Sprintf("Created %d files, %d missing.", created, missing))
	if missing > 0 && dryRun {
		c.println("\n" + c.styles.Warning.Render(fmt.Sprintf("Warning: %d missing files (dry run, report not written to '%s')", missing, reportPath)))
		return
	}
	if missing > 0 {
		c.println("\n" + c.styles.Warning.Render(fmt.Sprintf("Warning: %d missing files listed in '%s'", missing, reportPath)))
		return
	}
	c.println("\n" + c.styles.Success.Render("Success: All files from the structure seem to be created!"))
}
