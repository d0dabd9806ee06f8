// Package scaffold runs the tree, block and reconcile stages over one source document.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gubarz/mdscaffold/internal/parser"
	"github.com/gubarz/mdscaffold/internal/reconcile"
	"github.com/gubarz/mdscaffold/internal/ui"
	"github.com/gubarz/mdscaffold/internal/writer"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures a single run
type Options struct {
	Source   string // Source document path
	OutDir   string // Parent of the root folder, "." when empty
	Root     string // Root folder name, also stripped from tree paths
	Report   string // Missing report file name inside the root folder
	Indent   int
	Match    reconcile.Mode
	Ignore   []string
	DryRun   bool   // Keep all writes in memory
	Manifest string // Optional YAML manifest path

	Fs     afero.Fs // Defaults to the OS filesystem
	Stdout io.Writer
	Styles *ui.StyleManager
	Logger *zap.Logger
}

// Result describes what a run found and wrote
type Result struct {
	SourceMissing bool                `yaml:"-"`
	Source        string              `yaml:"source"`
	Root          string              `yaml:"root"`
	DryRun        bool                `yaml:"dry_run"`
	Expected      []string            `yaml:"expected"`
	Created       []string            `yaml:"created"`
	Missing       []string            `yaml:"missing"`
	Relaxed       []reconcile.Relaxed `yaml:"relaxed,omitempty"`
	Report        string              `yaml:"report,omitempty"`
	Diagnostics   []parser.Diagnostic `yaml:"diagnostics,omitempty"`
	Output        afero.Fs            `yaml:"-"` // Filesystem the files were written to
}

// Run executes the pipeline. A missing source document is reported on the
// console and is not an error; filesystem failures are.
func Run(o Options) (*Result, error) {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.Match == "" {
		o.Match = reconcile.ModeStrict
	}
	con := ui.NewConsole(o.Stdout, o.Styles)
	log := o.Logger

	out := o.Fs
	if o.DryRun {
		out = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(o.Fs), afero.NewMemMapFs())
	}
	dest := filepath.Join(o.OutDir, o.Root)

	res := &Result{Source: o.Source, Root: dest, DryRun: o.DryRun, Output: out}

	exists, err := afero.Exists(o.Fs, o.Source)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", o.Source, err)
	}
	if !exists {
		con.SourceNotFound(o.Source)
		res.SourceMissing = true
		return res, nil
	}

	f, err := o.Fs.Open(o.Source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.Source, err)
	}
	lines, err := parser.ReadLines(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", o.Source, err)
	}

	con.Analyzing(o.DryRun)

	// Stage 1: expected files from the tree
	tree := parser.ParseTree(lines, parser.TreeOptions{Root: o.Root, Indent: o.Indent, Ignore: o.Ignore})
	res.Expected = tree.Expected
	con.Found(len(tree.Expected))

	// Stage 2: code blocks written as they close
	mat := writer.New(out, dest).WithLogger(log).OnWrite(con.Created)
	blocks, err := parser.ExtractBlocks(lines, mat)
	if err != nil {
		return nil, err
	}
	res.Created = blocks.Created

	// Stage 3: reconcile and report
	rec := reconcile.Reconcile(tree.Expected, blocks.Created, o.Match)
	res.Missing = rec.Missing
	res.Relaxed = rec.Relaxed
	con.Relaxed(rec.Relaxed)

	res.Report, err = reconcile.WriteReport(out, dest, o.Report, rec.Missing)
	if err != nil {
		return nil, err
	}

	res.Diagnostics = append(res.Diagnostics, tree.Diagnostics...)
	res.Diagnostics = append(res.Diagnostics, blocks.Diagnostics...)
	res.Diagnostics = append(res.Diagnostics, mat.Diagnostics()...)
	for _, d := range res.Diagnostics {
		log.Debug("skipped",
			zap.String("kind", string(d.Kind)),
			zap.Int("line", d.Line),
			zap.String("text", d.Text),
			zap.String("detail", d.Detail))
	}
	con.Skipped(len(res.Diagnostics))
	con.Summary(len(res.Created), len(res.Missing), filepath.Join(dest, o.Report), o.DryRun)

	if o.Manifest != "" {
		if err := WriteManifest(o.Fs, o.Manifest, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// WriteManifest stores the run result as YAML
func WriteManifest(fs afero.Fs, path string, res *Result) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
