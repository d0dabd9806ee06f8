package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if got := GetSource(); got != "project.txt" {
		t.Errorf("expected project.txt, got %q", got)
	}
	if got := GetRoot(); got != "multi-tenant-saas" {
		t.Errorf("expected multi-tenant-saas, got %q", got)
	}
	if got := GetReport(); got != "missing.txt" {
		t.Errorf("expected missing.txt, got %q", got)
	}
	if got := GetIndent(); got != 4 {
		t.Errorf("expected indent 4, got %d", got)
	}
	if got := GetMatch(); got != "strict" {
		t.Errorf("expected strict, got %q", got)
	}
	if GetDryRun() || GetVerbose() || GetManifest() != "" {
		t.Error("expected dry run, verbose and manifest to be off")
	}
}

func TestInitFromFileAndEnv(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MDSCAFFOLD_ROOT", "from-env")

	cfg := "source: docs/plan.md\nindent: 2\nignore:\n  - \"*.md\"\n"
	if err := os.WriteFile("mdscaffold.yaml", []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if got := GetSource(); got != "docs/plan.md" {
		t.Errorf("expected docs/plan.md, got %q", got)
	}
	if got := GetIndent(); got != 2 {
		t.Errorf("expected indent 2, got %d", got)
	}
	if got := GetRoot(); got != "from-env" {
		t.Errorf("expected from-env, got %q", got)
	}
	if got := GetIgnore(); len(got) != 1 || got[0] != "*.md" {
		t.Errorf("unexpected ignore patterns %v", got)
	}

	SetSource("other.txt")
	if got := GetSource(); got != "other.txt" {
		t.Errorf("expected other.txt after SetSource, got %q", got)
	}
}

func TestInitMalformedFile(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile("mdscaffold.yaml", []byte("root: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}
