package reconcile

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"app/page.tsx":    "app/page.tsx",
		`app\page.tsx`:    "app/page.tsx",
		"./app//page.tsx": "app/page.tsx",
		"app/x/../y.ts":   "app/y.ts",
		" config.json":    " config.json",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeStrict},
		{in: "strict", want: ModeStrict},
		{in: "FOLD", want: ModeFold},
		{in: " basename ", want: ModeBasename},
		{in: "fuzzy", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReconcile(t *testing.T) {
	expected := []string{"app/main.ts", "app/util.ts", "App/Page.tsx", "lib/db.ts", "README.md"}
	created := []string{`app\main.ts`, "app/page.tsx", "src/db.ts"}

	tests := []struct {
		name    string
		mode    Mode
		missing []string
		relaxed []Relaxed
	}{
		{
			name:    "strict",
			mode:    ModeStrict,
			missing: []string{"app/util.ts", "App/Page.tsx", "lib/db.ts", "README.md"},
		},
		{
			name:    "fold",
			mode:    ModeFold,
			missing: []string{"app/util.ts", "lib/db.ts", "README.md"},
			relaxed: []Relaxed{{Expected: "App/Page.tsx", Created: "app/page.tsx"}},
		},
		{
			name:    "basename",
			mode:    ModeBasename,
			missing: []string{"app/util.ts", "App/Page.tsx", "README.md"},
			relaxed: []Relaxed{{Expected: "lib/db.ts", Created: "src/db.ts"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile(expected, created, tt.mode)
			if !reflect.DeepEqual(result.Missing, tt.missing) {
				t.Errorf("expected missing %v, got %v", tt.missing, result.Missing)
			}
			if !reflect.DeepEqual(result.Relaxed, tt.relaxed) {
				t.Errorf("expected relaxed %v, got %v", tt.relaxed, result.Relaxed)
			}
		})
	}
}

func TestReconcileNothingMissing(t *testing.T) {
	result := Reconcile([]string{"config.json"}, []string{"config.json"}, ModeStrict)
	if len(result.Missing) != 0 || len(result.Relaxed) != 0 {
		t.Errorf("expected clean result, got %+v", result)
	}
}

func TestFormatReport(t *testing.T) {
	got := FormatReport([]string{"app/util.ts", "lib/db.ts"})
	want := "The following files were found in the tree structure but no code block was found for them:\n\n" +
		"- app/util.ts\n" +
		"- lib/db.ts\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestWriteReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	reportPath := filepath.Join("project", "missing.txt")

	path, err := WriteReport(fs, "project", "missing.txt", []string{"app/util.ts"})
	if err != nil {
		t.Fatal(err)
	}
	if path != reportPath {
		t.Errorf("expected %q, got %q", reportPath, path)
	}
	data, err := afero.ReadFile(fs, reportPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != FormatReport([]string{"app/util.ts"}) {
		t.Errorf("unexpected report %q", data)
	}

	// Nothing missing leaves the earlier report alone
	path, err = WriteReport(fs, "project", "missing.txt", nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("expected no report path, got %q", path)
	}
	if exists, _ := afero.Exists(fs, reportPath); !exists {
		t.Error("earlier report was removed")
	}
}

func TestWriteReportNothingMissingCreatesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := WriteReport(fs, "project", "missing.txt", nil); err != nil {
		t.Fatal(err)
	}
	if exists, _ := afero.DirExists(fs, "project"); exists {
		t.Error("root directory created with nothing to report")
	}
}
