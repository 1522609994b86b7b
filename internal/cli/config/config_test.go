package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conduit-lang/bibkit/internal/model"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Save.Type != "metadata" {
		t.Errorf("expected default save type 'metadata', got %s", cfg.Save.Type)
	}
	if cfg.Save.Order != "original" {
		t.Errorf("expected default order 'original', got %s", cfg.Save.Order)
	}
	if !cfg.Save.ResolveOnlySelected {
		t.Error("expected resolve_only_selected to default to true")
	}
	if cfg.Journal.DSN != "bibkit-journal.db" {
		t.Errorf("expected default journal dsn, got %s", cfg.Journal.DSN)
	}

	fc, err := cfg.Save.FormatConfig()
	if err != nil {
		t.Fatalf("FormatConfig: %v", err)
	}
	if !fc.WithMetadata || fc.Newline != "\n" || fc.Order.Type != model.OrderOriginal {
		t.Errorf("unexpected format config: %+v", fc)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
verbose: true
save:
  type: plain
  order: specified
  sort: [year:desc, author]
  newline: crlf
  generate_keys: true
  charset: ISO-8859-1
journal:
  enabled: true
  dsn: postgres://localhost/bib
`
	os.WriteFile(filepath.Join(tmpDir, "bibkit.yml"), []byte(configContent), 0644)

	// the file is found from a nested directory
	nested := filepath.Join(tmpDir, "refs", "chapter1")
	os.MkdirAll(nested, 0755)
	chdir(t, nested)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	if !cfg.Verbose || !cfg.Journal.Enabled {
		t.Errorf("expected verbose and journal enabled, got %+v", cfg)
	}
	if cfg.Journal.DSN != "postgres://localhost/bib" {
		t.Errorf("expected journal dsn from file, got %s", cfg.Journal.DSN)
	}

	fc, err := cfg.Save.FormatConfig()
	if err != nil {
		t.Fatalf("FormatConfig: %v", err)
	}
	if fc.WithMetadata {
		t.Error("expected plain save type")
	}
	if fc.Newline != "\r\n" {
		t.Errorf("expected CRLF newline, got %q", fc.Newline)
	}
	if !fc.GenerateKeys || fc.Charset != "ISO-8859-1" {
		t.Errorf("unexpected format config: %+v", fc)
	}
	want := []model.SortCriterion{{Field: "year", Descending: true}, {Field: "author"}}
	if len(fc.Order.Criteria) != 2 || fc.Order.Criteria[0] != want[0] || fc.Order.Criteria[1] != want[1] {
		t.Errorf("expected criteria %v, got %v", want, fc.Order.Criteria)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BIBKIT_SAVE_REFORMAT", "true")
	t.Setenv("BIBKIT_JOURNAL_DSN", "postgres://env/bib")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.Save.Reformat {
		t.Error("expected reformat from environment")
	}
	if cfg.Journal.DSN != "postgres://env/bib" {
		t.Errorf("expected journal dsn from environment, got %s", cfg.Journal.DSN)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(path, []byte("save:\n  reformat: true\n"), 0644)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Save.Reformat {
		t.Error("expected reformat from file")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad type", "save:\n  type: fancy\n"},
		{"bad newline", "save:\n  newline: nel\n"},
		{"bad order", "save:\n  order: random\n"},
		{"table order", "save:\n  order: table\n"},
		{"bad sort direction", "save:\n  sort: [year:sideways]\n"},
		{"empty sort field", "save:\n  sort: [':desc']\n"},
		{"bad driver", "journal:\n  driver: oracle\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bibkit.yml")
			os.WriteFile(path, []byte(tt.content), 0644)
			if _, err := LoadFile(path); err == nil {
				t.Errorf("expected validation error for %q", tt.content)
			}
		})
	}
}

func TestProjectRootNotFound(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := ProjectRoot(); err == nil {
		t.Error("expected error when no config file exists")
	}
}
