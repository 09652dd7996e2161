package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.WikiDir != "corpora/wiki" {
		t.Errorf("WikiDir = %q; want %q", cfg.Paths.WikiDir, "corpora/wiki")
	}

	if cfg.Paths.DatasetDir != "datasets" {
		t.Errorf("DatasetDir = %q; want %q", cfg.Paths.DatasetDir, "datasets")
	}

	if len(cfg.Sampling.Languages) != 9 {
		t.Errorf("Languages = %d entries; want 9", len(cfg.Sampling.Languages))
	}

	if cfg.Sampling.ShuffleSeed != 42 {
		t.Errorf("ShuffleSeed = %d; want 42", cfg.Sampling.ShuffleSeed)
	}

	if len(cfg.Training.Algorithms) != 3 {
		t.Errorf("Algorithms = %v; want all three", cfg.Training.Algorithms)
	}

	wantSizes := []int{15000, 30000, 50000}
	for i, size := range cfg.Training.VocabSizes {
		if size != wantSizes[i] {
			t.Errorf("VocabSizes[%d] = %d; want %d", i, size, wantSizes[i])
		}
	}

	wantScales := []string{"100M", "200M", "400M"}
	for i, s := range cfg.Training.Scales {
		if s != wantScales[i] {
			t.Errorf("Scales[%d] = %q; want %q", i, s, wantScales[i])
		}
	}

	if cfg.Eval.Reference != ReferenceWhitespace {
		t.Errorf("Eval.Reference = %q; want %q", cfg.Eval.Reference, ReferenceWhitespace)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

// --- NormalizeAlgorithm ---

func TestNormalizeAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bpe lowercase", "bpe", "bpe", false},
		{"wordpiece lowercase", "wordpiece", "wordpiece", false},
		{"unigram lowercase", "unigram", "unigram", false},
		{"uppercase", "BPE", "bpe", false},
		{"mixed case", "WordPiece", "wordpiece", false},
		{"with spaces", "  unigram  ", "unigram", false},
		{"empty", "", "", true},
		{"invalid value", "sentencepiece", "", true},
		{"invalid with spaces", "  bad  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAlgorithm(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeAlgorithm(%q) = %q, nil; want error", tt.input, got)
				}

				return
			}

			if err != nil {
				t.Errorf("NormalizeAlgorithm(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("NormalizeAlgorithm(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAlgorithm_ErrorType(t *testing.T) {
	_, err := NormalizeAlgorithm("sentencepiece")

	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %T; want *ConfigurationError", err)
	}

	if cerr.Setting != "algorithm" || cerr.Value != "sentencepiece" {
		t.Errorf("error context = %s/%s; want algorithm/sentencepiece", cerr.Setting, cerr.Value)
	}
}

// --- NormalizeReference ---

func TestNormalizeReference(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"whitespace", "whitespace", "whitespace", false},
		{"chars", "chars", "chars", false},
		{"tiktoken", "tiktoken", "tiktoken", false},
		{"empty defaults to whitespace", "", "whitespace", false},
		{"uppercase", "CHARS", "chars", false},
		{"invalid", "morphemes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeReference(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeReference(%q) = %q, nil; want error", tt.input, got)
				}

				return
			}

			if err != nil {
				t.Errorf("NormalizeReference(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("NormalizeReference(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

// --- ValidateVocabSize ---

func TestValidateVocabSize(t *testing.T) {
	for _, size := range []int{2, 100, 15000, 50000} {
		if err := ValidateVocabSize(size); err != nil {
			t.Errorf("ValidateVocabSize(%d) = %v; want nil", size, err)
		}
	}

	for _, size := range []int{1, 0, -5} {
		if err := ValidateVocabSize(size); err == nil {
			t.Errorf("ValidateVocabSize(%d) = nil; want error", size)
		}
	}
}

// --- RegisterFlags ---

func TestRegisterFlags(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	// Spot-check a few flags are registered with correct defaults.
	checks := []struct {
		flag string
		want string
	}{
		{"paths-wiki-dir", "corpora/wiki"},
		{"paths-dataset-dir", "datasets"},
		{"sampling-shuffle-seed", "42"},
		{"eval-reference", "whitespace"},
		{"log-level", "info"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	cfg, err := Load(LoadOptions{
		Cmd:      binder,
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.WikiDir != defaults.Paths.WikiDir {
		t.Errorf("WikiDir = %q; want %q", cfg.Paths.WikiDir, defaults.Paths.WikiDir)
	}

	if cfg.Training.Concurrency != defaults.Training.Concurrency {
		t.Errorf("Concurrency = %d; want %d", cfg.Training.Concurrency, defaults.Training.Concurrency)
	}

	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, defaults.LogLevel)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err := fs.Parse([]string{
		"--paths-wiki-dir=/data/wiki",
		"--training-concurrency=8",
		"--log-level=debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:      &fakeBinder{fs: fs},
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.WikiDir != "/data/wiki" {
		t.Errorf("WikiDir = %q; want %q", cfg.Paths.WikiDir, "/data/wiki")
	}

	if cfg.Training.Concurrency != 8 {
		t.Errorf("Concurrency = %d; want 8", cfg.Training.Concurrency)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TOKEVAL_LOG_LEVEL", "warn")
	t.Setenv("TOKEVAL_PATHS_REPORT_DIR", "/tmp/reports")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "warn")
	}

	if cfg.Paths.ReportDir != "/tmp/reports" {
		t.Errorf("ReportDir = %q; want %q", cfg.Paths.ReportDir, "/tmp/reports")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "tokeval.yaml")

	err := os.WriteFile(cfgFile, []byte("log_level: error\n"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	// Untouched settings keep their defaults.
	if cfg.Paths.WikiDir != defaults.Paths.WikiDir {
		t.Errorf("WikiDir = %q; want default %q", cfg.Paths.WikiDir, defaults.Paths.WikiDir)
	}
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	defaults := DefaultConfig()

	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		Defaults:   defaults,
	})
	if err == nil {
		t.Fatal("expected error for explicitly named missing config file")
	}
}
