package main

import (
	"testing"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"sample", "assemble", "train", "eval", "run", "lookup", "clean", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentConfigFlag(t *testing.T) {
	root := NewRootCmd()
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config persistent flag to be registered")
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	// Zero-value config has empty Paths.DatasetDir → requireConfig returns error.
	activeCfg = config.Config{}

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{
		Paths: config.PathsConfig{DatasetDir: "datasets"},
	}

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Paths.DatasetDir != "datasets" {
		t.Errorf("unexpected DatasetDir: %q", got.Paths.DatasetDir)
	}
}

func TestLargestAllocation(t *testing.T) {
	got, err := largestAllocation([]string{"100M", "400M", "200M"}, 9)
	if err != nil {
		t.Fatalf("largestAllocation: %v", err)
	}

	// 400M over 9 languages: the first remainder share is one char larger.
	if got != 44_444_445 {
		t.Errorf("largestAllocation = %d; want 44444445", got)
	}
}

func TestLargestAllocation_BadScale(t *testing.T) {
	if _, err := largestAllocation([]string{"huge"}, 9); err == nil {
		t.Error("expected error for unparseable scale")
	}
}
