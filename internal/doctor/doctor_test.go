package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/doctor"
)

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		Languages:     []string{"sw", "tr"},
		Availability:  func(string) (int64, error) { return 50_000_000, nil },
		RequiredChars: 44_444_445,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "source data sw") {
		t.Error("output should mention source data for sw")
	}
}

// ---------------------------------------------------------------------------
// source availability
// ---------------------------------------------------------------------------

func TestRun_AvailabilityErrorFails(t *testing.T) {
	cfg := doctor.Config{
		Languages:    []string{"yo"},
		Availability: func(string) (int64, error) { return 0, errSourceUnreadable },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when availability cannot be counted")
	}

	if !hasFailureContaining(result.Failures(), "yo") {
		t.Errorf("expected failure mentioning yo, got: %v", result.Failures())
	}
}

func TestRun_EmptySourceFails(t *testing.T) {
	cfg := doctor.Config{
		Languages:    []string{"bn"},
		Availability: func(string) (int64, error) { return 0, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for a language with no source characters")
	}
}

func TestRun_BudgetShortfallFails(t *testing.T) {
	cfg := doctor.Config{
		Languages:     []string{"hi"},
		Availability:  func(string) (int64, error) { return 1_000, nil },
		RequiredChars: 44_444_445,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when availability is below the largest scale budget")
	}

	if !hasFailureContaining(result.Failures(), "required") {
		t.Errorf("expected failure mentioning the budget, got: %v", result.Failures())
	}
}

func TestRun_ZeroBudgetSkipsComparison(t *testing.T) {
	cfg := doctor.Config{
		Languages:    []string{"ja"},
		Availability: func(string) (int64, error) { return 10, nil },
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)
	if result.Failed() {
		t.Errorf("expected pass without a budget; failures: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// evaluation texts
// ---------------------------------------------------------------------------

func TestRun_MissingEvalTextFails(t *testing.T) {
	cfg := doctor.Config{
		Languages:    []string{"ru"},
		Availability: func(string) (int64, error) { return 100, nil },
		EvalDir:      t.TempDir(),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for missing evaluation text")
	}

	if !hasFailureContaining(result.Failures(), "evaluation") {
		t.Errorf("expected failure mentioning evaluation, got: %v", result.Failures())
	}
}

func TestRun_EmptyEvalTextFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ar.txt"), nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := doctor.Config{
		Languages:    []string{"ar"},
		Availability: func(string) (int64, error) { return 100, nil },
		EvalDir:      dir,
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)
	if !result.Failed() {
		t.Fatal("expected failure for empty evaluation text")
	}
}

func TestRun_EvalTextPresentPasses(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "zh.txt"), []byte("doc\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := doctor.Config{
		Languages:    []string{"zh"},
		Availability: func(string) (int64, error) { return 100, nil },
		EvalDir:      dir,
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)
	if result.Failed() {
		t.Errorf("expected pass; failures: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// marker output
// ---------------------------------------------------------------------------

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		Languages: []string{"sw", "yo"},
		Availability: func(lang string) (int64, error) {
			if lang == "yo" {
				return 0, nil
			}
			return 100, nil
		},
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	body := out.String()
	if !strings.Contains(body, doctor.PassMark) {
		t.Errorf("output missing pass marker %q:\n%s", doctor.PassMark, body)
	}

	if !strings.Contains(body, doctor.FailMark) {
		t.Errorf("output missing fail marker %q:\n%s", doctor.FailMark, body)
	}
}

func TestRun_NoAvailabilityFuncSkips(t *testing.T) {
	cfg := doctor.Config{
		Languages: []string{"tr"},
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)
	if result.Failed() {
		t.Fatalf("expected no failures when availability is not wired, got: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "source data tr: skipped") {
		t.Fatalf("expected skipped output, got:\n%s", out.String())
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

var errSourceUnreadable = sentinelError("source unreadable")

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
