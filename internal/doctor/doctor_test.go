package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deeklead/midori/internal/config"
	"github.com/deeklead/midori/internal/daily"
	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/history"
)

func newContext(t *testing.T) *CheckContext {
	t.Helper()
	for _, name := range []string{"MIDORI_REVERSED", "MIDORI_LANG", "MIDORI_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	root := t.TempDir()
	ctx := &CheckContext{
		Context:   context.Background(),
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
	}
	for _, dir := range []string{ctx.ConfigDir, ctx.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return ctx
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func byName(r *Report) map[string]*CheckResult {
	m := make(map[string]*CheckResult, len(r.Checks))
	for _, res := range r.Checks {
		m[res.Name] = res
	}
	return m
}

func TestRun_CleanInstall(t *testing.T) {
	ctx := newContext(t)

	d := NewDoctor()
	d.RegisterAll(AllChecks()...)
	report := d.Run(ctx)

	if len(report.Checks) != len(d.Checks()) {
		t.Fatalf("got %d results, want %d", len(report.Checks), len(d.Checks()))
	}
	for _, res := range report.Checks {
		if res.Status != StatusOK {
			t.Errorf("%s: status %s (%s), want ok", res.Name, res.Status, res.Message)
		}
	}
	if report.HasErrors() || report.Summary.OK != len(report.Checks) {
		t.Errorf("Summary = %+v", report.Summary)
	}

	results := byName(report)
	if results["deck"].Category != CategoryCore {
		t.Errorf("deck category = %q", results["deck"].Category)
	}
	if results["history"].Category != CategoryData {
		t.Errorf("history category = %q", results["history"].Category)
	}
}

func TestRun_MissingStateDir(t *testing.T) {
	ctx := newContext(t)
	ctx.StateDir = filepath.Join(ctx.StateDir, "missing")

	check := NewStateDirCheck()
	if res := check.Run(ctx); res.Status != StatusWarning {
		t.Fatalf("Run() status = %s, want warning", res.Status)
	}
	if err := check.Fix(ctx); err != nil {
		t.Fatal(err)
	}
	if res := check.Run(ctx); res.Status != StatusOK {
		t.Errorf("Run() after Fix = %s (%s)", res.Status, res.Message)
	}
}

func TestFix_RepairsDamagedFiles(t *testing.T) {
	ctx := newContext(t)
	writeFile(t, filepath.Join(ctx.StateDir, history.HistoryFile), "{not json")
	writeFile(t, filepath.Join(ctx.StateDir, daily.DailyFile), "garbage")
	writeFile(t, filepath.Join(ctx.ConfigDir, config.SettingsFile), "card_back = \"nope\"\nuse_reversed = false\n")

	d := NewDoctor()
	d.RegisterAll(AllChecks()...)

	before := byName(d.Run(ctx))
	for _, name := range []string{"history", "daily", "settings"} {
		if before[name].Status != StatusWarning {
			t.Errorf("%s: status %s before fix, want warning", name, before[name].Status)
		}
		if before[name].FixHint == "" {
			t.Errorf("%s: no fix hint", name)
		}
	}

	report := d.Fix(ctx)
	if report.Summary.Fixed != 3 {
		t.Errorf("Fixed = %d, want 3", report.Summary.Fixed)
	}
	for _, res := range report.Checks {
		if res.Status != StatusOK {
			t.Errorf("%s: status %s after fix (%s)", res.Name, res.Status, res.Message)
		}
	}

	s, err := config.Load(filepath.Join(ctx.ConfigDir, config.SettingsFile))
	if err != nil {
		t.Fatal(err)
	}
	if s.UseReversed {
		t.Error("valid setting use_reversed=false was lost by the fix")
	}
	if s.CardBack != config.Default().CardBack {
		t.Errorf("CardBack = %q, want default", s.CardBack)
	}
}

func TestSettingsCheck_MalformedIsBackedUp(t *testing.T) {
	ctx := newContext(t)
	path := filepath.Join(ctx.ConfigDir, config.SettingsFile)
	writeFile(t, path, "use_reversed = [")

	check := NewSettingsCheck()
	if res := check.Run(ctx); res.Status != StatusError {
		t.Fatalf("Run() status = %s, want error", res.Status)
	}
	if err := check.Fix(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("backup missing: %v", err)
	}
	if res := check.Run(ctx); res.Status != StatusOK {
		t.Errorf("Run() after Fix = %s (%s)", res.Status, res.Message)
	}
}

func TestSettingsCheck_BadEnvironment(t *testing.T) {
	ctx := newContext(t)
	t.Setenv("MIDORI_REVERSED", "sometimes")

	res := NewSettingsCheck().Run(ctx)
	if res.Status != StatusWarning {
		t.Fatalf("Run() status = %s, want warning", res.Status)
	}
	if !strings.Contains(strings.Join(res.Details, "\n"), "MIDORI_REVERSED") {
		t.Errorf("Details = %v, want the variable named", res.Details)
	}
}

func TestEventsCheck_UnreadableLines(t *testing.T) {
	ctx := newContext(t)
	writeFile(t, filepath.Join(ctx.StateDir, events.EventsFile),
		"{\"ts\":\"2026-01-01T00:00:00Z\",\"type\":\"reading_completed\"}\nnot json\n")

	res := NewEventsCheck().Run(ctx)
	if res.Status != StatusWarning {
		t.Errorf("Run() status = %s, want warning", res.Status)
	}
	if err := NewEventsCheck().Fix(ctx); !errors.Is(err, ErrCannotFix) {
		t.Errorf("Fix() = %v, want ErrCannotFix", err)
	}
}

func TestReport_Print(t *testing.T) {
	report := &Report{}
	report.add(&CheckResult{Name: "deck", Category: CategoryCore, Status: StatusOK, Message: "fine", Details: []string{"en: 78 cards"}})
	report.add(&CheckResult{Name: "history", Category: CategoryData, Status: StatusWarning, Message: "skipped", FixHint: "Run: mt doctor --fix"})
	report.add(&CheckResult{Name: "daily", Category: CategoryData, Status: StatusOK, Message: "stored", Fixed: true})

	tests := []struct {
		verbose     bool
		wantDetails bool
	}{
		{verbose: false, wantDetails: false},
		{verbose: true, wantDetails: true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		report.Print(&buf, tt.verbose)
		out := buf.String()

		for _, want := range []string{"Core", "Data", "deck", "history", "mt doctor --fix", "2 ok, 1 warnings, 0 errors, 1 fixed"} {
			if !strings.Contains(out, want) {
				t.Errorf("verbose=%v: output missing %q:\n%s", tt.verbose, want, out)
			}
		}
		if got := strings.Contains(out, "en: 78 cards"); got != tt.wantDetails {
			t.Errorf("verbose=%v: details shown = %v", tt.verbose, got)
		}
	}
}
