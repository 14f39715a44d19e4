package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default between runs of the shared
// command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CONTENT_DNA_DATA_DIR", dir)
	t.Setenv("CONTENT_DNA_PATTERNS_FILE", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "analyze", "productivity")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	for _, want := range []string{
		"# Content DNA: productivity",
		"| 1 | How I {action} to {positive_outcome} | 0.87 | 0 |",
		"## Thumbnail guidance",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "analyze", "ai_tech", "--json")
	if err != nil {
		t.Fatalf("analyze --json error: %v", err)
	}
	if !strings.Contains(out, `"ctr_score": 0.91`) {
		t.Errorf("JSON output missing top score:\n%s", out)
	}
}

func TestUnknownNicheCommand(t *testing.T) {
	setupEnv(t)

	_, stderr, err := run(t, "", "analyze", "cooking")
	if err == nil {
		t.Fatal("expected error for unknown niche")
	}
	if !strings.Contains(stderr, "cooking") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTitlesCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "titles", "productivity", "--set", "action=Quit Social Media")
	if err != nil {
		t.Fatalf("titles error: %v", err)
	}
	if !strings.Contains(out, "How I Quit Social Media to Save 10 Hours Every Week") {
		t.Errorf("titles output:\n%s", out)
	}

	if _, _, err := run(t, "", "titles", "productivity", "--set", "novalue"); err == nil {
		t.Error("expected error for malformed --set")
	}
	if _, _, err := run(t, "", "titles", "productivity", "--ai"); err == nil {
		t.Error("expected error for --ai without --topic")
	}
}

func TestRecordsAndRemoveCommands(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "records")
	if err != nil {
		t.Fatalf("records error: %v", err)
	}
	if !strings.Contains(out, "No stored videos.") {
		t.Errorf("records output = %q", out)
	}

	if _, _, err := run(t, "", "remove", "dQw4w9WgXcQ"); err == nil {
		t.Error("expected error removing an unknown video")
	}
}

func TestSearchRequiresAPIKey(t *testing.T) {
	setupEnv(t)

	if _, _, err := run(t, "", "search", "productivity", "--select", "all"); err == nil {
		t.Error("expected error without YouTube API key")
	}
}

func TestNichesCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "niches")
	if err != nil {
		t.Fatalf("niches error: %v", err)
	}
	for _, want := range []string{"ai_tech", "health_fitness", `productivity	"productivity tips"`} {
		if !strings.Contains(out, want) {
			t.Errorf("niches output missing %q:\n%s", want, out)
		}
	}
}

func TestMenu(t *testing.T) {
	setupEnv(t)

	// analysis for niche 3, thumbnails for niche 1, an invalid choice,
	// an unknown niche name, then exit
	input := strings.Join([]string{"3", "3", "5", "1", "10", "3", "cooking", "9"}, "\n") + "\n"
	out, stderr, err := run(t, input)
	if err != nil {
		t.Fatalf("menu error: %v", err)
	}

	for _, want := range []string{
		"1. Search & select videos",
		"8. Optimize a script",
		"9. Exit",
		"# Content DNA: productivity",
		"# Thumbnail guidance: ai_tech",
		"- color scheme: tech blue/black",
		`Invalid choice "10"`,
		"3 actions, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("expected error for unknown niche on stderr, got %q", stderr)
	}
}

const testScript = `In this video I share how I automated my inbox with three simple tools.
Most people lose hours to email every week. Here is the system I built instead.
First I filter everything into folders. Then I batch replies twice a day.
The results surprised me: inbox zero every evening and two free hours a day.`

func TestOptimizeCommand(t *testing.T) {
	setupEnv(t)

	if err := os.WriteFile("script.txt", []byte(testScript), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, _, err := run(t, "", "optimize", "productivity", "--script", "script.txt", "--title", "How I Automated My Inbox")
	if err != nil {
		t.Fatalf("optimize error: %v", err)
	}
	for _, want := range []string{
		"# Script optimization: productivity",
		"**Title:** How I Automated My Inbox",
		"| 0-15s | Hook statement | critical | 00:00 |",
		"In this video, I share How I Automated My Inbox.",
		"👉 Get my productivity templates: [LINK]",
		"Category: Education",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("optimize output missing %q:\n%s", want, out)
		}
	}

	out, _, err = run(t, testScript, "optimize", "ai_tech", "--script", "-", "--json")
	if err != nil {
		t.Fatalf("optimize from stdin error: %v", err)
	}
	if !strings.Contains(out, `"category": "Science \u0026 Technology"`) {
		t.Errorf("JSON output:\n%s", out)
	}

	if _, _, err := run(t, "", "optimize", "productivity"); err == nil {
		t.Error("expected error without --script")
	}
	if _, _, err := run(t, "", "optimize", "productivity", "--script", "missing.txt"); err == nil {
		t.Error("expected error for a missing script file")
	}
}

func TestMenuOptimize(t *testing.T) {
	setupEnv(t)

	if err := os.WriteFile("script.txt", []byte(testScript), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	input := strings.Join([]string{"8", "3", "script.txt", "", "9"}, "\n") + "\n"
	out, _, err := run(t, input)
	if err != nil {
		t.Fatalf("menu error: %v", err)
	}
	for _, want := range []string{
		"# Script optimization: productivity",
		"**Title:** How I Optimized My Workflow to Save 10 Hours Every Week",
		"1 actions, 0 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q:\n%s", want, out)
		}
	}
}

func TestMenuEndsOnEOF(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "6\n\n", "menu")
	if err != nil {
		t.Fatalf("menu error: %v", err)
	}
	if !strings.Contains(out, "No stored videos.") {
		t.Errorf("menu output:\n%s", out)
	}
}

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"action=Ship Faster", "{goal} = Sleep More", "empty="})
	if err != nil {
		t.Fatalf("parseValues error: %v", err)
	}
	if values["action"] != "Ship Faster" || values["goal"] != "Sleep More" || values["empty"] != "" {
		t.Errorf("values = %v", values)
	}

	if _, err := parseValues([]string{"=x"}); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestFormatViews(t *testing.T) {
	tests := map[int64]string{
		0:         "0",
		999:       "999",
		1500:      "1.5K",
		2_300_000: "2.3M",
	}
	for n, want := range tests {
		if got := formatViews(n); got != want {
			t.Errorf("formatViews(%d) = %q, want %q", n, got, want)
		}
	}
}
