package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetForTest() {
	CloseAll()
	settingsMu.Lock()
	settings = Settings{}
	logLevel = LevelInfo
	settingsMu.Unlock()
}

func readLogFile(t *testing.T, stateDir string, category Category) string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(stateDir, "logs"))
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_"+string(category)+".log") {
			data, err := os.ReadFile(filepath.Join(stateDir, "logs", e.Name()))
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			return string(data)
		}
	}
	return ""
}

func TestDisabledModeWritesNothing(t *testing.T) {
	defer resetForTest()
	dir := t.TempDir()

	if err := Initialize(dir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	API("should not appear")

	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Fatalf("logs dir should not exist in production mode")
	}
}

func TestDebugModeWritesPerCategory(t *testing.T) {
	defer resetForTest()
	dir := t.TempDir()

	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	API("request sent to %s", "/users")
	UI("page changed")

	apiLog := readLogFile(t, dir, CategoryAPI)
	if !strings.Contains(apiLog, "request sent to /users") {
		t.Fatalf("api log missing entry, got: %q", apiLog)
	}
	uiLog := readLogFile(t, dir, CategoryUI)
	if !strings.Contains(uiLog, "page changed") {
		t.Fatalf("ui log missing entry, got: %q", uiLog)
	}
}

func TestCategoryDisable(t *testing.T) {
	defer resetForTest()
	dir := t.TempDir()

	err := Initialize(dir, Settings{
		DebugMode:  true,
		Level:      "info",
		Categories: map[string]bool{"ui": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryUI) {
		t.Fatal("ui category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAPI) {
		t.Fatal("unlisted categories default to enabled")
	}

	UI("dropped")
	if log := readLogFile(t, dir, CategoryUI); log != "" {
		t.Fatalf("disabled category wrote: %q", log)
	}
}

func TestLevelFiltering(t *testing.T) {
	defer resetForTest()
	dir := t.TempDir()

	if err := Initialize(dir, Settings{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	l := Get(CategoryAPI)
	l.Info("info suppressed")
	l.Warn("warn kept")
	l.Error("error kept")

	log := readLogFile(t, dir, CategoryAPI)
	if strings.Contains(log, "info suppressed") {
		t.Fatalf("info should be filtered at warn level: %q", log)
	}
	if !strings.Contains(log, "warn kept") || !strings.Contains(log, "error kept") {
		t.Fatalf("warn/error missing: %q", log)
	}
}

func TestRequestLoggerCarriesID(t *testing.T) {
	defer resetForTest()
	dir := t.TempDir()

	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	rlog := WithRequestID(CategoryAPI, "abc12345")
	rlog.Info("GET /posts")

	log := readLogFile(t, dir, CategoryAPI)
	if !strings.Contains(log, "[req:abc12345] GET /posts") {
		t.Fatalf("request id missing: %q", log)
	}
}
