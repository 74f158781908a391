package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edu-assist-be/internal/config"
	"edu-assist-be/pkg/learner"
)

func TestContainerCloseFlushesProfiles(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("LOG_FILE_PATH", filepath.Join(t.TempDir(), "app.log"))

	container := NewContainer(config.Load())
	container.Profiles.With("shutdown-session", func(p *learner.Profile) {
		p.AnalyzeMessage("show me a diagram please")
	})

	if err := container.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "learning_profiles.json"))
	if err != nil {
		t.Fatalf("profiles not persisted on close: %v", err)
	}
	if !strings.Contains(string(raw), "shutdown-session") {
		t.Errorf("persisted profiles missing the session: %s", raw)
	}
}
