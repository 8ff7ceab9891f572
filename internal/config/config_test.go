package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexboard/internal/board"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "jwt:\n  disabled: true\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Board.HexSize != 32 || cfg.Board.ManyMarker != board.DefaultManyMarker {
		t.Errorf("unexpected board defaults %+v", cfg.Board)
	}
	if cfg.Board.Palette != board.DefaultPalette {
		t.Errorf("expected default palette, got %+v", cfg.Board.Palette)
	}
	if cfg.Redis.ArchivePrefix == "" || cfg.Game.ID != "local" {
		t.Errorf("unexpected defaults %+v %+v", cfg.Redis, cfg.Game)
	}
}

func TestLoadPaletteOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
jwt:
  secret: s3cret
board:
  palette:
    hover: "#ff00ff"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Board.Palette.Hover != "#ff00ff" {
		t.Errorf("expected hover override, got %s", cfg.Board.Palette.Hover)
	}
	if cfg.Board.Palette.Depths != board.DefaultPalette.Depths {
		t.Errorf("expected default depths, got %s", cfg.Board.Palette.Depths)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad colour":     "jwt:\n  disabled: true\nboard:\n  palette:\n    hover: pink\n",
		"missing secret": "server:\n  port: 9000\n",
		"bad yaml":       "server: [",
	}
	for name, data := range cases {
		if _, err := Load(writeConfig(t, data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
