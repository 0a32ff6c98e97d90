package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultWindow != "weekly" {
		t.Fatalf("default window=%q, want weekly", cfg.DefaultWindow)
	}
	if cfg.BoardRefreshSec != 1 {
		t.Fatalf("refresh=%d, want 1", cfg.BoardRefreshSec)
	}
	if cfg.DBPath != "" {
		t.Fatalf("db path=%q, want empty", cfg.DBPath)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.yaml")

	in := &Config{
		DBPath:          "/tmp/lq.db",
		DefaultWindow:   "monthly",
		BoardRefreshSec: 5,
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DBPath != in.DBPath || out.DefaultWindow != in.DefaultWindow || out.BoardRefreshSec != in.BoardRefreshSec {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestLoadClampsBadRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, &Config{DefaultWindow: "all", BoardRefreshSec: -3}); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BoardRefreshSec != 1 {
		t.Fatalf("refresh=%d, want clamped to 1", cfg.BoardRefreshSec)
	}
}
