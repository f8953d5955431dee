package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/wrapdeck/internal/config"
	"github.com/verte-zerg/wrapdeck/internal/model"
)

func validConfig() model.Config {
	return model.Config{
		DragDistance:    60,
		DragVelocity:    0.5,
		CellWidth:       8,
		CounterDuration: 2 * time.Second,
		Transitions:     true,
		ExportDir:       "/tmp/exports",
		Share:           true,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	cases := map[string]func(*model.Config){
		"--drag-distance":    func(c *model.Config) { c.DragDistance = 0 },
		"--drag-velocity":    func(c *model.Config) { c.DragVelocity = -1 },
		"--cell-width":       func(c *model.Config) { c.CellWidth = 0 },
		"--counter-duration": func(c *model.Config) { c.CounterDuration = 0 },
		"--export-dir":       func(c *model.Config) { c.ExportDir = "  " },
	}
	for flag, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		err := validateConfig(cfg)
		if err == nil || !strings.HasPrefix(err.Error(), flag) {
			t.Fatalf("%s: got %v", flag, err)
		}
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.Deck.DragDistance != nil || cfg.Export.Dir != nil {
		t.Fatalf("template should only contain comments: %+v", cfg)
	}

	uncommented := strings.NewReplacer("# drag-distance", "drag-distance", "# share", "share").
		Replace(defaultConfigTemplate())
	if err := os.WriteFile(path, []byte(uncommented), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil {
		t.Fatalf("uncommented template does not parse: %v", err)
	}
	if cfg.Deck.DragDistance == nil || *cfg.Deck.DragDistance != 60 {
		t.Fatalf("drag-distance = %v", cfg.Deck.DragDistance)
	}
	if cfg.Export.Share == nil || !*cfg.Export.Share {
		t.Fatalf("share = %v", cfg.Export.Share)
	}
}

func TestWriteDatasetReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wrapped.json")
	if err := writeDataset(path, []byte("{\"a\":1}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writeDataset(path, []byte("{\"b\":2}\n")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "{\"b\":2}\n" {
		t.Fatalf("content = %q", data)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestLoadDatasetFallsBackToSample(t *testing.T) {
	ds, path, err := loadDataset(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if path != sampleName || ds.Slide10.ChatName == "" {
		t.Fatalf("unexpected sample: path=%q chat=%q", path, ds.Slide10.ChatName)
	}
	if _, _, err := loadDataset([]string{filepath.Join(t.TempDir(), "missing.json")}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing dataset")
	}
}
