package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Cutter.EnableHMM {
		t.Error("default cutter.enable_hmm = false, want true")
	}
	if cfg.CLI.DefaultMode != "cut" {
		t.Errorf("default cli.default_mode = %q, want cut", cfg.CLI.DefaultMode)
	}
	if cfg.Server.MaxTextLength <= 0 {
		t.Errorf("default server.max_text_length = %d, want > 0", cfg.Server.MaxTextLength)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Cutter.EnableHMM = false
	cfg.Cutter.DictPath = "/tmp/dict.txt"
	cfg.CLI.DefaultMode = "tag"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if loaded.Cutter.EnableHMM {
		t.Error("loaded cutter.enable_hmm = true, want false")
	}
	if loaded.Cutter.DictPath != "/tmp/dict.txt" {
		t.Errorf("loaded cutter.dict_path = %q, want /tmp/dict.txt", loaded.Cutter.DictPath)
	}
	if loaded.CLI.DefaultMode != "tag" {
		t.Errorf("loaded cli.default_mode = %q, want tag", loaded.CLI.DefaultMode)
	}
}

func TestInitConfigCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig error = %v", err)
	}
	if cfg == nil {
		t.Fatal("InitConfig returned nil config")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("InitConfig did not create %s: %v", path, err)
	}
}

func TestPartialParseRecoversValidSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	malformed := "[cutter]\nenable_hmm = false\n\n[cli]\ndefault_mode = 17\n"
	if err := os.WriteFile(path, []byte(malformed), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	// the cli section's bad type falls back to the default, the valid
	// cutter value survives partial parse.
	if cfg.Cutter.EnableHMM {
		t.Error("cutter.enable_hmm = true, want false from partial parse")
	}
	if cfg.CLI.DefaultMode != "cut" {
		t.Errorf("cli.default_mode = %q, want default cut", cfg.CLI.DefaultMode)
	}
}
