package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"snake-arcade/config"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	file, log := setupLogging(dir, false)
	if file != nil {
		file.Close()
		t.Fatal("expected no log file without debug")
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("logger level = %v, want disabled", log.GetLevel())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("log directory created without debug")
	}
}

func TestSetupLoggingWritesJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	file, log := setupLogging(dir, true)
	if file == nil {
		t.Fatal("expected a log file with debug")
	}
	defer file.Close()

	log.Info().Int("score", 40).Msg("food eaten")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	for _, want := range []string{`"score":40`, `"message":"food eaten"`, `"time":`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %s: %s", want, data)
		}
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("failed to write large log: %v", err)
	}

	file, _ := setupLogging(dir, true)
	if file == nil {
		t.Fatal("expected a log file")
	}
	defer file.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("large log was not rotated")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat log: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log is %d bytes", info.Size())
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	var opts cliOptions
	fs := newFlagSet(&opts)
	if err := fs.Parse([]string{"-frontend", "terminal", "-difficulty", "hard", "-data", "/tmp/snake", "-mute"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := config.Default()
	opts.apply(cfg)
	if cfg.Frontend != config.FrontendTerminal || cfg.Difficulty != "hard" || cfg.DataDir != "/tmp/snake" || !cfg.Mute {
		t.Errorf("config after flags = %+v", cfg)
	}
	if opts.configPath != "snake.toml" {
		t.Errorf("configPath = %q", opts.configPath)
	}
}

func TestUnsetFlagsKeepConfig(t *testing.T) {
	var opts cliOptions
	if err := newFlagSet(&opts).Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := config.Default()
	cfg.Frontend = config.FrontendTerminal
	cfg.Mute = true
	opts.apply(cfg)
	if cfg.Frontend != config.FrontendTerminal || !cfg.Mute || cfg.Difficulty != "normal" {
		t.Errorf("config changed by empty flags: %+v", cfg)
	}
}
