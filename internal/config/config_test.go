package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  root: "/mnt/littlefs"
  partition_size: 8192
log:
  level: "debug"
  serial:
    device: "/dev/ttyS1"
    parity: "e"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage.Root != "/mnt/littlefs" {
		t.Errorf("Root = %q, want /mnt/littlefs", cfg.Storage.Root)
	}
	if cfg.Storage.PartitionSize != 8192 {
		t.Errorf("PartitionSize = %d, want 8192", cfg.Storage.PartitionSize)
	}
	if cfg.Storage.Partition != "./nvs.bin" {
		t.Errorf("Partition = %q, want default ./nvs.bin", cfg.Storage.Partition)
	}
	if !cfg.Storage.FormatOnFail {
		t.Error("FormatOnFail should default to true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Serial.Parity != "E" {
		t.Errorf("Parity = %q, want E", cfg.Log.Serial.Parity)
	}
	if cfg.Log.Serial.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", cfg.Log.Serial.BaudRate)
	}
	if cfg.Log.Serial.Timeout != 500*time.Millisecond {
		t.Errorf("Timeout = %v, want 500ms", cfg.Log.Serial.Timeout)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
