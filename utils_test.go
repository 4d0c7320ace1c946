package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"elevatorbank/config"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "elevator.yaml")
	err := os.WriteFile(configPath, []byte("numFloors: 20\nnumElevators: 4\nfleetName: tower\n"), 0644)
	if err != nil {
		t.Fatalf("writing config: %v", err)
	}

	c, generatedName, err := loadConfig([]string{
		"-config", configPath,
		"-env", filepath.Join(dir, "missing.env"),
		"-floors", "12",
		"-delay", "5ms",
		"-listen", "127.0.0.1:30502",
	})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if c.NumFloors != 12 {
		t.Errorf("Expected flag to override floors, got %d", c.NumFloors)
	}
	if c.NumElevators != 4 {
		t.Errorf("Expected elevators from file, got %d", c.NumElevators)
	}
	if c.TravelDelay != 5*time.Millisecond {
		t.Errorf("Expected 5ms delay, got %v", c.TravelDelay)
	}
	if c.ListenAddr != "127.0.0.1:30502" {
		t.Errorf("Expected listen address from flag, got %q", c.ListenAddr)
	}
	if generatedName || c.FleetName != "tower" {
		t.Errorf("Expected fleet name from file, got %q", c.FleetName)
	}
}

func TestUnsetFlagsKeepDefaults(t *testing.T) {
	c, generatedName, err := loadConfig([]string{"-env", filepath.Join(t.TempDir(), "missing.env")})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if c.NumFloors != config.DEFAULT_NUM_FLOORS || c.LogFile != config.DEFAULT_LOG_FILE {
		t.Errorf("Expected defaults, got %+v", c)
	}
	if !generatedName || c.FleetName == "" {
		t.Errorf("Expected a generated fleet name, got %q", c.FleetName)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	missingEnv := filepath.Join(t.TempDir(), "missing.env")

	if _, _, err := loadConfig([]string{"-env", missingEnv, "-floors", "1"}); err == nil {
		t.Errorf("Expected error for a single floor")
	}
	if _, _, err := loadConfig([]string{"-env", missingEnv, "-delay", "soon"}); err == nil {
		t.Errorf("Expected error for a bad duration")
	}
}
