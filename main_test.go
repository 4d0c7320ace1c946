package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunStopsOnQuitAndFlushesLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "elevator.log")

	var out bytes.Buffer
	err := run([]string{
		"-env", filepath.Join(dir, "missing.env"),
		"-log", logPath,
		"-loglevel", "info",
		"-elevators", "2",
		"-delay", "0s",
		"-name", "tower",
	}, strings.NewReader("F 3\nS\nQ\n"), &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "elevator 0 will stop at floor 3") {
		t.Errorf("Expected cab call confirmation, got:\n%s", out.String())
	}

	contents, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, message := range []string{"Elevator system started", "Elevator system stopping", "Fleet shut down"} {
		if !strings.Contains(string(contents), message) {
			t.Errorf("Expected %q in log file:\n%s", message, contents)
		}
	}
}

func TestRunReturnsStartupErrors(t *testing.T) {
	dir := t.TempDir()
	missingEnv := filepath.Join(dir, "missing.env")

	tests := []struct {
		name string
		args []string
	}{
		{"bad log level", []string{"-env", missingEnv, "-loglevel", "loud"}},
		{"log file in missing directory", []string{"-env", missingEnv, "-log", filepath.Join(dir, "nope", "elevator.log")}},
		{"invalid config", []string{"-env", missingEnv, "-elevators", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, strings.NewReader("Q\n"), &out)
			if err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}
