package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

// appDataDir returns the per-user directory holding the config file and
// logs, creating it on first use. Unknown platforms fall back to the
// directory next to the executable.
func appDataDir() string {
	goExecutablePath, err := os.Executable()
	if err != nil {
		log.Fatalf("Could not get executable path: %v", err)
	}
	base := filepath.Dir(goExecutablePath)

	switch runtime.GOOS {
	case "windows":
		base = filepath.Join(os.Getenv("LOCALAPPDATA"), "CutRoom")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("failed to get home dir: %v", err)
		}
		base = filepath.Join(home, "Library", "Application Support", "CutRoom")
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("failed to get home dir: %v", err)
		}
		base = filepath.Join(home, ".local", "CutRoom")
	}

	_ = os.MkdirAll(base, 0755)
	return base
}

func init() {
	logFile, err := os.Create(filepath.Join(appDataDir(), "log.txt"))
	if err == nil {
		mw := io.MultiWriter(os.Stdout, logFile)
		log.SetOutput(mw)
	}
}
