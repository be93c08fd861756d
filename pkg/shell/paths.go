package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/victor23k/shush/pkg/prog"
)

// Environment variables consulted for the default paths.
const (
	envXDGConfigHome = "XDG_CONFIG_HOME"
	envXDGStateHome  = "XDG_STATE_HOME"
)

// Paths keeps the paths of files used by the shell.
type Paths struct {
	Config string
	DB     string
}

// MakePaths returns the paths to use, respecting overrides from CLI flags. A
// path that cannot be determined is left empty, and a warning is written to
// stderr.
func MakePaths(stderr *os.File, f *prog.Flags) Paths {
	p := Paths{Config: f.Config, DB: f.DB}
	if p.Config == "" {
		path, err := configPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
		}
		p.Config = path
	}
	if p.DB == "" {
		path, err := dbPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
		}
		p.DB = path
	}
	return p
}

func configPath() (string, error) {
	if configHome := os.Getenv(envXDGConfigHome); configHome != "" {
		return filepath.Join(configHome, "shush", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find config.yaml: %w", err)
	}
	return filepath.Join(home, ".config", "shush", "config.yaml"), nil
}

func dbPath() (string, error) {
	if stateHome := os.Getenv(envXDGStateHome); stateHome != "" {
		return filepath.Join(stateHome, "shush", "db.bolt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find db.bolt: %w", err)
	}
	return filepath.Join(home, ".local", "state", "shush", "db.bolt"), nil
}
