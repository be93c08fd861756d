package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/victor23k/shush/pkg/edit"
)

// Config is the content of config.yaml.
type Config struct {
	// Prompt is shown before each line in interactive mode.
	Prompt string `yaml:"prompt"`
	// History is the path of the command history database. It is overridden
	// by the -db flag.
	History string `yaml:"history"`
}

// DefaultConfig returns the configuration used when there is no config file.
func DefaultConfig() Config {
	return Config{Prompt: edit.DefaultPrompt}
}

// LoadConfig reads the config file at path. A missing file is not an error;
// fields missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return DefaultConfig(), fmt.Errorf("cannot parse %s: %w", path, err)
	}
	logger.Printf("loaded config from %s", path)
	return cfg, nil
}
