// Package config loads the optional arbor.yaml used by the CLI and servers.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/arbor/pkg/adapters/process"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "arbor.yaml"

// Config is the file layout. Zero values mean "use the default".
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Dir      string            `yaml:"dir"`
	HTTP     HTTPConfig        `yaml:"http"`
	Redis    RedisConfig       `yaml:"redis"`
	Aliases  map[string]string `yaml:"aliases"`

	// Commands is the allow-list for the Exec action.
	Commands    map[string]process.ProcessConfig `yaml:"commands"`
	AllowInline bool                             `yaml:"allow_inline"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig selects the redis document source when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Dir:      ".",
		HTTP:     HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over Default. A missing file is not an error when path is
// DefaultPath; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
