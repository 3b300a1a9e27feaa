// Package config loads stagehand's layered configuration:
// built-in defaults, then a stagehand.toml in the working directory,
// then STAGEHAND_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/naoTimesdev/stagehand/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. STAGEHAND_STAGE_ROOT maps to stage.root.
const EnvPrefix = "STAGEHAND_"

// Config is the fully resolved configuration
type Config struct {
	Stage StageConfig `koanf:"stage"`
}

// StageConfig configures the staging pipeline
type StageConfig struct {
	// Root is the build checkout root
	Root string `koanf:"root"`
	// Prefix is the dependency directory-name prefix to match
	Prefix string `koanf:"prefix"`
	// Executable is the binary that receives the rpath patch on macOS
	Executable string `koanf:"executable"`
	// BuildDir is the build directory relative to Root
	BuildDir string `koanf:"build_dir"`
}

// Load resolves configuration for the given working directory.
// Missing config files are fine; broken ones are not.
func Load(workDir string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	// 2. Working-directory config, if present
	for _, filename := range []string{".stagehand.toml", "stagehand.toml"} {
		path := filepath.Join(workDir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			break
		}
	}

	// 3. Environment overrides. Only the first underscore becomes a key
	// separator so STAGEHAND_STAGE_BUILD_DIR still reaches stage.build_dir.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Stage.Prefix == "" {
		return errors.New(errors.ErrInvalidInput, "stage.prefix must not be empty")
	}
	if c.Stage.BuildDir == "" {
		return errors.New(errors.ErrInvalidInput, "stage.build_dir must not be empty")
	}
	if c.Stage.Executable == "" {
		return errors.New(errors.ErrInvalidInput, "stage.executable must not be empty")
	}
	return nil
}
