// Package config loads editor settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jamjar/jamjar-editor/internal/domain"
)

// FileName is the configuration file searched for upward from the working
// directory.
const FileName = ".jamjar-editor.yaml"

// EnvPrefix prefixes environment overrides, e.g. JAMJAR_EDITOR_LOG_LEVEL.
const EnvPrefix = "JAMJAR_EDITOR"

// Config is the full editor configuration.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Log       LogConfig       `mapstructure:"log"`
}

// EngineConfig names the engine's base types.
type EngineConfig struct {
	ComponentPath string `mapstructure:"componentPath"`
	ScenePath     string `mapstructure:"scenePath"`
	EntityPath    string `mapstructure:"entityPath"`
	EntityName    string `mapstructure:"entityName"`
}

// GeneratorConfig shapes the generated scene method.
type GeneratorConfig struct {
	MethodName string `mapstructure:"methodName"`
	MessageBus string `mapstructure:"messageBus"`
}

// ResolverConfig controls module resolution.
type ResolverConfig struct {
	DependencyDir string `mapstructure:"dependencyDir"`
}

// LogConfig controls logging. An empty File disables the file sink.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

// Options converts the configuration into domain options.
func (c Config) Options() domain.Options {
	return domain.Options{
		ComponentPath: c.Engine.ComponentPath,
		ScenePath:     c.Engine.ScenePath,
		EntityPath:    c.Engine.EntityPath,
		EntityName:    c.Engine.EntityName,
		MethodName:    c.Generator.MethodName,
		MessageBus:    c.Generator.MessageBus,
		DependencyDir: c.Resolver.DependencyDir,
	}
}

// Load reads the configuration. An explicit path must exist; without one
// the nearest FileName above the working directory is used when present,
// otherwise defaults and environment apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}

		path = findConfigUpward(wd)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	opts := domain.DefaultOptions()

	v.SetDefault("engine.componentPath", opts.ComponentPath)
	v.SetDefault("engine.scenePath", opts.ScenePath)
	v.SetDefault("engine.entityPath", opts.EntityPath)
	v.SetDefault("engine.entityName", opts.EntityName)
	v.SetDefault("generator.methodName", opts.MethodName)
	v.SetDefault("generator.messageBus", opts.MessageBus)
	v.SetDefault("resolver.dependencyDir", opts.DependencyDir)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSize", 10)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAge", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.dev", false)
}

// findConfigUpward returns the nearest FileName at or above startDir, or ""
// when there is none.
func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
