// Package config loads constgen.yml.
//
// Values come from, in increasing precedence: built-in defaults, the config
// file, and CONSTGEN_* environment variables (CONSTGEN_OUTPUT,
// CONSTGEN_REGENERATE_ON_MISSING, ...). Relative paths are resolved
// against the directory holding the config file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/constgen/internal/domains"
	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/errors"
)

// FileName is the default config file name.
const FileName = "constgen.yml"

// Config is the resolved constgen configuration.
type Config struct {
	Project     string `mapstructure:"project" yaml:"project"`
	Controllers string `mapstructure:"controllers" yaml:"controllers"`
	Output      string `mapstructure:"output" yaml:"output"`
	Baseline    string `mapstructure:"baseline" yaml:"baseline"`

	Namespace      string   `mapstructure:"namespace" yaml:"namespace"`
	Imports        []string `mapstructure:"imports" yaml:"imports"`
	BannerTemplate string   `mapstructure:"banner_template" yaml:"banner_template,omitempty"`

	RegenerateOnMissing bool `mapstructure:"regenerate_on_missing" yaml:"regenerate_on_missing"`
	UpdateOnReload      bool `mapstructure:"update_on_reload" yaml:"update_on_reload"`

	Domains       []string      `mapstructure:"domains" yaml:"domains"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`

	// PostGenerate is a command run from the config directory after any
	// run that wrote or deleted a file, e.g. [dotnet, format, whitespace].
	PostGenerate        []string      `mapstructure:"post_generate" yaml:"post_generate,omitempty"`
	PostGenerateTimeout time.Duration `mapstructure:"post_generate_timeout" yaml:"post_generate_timeout"`

	// Dir is the directory holding the config file.
	Dir string `mapstructure:"-" yaml:"-"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project", "project.yml")
	v.SetDefault("controllers", "Assets/Animators")
	v.SetDefault("output", "Assets/ConstGen/Generated")
	v.SetDefault("baseline", ".constgen/baseline.yml")
	v.SetDefault("namespace", "ConstGen")
	v.SetDefault("imports", []string{"UnityEngine"})
	v.SetDefault("banner_template", "")
	v.SetDefault("regenerate_on_missing", true)
	v.SetDefault("update_on_reload", true)
	v.SetDefault("domains", slices.Clone(domains.Keys))
	v.SetDefault("watch_debounce", 250*time.Millisecond)
	v.SetDefault("post_generate", []string{})
	v.SetDefault("post_generate_timeout", 2*time.Minute)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err) // defaults always decode
	}
	return &cfg
}

// Load reads the config file at path. A missing file is not an error when
// optional is true; the defaults and environment apply alone.
func Load(path string, optional bool) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONSTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !(optional && isNotExist(err)) {
			return nil, errors.WithHint(errors.Wrapf(err, "read config %s", path),
				"run `constgen init` to create one")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	cfg.resolve(filepath.Dir(path))
	return &cfg, nil
}

// Validate checks required paths, domain keys and the names written into
// generated files.
func (c *Config) Validate() error {
	for key, val := range map[string]string{
		"project":  c.Project,
		"output":   c.Output,
		"baseline": c.Baseline,
	} {
		if strings.TrimSpace(val) == "" {
			return errors.Newf("%s must not be empty", key)
		}
	}
	for _, d := range c.Domains {
		if !slices.Contains(domains.Keys, d) {
			return errors.WithHintf(errors.Newf("unknown domain %q", d),
				"known domains: %s", strings.Join(domains.Keys, ", "))
		}
	}
	if c.Namespace != "" && !emit.IsQualifiedName(c.Namespace) {
		return errors.Newf("namespace %q is not a valid dotted name", c.Namespace)
	}
	for _, imp := range c.Imports {
		if !emit.IsQualifiedName(imp) {
			return errors.Newf("import %q is not a valid dotted name", imp)
		}
	}
	if c.WatchDebounce < 0 {
		return errors.Newf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	if c.PostGenerateTimeout < 0 {
		return errors.Newf("post_generate_timeout must not be negative, got %s", c.PostGenerateTimeout)
	}
	if len(c.PostGenerate) > 0 && strings.TrimSpace(c.PostGenerate[0]) == "" {
		return errors.New("post_generate must start with a command name")
	}
	return nil
}

func (c *Config) resolve(dir string) {
	c.Dir = dir
	for _, p := range []*string{&c.Project, &c.Controllers, &c.Output, &c.Baseline, &c.BannerTemplate} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}
