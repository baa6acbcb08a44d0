// Package config loads run settings from flags, PROJINSPECT_* environment
// variables and an optional projinspect.yaml/.json file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"projinspect/pkg/bundle"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. PROJINSPECT_MAX_SIZE.
const EnvPrefix = "PROJINSPECT"

// ConfigName is the config file looked up in the working directory.
const ConfigName = "projinspect"

// Config mirrors the command-line flags.
type Config struct {
	Path       string `mapstructure:"path"`
	Stack      string `mapstructure:"stack"`
	Include    string `mapstructure:"include"`
	Exclude    string `mapstructure:"exclude"`
	Output     string `mapstructure:"output"`
	MaxSize    string `mapstructure:"max_size"`
	Workers    int    `mapstructure:"workers"`
	NoClobber  bool   `mapstructure:"no_clobber"`
	IgnoreFile string `mapstructure:"ignore_file"`
	Debug      bool   `mapstructure:"debug"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Output:  ".",
	MaxSize: "100MiB",
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"path":        "path",
	"stack":       "stack",
	"include":     "include",
	"exclude":     "exclude",
	"output":      "output",
	"max-size":    "max_size",
	"workers":     "workers",
	"no-clobber":  "no_clobber",
	"ignore-file": "ignore_file",
	"debug":       "debug",
}

// InitFlags registers the run flags on cmd.
func InitFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("config", "", "Path to a YAML or JSON configuration file.")
	flags.String("path", DefaultConfig.Path, "Root folder to inspect (required).")
	flags.String("stack", DefaultConfig.Stack, "Technology stack preset (see 'projinspect stacks').")
	flags.String("include", DefaultConfig.Include, "Comma-separated extensions (py,.yaml), file names (package.json) or folders (src/); overrides the stack extensions.")
	flags.String("exclude", DefaultConfig.Exclude, "Comma-separated folder names or glob patterns to exclude; always applied last.")
	flags.String("output", DefaultConfig.Output, "Directory for the generated .txt files.")
	flags.String("max-size", DefaultConfig.MaxSize, "Maximum size of one output part (e.g. 100MiB, 512KB, 0 for no splitting).")
	flags.Int("workers", DefaultConfig.Workers, "Parallel file readers (0 uses the number of CPUs).")
	flags.Bool("no-clobber", DefaultConfig.NoClobber, "Fail instead of overwriting existing output files.")
	flags.String("ignore-file", DefaultConfig.IgnoreFile, "Extra gitignore-style file with exclusion patterns.")
	flags.Bool("debug", DefaultConfig.Debug, "Enable development logging.")
}

// Load resolves the configuration for cmd. cwd is searched for
// projinspect.{yaml,yml,json} unless --config names a file.
func Load(cmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", DefaultConfig.Path)
	v.SetDefault("stack", DefaultConfig.Stack)
	v.SetDefault("include", DefaultConfig.Include)
	v.SetDefault("exclude", DefaultConfig.Exclude)
	v.SetDefault("output", DefaultConfig.Output)
	v.SetDefault("max_size", DefaultConfig.MaxSize)
	v.SetDefault("workers", DefaultConfig.Workers)
	v.SetDefault("no_clobber", DefaultConfig.NoClobber)
	v.SetDefault("ignore_file", DefaultConfig.IgnoreFile)
	v.SetDefault("debug", DefaultConfig.Debug)
}

// Arguments validates the configuration and converts it for bundle.Run.
func (c *Config) Arguments() (bundle.Arguments, error) {
	if strings.TrimSpace(c.Path) == "" {
		return bundle.Arguments{}, errors.New("--path is required")
	}
	if c.Workers < 0 {
		return bundle.Arguments{}, fmt.Errorf("--workers must not be negative, got %d", c.Workers)
	}
	maxSize, err := ParseSize(c.MaxSize)
	if err != nil {
		return bundle.Arguments{}, err
	}

	return bundle.Arguments{
		Path:       c.Path,
		Stack:      strings.TrimSpace(c.Stack),
		Include:    c.Include,
		Exclude:    SplitList(c.Exclude),
		OutputDir:  c.Output,
		MaxSize:    maxSize,
		Workers:    c.Workers,
		NoClobber:  c.NoClobber,
		IgnoreFile: c.IgnoreFile,
	}, nil
}

// ParseSize parses a human size such as "100MiB", "2 MB" or "4096".
// Empty means the default; "0" disables splitting.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return bundle.DefaultMaxSize, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid --max-size %q: must not be negative", s)
		}
		return n, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --max-size %q: %w", s, err)
	}
	if n > uint64(1<<63-1) {
		return 0, fmt.Errorf("invalid --max-size %q: too large", s)
	}
	return int64(n), nil
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
