// Package config resolves farah settings from defaults, TOML files,
// environment variables and flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/farah/internal/store/jsonstore"
)

const (
	appName = "farah"

	DefaultStorageKey = "wedding-checked"
	DefaultTheme      = "classic"
	DefaultLocale     = "ar-EG"
	DefaultCurrency   = "جنيه"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Config holds the resolved settings.
type Config struct {
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`
	Catalog    string `toml:"catalog"`
	Theme      string `toml:"theme"`
	Locale     string `toml:"locale"`
	Currency   string `toml:"currency"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	LogFile    string `toml:"log_file"`

	// File is the config file that was read last, if any.
	File string `toml:"-"`
}

// Load resolves configuration:
// 1. Defaults
// 2. User config file (<UserConfigDir>/farah/farah.toml)
// 3. Project config file (farah.toml or .farah.toml in the working directory),
// or the file named by -config instead of 2 and 3
// 4. Environment variables (FARAH_*)
// 5. Flags registered on fs and parsed from args
//
// The remaining positional arguments are available through fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	f := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if *f.config != "" {
		if err := loadConfigFile(cfg, *f.config); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", *f.config, err)
		}
	} else {
		if p := findUserConfigFile(); p != "" {
			if err := loadConfigFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", p, err)
			}
		}
		if p := findProjectConfigFile(); p != "" {
			if err := loadConfigFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", p, err)
			}
		}
	}

	loadFromEnv(cfg)
	applyFlags(cfg, fs, f)

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.StorageKey = DefaultStorageKey
	cfg.Theme = DefaultTheme
	cfg.Locale = DefaultLocale
	cfg.Currency = DefaultCurrency
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// DefaultDataDir is where state lives when nothing else is configured.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, "."+appName), nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.File = path
	return nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return firstExisting(filepath.Join(dir, appName, appName+".toml"))
}

func findProjectConfigFile() string {
	return firstExisting(appName+".toml", "."+appName+".toml")
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	envs := []struct {
		name string
		dst  *string
	}{
		{"FARAH_DATA_DIR", &cfg.DataDir},
		{"FARAH_STORAGE_KEY", &cfg.StorageKey},
		{"FARAH_CATALOG", &cfg.Catalog},
		{"FARAH_THEME", &cfg.Theme},
		{"FARAH_LOCALE", &cfg.Locale},
		{"FARAH_CURRENCY", &cfg.Currency},
		{"FARAH_LOG_LEVEL", &cfg.LogLevel},
		{"FARAH_LOG_FORMAT", &cfg.LogFormat},
		{"FARAH_LOG_FILE", &cfg.LogFile},
	}
	for _, e := range envs {
		if v := strings.TrimSpace(os.Getenv(e.name)); v != "" {
			*e.dst = v
		}
	}
}

type flagValues struct {
	config    *string
	dataDir   *string
	key       *string
	catalog   *string
	theme     *string
	locale    *string
	logLevel  *string
	logFormat *string
}

func registerFlags(fs *flag.FlagSet) flagValues {
	return flagValues{
		config:    fs.String("config", "", "path to a farah.toml config file"),
		dataDir:   fs.String("data-dir", "", "directory holding the saved checklist state"),
		key:       fs.String("key", "", "storage key for the checklist state"),
		catalog:   fs.String("catalog", "", "path to a TOML catalog replacing the built-in one"),
		theme:     fs.String("theme", "", "color theme: classic, neon or mono"),
		locale:    fs.String("locale", "", "locale used to format the cost total (e.g. ar-EG, en)"),
		logLevel:  fs.String("log-level", "", "log level: debug, info, warn, error"),
		logFormat: fs.String("log-format", "", "log format: text, logfmt, json"),
	}
}

// applyFlags copies only the flags that were set explicitly.
func applyFlags(cfg *Config, fs *flag.FlagSet, f flagValues) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	apply := func(name string, src *string, dst *string) {
		if set[name] {
			*dst = *src
		}
	}
	apply("data-dir", f.dataDir, &cfg.DataDir)
	apply("key", f.key, &cfg.StorageKey)
	apply("catalog", f.catalog, &cfg.Catalog)
	apply("theme", f.theme, &cfg.Theme)
	apply("locale", f.locale, &cfg.Locale)
	apply("log-level", f.logLevel, &cfg.LogLevel)
	apply("log-format", f.logFormat, &cfg.LogFormat)
}

func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.StorageKey) == "" {
		return errors.New("storage key is empty")
	}
	if err := jsonstore.CheckKey(cfg.StorageKey); err != nil {
		return err
	}
	if cfg.DataDir == "" {
		// Left empty when there is no home directory; state then stays in memory.
		if dir, err := DefaultDataDir(); err == nil {
			cfg.DataDir = dir
		}
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.LogFile = expandHome(cfg.LogFile)
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
