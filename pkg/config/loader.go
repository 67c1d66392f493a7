package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/logging"
)

// EnvPrefix prefixes every environment override. Sections and keys are
// separated by a double underscore: SRCMAKE_GENERATE__AUTHOR.
const EnvPrefix = "SRCMAKE_"

// Options selects the files merged on top of the embedded defaults. Files
// that do not exist are skipped, except ExplicitFile.
type Options struct {
	UserFile     string
	ProjectFile  string
	ExplicitFile string
	// Overrides are applied last, keyed by dotted path ("generate.author").
	Overrides map[string]interface{}
	// SkipEnv disables the environment layer.
	SkipEnv bool
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load(Options{SkipEnv: true})
	if err != nil {
		// The embedded defaults are covered by tests.
		panic(err)
	}
	return cfg
}

// Load merges every configuration layer, later layers winning:
// defaults, user file, project file, explicit file, environment, overrides.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2-3. User and project files, when present
	for _, path := range []string{opts.UserFile, opts.ProjectFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Explicit file must exist
	if opts.ExplicitFile != "" {
		if _, err := os.Stat(opts.ExplicitFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ExplicitFile)
		}
		if err := loadFile(k, opts.ExplicitFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ExplicitFile).Msg("Loaded explicit config file")
	}

	// 5. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 6. Programmatic overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimStringHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return nil
}

// envKey maps SRCMAKE_GENERATE__AUTHOR to generate.author.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func trimStringHookFunc() mapstructure.DecodeHookFuncKind {
	return func(f, t reflect.Kind, data interface{}) (interface{}, error) {
		if f == reflect.String && t == reflect.String {
			return strings.TrimSpace(data.(string)), nil
		}
		return data, nil
	}
}
