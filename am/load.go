package am

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/uf90/errors"
)

var (
	globalConfig  *Config
	viperInstance *viper.Viper

	// explicitConfig is set from --config and merged above the project file
	explicitConfig string

	// ConfigSources records which file supplied each key during the last
	// merge. Keys missing here come from defaults or the environment.
	ConfigSources = map[string]SourceInfo{}

	// Overridable in tests
	systemConfigPath = SystemConfigPath
	userHomeDir      = os.UserHomeDir
	workingDir       = os.Getwd
)

// Load reads the uf90 configuration using Viper. The result is cached until
// Reset.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal config"), errors.ErrInvalidConfig)
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, ignoring every other source.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if err := mergeFile(v, configPath, SourceExplicit); err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// SetConfigFile makes path the highest-precedence config file. An empty
// path clears it. The cached configuration is dropped.
func SetConfigFile(path string) {
	explicitConfig = path
	Reset()
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	BindEnvVars(v)
	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// findProjectConfig searches for uf90.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := workingDir()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			return ""
		}
		dir = parent
	}
}

// configFile is one candidate in the merge order.
type configFile struct {
	path     string
	source   ConfigSource
	required bool
}

// configFiles lists candidates from lowest to highest precedence.
func configFiles() []configFile {
	files := []configFile{{path: systemConfigPath, source: SourceSystem}}

	if home, err := userHomeDir(); err == nil && home != "" {
		files = append(files, configFile{
			path:   filepath.Join(home, UserConfigDir, UserConfigName),
			source: SourceUser,
		})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, configFile{path: project, source: SourceProject})
	}
	if explicitConfig != "" {
		files = append(files, configFile{path: explicitConfig, source: SourceExplicit, required: true})
	}
	return files
}

// mergeConfigFiles manually merges configuration files in the correct precedence order
// Precedence (lowest to highest): system < user < project < --config < env vars
//
// Optional files that are missing are skipped. A file that exists but does
// not parse is an error, as is a missing --config file.
func mergeConfigFiles(v *viper.Viper) error {
	for _, f := range configFiles() {
		if _, err := os.Stat(f.path); err != nil {
			if os.IsNotExist(err) && !f.required {
				continue
			}
			if os.IsNotExist(err) {
				return errors.WithHint(
					errors.Mark(errors.Newf("config file %s not found", f.path), errors.ErrInvalidConfig),
					"check the --config path")
			}
			return errors.Wrapf(err, "failed to stat config file %s", f.path)
		}
		if err := mergeFile(v, f.path, f.source); err != nil {
			return err
		}
	}
	return nil
}

// mergeFile reads one TOML file into v and records the source of each key.
func mergeFile(v *viper.Viper, path string, source ConfigSource) error {
	fileViper := viper.New()
	fileViper.SetConfigFile(path)
	fileViper.SetConfigType("toml")

	if err := fileViper.ReadInConfig(); err != nil {
		return errors.WithHint(
			errors.Mark(errors.Wrapf(err, "failed to read config file %s", path), errors.ErrInvalidConfig),
			"config files are TOML; run 'uf90 am show' to see the expected layout")
	}

	// MergeConfigMap keeps file values below environment variables.
	if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}

	keys := fileViper.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		ConfigSources[key] = SourceInfo{Source: source, Path: path}
	}
	return nil
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, error) {
	v, err := initViper()
	if err != nil {
		return nil, err
	}
	key = strings.ToLower(key)
	if !v.IsSet(key) {
		return nil, errors.WithHint(
			errors.Newf("unknown configuration key %q", key),
			"run 'uf90 am show' to list keys")
	}
	return v.Get(key), nil
}
