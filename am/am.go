// Package am loads the uf90 configuration.
//
// Sources are merged with viper in increasing precedence: built-in defaults,
// /etc/uf90/config.toml, ~/.uf90/config.toml, the nearest uf90.toml found by
// walking up from the working directory, an explicit --config file, and
// UF90_* environment variables. Command-line flags are applied on top by the
// commands themselves.
package am

// Config represents the uf90 configuration
type Config struct {
	Translate TranslateConfig `mapstructure:"translate" toml:"translate" json:"translate" yaml:"translate"`
	Sync      SyncConfig      `mapstructure:"sync" toml:"sync" json:"sync" yaml:"sync"`
	Build     BuildConfig     `mapstructure:"build" toml:"build" json:"build" yaml:"build"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// TranslateConfig configures the Unicode to ASCII translation
type TranslateConfig struct {
	PreserveComments bool   `mapstructure:"preserve_comments" toml:"preserve_comments" json:"preserve_comments" yaml:"preserve_comments"`
	IdentifierPrefix string `mapstructure:"identifier_prefix" toml:"identifier_prefix" json:"identifier_prefix" yaml:"identifier_prefix"`
	CommentMarker    string `mapstructure:"comment_marker" toml:"comment_marker" json:"comment_marker" yaml:"comment_marker"` // exactly one character
	Normalize        bool   `mapstructure:"normalize" toml:"normalize" json:"normalize" yaml:"normalize"`                     // NFC before translating
	Strict           bool   `mapstructure:"strict" toml:"strict" json:"strict" yaml:"strict"`                                 // fail on leftover non-ASCII
}

// SyncConfig configures incremental project synchronization
type SyncConfig struct {
	Manifest        string   `mapstructure:"manifest" toml:"manifest" json:"manifest" yaml:"manifest"`
	Extensions      []string `mapstructure:"extensions" toml:"extensions" json:"extensions" yaml:"extensions"`
	OutputExtension string   `mapstructure:"output_extension" toml:"output_extension" json:"output_extension" yaml:"output_extension"`
	Workers         int      `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"` // 0 = number of CPUs
}

// BuildConfig configures the build tool run by 'uf90 fpm'
type BuildConfig struct {
	Tool        string `mapstructure:"tool" toml:"tool" json:"tool" yaml:"tool"`
	DefaultArgs string `mapstructure:"default_args" toml:"default_args" json:"default_args" yaml:"default_args"` // shell-quoted
}

// LogConfig configures console logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // everforest, gruvbox
}

// Configuration file names
const (
	ProjectConfigName = "uf90.toml"
	UserConfigDir     = ".uf90"
	UserConfigName    = "config.toml"
	SystemConfigPath  = "/etc/uf90/config.toml"
	EnvPrefix         = "UF90"
)
