package am

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/sync"
	"github.com/teranos/uf90/translate"
)

// Build tool defaults
const (
	DefaultBuildTool = "fpm"
	DefaultBuildArgs = "build"
	DefaultLogTheme  = "everforest"
	DefaultWorkers   = 4
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Translation defaults
	v.SetDefault("translate.preserve_comments", true)
	v.SetDefault("translate.identifier_prefix", translate.DefaultIdentifierPrefix)
	v.SetDefault("translate.comment_marker", string(translate.DefaultCommentMarker))
	v.SetDefault("translate.normalize", false)
	v.SetDefault("translate.strict", false)

	// Sync defaults
	v.SetDefault("sync.manifest", sync.DefaultManifestName)
	v.SetDefault("sync.extensions", []string{translate.SourceExtension})
	v.SetDefault("sync.output_extension", translate.OutputExtension)
	v.SetDefault("sync.workers", DefaultWorkers)

	// Build defaults
	v.SetDefault("build.tool", DefaultBuildTool)
	v.SetDefault("build.default_args", DefaultBuildArgs)

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)
}

// BindEnvVars maps UF90_SECTION_KEY environment variables onto config keys,
// e.g. UF90_TRANSLATE_STRICT=true sets translate.strict.
func BindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only answers Get for keys viper already knows; Unmarshal
	// needs explicit bindings.
	for _, key := range []string{
		"translate.preserve_comments",
		"translate.identifier_prefix",
		"translate.comment_marker",
		"translate.normalize",
		"translate.strict",
		"sync.manifest",
		"sync.extensions",
		"sync.output_extension",
		"sync.workers",
		"build.tool",
		"build.default_args",
		"log.json",
		"log.theme",
	} {
		_ = v.BindEnv(key)
	}
}

// TranslateOptions converts the [translate] section.
func (c *Config) TranslateOptions() translate.Options {
	opts := translate.Options{
		PreserveComments: c.Translate.PreserveComments,
		IdentifierPrefix: c.Translate.IdentifierPrefix,
		Normalize:        c.Translate.Normalize,
		Strict:           c.Translate.Strict,
	}
	if r := []rune(c.Translate.CommentMarker); len(r) == 1 {
		opts.CommentMarker = r[0]
	}
	return opts
}

// SyncOptions converts the [sync] section, carrying TranslateOptions.
func (c *Config) SyncOptions() sync.Options {
	exts := make([]string, 0, len(c.Sync.Extensions))
	for _, e := range c.Sync.Extensions {
		exts = append(exts, strings.ToLower(e))
	}
	return sync.Options{
		Extensions:      exts,
		ManifestName:    c.Sync.Manifest,
		OutputExtension: c.Sync.OutputExtension,
		Workers:         c.Sync.Workers,
		Translate:       c.TranslateOptions(),
	}
}

// BuildArgs splits build.default_args with shell quoting rules.
func (c *Config) BuildArgs() ([]string, error) {
	args, err := shellquote.Split(c.Build.DefaultArgs)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "build.default_args %q", c.Build.DefaultArgs),
			errors.ErrInvalidConfig)
	}
	return args, nil
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultLogTheme
	}
	return c.Log.Theme
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Translate: {Prefix: %s, PreserveComments: %t}, Sync: {Manifest: %s, Workers: %d}, Build: {Tool: %s}}",
		c.Translate.IdentifierPrefix, c.Translate.PreserveComments, c.Sync.Manifest, c.Sync.Workers, c.Build.Tool)
}
