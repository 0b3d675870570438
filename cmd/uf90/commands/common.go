// Package commands implements the uf90 subcommands.
package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/uf90/am"
	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
	"github.com/teranos/uf90/sync"
)

// loadConfig is replaced in tests.
var loadConfig = am.Load

// verbosity reads the root's -v count.
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// projectFlags are shared by sync, check and fpm.
type projectFlags struct {
	manifest           string
	extensions         []string
	noPreserveComments bool
}

func (f *projectFlags) register(cmd *cobra.Command, withExtensions bool) {
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "Manifest file name in the project root (default from sync.manifest)")
	if withExtensions {
		cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "Additional source extension to translate (repeatable)")
	}
	cmd.Flags().BoolVar(&f.noPreserveComments, "no-preserve-comments", false, "Translate symbols inside trailing comments too")
}

// options layers the flags over the configured sync options. --ext adds to
// the configured extensions.
func (f *projectFlags) options(cfg *am.Config) (sync.Options, error) {
	opts := cfg.SyncOptions()
	if f.manifest != "" {
		opts.ManifestName = f.manifest
	}
	for _, ext := range f.extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return opts, errors.WithHint(
				errors.NewInvalidConfigError("--ext %q must start with '.'", ext),
				"for example: --ext .uf")
		}
		if !contains(opts.Extensions, ext) {
			opts.Extensions = append(opts.Extensions, ext)
		}
	}
	if f.noPreserveComments {
		opts.Translate.PreserveComments = false
	}
	opts.Logger = logger.ComponentLogger("sync")
	return opts, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// rootArg returns the optional project root argument.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
