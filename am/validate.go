package am

import (
	"strings"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
)

// Validate checks that the configuration is valid. Every failure matches
// errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	// Prefix must itself be the start of a Fortran identifier
	if !isIdentifierFragment(c.Translate.IdentifierPrefix) {
		return errors.NewInvalidConfigError(
			"translate.identifier_prefix must be ASCII letters, digits or '_' starting with a letter, got %q",
			c.Translate.IdentifierPrefix)
	}

	marker := c.Translate.CommentMarker
	if utf8.RuneCountInString(marker) != 1 || marker[0] >= utf8.RuneSelf {
		return errors.NewInvalidConfigError(
			"translate.comment_marker must be exactly one ASCII character, got %q", marker)
	}

	if c.Sync.Manifest == "" {
		return errors.NewInvalidConfigError("sync.manifest cannot be empty")
	}
	if strings.ContainsAny(c.Sync.Manifest, `/\`) {
		return errors.NewInvalidConfigError(
			"sync.manifest must be a file name in the project root, got %q", c.Sync.Manifest)
	}

	if !strings.HasPrefix(c.Sync.OutputExtension, ".") || len(c.Sync.OutputExtension) < 2 {
		return errors.NewInvalidConfigError(
			"sync.output_extension must start with '.', got %q", c.Sync.OutputExtension)
	}
	if len(c.Sync.Extensions) == 0 {
		return errors.NewInvalidConfigError("sync.extensions cannot be empty")
	}
	for _, ext := range c.Sync.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.NewInvalidConfigError("sync.extensions entries must start with '.', got %q", ext)
		}
		// Translating into the source extension would overwrite sources
		if strings.EqualFold(ext, c.Sync.OutputExtension) {
			return errors.NewInvalidConfigError(
				"sync.extensions entry %q equals sync.output_extension", ext)
		}
	}

	// Workers: 0 = one per CPU, negative = invalid
	if c.Sync.Workers < 0 {
		return errors.NewInvalidConfigError("sync.workers must be >= 0, got %d", c.Sync.Workers)
	}

	if strings.TrimSpace(c.Build.Tool) == "" {
		return errors.NewInvalidConfigError("build.tool cannot be empty")
	}
	if _, err := shellquote.Split(c.Build.DefaultArgs); err != nil {
		return errors.NewInvalidConfigError("build.default_args %q: %v", c.Build.DefaultArgs, err)
	}

	if theme := c.GetLogTheme(); !knownTheme(theme) {
		return errors.NewInvalidConfigError(
			"log.theme must be one of %s, got %q", strings.Join(logger.Themes, ", "), theme)
	}

	return nil
}

func isIdentifierFragment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		case i > 0 && (b == '_' || (b >= '0' && b <= '9')):
		default:
			return false
		}
	}
	return true
}

func knownTheme(theme string) bool {
	for _, t := range logger.Themes {
		if t == theme {
			return true
		}
	}
	return false
}
