package am

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/internal/util"
)

// Output formats understood by Encode
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders cfg as TOML, JSON or YAML. TOML and YAML output start with
// a comment header.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil

	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# uf90 configuration\n"), data...), nil

	case FormatTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# uf90 configuration\n"), data...), nil

	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported format: %s", format),
			"supported formats: toml, json, yaml")
	}
}

// InitProjectConfig writes cfg as uf90.toml in dir and returns its path.
// An existing file is kept unless force is set, in which case it is rotated
// into .back1 (.back1 -> .back2 -> .back3) first.
func InitProjectConfig(dir string, cfg *Config, force bool) (string, error) {
	path := filepath.Join(dir, ProjectConfigName)

	if _, err := os.Stat(path); err == nil {
		if !force {
			return "", errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (a backup is kept)")
		}
		if err := createBackup(path); err != nil {
			return "", errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := Encode(cfg, FormatTOML)
	if err != nil {
		return "", err
	}
	if err := util.WriteFileAtomic(path, data, util.DefaultFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, util.DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
