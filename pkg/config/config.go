// Package config loads clickpath settings: workspace folders, the
// working-directory override, folder exclusion patterns, and the editor
// command template used by the CLI dispatcher.
//
// Precedence, lowest to highest: built-in defaults, the config file
// (TOML or YAML), then CLICKPATH_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/clickpath/clickpath/pkg/clerr"
)

const envPrefix = "CLICKPATH_"

// Settings is the explicit configuration structure handed to the
// resolver; there is no global settings object.
type Settings struct {
	// Folders are the workspace root folders, in order.
	Folders []string `koanf:"folders" toml:"folders"`

	// WorkingDir overrides the working directory; may start with ~.
	WorkingDir string `koanf:"working_dir" toml:"working_dir"`

	// ExcludedFolders are folder basenames never searched into.
	ExcludedFolders []string `koanf:"excluded_folders" toml:"excluded_folders"`

	// Editor is the command template for opening a file, with {path},
	// {line} and {col} placeholders.
	Editor string `koanf:"editor" toml:"editor"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ExcludedFolders: []string{".git", ".svn", ".hg", "node_modules", "__pycache__"},
		Editor:          "vi {path}",
	}
}

// DefaultPath returns the expected config file location, preferring an
// existing file (TOML first, then YAML) and falling back to the TOML
// name.
func DefaultPath() string {
	dir := filepath.Join(xdg.ConfigHome, "clickpath")
	for _, name := range []string{"clickpath.toml", "clickpath.yaml", "clickpath.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, "clickpath.toml")
}

// Load reads settings from path, or from DefaultPath when path is empty.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (Settings, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"folders":          defaults.Folders,
		"working_dir":      defaults.WorkingDir,
		"excluded_folders": defaults.ExcludedFolders,
		"editor":           defaults.Editor,
	}, "."), nil); err != nil {
		return defaults, clerr.Wrap(err, clerr.ErrConfigLoad, "loading defaults")
	}

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return defaults, clerr.Wrapf(err, clerr.ErrConfigParse, "parsing %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return defaults, clerr.Wrap(err, clerr.ErrConfigLoad, "loading environment")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return defaults, clerr.Wrap(err, clerr.ErrConfigParse, "unmarshaling settings")
	}
	return s, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}

// WriteDefault writes the default settings as TOML to path, creating
// parent directories. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return clerr.Newf(clerr.ErrConfigWrite, "%s already exists", path)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return clerr.Wrap(err, clerr.ErrConfigWrite, "encoding defaults")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clerr.Wrapf(err, clerr.ErrConfigWrite, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return clerr.Wrapf(err, clerr.ErrConfigWrite, "writing %s", path)
	}
	return nil
}
