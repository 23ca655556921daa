// Package configpaths resolves the locations configuration files are loaded
// from.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "xidi"), nil
}

// ConfigCandidatePaths returns configuration file candidates grouped by
// format, lowest priority first: the per-user directory, then the working
// directory, then an explicitly provided path. The explicit path is sorted
// into the group matching its extension, defaulting to JSON.
func ConfigCandidatePaths(userConfig string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var dirs []string
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "xidi.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "xidi.yaml"), filepath.Join(dir, "xidi.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "xidi.toml"))
	}

	if userConfig != "" {
		switch strings.ToLower(filepath.Ext(userConfig)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userConfig)
		case ".toml":
			tomlPaths = append(tomlPaths, userConfig)
		default:
			jsonPaths = append(jsonPaths, userConfig)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
