package fileutils

import (
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

var (
	UnsupportedFileTypeError = func(filename string) error {
		return eris.Errorf("unsupported file type %q for %s, expected one of .yaml, .yml, .json, .toml", filepath.Ext(filename), filename)
	}
)

// ExpandPath resolves a leading "~" to the current user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", eris.Wrapf(err, "error expanding path %s", path)
	}
	return expanded, nil
}

func ReadFileString(fs afero.Fs, filename string) (string, error) {
	contents, err := afero.ReadFile(fs, filename)
	if err != nil {
		return "", eris.Wrapf(err, "error reading file %s", filename)
	}
	return string(contents), nil
}

// WriteFileString creates any missing parent directories of filename.
func WriteFileString(fs afero.Fs, filename, contents string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return eris.Wrapf(err, "error creating directory %s", dir)
		}
	}
	if err := afero.WriteFile(fs, filename, []byte(contents), 0644); err != nil {
		return eris.Wrapf(err, "error writing file %s", filename)
	}
	return nil
}

// ReadFileInto decodes a YAML, JSON or TOML file into v, chosen by file extension.
// YAML and JSON are decoded through v's json tags, TOML through its toml tags.
func ReadFileInto(fs afero.Fs, filename string, v interface{}) error {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return eris.Wrapf(err, "error reading file %s", filename)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, v); err != nil {
			return eris.Wrapf(err, "error parsing %s", filename)
		}
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return eris.Wrapf(err, "error parsing %s", filename)
		}
	default:
		return UnsupportedFileTypeError(filename)
	}
	return nil
}
