package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration and data directories.
const AppName = "wikidoc"

// configPaths returns the configuration files consulted in order.
func configPaths() []string {
	return []string{
		"wikidoc.yaml",
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}
}

// defaultDBPath returns the index database path under the XDG data directory.
func defaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, "wikidoc.db")
}

// YAML is a kong.ConfigurationLoader reading flag values from a YAML
// document. Keys are flag names with dashes or underscores; values for a
// subcommand may be nested under the command name.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, err
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}

	return f, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	v, ok := values[strings.ReplaceAll(name, "-", "_")]
	return v, ok
}
