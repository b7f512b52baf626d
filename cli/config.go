package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Configuration returns the options that load flag defaults from config
// files. Keys are flag names, with dashes or underscores. Later files
// override earlier ones and flags given on the command line override all of
// them:
//
//	~/.config/hledger-fmt/config.toml
//	.hledger-fmt.toml
//	.hledger-fmt.yaml
func Configuration() []kong.Option {
	return []kong.Option{
		kong.Configuration(TOML, "~/.config/hledger-fmt/config.toml", ".hledger-fmt.toml"),
		kong.Configuration(YAML, ".hledger-fmt.yaml", ".hledger-fmt.yml"),
	}
}

// TOML is a kong.ConfigurationLoader for TOML files.
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("invalid TOML configuration: %w", err)
	}
	return mapResolver(values), nil
}

// YAML is a kong.ConfigurationLoader for YAML files.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML configuration: %w", err)
	}
	return mapResolver(values), nil
}

func mapResolver(values map[string]any) kong.Resolver {
	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := values[key]; ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f
}
