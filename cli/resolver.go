package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// resolve is a [kong.ConfigurationLoader] that reads TOML configuration
// files.
//
// Nested tables are flattened by joining keys with hyphens, so both of the
// following set the --log-level flag:
//
//	log-level = "debug"
//
//	[log]
//	level = "debug"
//
// Keys may use underscores in place of hyphens. Numbers are passed to kong
// in their decimal text form and arrays are joined with commas. A file that
// fails to decode is reported as an error.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	cfg := make(config, len(doc))
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened TOML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}

// Keys returns the flattened keys in sorted order.
func (c config) Keys() []string { return slices.Sorted(maps.Keys(c)) }

func (c config) flatten(prefix string, table map[string]any) {
	for key, value := range table {
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(value)
	}
}

// scalar converts a decoded TOML value into a form kong's mappers accept.
func scalar(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fmt.Sprint(scalar(e)))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}
