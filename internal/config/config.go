// Package config loads compiler pipeline options from a YAML file into a
// tagged settings struct.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlhm-lang/mlhm/internal/types"
)

// SchemaVersion tags the config file format, so a future incompatible
// change can be detected instead of silently misparsed.
const SchemaVersion = "ailang.config/v1"

// Config holds the options that govern one run of the inference and
// elimination passes.
type Config struct {
	Schema string `yaml:"schema"`

	// StopOnFirstError governs a driver running more than one structure (the
	// CLI's -all flag): when set, it aborts the whole run at the first
	// example that fails instead of continuing on to the rest. A single
	// InferStructure/PeStructure call always stops at its first internal
	// error regardless of this flag -- there is never a partial environment
	// or partial lowered program for one structure.
	StopOnFirstError bool `yaml:"stop_on_first_error"`

	// EmitJSON selects JSON diagnostics (errors.Report.ToJSON) over the
	// colorized human-readable rendering.
	EmitJSON bool `yaml:"emit_json"`

	// FreshNamePrefix is the prefix the elimination pass's counter hands out
	// fresh value names under ("a" by default, giving a0, a1, ...). Threaded
	// into elaborate.NewCounter by PeStructure. Changing this only helps if
	// the surface language also refuses to lex the new prefix as an
	// identifier -- names are fresh only within the counter's own domain,
	// not guaranteed unique against arbitrary user identifiers.
	FreshNamePrefix string `yaml:"fresh_name_prefix"`
}

// Default returns the configuration the CLI uses when no file is supplied.
func Default() *Config {
	return &Config{
		Schema:          SchemaVersion,
		StopOnFirstError: true,
		EmitJSON:        false,
		FreshNamePrefix: "a",
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Schema != SchemaVersion {
		return nil, fmt.Errorf("config: %s declares schema %q, expected %q", path, cfg.Schema, SchemaVersion)
	}
	if cfg.FreshNamePrefix == "" {
		return nil, fmt.Errorf("config: %s: fresh_name_prefix must not be empty", path)
	}
	return cfg, nil
}

// DumpEnv renders a type environment as a YAML document mapping each bound
// name to its pretty-printed scheme, sorted by name for determinism. This
// is the machine-readable counterpart to types.PrettyEnv's `val name : type`
// text form.
func DumpEnv(env *types.TypeEnv) (string, error) {
	snapshot := envSnapshot(env)
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("config: encoding environment: %w", err)
	}
	return string(out), nil
}

func envSnapshot(env *types.TypeEnv) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(types.PrettyEnv(env), "\n") {
		if line == "" {
			continue
		}
		name, ty, ok := strings.Cut(strings.TrimPrefix(line, "val "), " : ")
		if !ok {
			continue
		}
		out[name] = ty
	}
	return out
}

// SortedNames returns the keys of an environment snapshot in sorted order,
// for printing a dump in a stable order.
func SortedNames(snapshot map[string]string) []string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
