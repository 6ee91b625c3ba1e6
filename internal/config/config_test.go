package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlhm-lang/mlhm/internal/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, SchemaVersion, cfg.Schema)
	assert.Equal(t, "a", cfg.FreshNamePrefix)
	assert.True(t, cfg.StopOnFirstError)
}

func TestLoadRejectsWrongSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: bogus\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "schema: ailang.config/v1\nemit_json: true\nfresh_name_prefix: a\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.EmitJSON)
}

func TestDumpEnv(t *testing.T) {
	env := types.NewTypeEnv().Extend("x", types.S(nil, types.TInt))
	out, err := DumpEnv(env)
	require.NoError(t, err)
	assert.Contains(t, out, "x: int")
}
