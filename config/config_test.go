package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.Nil(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, rune(0), cfg.DelimiterRune())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabular.yaml")
	require.Nil(t, os.WriteFile(path, []byte(`
logging:
  level: debug
input:
  delimiter: ";"
analysis:
  k: 10
  std_cutoff: 2.5
`), 0o644))
	t.Setenv("TABULAR_ANALYSIS_K", "4")
	t.Setenv("TABULAR_OUTPUT_NIL_VALUE", "NA")

	cfg, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, ';', cfg.DelimiterRune())
	require.Equal(t, 4, cfg.Analysis.K)
	require.Equal(t, 2.5, cfg.Analysis.StdCutoff)
	require.Equal(t, "NA", cfg.Output.NilValue)
	require.Equal(t, 10, cfg.Analysis.NQuantiles)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"level.yaml":   "logging:\n  level: loud\n",
		"k.yaml":       "analysis:\n  k: 1\n",
		"delim.yaml":   "input:\n  delimiter: ab\n",
		"unknown.yaml": "analysis:\n  bins: 3\n",
	} {
		path := filepath.Join(dir, name)
		require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := Load(path)
		require.NotNil(t, err, name)
	}
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NotNil(t, err)

	t.Setenv("TABULAR_ANALYSIS_REPS", "many")
	_, err = Load("")
	require.NotNil(t, err)
}
