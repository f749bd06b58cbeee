package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("ORDERKART_SYSTEM_WORKDIR", workdir)

	cfg := LoadConfig("")
	require.Equal(t, workdir, cfg.System.Workdir)
	require.Equal(t, 1980, cfg.Web.Port)
	require.NotEmpty(t, cfg.Catalog.URL)

	// workdir layout is created up front
	for _, sub := range []string{"logs", "data", "metrics"} {
		info, err := os.Stat(filepath.Join(workdir, sub))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	workdir := t.TempDir()
	cfile := filepath.Join(workdir, "orderkart.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(`
system:
  workdir: `+workdir+`
web:
  port: 8088
catalog:
  url: https://example.com/catalog.json
  timeout: 5
`), 0644))

	t.Setenv("ORDERKART_WEB_PORT", "9099")

	cfg := LoadConfig(cfile)
	require.Equal(t, "https://example.com/catalog.json", cfg.Catalog.URL)
	require.Equal(t, 5, cfg.Catalog.Timeout)
	// env wins over file
	require.Equal(t, 9099, cfg.Web.Port)
}
