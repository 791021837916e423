package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: smallGrid\ngames: 4\ndepth: 3\n"), 0644))
	configPath = path
	t.Cleanup(func() { configPath = "" })

	require.NoError(t, playCmd.Flags().Set("games", "2"))
	cfg, err := loadConfig(playCmd)
	require.NoError(t, err)

	require.Equal(t, "smallGrid", cfg.Layout, "File values are kept")
	require.Equal(t, 3, cfg.Depth, "File values are kept")
	require.Equal(t, 2, cfg.Games, "Flags override the file")
	require.Equal(t, "alphabeta", cfg.Agent, "Unset flags keep the default")
}

func TestInvalidLogLevel(t *testing.T) {
	rootCmd.SetArgs([]string{"--log-level", "loud", "experiment"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.Error(t, rootCmd.Execute())
}
