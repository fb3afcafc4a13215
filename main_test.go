package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "tareasweb dev\n", out.String())
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("PORT", "7000")
	t.Setenv("API_URL", "http://env.example/Tareas")

	require.NoError(t, serveCmd.ParseFlags([]string{"--port", "7100"}))
	cfg, err := loadConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, "7100", cfg.Port)
	assert.Equal(t, "http://env.example/Tareas", cfg.APIURL)
}
