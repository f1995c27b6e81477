package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgraph/dagrs/internal/config"
)

func TestLoadEnvFileEmptyPath(t *testing.T) {
	env, err := loadEnvFile("")
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestLoadEnvFileParsesFlatMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: 2\nname: demo\n"), 0o644))

	env, err := loadEnvFile(path)
	require.NoError(t, err)
	// goccy/go-yaml decodes a non-negative integer into `any` as uint64.
	assert.Equal(t, uint64(2), env["base"])
	assert.Equal(t, "demo", env["name"])
}

func TestLoadEnvFileMissingFile(t *testing.T) {
	_, err := loadEnvFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildLoggerWritesToLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dagrs.log")

	prev := logFile
	logFile = path
	defer func() { logFile = prev }()

	log, closeLog, err := buildLogger(&config.Config{LogFormat: "text"})
	require.NoError(t, err)
	log.Info("hello from the log-file test")
	closeLog()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the log-file test")
}

func TestBuildLoggerCreatesMissingParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state", "dagrs.log")

	prev := logFile
	logFile = path
	defer func() { logFile = prev }()

	_, closeLog, err := buildLogger(&config.Config{LogFormat: "text"})
	require.NoError(t, err)
	defer closeLog()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["validate"])
}
