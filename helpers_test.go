package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ini/ini"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	fragmentA = "[base]\nsupported_boards = ALL\nrelated_sessions = svcA\n\n[svcA]\npath = /data\n"
	fragmentB = "[base]\nsupported_boards = board1\nrelated_sessions = svcB\n\n[svcB]\nport = 8080\n"
)

func writeFragment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newBuildTree lays fragments out under the default source folder of a fresh
// build root and returns that root.
func newBuildTree(t *testing.T, fragments map[string]string) string {
	t.Helper()
	build := t.TempDir()
	src := filepath.Join(build, defaultSourceDir)
	require.NoError(t, os.MkdirAll(src, 0o755))
	for name, content := range fragments {
		writeFragment(t, src, name, content)
	}
	return build
}

func parseINI(t *testing.T, src string) *ini.File {
	t.Helper()
	f, err := ini.LoadSources(iniOptions, []byte(src))
	require.NoError(t, err)
	return f
}

func testManager() *IniManager {
	return NewIniManager(defaultConfig(), zerolog.Nop())
}
