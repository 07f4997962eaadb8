package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_hasTaskCommands(t *testing.T) {
	root := newRootCmd()
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range []string{
		"build", "update-version", "format", "lint", "lint-fix",
		"release", "release-from-develop",
		"docs-build", "docs-clean", "docs-serve", "docs-github",
		"tasks",
	} {
		assert.True(t, have[name], "missing command %s", name)
	}
}

func TestTasksCmd_writesDeps(t *testing.T) {
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"-C", t.TempDir(), "tasks"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "release: update-version format lint-fix")
}

func TestTasksCmd_writesDot(t *testing.T) {
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"-C", t.TempDir(), "tasks", "--dot"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"docs-build" -> "docs-serve";`)
}
