package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiresSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "report", "template", "example", "detect", "health"} {
		assert.Contains(t, names, want)
	}
}

func TestExampleThenRun(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"example", "--dir", dir})
	require.NoError(t, root.Execute())

	root = newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"run",
		"--environment", filepath.Join(dir, "environment.yaml"),
		"--answers", filepath.Join(dir, "answers.yaml"),
		"--output", dir,
		"--name", "audit",
		"--format", "json,html",
	})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "audit.json"))
	assert.FileExists(t, filepath.Join(dir, "audit.html"))

	root = newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"report", "--input", filepath.Join(dir, "audit.json"), "--format", "pdf"})
	require.NoError(t, root.Execute())
	assert.FileExists(t, filepath.Join(dir, "audit.pdf"))
}

func TestTemplateValidate(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"template", "validate"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Template is valid")
	assert.Contains(t, out.String(), "5 sections, 17 questions")
}
