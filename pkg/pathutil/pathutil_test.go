package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "yaml extension", path: "aishield.yaml"},
		{name: "yml extension", path: "configs/questions.YML"},
		{name: "wrong extension", path: "aishield.json", errContains: "must have .yaml or .yml"},
		{name: "traversal", path: "../etc/aishield.yaml", errContains: "directory traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateConfigPath(tt.path)
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateOutputPath(filepath.Join(dir, "audit.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit.json"), got)

	_, err = ValidateOutputPath(filepath.Join(dir, "missing", "audit.json"))
	assert.ErrorContains(t, err, "parent directory does not exist")

	_, err = ValidateOutputPath(dir + "/../audit.json")
	assert.ErrorContains(t, err, "directory traversal")
}

func TestJoinAndValidate(t *testing.T) {
	dir := t.TempDir()

	got, err := JoinAndValidate(dir, "reports", "audit.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "audit.pdf"), got)

	_, err = JoinAndValidate(dir, "..", "audit.pdf")
	assert.ErrorContains(t, err, "directory traversal")

	_, err = JoinAndValidate(dir, "/etc/passwd")
	require.NoError(t, err, "absolute elements are joined under the base")

	wd, err := os.Getwd()
	require.NoError(t, err)
	got, err = JoinAndValidate(".", "audit.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "audit.json"), got)
}
