// Package pathutil validates operator-supplied file paths before they are read
// or written.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// absolute rejects traversal patterns in path and returns its cleaned absolute form.
func absolute(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}
	return abs, nil
}

// ValidateConfigPath validates a YAML configuration file path.
func ValidateConfigPath(path string) (string, error) {
	abs, err := absolute(path)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(abs))
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("config file must have .yaml or .yml extension, got %s", ext)
	}
	return abs, nil
}

// ValidateOutputPath validates a report output path. The parent directory must exist.
func ValidateOutputPath(path string) (string, error) {
	abs, err := absolute(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("parent directory does not exist: %s", dir)
	}
	return abs, nil
}

// JoinAndValidate joins elems onto baseDir and ensures the result stays inside it.
func JoinAndValidate(baseDir string, elems ...string) (string, error) {
	for _, elem := range elems {
		if strings.Contains(elem, "..") {
			return "", fmt.Errorf("path element contains directory traversal: %s", elem)
		}
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("getting absolute base directory: %w", err)
	}
	absJoined, err := filepath.Abs(filepath.Join(append([]string{baseDir}, elems...)...))
	if err != nil {
		return "", fmt.Errorf("getting absolute joined path: %w", err)
	}

	rel, err := filepath.Rel(absBase, absJoined)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("joined path %s is not within base directory %s", absJoined, baseDir)
	}
	return absJoined, nil
}
