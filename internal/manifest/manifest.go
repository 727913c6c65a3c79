// Package manifest rewrites the local package path recorded in an Xcode
// project manifest.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	// FileName is the manifest inside an .xcodeproj directory.
	FileName = "project.pbxproj"
	// BackupSuffix is appended to the manifest path for the backup copy.
	BackupSuffix = ".backup"
	// DefaultRelativePath points two levels up, at the SDK root.
	DefaultRelativePath = "../.."
)

// ErrManifestNotFound is returned when the project has no manifest.
var ErrManifestNotFound = errors.New("manifest not found")

var relativePathField = regexp.MustCompile(`relativePath = [^;]+;`)

// FollowUp is printed after a successful patch.
var FollowUp = []string{
	"Open the project in Xcode",
	"Go to Project → Package Dependencies",
	"Remove the SDK package if it shows with errors",
	"Add it again: + → Add Local → Select SDK root folder",
}

// Result describes a completed patch.
type Result struct {
	ManifestPath string
	BackupPath   string
	Replaced     int
}

// Path returns the manifest path for projectDir.
func Path(projectDir string) string {
	return filepath.Join(projectDir, FileName)
}

// Patch backs up the manifest in projectDir and sets every relativePath field
// to relativePath. An empty relativePath selects DefaultRelativePath.
func Patch(projectDir, relativePath string) (Result, error) {
	if relativePath == "" {
		relativePath = DefaultRelativePath
	}
	path := Path(projectDir)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("%s: %w", path, ErrManifestNotFound)
	}
	if err != nil {
		return Result{}, fmt.Errorf("stat manifest: %w", err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%s is a directory: %w", path, ErrManifestNotFound)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read manifest: %w", err)
	}

	backup := path + BackupSuffix
	if err := os.WriteFile(backup, original, info.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("write backup: %w", err)
	}

	patched, n := Rewrite(original, relativePath)
	if err := os.WriteFile(path, patched, info.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("write manifest: %w", err)
	}
	return Result{ManifestPath: path, BackupPath: backup, Replaced: n}, nil
}

// Rewrite replaces every relativePath field in content. The replacement is
// literal: "$" in relativePath is not expanded.
func Rewrite(content []byte, relativePath string) ([]byte, int) {
	n := len(relativePathField.FindAllIndex(content, -1))
	if n == 0 {
		return bytes.Clone(content), 0
	}
	field := []byte("relativePath = " + relativePath + ";")
	return relativePathField.ReplaceAllLiteral(content, field), n
}
