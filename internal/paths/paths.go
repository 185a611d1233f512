// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paths resolves the tool's configuration locations and derived
// output file names.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName names the configuration directory.
const AppName = "legal-extract"

// ConfigDirEnv overrides the configuration directory on every platform.
const ConfigDirEnv = "LEGAL_EXTRACT_CONFIG_DIR"

// GetConfigDir returns the legal-extract configuration directory.
func GetConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return NormalizePath(dir)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// NormalizePath cleans a path and converts separators for this platform.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(path))
}

// ResultPath returns the file an extraction result for input is written to:
// the input path with its extension replaced by suffix.
func ResultPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// IsResultFile reports whether path looks like a file written by ResultPath.
func IsResultFile(path, suffix string) bool {
	return suffix != "" && strings.HasSuffix(path, suffix)
}

// ValidateResultSuffix requires a marker before the extension (".result.json",
// not ".json"). A bare extension would make every input of that type look
// like a result file, and its results would overwrite sibling inputs.
func ValidateResultSuffix(suffix string) error {
	switch {
	case suffix == "":
		return fmt.Errorf("cannot be empty")
	case !strings.HasPrefix(suffix, "."):
		return fmt.Errorf("%q must start with a dot", suffix)
	case strings.ContainsAny(suffix, `/\`):
		return fmt.Errorf("%q cannot contain a path separator", suffix)
	case filepath.Ext(suffix) == suffix:
		return fmt.Errorf("%q is a bare extension; add a marker such as .result%s", suffix, suffix)
	}
	return nil
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, 0) {
		return &PathValidationError{Path: path, Reason: "contains null byte"}
	}
	if runtime.GOOS == "windows" {
		for i, char := range path {
			if strings.ContainsRune(`<>:"|?*`, char) {
				// drive letter
				if char == ':' && i == 1 {
					continue
				}
				return &PathValidationError{Path: path, Reason: "contains invalid character: " + string(char)}
			}
		}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
