// Package paths locates sample build directories and build flags.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// BuildTypeEnv overrides the configured CMake build type when set.
const BuildTypeEnv = "SAMPLE_BUILD_TYPE"

// DefaultBuildType is used when neither flag nor environment set one.
const DefaultBuildType = "Release"

// SampleBuildPath returns the build directory for a sample.
// The sample source tree (with its CMakeLists.txt) lives one level
// above the returned directory.
func SampleBuildPath(root, name string) string {
	return filepath.Join(root, name, "build")
}

// SampleSourcePath returns the sample source directory, the parent of
// the build directory.
func SampleSourcePath(root, name string) string {
	return filepath.Join(root, name)
}

// BuildFlag returns the CMake build type to pass as
// -DCMAKE_BUILD_TYPE. The environment variable wins over the
// configured value; an empty configured value falls back to the
// default.
func BuildFlag(configured string) string {
	if env := os.Getenv(BuildTypeEnv); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return DefaultBuildType
}

// EnsureBuildDir creates the build directory if it does not exist.
func EnsureBuildDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create build dir %s: %w", path, err)
	}
	return nil
}
