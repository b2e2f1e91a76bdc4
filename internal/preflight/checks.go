// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks for a sample validation run.
// buildPath is the working directory the pipeline will use; its
// parent must hold the sample sources.
func RunAll(cmakePath, makePath, buildPath string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 4),
		Passed: true,
	}

	for _, check := range []Check{
		checkTool("cmake", cmakePath),
		checkTool("make", makePath),
		checkSourceDir(buildPath),
		checkBuildDir(buildPath),
	} {
		result.Checks = append(result.Checks, check)
		if !check.Passed {
			result.Passed = false
		}
	}

	return result
}

// checkTool verifies a build tool is available and responds to
// -version / --version.
func checkTool(name, path string) Check {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Check{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("not found at %s: %v", path, err),
		}
	}

	version := toolVersion(resolved)
	return Check{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("found at %s (%s)", resolved, version),
	}
}

// toolVersion extracts a version string from `<tool> --version`.
func toolVersion(path string) string {
	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		return "version unknown"
	}

	// "cmake version 3.27.4" / "GNU Make 4.4.1"
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "version unknown"
}

// checkSourceDir verifies the sample source tree exists one level
// above the build directory and carries a CMakeLists.txt.
func checkSourceDir(buildPath string) Check {
	sourceDir := filepath.Dir(buildPath)

	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return Check{
			Name:    "sample_source",
			Passed:  false,
			Message: fmt.Sprintf("source directory %s not found", sourceDir),
		}
	}

	if _, err := os.Stat(filepath.Join(sourceDir, "CMakeLists.txt")); err != nil {
		return Check{
			Name:    "sample_source",
			Passed:  false,
			Message: fmt.Sprintf("no CMakeLists.txt in %s", sourceDir),
		}
	}

	return Check{
		Name:    "sample_source",
		Passed:  true,
		Message: fmt.Sprintf("found %s", sourceDir),
	}
}

// checkBuildDir verifies the build directory exists or can be created.
// A missing directory is a warning: the harness creates it before the
// configure stage.
func checkBuildDir(buildPath string) Check {
	info, err := os.Stat(buildPath)
	if err == nil {
		if !info.IsDir() {
			return Check{
				Name:    "build_dir",
				Passed:  false,
				Message: fmt.Sprintf("%s exists and is not a directory", buildPath),
			}
		}
		return Check{
			Name:    "build_dir",
			Passed:  true,
			Message: fmt.Sprintf("exists at %s", buildPath),
		}
	}

	// Parent writability decides whether creation will work later
	parent := filepath.Dir(buildPath)
	if _, err := os.Stat(parent); err != nil {
		return Check{
			Name:    "build_dir",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: parent missing", buildPath),
		}
	}

	return Check{
		Name:    "build_dir",
		Passed:  true,
		Warning: true,
		Message: fmt.Sprintf("missing, will be created at %s", buildPath),
	}
}

// PrintResults prints the preflight check results to stderr, keeping
// stdout clean for the pipeline diagnostic.
func PrintResults(result *Result) {
	fmt.Fprintln(os.Stderr, "Preflight checks:")
	for _, check := range result.Checks {
		fmt.Fprintln(os.Stderr, check.String())
		if !check.Passed {
			fmt.Fprintf(os.Stderr, "    Fix: %s\n", suggestFix(check.Name))
		}
	}
	fmt.Fprintln(os.Stderr)
}

// suggestFix returns a suggestion for fixing a failed check.
func suggestFix(name string) string {
	switch name {
	case "cmake":
		return "install cmake (apt install cmake / brew install cmake) or pass -cmake"
	case "make":
		return "install make (apt install build-essential) or pass -make"
	case "sample_source":
		return "pass the samples root as the positional argument or -samples-root"
	case "build_dir":
		return "check permissions on the sample directory"
	default:
		return "see documentation"
	}
}
