// Package config provides configuration management for go-sample-check.
package config

import "time"

// Config holds all configuration options for the harness.
type Config struct {
	// Sample selection
	Sample      string `json:"sample"`
	SamplesRoot string `json:"samples_root"`

	// Toolchain
	CMakePath string `json:"cmake_path"`
	MakePath  string `json:"make_path"`
	BuildType string `json:"build_type"` // CMake build type flag

	// Benchmark arguments
	MatrixSize int `json:"matrix_size"`
	Iterations int `json:"iterations"`

	// Repeat mode: re-run the benchmark N times after one
	// configure+build, collecting timing percentiles. 1 = single shot.
	Repeat int `json:"repeat"`

	// Observability
	MetricsAddr         string        `json:"metrics_addr"` // empty = disabled
	HostMetricsURL      string        `json:"host_metrics_url"`
	HostMetricsInterval time.Duration `json:"host_metrics_interval"`
	HostMetricsWindow   time.Duration `json:"host_metrics_window"`
	Verbose             bool          `json:"verbose"`
	LogFormat           string        `json:"log_format"` // json, text

	// Diagnostic modes
	PrintCmd      bool `json:"print_cmd"`
	SkipPreflight bool `json:"skip_preflight"`

	// Dashboard
	TUIEnabled bool `json:"tui"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Sample
		Sample:      "cl_gemm_inst",
		SamplesRoot: ".",

		// Toolchain
		CMakePath: "cmake",
		MakePath:  "make",
		BuildType: "Release",

		// Benchmark arguments
		MatrixSize: 1024,
		Iterations: 1,

		Repeat: 1,

		// Observability
		MetricsAddr:         "", // Disabled for a one-shot check
		HostMetricsInterval: 2 * time.Second,
		HostMetricsWindow:   30 * time.Second,
		Verbose:             false,
		LogFormat:           "text",
	}
}
