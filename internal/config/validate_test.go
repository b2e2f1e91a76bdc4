package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.SamplesRoot = "/opt/samples"
	return cfg
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr string // substring of the error, "" = valid
	}{
		{
			name:   "valid defaults",
			modify: func(cfg *Config) {},
		},
		{
			name:    "empty sample",
			modify:  func(cfg *Config) { cfg.Sample = "" },
			wantErr: "sample",
		},
		{
			name:    "sample with path separator",
			modify:  func(cfg *Config) { cfg.Sample = "../cl_gemm_inst" },
			wantErr: "bare sample name",
		},
		{
			name:    "empty samples root",
			modify:  func(cfg *Config) { cfg.SamplesRoot = "" },
			wantErr: "samples_root",
		},
		{
			name:    "bogus build type",
			modify:  func(cfg *Config) { cfg.BuildType = "Fastest" },
			wantErr: "build_type",
		},
		{
			name:   "debug build type",
			modify: func(cfg *Config) { cfg.BuildType = "Debug" },
		},
		{
			name:    "zero matrix size",
			modify:  func(cfg *Config) { cfg.MatrixSize = 0 },
			wantErr: "size",
		},
		{
			name:    "zero iterations",
			modify:  func(cfg *Config) { cfg.Iterations = 0 },
			wantErr: "iterations",
		},
		{
			name:    "zero repeat",
			modify:  func(cfg *Config) { cfg.Repeat = 0 },
			wantErr: "repeat",
		},
		{
			name:    "bad log format",
			modify:  func(cfg *Config) { cfg.LogFormat = "xml" },
			wantErr: "log_format",
		},
		{
			name:    "host metrics URL without scheme",
			modify:  func(cfg *Config) { cfg.HostMetricsURL = "127.0.0.1:9100/metrics" },
			wantErr: "host_metrics",
		},
		{
			name: "host metrics window too small",
			modify: func(cfg *Config) {
				cfg.HostMetricsURL = "http://127.0.0.1:9100/metrics"
				cfg.HostMetricsWindow = time.Second
			},
			wantErr: "host_metrics_window",
		},
		{
			name: "host metrics window below 2x interval",
			modify: func(cfg *Config) {
				cfg.HostMetricsURL = "http://127.0.0.1:9100/metrics"
				cfg.HostMetricsInterval = 20 * time.Second
				cfg.HostMetricsWindow = 30 * time.Second
			},
			wantErr: "2x scrape interval",
		},
		{
			name: "host metrics valid",
			modify: func(cfg *Config) {
				cfg.HostMetricsURL = "http://127.0.0.1:9100/metrics"
			},
		},
		{
			name: "host metrics bounds ignored when disabled",
			modify: func(cfg *Config) {
				cfg.HostMetricsWindow = time.Second
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(cfg)

			err := Validate(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate returned nil, want error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantErr)
			}
		})
	}
}

// Multiple invalid fields are reported together.
func TestValidate_JoinsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Sample = ""
	cfg.MatrixSize = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate returned nil")
	}
	if !strings.Contains(err.Error(), "sample") || !strings.Contains(err.Error(), "size") {
		t.Errorf("joined error missing fields: %q", err.Error())
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "repeat", Message: "must be at least 1"}
	if e.Error() != "repeat: must be at least 1" {
		t.Errorf("Error() = %q", e.Error())
	}
}
