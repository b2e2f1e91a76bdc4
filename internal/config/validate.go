package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// cmakeBuildTypes are the standard CMAKE_BUILD_TYPE values.
var cmakeBuildTypes = map[string]bool{
	"Release":        true,
	"Debug":          true,
	"RelWithDebInfo": true,
	"MinSizeRel":     true,
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing the problem.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Sample == "" {
		errs = append(errs, ValidationError{
			Field:   "sample",
			Message: "sample name is required",
		})
	}
	if strings.ContainsAny(cfg.Sample, "/\\") {
		errs = append(errs, ValidationError{
			Field:   "sample",
			Message: "must be a bare sample name, not a path",
		})
	}

	if cfg.SamplesRoot == "" {
		errs = append(errs, ValidationError{
			Field:   "samples_root",
			Message: "samples root directory is required",
		})
	}

	if !cmakeBuildTypes[cfg.BuildType] {
		errs = append(errs, ValidationError{
			Field:   "build_type",
			Message: fmt.Sprintf("must be one of: Release, Debug, RelWithDebInfo, MinSizeRel (got %q)", cfg.BuildType),
		})
	}

	if cfg.MatrixSize < 1 {
		errs = append(errs, ValidationError{
			Field:   "size",
			Message: "must be at least 1",
		})
	}
	if cfg.Iterations < 1 {
		errs = append(errs, ValidationError{
			Field:   "iterations",
			Message: "must be at least 1",
		})
	}
	if cfg.Repeat < 1 {
		errs = append(errs, ValidationError{
			Field:   "repeat",
			Message: "must be at least 1",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	// Host metrics bounds only matter when the scraper is enabled
	if cfg.HostMetricsURL != "" {
		if err := validateURL(cfg.HostMetricsURL); err != nil {
			errs = append(errs, ValidationError{
				Field:   "host_metrics",
				Message: err.Error(),
			})
		}

		const minWindow = 10 * time.Second
		const maxWindow = 300 * time.Second
		if cfg.HostMetricsWindow < minWindow {
			errs = append(errs, ValidationError{
				Field:   "host_metrics_window",
				Message: fmt.Sprintf("must be at least %v (got %v)", minWindow, cfg.HostMetricsWindow),
			})
		}
		if cfg.HostMetricsWindow > maxWindow {
			errs = append(errs, ValidationError{
				Field:   "host_metrics_window",
				Message: fmt.Sprintf("must be at most %v (got %v)", maxWindow, cfg.HostMetricsWindow),
			})
		}
		if cfg.HostMetricsInterval <= 0 {
			errs = append(errs, ValidationError{
				Field:   "host_metrics_interval",
				Message: "must be positive",
			})
		} else if cfg.HostMetricsWindow < 2*cfg.HostMetricsInterval {
			errs = append(errs, ValidationError{
				Field:   "host_metrics_window",
				Message: fmt.Sprintf("must be at least 2x scrape interval (%v), got %v", 2*cfg.HostMetricsInterval, cfg.HostMetricsWindow),
			})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validateURL checks if the URL is valid and uses http or https.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https (got %q)", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("URL must have a host")
	}

	return nil
}
