package config

import "fmt"

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMonitor()...)
	errors = append(errors, c.validateResource()...)
	errors = append(errors, c.validatePresence()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateMonitor() []ValidationError {
	var errors []ValidationError

	if c.Monitor.RunningDurationS < 1 {
		errors = append(errors, ValidationError{
			Path:    "monitor.running_duration_s",
			Message: fmt.Sprintf("must be positive, got %d", c.Monitor.RunningDurationS),
		})
	}

	if c.Monitor.SleepModeLengthS < 1 {
		errors = append(errors, ValidationError{
			Path:    "monitor.sleep_mode_length_s",
			Message: fmt.Sprintf("must be positive, got %d", c.Monitor.SleepModeLengthS),
		})
	}

	if c.Monitor.MaxPassedChecks < 1 {
		errors = append(errors, ValidationError{
			Path:    "monitor.max_passed_checks",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Monitor.MaxPassedChecks),
		})
	}

	return errors
}

func (c *Config) validateResource() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePercent("resource.cpu_threshold_pct", c.Resource.CPUThresholdPct)...)
	errors = append(errors, validatePercent("resource.memory_threshold_pct", c.Resource.MemoryThresholdPct)...)
	errors = append(errors, validatePercent("resource.gpu_threshold_pct", c.Resource.GPUThresholdPct)...)

	if c.Resource.Checks < 1 {
		errors = append(errors, ValidationError{
			Path:    "resource.checks",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Resource.Checks),
		})
	}

	if c.Resource.CheckIntervalS < 1 {
		errors = append(errors, ValidationError{
			Path:    "resource.check_interval_s",
			Message: fmt.Sprintf("must be positive, got %d", c.Resource.CheckIntervalS),
		})
	}

	if c.Resource.MaxChecks < c.Resource.Checks {
		errors = append(errors, ValidationError{
			Path:    "resource.max_checks",
			Message: fmt.Sprintf("must be at least resource.checks (%d), got %d", c.Resource.Checks, c.Resource.MaxChecks),
		})
	}

	return errors
}

func (c *Config) validatePresence() []ValidationError {
	var errors []ValidationError

	if c.Presence.WaitTimeS < 1 {
		errors = append(errors, ValidationError{
			Path:    "presence.wait_time_s",
			Message: fmt.Sprintf("must be positive, got %d", c.Presence.WaitTimeS),
		})
	}

	if c.Presence.CheckCount < 1 {
		errors = append(errors, ValidationError{
			Path:    "presence.check_count",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Presence.CheckCount),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
		})
	}

	if c.Logging.File == "" {
		errors = append(errors, ValidationError{
			Path:    "logging.file",
			Message: "must not be empty",
		})
	}

	return errors
}

func validatePercent(path string, value float64) []ValidationError {
	if value >= 0 && value <= 100 {
		return nil
	}

	return []ValidationError{{
		Path:    path,
		Message: fmt.Sprintf("must be between 0 and 100, got %g", value),
	}}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
