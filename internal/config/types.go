package config

// Config represents the complete idlewatch configuration.
// A Config is immutable after construction; debug adjustments are applied
// once via WithDebugOverrides, producing a second value.
type Config struct {
	Monitor  MonitorConfig  `yaml:"monitor"`
	Resource ResourceConfig `yaml:"resource"`
	Presence PresenceConfig `yaml:"presence"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    bool           `yaml:"-"`
}

// MonitorConfig holds the outer-loop timing and termination caps
type MonitorConfig struct {
	// RunningDurationS is the total allowed running length in seconds,
	// accumulated by the inter-cycle sleeps
	RunningDurationS int `yaml:"running_duration_s"`

	// SleepModeLengthS is the inter-cycle sleep duration in seconds
	SleepModeLengthS int `yaml:"sleep_mode_length_s"`

	// MaxPassedChecks is the number of absent-but-idle cycles allowed
	// before the monitor terminates
	MaxPassedChecks int `yaml:"max_passed_checks"`
}

// ResourceConfig holds the utilization thresholds and hysteresis bounds
type ResourceConfig struct {
	// CPUThresholdPct is the CPU utilization (%) at or above which a
	// sample votes "busy"
	CPUThresholdPct float64 `yaml:"cpu_threshold_pct"`

	// MemoryThresholdPct is the memory utilization (%) at or above which
	// a sample votes "busy"
	MemoryThresholdPct float64 `yaml:"memory_threshold_pct"`

	// GPUThresholdPct is the GPU utilization (%) at or above which a
	// sample votes "busy"; only consulted when GPU data is available
	GPUThresholdPct float64 `yaml:"gpu_threshold_pct"`

	// Checks is the net vote count required to commit to a busy or idle
	// verdict
	Checks int `yaml:"checks"`

	// CheckIntervalS is the sleep between samples in seconds
	CheckIntervalS int `yaml:"check_interval_s"`

	// MaxChecks bounds the total samples per verdict in case votes keep
	// rebounding between busy and idle
	MaxChecks int `yaml:"max_checks"`
}

// PresenceConfig holds the input-activity polling parameters
type PresenceConfig struct {
	// WaitTimeS is the sleep before each presence poll in seconds
	WaitTimeS int `yaml:"wait_time_s"`

	// CheckCount is the number of polls per presence check
	CheckCount int `yaml:"check_count"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
