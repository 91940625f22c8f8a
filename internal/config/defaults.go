package config

// DefaultConfig returns a configuration with production defaults
func DefaultConfig() Config {
	return Config{
		Monitor: MonitorConfig{
			RunningDurationS: 4 * 60 * 60,
			SleepModeLengthS: 900,
			MaxPassedChecks:  3,
		},
		Resource: ResourceConfig{
			CPUThresholdPct:    30,
			MemoryThresholdPct: 55,
			GPUThresholdPct:    90,
			Checks:             3,
			CheckIntervalS:     3,
			MaxChecks:          10,
		},
		Presence: PresenceConfig{
			WaitTimeS:  60,
			CheckCount: 15,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "idlewatch.log",
		},
	}
}

// WithDebugOverrides returns a copy of the configuration with a subset of
// values shortened for fast iteration. The receiver is not modified.
func (c Config) WithDebugOverrides() Config {
	c.Debug = true
	c.Monitor.RunningDurationS = 30
	c.Monitor.SleepModeLengthS = 5
	c.Resource.CPUThresholdPct = 10
	c.Presence.WaitTimeS = 2
	c.Presence.CheckCount = 5
	c.Logging.Level = "debug"
	return c
}
