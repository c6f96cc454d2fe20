package config

// NewEngineForTest creates an Engine config for testing purposes
func NewEngineForTest(ttlMinutes, maxPending, maxCreations int, disabled bool, threshold float64, maxDuplicates int) *Engine {
	return &Engine{
		ttlMinutes:         ttlMinutes,
		maxPendingPerUser:  maxPending,
		maxCreationsHourly: maxCreations,
		rateLimitDisabled:  disabled,
		duplicateThreshold: threshold,
		maxDuplicates:      maxDuplicates,
	}
}

// SetPolicyPath sets the policy file path for testing purposes
func (e *Engine) SetPolicyPath(path string) {
	e.policyPath = path
}

// NewDupfinderForTest creates a Dupfinder config for testing purposes
func NewDupfinderForTest(url, apiKey string) *Dupfinder {
	return &Dupfinder{url: url, apiKey: apiKey}
}

// NewITSMForTest creates an ITSM config for testing purposes
func NewITSMForTest(url, apiKey string) *ITSM {
	return &ITSM{url: url, apiKey: apiKey}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
