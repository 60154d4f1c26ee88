package pinger

import "time"

// Status is the outcome of the last ping of one component.
type Status struct {
	IsReady      bool          `json:"ready"`
	IsHealthy    bool          `json:"healthy"`
	LastRun      time.Time     `json:"lastRun"`
	LastLatency  time.Duration `json:"lastLatency"`
	LastError    string        `json:"lastError,omitempty"`
	SuccessCount int           `json:"successCount"`
	ErrorCount   int           `json:"errorCount"`
}

// stats is the mutable record behind Status, guarded by Service.mu.
type stats struct {
	lastRun      time.Time
	lastLatency  time.Duration
	lastErr      error
	successCount int
	errorCount   int
}

func (st *stats) record(now time.Time, latency time.Duration, err error) {
	st.lastRun = now
	st.lastLatency = latency
	st.lastErr = err

	if err != nil {
		st.errorCount++

		return
	}

	st.successCount++
}

// status derives readiness and health. A critical pinger that has not run yet
// counts as failing.
func (st *stats) status(info *pingerInfo) Status {
	ok := !st.lastRun.IsZero() && st.lastErr == nil

	out := Status{
		IsReady:      !info.readyCritical || ok,
		IsHealthy:    !info.healthCritical || ok,
		LastRun:      st.lastRun,
		LastLatency:  st.lastLatency,
		SuccessCount: st.successCount,
		ErrorCount:   st.errorCount,
	}

	if st.lastErr != nil {
		out.LastError = st.lastErr.Error()
	}

	return out
}
