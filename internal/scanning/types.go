package scanning

import (
	"sort"
	"time"
)

// ResolvedUnknown is the sentinel recorded in TargetReport.Resolved when
// forward resolution of the target fails. The scan still runs, dialing
// the original identifier verbatim.
const ResolvedUnknown = "unresolved"

// PortStatus classifies the outcome of a single port probe. The set is
// closed: every probe ends in exactly one of these four states.
type PortStatus string

const (
	// StatusOpen means the connection completed a full TCP handshake.
	StatusOpen PortStatus = "open"
	// StatusClosed means the remote host actively refused the connection.
	StatusClosed PortStatus = "closed"
	// StatusFiltered means nothing accepted or rejected the connection
	// within the timeout budget, which is what a silently dropping packet
	// filter looks like from a connect scan.
	StatusFiltered PortStatus = "filtered"
	// StatusError covers host- or network-level failures that carry no
	// port-state information (host unreachable, network down).
	StatusError PortStatus = "error"
)

// Valid reports whether s is one of the four defined statuses.
func (s PortStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusFiltered, StatusError:
		return true
	}
	return false
}

// PortObservation is the result of probing one port on one target.
// Exactly one observation exists per requested port, regardless of how
// the probe ended.
type PortObservation struct {
	// Port is the probed port number (1-65535).
	Port int `json:"port"`
	// Status is the classified probe outcome.
	Status PortStatus `json:"status"`
	// ResponseTimeMs is the probe's elapsed time. It is recorded for
	// every outcome, not just open ports.
	ResponseTimeMs float64 `json:"response_time_ms"`
	// Banner holds the trimmed service banner, or nil when the port was
	// not open, banner capture is disabled, or the read produced nothing.
	Banner *string `json:"banner"`
}

// TargetReport is the frozen result of scanning one target. Once the
// orchestrator returns it, it is never mutated again.
type TargetReport struct {
	// Target is the original user-supplied identifier, unresolved.
	Target string `json:"target"`
	// Resolved is the address probes dialed, or ResolvedUnknown.
	Resolved string `json:"resolved"`
	// ElapsedMs is the wall-clock duration of this target's own scan.
	ElapsedMs float64 `json:"elapsed_ms"`
	// Observations is sorted ascending by port number.
	Observations []PortObservation `json:"observations"`
}

// OpenObservations returns the subset of observations with open status,
// preserving port order.
func (r *TargetReport) OpenObservations() []PortObservation {
	open := make([]PortObservation, 0, len(r.Observations))
	for _, obs := range r.Observations {
		if obs.Status == StatusOpen {
			open = append(open, obs)
		}
	}
	return open
}

// StatusCounts returns the number of observations per status.
func (r *TargetReport) StatusCounts() map[PortStatus]int {
	counts := make(map[PortStatus]int, 4)
	for _, obs := range r.Observations {
		counts[obs.Status]++
	}
	return counts
}

// SortObservations orders observations ascending by port number. Probes
// complete in arbitrary order under concurrency; a report is not final
// until this sort has run. The sort is deterministic and idempotent.
func SortObservations(obs []PortObservation) {
	sort.Slice(obs, func(i, j int) bool {
		return obs[i].Port < obs[j].Port
	})
}

// Config holds the engine settings for one scan run.
type Config struct {
	// Timeout bounds each individual probe: the dial, the banner write,
	// and the banner read each get this budget.
	Timeout time.Duration
	// Concurrency caps in-flight probes per target.
	Concurrency int
	// TargetConcurrency caps how many targets are scanned at once.
	TargetConcurrency int
	// BannerBytes is the banner read budget. Zero disables capture.
	BannerBytes int
}

// Engine defaults. Applied by withDefaults for any zero-valued field.
const (
	DefaultTimeout           = 2 * time.Second
	DefaultConcurrency       = 100
	DefaultTargetConcurrency = 4
	DefaultBannerBytes       = 128
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Concurrency < 1 {
		c.Concurrency = DefaultConcurrency
	}
	if c.TargetConcurrency < 1 {
		c.TargetConcurrency = DefaultTargetConcurrency
	}
	if c.BannerBytes < 0 {
		c.BannerBytes = 0
	}
	return c
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
