package scanning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorReportPerTargetInInputOrder(t *testing.T) {
	prober := &countingProber{delay: 2 * time.Millisecond}
	orchestrator := NewOrchestratorWithProber(Config{Concurrency: 8, TargetConcurrency: 3}, prober, nil)

	targets := []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"}
	ports := []int{22, 80, 443}

	reports, err := orchestrator.Run(context.Background(), targets, ports)
	require.NoError(t, err)
	require.Len(t, reports, len(targets))

	for i, report := range reports {
		assert.Equal(t, targets[i], report.Target, "report order must match input order")
		assert.Equal(t, targets[i], report.Resolved, "IP literals resolve to themselves")
		assert.Len(t, report.Observations, len(ports))
		assert.Greater(t, report.ElapsedMs, 0.0)
	}
}

func TestOrchestratorUnresolvableTargetStillScanned(t *testing.T) {
	prober := &countingProber{}
	orchestrator := NewOrchestratorWithProber(Config{Concurrency: 4}, prober, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// .invalid is reserved and never resolves.
	reports, err := orchestrator.Run(ctx, []string{"no-such-host.invalid"}, []int{22, 80, 9999})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "no-such-host.invalid", report.Target)
	assert.Equal(t, ResolvedUnknown, report.Resolved)
	assert.Len(t, report.Observations, 3,
		"resolution failure must degrade, not drop the report")
}

func TestOrchestratorTargetIsolation(t *testing.T) {
	// One target answering error for everything must not taint siblings.
	prober := &countingProber{statusFor: func(port int) PortStatus {
		if port == 80 {
			return StatusOpen
		}
		return StatusClosed
	}}
	orchestrator := NewOrchestratorWithProber(Config{Concurrency: 4, TargetConcurrency: 2}, prober, nil)

	reports, err := orchestrator.Run(context.Background(), []string{"192.0.2.1", "192.0.2.2"}, []int{22, 80})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, report := range reports {
		counts := report.StatusCounts()
		assert.Equal(t, 1, counts[StatusOpen])
		assert.Equal(t, 1, counts[StatusClosed])
	}
}

func TestOrchestratorCancellation(t *testing.T) {
	prober := &countingProber{delay: 20 * time.Millisecond}
	orchestrator := NewOrchestratorWithProber(Config{Concurrency: 2, TargetConcurrency: 1}, prober, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(25 * time.Millisecond)
		cancel()
	}()

	reports, err := orchestrator.Run(ctx, []string{"192.0.2.1", "192.0.2.2"}, sequentialPorts(100))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, reports)
}

func TestOrchestratorZeroPorts(t *testing.T) {
	orchestrator := NewOrchestratorWithProber(Config{}, &countingProber{}, nil)

	reports, err := orchestrator.Run(context.Background(), []string{"192.0.2.1"}, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Observations)
}

// TestOrchestratorEndToEndLoopback runs the real ConnectProber against
// a loopback listener: one open port, two ports with nothing listening.
func TestOrchestratorEndToEndLoopback(t *testing.T) {
	_, openPort := startTestListener(t, "hello from portsight test\r\n")
	closedA := closedTestPort(t)
	closedB := closedTestPort(t)

	cfg := Config{
		Timeout:     time.Second,
		Concurrency: 10,
		BannerBytes: DefaultBannerBytes,
	}
	orchestrator := NewOrchestrator(cfg, nil)

	ports := []int{openPort, closedA, closedB}
	reports, err := orchestrator.Run(context.Background(), []string{"127.0.0.1"}, ports)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "127.0.0.1", report.Resolved)
	assert.Greater(t, report.ElapsedMs, 0.0)
	require.Len(t, report.Observations, 3)

	byPort := make(map[int]PortObservation, 3)
	for _, obs := range report.Observations {
		byPort[obs.Port] = obs
	}

	open := byPort[openPort]
	assert.Equal(t, StatusOpen, open.Status)
	require.NotNil(t, open.Banner)
	assert.Equal(t, "hello from portsight test", *open.Banner)

	assert.Equal(t, StatusClosed, byPort[closedA].Status)
	assert.Equal(t, StatusClosed, byPort[closedB].Status)
}
