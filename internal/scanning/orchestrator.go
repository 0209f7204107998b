package scanning

import (
	"context"
	"sync"
	"time"

	"github.com/portsight/portsight/internal/logging"
	"github.com/portsight/portsight/internal/metrics"
)

// Orchestrator runs the resolve/scan pipeline for a batch of targets.
// Targets are independent: one target's resolution failure or slowness
// has no effect on any other target's scan.
type Orchestrator struct {
	cfg    Config
	prober Prober
	log    *logging.Logger
}

// NewOrchestrator creates an orchestrator using the production
// ConnectProber configured from cfg.
func NewOrchestrator(cfg Config, log *logging.Logger) *Orchestrator {
	cfg = cfg.withDefaults()
	return NewOrchestratorWithProber(cfg, &ConnectProber{
		Timeout:     cfg.Timeout,
		BannerBytes: cfg.BannerBytes,
	}, log)
}

// NewOrchestratorWithProber creates an orchestrator with a caller
// supplied prober.
func NewOrchestratorWithProber(cfg Config, prober Prober, log *logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.Default()
	}
	return &Orchestrator{
		cfg:    cfg.withDefaults(),
		prober: prober,
		log:    log,
	}
}

// Run scans every target against every port and returns one report per
// target, in the same order the targets were supplied. A batch of N
// targets and M ports always produces exactly N*M observations; nothing
// a remote host does can fail the run.
//
// The only error Run returns is ctx.Err(). On cancellation the partial
// reports are discarded rather than returned incomplete.
func (o *Orchestrator) Run(ctx context.Context, targets []string, ports []int) ([]TargetReport, error) {
	o.log.Info("starting scan batch",
		"targets", len(targets),
		"ports", len(ports),
		"concurrency", o.cfg.Concurrency,
		"timeout", o.cfg.Timeout.String())

	reports := make([]TargetReport, len(targets))
	sem := make(chan struct{}, o.cfg.TargetConcurrency)
	var wg sync.WaitGroup

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			reports[i] = o.scanTarget(ctx, target, ports)
		}(i, target)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		o.log.Warn("scan batch canceled", "error", err)
		return nil, err
	}

	o.log.Info("scan batch complete", "targets", len(targets))
	return reports, nil
}

// scanTarget runs the per-target pipeline: resolve once, scan all
// ports, freeze the report. ElapsedMs covers this target only, not the
// whole batch.
func (o *Orchestrator) scanTarget(ctx context.Context, target string, ports []int) TargetReport {
	start := time.Now()
	report := TargetReport{
		Target:       target,
		Observations: []PortObservation{},
	}

	report.Resolved = Resolve(ctx, target)
	address := report.Resolved
	if address == ResolvedUnknown {
		address = target
	}

	log := o.log.WithTarget(target)
	log.Info("scanning target", "resolved", report.Resolved, "ports", len(ports))

	scheduler := NewScheduler(o.prober, o.cfg.Concurrency, o.log)
	observations, err := scheduler.Scan(ctx, address, ports)
	if err != nil {
		// Canceled; Run discards the whole batch.
		return report
	}

	report.Observations = observations
	report.ElapsedMs = msSince(start)

	counts := report.StatusCounts()
	o.log.InfoScan("target scan complete", target,
		"elapsed_ms", report.ElapsedMs,
		"open", counts[StatusOpen],
		"closed", counts[StatusClosed],
		"filtered", counts[StatusFiltered],
		"errors", counts[StatusError])

	metrics.GetGlobal().TargetScanned(time.Since(start))
	return report
}
