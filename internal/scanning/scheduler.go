package scanning

import (
	"context"
	"sync"

	"github.com/portsight/portsight/internal/logging"
	"github.com/portsight/portsight/internal/metrics"
)

// Scheduler fans out probes for one target under a fixed concurrency
// ceiling and assembles the ordered observation list. It owns no state
// beyond the observations it is collecting.
type Scheduler struct {
	prober      Prober
	concurrency int
	log         *logging.Logger
}

// NewScheduler creates a scheduler running at most concurrency probes
// at once. A limit below one is clamped to one.
func NewScheduler(prober Prober, concurrency int, log *logging.Logger) *Scheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logging.Default()
	}
	return &Scheduler{
		prober:      prober,
		concurrency: concurrency,
		log:         log,
	}
}

// Scan probes every port in ports against address and returns exactly
// one observation per requested port, sorted ascending by port number.
// Slow or failing probes never block or cancel their siblings. An empty
// port list yields an empty result, not an error.
//
// The only error Scan returns is ctx.Err(): when the context is
// canceled, in-flight probes wind down and the partial result is
// discarded rather than handed back incomplete.
func (s *Scheduler) Scan(ctx context.Context, address string, ports []int) ([]PortObservation, error) {
	if len(ports) == 0 {
		return []PortObservation{}, nil
	}

	workers := s.concurrency
	if workers > len(ports) {
		workers = len(ports)
	}

	var (
		mu           sync.Mutex
		wg           sync.WaitGroup
		observations = make([]PortObservation, 0, len(ports))
	)

	m := metrics.GetGlobal()
	jobs := make(chan int)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobs {
				m.ProbeStarted()
				obs := s.prober.Probe(ctx, address, port)
				m.ProbeFinished(string(obs.Status), obs.ResponseTimeMs, obs.Banner != nil)

				mu.Lock()
				observations = append(observations, obs)
				mu.Unlock()

				s.log.Debug("probe finished",
					"address", address,
					"port", port,
					"status", string(obs.Status),
					"elapsed_ms", obs.ResponseTimeMs)
			}
		}()
	}

feed:
	for _, port := range ports {
		select {
		case jobs <- port:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortObservations(observations)
	return observations, nil
}
