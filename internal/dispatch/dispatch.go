package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
	"github.com/rojanmagar2001/tabtidy/internal/ports"
)

// Dispatcher fans probe work out across a fixed-size pool of workers.
type Dispatcher struct {
	prober ports.Prober
	log    zerolog.Logger
}

func New(prober ports.Prober, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{prober: prober, log: log}
}

// Dispatch probes every request with at most maxWorkers checks in flight at
// once and returns one outcome per request, keyed by identity. Requests are
// admitted in input order; completion order is unspecified. A slow or hung
// probe only occupies its own worker slot until its timeout fires, it never
// stalls siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, requests []domain.CheckRequest, maxWorkers int) domain.OutcomeSet {
	out := make(domain.OutcomeSet, len(requests))
	if len(requests) == 0 {
		return out
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	workers := min(maxWorkers, len(requests))

	jobs := make(chan domain.CheckRequest)
	results := make(chan domain.Outcome, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for req := range jobs {
				results <- d.probeOne(ctx, req)
			}
		}()
	}

	go func() {
		for _, req := range requests {
			jobs <- req
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Write-once per identity: every request carries a distinct ID, so no
	// two workers ever produce the same key.
	for res := range results {
		out[res.ID] = res
	}
	return out
}

// probeOne shields the batch from a misbehaving probe: a panic while
// checking one URL degrades to an unreachable outcome for that URL only.
func (d *Dispatcher) probeOne(ctx context.Context, req domain.CheckRequest) (res domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("url", req.URL).Interface("panic", r).Msg("probe fault")
			res = domain.Outcome{
				ID:     req.ID,
				URL:    req.URL,
				Reason: fmt.Sprintf("internal fault: %v", r),
			}
		}
	}()

	res = d.prober.Probe(ctx, req)
	res.ID = req.ID
	return res
}
