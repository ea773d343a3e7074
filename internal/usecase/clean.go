package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rojanmagar2001/tabtidy/internal/dispatch"
	"github.com/rojanmagar2001/tabtidy/internal/domain"
	"github.com/rojanmagar2001/tabtidy/internal/ports"
	"github.com/rojanmagar2001/tabtidy/internal/prune"
)

// Cleaner runs one full validation pass: flatten the tree into check
// requests, dispatch them across the worker pool, prune the tree from the
// outcomes, and append the run to the report store.
type Cleaner struct {
	dispatcher *dispatch.Dispatcher
	report     ports.ReportStore
	timeout    time.Duration
	workers    int
	source     string
	log        zerolog.Logger
}

type Options struct {
	Timeout time.Duration
	Workers int
	// Source labels the run in the report store, typically the input path.
	Source string
}

func NewCleaner(d *dispatch.Dispatcher, report ports.ReportStore, opts Options, log zerolog.Logger) *Cleaner {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Cleaner{
		dispatcher: d,
		report:     report,
		timeout:    opts.Timeout,
		workers:    opts.Workers,
		source:     opts.Source,
		log:        log,
	}
}

// Run returns the pruned tree. Only structural errors in the input tree are
// returned as errors; network failures are folded into the prune decision
// for the affected link. A tree without links makes no network calls.
func (c *Cleaner) Run(ctx context.Context, root *domain.Node) (*domain.Node, domain.RunSummary, error) {
	start := time.Now()

	reqs, err := Flatten(root, c.timeout)
	if err != nil {
		return nil, domain.RunSummary{}, fmt.Errorf("flatten bookmarks: %w", err)
	}
	c.log.Debug().Int("links", len(reqs)).Int("workers", c.workers).Msg("dispatching checks")

	outcomes := domain.OutcomeSet{}
	if len(reqs) > 0 {
		outcomes = c.dispatcher.Dispatch(ctx, reqs, c.workers)
	}

	pruned, st := prune.Prune(root, outcomes)
	if st.Missing > 0 {
		// Every issued request must have exactly one outcome; a gap here
		// means the dispatcher broke that contract.
		c.log.Warn().Int("missing", st.Missing).Msg("links without outcomes were dropped")
	}

	sum := domain.RunSummary{
		Checked:   len(reqs),
		Reachable: st.Kept,
		Dead:      st.Dropped - st.Missing,
		Missing:   st.Missing,
		Elapsed:   time.Since(start),
	}

	rec := domain.RunRecord{StartedAt: start, Source: c.source, Summary: sum}
	if err := c.report.SaveRun(ctx, rec, sortedOutcomes(outcomes)); err != nil {
		c.log.Warn().Err(err).Msg("saving run report failed")
	}

	return pruned, sum, nil
}

func sortedOutcomes(set domain.OutcomeSet) []domain.Outcome {
	out := make([]domain.Outcome, 0, len(set))
	for _, o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
