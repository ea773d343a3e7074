package ports

import (
	"context"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// Prober performs one reachability check. It must always return within the
// request's timeout plus a small overhead and never surface an error: every
// failure mode is folded into an unreachable outcome.
type Prober interface {
	Probe(ctx context.Context, req domain.CheckRequest) domain.Outcome
}
