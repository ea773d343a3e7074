package report

import (
	"context"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// Noop discards run records. Used when no report database is configured.
type Noop struct{}

func (Noop) SaveRun(context.Context, domain.RunRecord, []domain.Outcome) error { return nil }

func (Noop) Close() error { return nil }
