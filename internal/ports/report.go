package ports

import (
	"context"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// ReportStore persists run history. Reports are append-only: nothing is ever
// read back to influence a later run, every run re-checks every URL.
type ReportStore interface {
	SaveRun(ctx context.Context, rec domain.RunRecord, outcomes []domain.Outcome) error
	Close() error
}
