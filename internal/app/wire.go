package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/rojanmagar2001/tabtidy/internal/bookmark"
	"github.com/rojanmagar2001/tabtidy/internal/dispatch"
	"github.com/rojanmagar2001/tabtidy/internal/infra/report"
	"github.com/rojanmagar2001/tabtidy/internal/ports"
	"github.com/rojanmagar2001/tabtidy/internal/probe"
	"github.com/rojanmagar2001/tabtidy/internal/usecase"
)

type Config struct {
	Input  string
	Output string
	// Format forces both input and output format; empty means detect from
	// each file extension.
	Format     string
	Timeout    time.Duration
	Workers    int
	HeadFirst  bool
	UserAgent  string
	ReportPath string
}

// Run wires the pipeline together and executes one cleaning pass:
// read input -> check every link -> prune -> write output.
func Run(ctx context.Context, cfg Config, stdout io.Writer, log zerolog.Logger) error {
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("input and output paths are required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	inCodec, err := codecFor(cfg.Format, cfg.Input)
	if err != nil {
		return err
	}
	outCodec, err := codecFor(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	tree, err := inCodec.Decode(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("read bookmarks: %w", err)
	}

	var store ports.ReportStore = report.Noop{}
	if cfg.ReportPath != "" {
		s, err := report.OpenSQLite(cfg.ReportPath)
		if err != nil {
			return err
		}
		store = s
	}
	defer store.Close()

	prober := probe.New(cfg.Timeout, cfg.HeadFirst, cfg.UserAgent)
	disp := dispatch.New(prober, log)
	cleaner := usecase.NewCleaner(disp, store, usecase.Options{
		Timeout: cfg.Timeout,
		Workers: cfg.Workers,
		Source:  cfg.Input,
	}, log)

	pruned, sum, err := cleaner.Run(ctx, tree)
	if err != nil {
		return err
	}

	if err := writeAtomic(cfg.Output, func(w io.Writer) error {
		return outCodec.Encode(w, pruned)
	}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(stdout, "Checked %d links. Kept: %d  Dead: %d  (%.1fs)\n",
		sum.Checked, sum.Reachable, sum.Dead, sum.Elapsed.Seconds())
	return nil
}

func codecFor(format, path string) (bookmark.Codec, error) {
	f := bookmark.Format(format)
	if format == "" {
		var err error
		f, err = bookmark.DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}
	return bookmark.CodecFor(f)
}

// writeAtomic encodes into a temp file next to path and renames it into
// place, so a failed run never leaves a partially written output file.
func writeAtomic(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tabtidy-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
