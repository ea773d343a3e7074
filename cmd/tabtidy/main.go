package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rojanmagar2001/tabtidy/internal/app"
	"github.com/rojanmagar2001/tabtidy/internal/config"
	"github.com/rojanmagar2001/tabtidy/internal/logger"
)

var (
	timeout    time.Duration
	workers    int
	format     string
	headFirst  bool
	userAgent  string
	reportPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "tabtidy <input> <output>",
	Short: "Remove dead links from browser bookmark exports",
	Long: `tabtidy checks every URL in a bookmark file concurrently and writes a
pruned copy containing only reachable links, with folders that end up
empty removed. JSON and Netscape HTML exports are supported.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Flags win over config file and environment.
		flags := cmd.Flags()
		if flags.Changed("timeout") {
			cfg.Timeout = timeout
		}
		if flags.Changed("workers") {
			cfg.Workers = workers
		}
		if flags.Changed("head-first") {
			cfg.HeadFirst = headFirst
		}
		if flags.Changed("user-agent") {
			cfg.UserAgent = userAgent
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.New(cfg.LogLevel, cfg.LogFormat)

		return app.Run(cmd.Context(), app.Config{
			Input:      args[0],
			Output:     args[1],
			Format:     format,
			Timeout:    cfg.Timeout,
			Workers:    cfg.Workers,
			HeadFirst:  cfg.HeadFirst,
			UserAgent:  cfg.UserAgent,
			ReportPath: reportPath,
		}, cmd.OutOrStdout(), log)
	},
}

func init() {
	rootCmd.Flags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "per-URL check timeout")
	rootCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "max concurrent checks")
	rootCmd.Flags().StringVar(&format, "format", "", "bookmark format: json or netscape (default: detect from extension)")
	rootCmd.Flags().BoolVar(&headFirst, "head-first", true, "try HEAD before GET (fallback to GET if needed)")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header for checks")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "append run history to this sqlite database")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
