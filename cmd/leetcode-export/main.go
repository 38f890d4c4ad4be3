package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"leetcode-export/internal/config"
	"leetcode-export/internal/di"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts        config.Options
		output      string
		count       int
		pageSize    int
		listDelay   time.Duration
		detailDelay time.Duration
		format      string
		schedule    string
	)

	cmd := &cobra.Command{
		Use:           "leetcode-export",
		Short:         "Export LeetCode problems to a JSON file",
		Long:          `Lists LeetCode problem slugs through the GraphQL API, fetches each problem's details and writes them as one JSON array.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("output") {
				opts.OutputFile = &output
			}
			if flags.Changed("count") {
				opts.DesiredCount = &count
			}
			if flags.Changed("page-size") {
				opts.PageSize = &pageSize
			}
			if flags.Changed("list-delay") {
				opts.ListDelay = &listDelay
			}
			if flags.Changed("detail-delay") {
				opts.DetailDelay = &detailDelay
			}
			if flags.Changed("format") {
				opts.DescriptionFormat = &format
			}
			if flags.Changed("schedule") {
				opts.ScheduleCron = &schedule
			}

			application, err := di.InitializeApp(opts)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML settings file")
	flags.StringVarP(&output, "output", "o", "", "Output JSON file")
	flags.IntVarP(&count, "count", "n", 0, "Number of problems to export")
	flags.IntVar(&pageSize, "page-size", 0, "Problems requested per listing page")
	flags.DurationVar(&listDelay, "list-delay", 0, "Pause between listing pages (e.g. 800ms)")
	flags.DurationVar(&detailDelay, "detail-delay", 0, "Pause between detail requests (e.g. 500ms)")
	flags.StringVar(&format, "format", "", "Description format: text or markdown")
	flags.StringVar(&schedule, "schedule", "", "Cron spec to keep re-exporting on")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	return cmd
}
