// Package scheduler implements the scheduler command: recurring
// catch-up passes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsharvest/cmd/common"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler [source...]",
		Short: "Run recurring catch-up passes on the configured cron schedule",
		Long: `Run one catch-up pass immediately, then repeat on the configured
cron schedule until interrupted. With no arguments every configured
source is scheduled.`,
		RunE: runScheduler,
	}
}

func runScheduler(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	targets := deps.Registry.All()
	if len(args) > 0 {
		targets = targets[:0]
		for _, name := range args {
			src, getErr := deps.Registry.Get(name)
			if getErr != nil {
				return getErr
			}
			targets = append(targets, src)
		}
	}

	ctx := cmd.Context()
	pass := func() {
		runPass(ctx, deps, targets)
	}

	// The first pass runs immediately; cron only covers the repeats.
	pass()

	c := cron.New()
	if _, err = c.AddFunc(deps.Config.Crawler.Cron, pass); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", deps.Config.Crawler.Cron, err)
	}

	deps.Logger.Info("Scheduler started", "cron", deps.Config.Crawler.Cron)
	c.Start()

	<-ctx.Done()
	deps.Logger.Info("Shutdown signal received")

	// Let an in-flight pass finish before exiting.
	stopCtx := c.Stop()
	<-stopCtx.Done()

	deps.Logger.Info("Scheduler stopped")
	return nil
}

func runPass(ctx context.Context, deps *common.Deps, targets []sources.Source) {
	for _, src := range targets {
		if ctx.Err() != nil {
			return
		}
		if _, err := deps.Crawler.Run(ctx, src); err != nil {
			deps.Logger.Error("Crawl pass failed",
				"source", src.Name(), "error", err)
		}
	}
}
