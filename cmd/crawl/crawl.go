// Package crawl implements the crawl command: one catch-up pass over
// the named sources.
package crawl

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsharvest/cmd/common"
	"github.com/jonesrussell/newsharvest/internal/domain"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

// Command returns the crawl command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl [source...]",
		Short: "Run one catch-up pass over the named sources",
		Long: `Run one full catch-up pass over each named source, in order.
With no arguments every configured source is crawled.`,
		RunE: runCrawl,
	}
}

func runCrawl(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	targets, err := resolveTargets(deps, args)
	if err != nil {
		return err
	}

	reports := make([]*domain.CrawlReport, 0, len(targets))
	var failed error
	for _, src := range targets {
		report, runErr := deps.Crawler.Run(cmd.Context(), src)
		reports = append(reports, report)
		if runErr != nil {
			// Remaining sources still run; the last failure is returned.
			failed = fmt.Errorf("source %s: %w", src.Name(), runErr)
		}
	}

	renderReports(reports)
	return failed
}

func resolveTargets(deps *common.Deps, args []string) ([]sources.Source, error) {
	if len(args) == 0 {
		return deps.Registry.All(), nil
	}

	targets := make([]sources.Source, 0, len(args))
	for _, name := range args {
		src, err := deps.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, src)
	}
	return targets, nil
}

func renderReports(reports []*domain.CrawlReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Pages", "Inserted", "Existing", "Unqualified", "Failed", "Elapsed"})

	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Source,
			r.PagesFetched,
			r.Inserted,
			r.SkippedExisting,
			r.SkippedUnqualified,
			r.SkippedFailed,
			r.Elapsed.Round(10 * time.Millisecond),
		})
	}

	t.Render()
}
