// Package sources implements the sources command for inspecting the
// configured source adapters.
package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsharvest/cmd/common"
)

// Command returns the sources command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured news sources",
	}
	cmd.AddCommand(newListCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Display all configured sources in a table",
		RunE:  runList,
	}
}

func runList(_ *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Exchange", "Pagination", "Page Size"})

	for _, src := range deps.Registry.All() {
		t.AppendRow(table.Row{
			src.Name(),
			src.Exchange(),
			string(src.Pagination()),
			src.PageSize(),
		})
	}

	t.Render()
	return nil
}
