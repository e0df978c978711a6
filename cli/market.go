package cli

import (
	"fmt"
	"io"

	"investpro/models"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newMarketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Print the market overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, a, err := setup("", true)
			if err != nil {
				return err
			}
			defer a.close()

			d := a.newDashboard()
			defer d.Close()

			renderMarket(cmd.OutOrStdout(), d.Market())
			return nil
		},
	}
}

func renderMarket(w io.Writer, overview models.MarketOverview) {
	indices := tablewriter.NewWriter(w)
	indices.SetHeader([]string{"Index", "Value", "Change"})
	indices.SetAutoWrapText(false)
	indices.SetBorder(false)
	for _, index := range overview.Indices {
		paint := color.Red
		if index.IsPositive {
			paint = color.Green
		}
		indices.Append([]string{
			index.Name,
			index.Value,
			paint.Sprintf("%s (%s)", index.Change, index.ChangePercent),
		})
	}
	indices.Render()
	fmt.Fprintln(w)

	stats := tablewriter.NewWriter(w)
	stats.SetAutoWrapText(false)
	stats.SetBorder(false)
	stats.SetColumnSeparator("")
	for _, stat := range overview.Stats {
		stats.Append([]string{stat.Label, stat.Value})
	}
	stats.Render()

	if overview.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", overview.Summary)
	}
}
