package cli

import (
	"fmt"
	"io"
	"strings"

	"investpro/models"
	"investpro/search"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStocksCommand(engine *string) *cobra.Command {
	var (
		text   string
		sector string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "stocks",
		Short: "List stocks, optionally searched, filtered by sector and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := search.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			_, a, err := setup(*engine, true)
			if err != nil {
				return err
			}
			defer a.close()

			d := a.newDashboard()
			defer d.Close()

			stocks := d.Visible(search.Query{Text: text, Sector: sector, SortBy: key})
			out := cmd.OutOrStdout()
			if len(stocks) == 0 {
				fmt.Fprintln(out, "No stocks match.")
				fmt.Fprintf(out, "Sectors: %s\n", strings.Join(d.Sectors(), ", "))
				return nil
			}
			renderStocks(out, stocks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "search symbol or name")
	cmd.Flags().StringVar(&sector, "sector", search.AllSectors, "sector filter")
	cmd.Flags().StringVar(&sortBy, "sort", string(search.SortBySymbol), "sort key (symbol|price|change|volume)")
	return cmd
}

func renderStocks(w io.Writer, stocks []models.Stock) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Symbol", "Name", "Price", "Change", "Volume", "Sector", "Recommendation", "Suggested", "Risk"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, s := range stocks {
		table.Append([]string{
			s.ID,
			s.Symbol,
			s.Name,
			money(s.Price),
			change(s),
			s.Volume,
			s.Sector,
			recommendation(s.Recommendation),
			money(s.SuggestedInvestment),
			risk(s.RiskLevel),
		})
	}
	table.Render()
}

func newShowCommand(engine *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <symbol|id>",
		Short: "Show the detail view of one stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := setup(*engine, true)
			if err != nil {
				return err
			}
			defer a.close()

			d := a.newDashboard()
			defer d.Close()

			key := args[0]
			if s := a.engine.GetBySymbol(key); s != nil {
				key = s.ID
			}
			stock, err := d.Select(key)
			if err != nil {
				return err
			}
			renderDetail(cmd.OutOrStdout(), stock)
			d.Dismiss()
			return nil
		},
	}
}

func renderDetail(w io.Writer, s models.Stock) {
	fmt.Fprintf(w, "%s  %s\n%s\n\n", s.Symbol, s.Name, strings.Repeat("-", len(s.Symbol)+2+len(s.Name)))

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.AppendBulk([][]string{
		{"Price", money(s.Price)},
		{"Change", change(s)},
		{"Volume", s.Volume},
		{"Market Cap", "$" + s.MarketCap},
		{"Sector", s.Sector},
		{"Recommendation", recommendation(s.Recommendation)},
		{"Suggested Investment", money(s.SuggestedInvestment)},
		{"Risk Level", risk(s.RiskLevel)},
		{"Analyst Rating", rating(s.AnalystRating)},
	})
	table.Render()
}
