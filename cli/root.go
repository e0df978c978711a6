// Package cli wires the investpro commands: the HTTP server and terminal renditions of
// the stock list, detail view, market overview and chat assistant.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var engine string

	root := &cobra.Command{
		Use:   "investpro",
		Short: "Mock investment dashboard: stock list, market overview and a scripted assistant",
		Long: `investpro serves a fixed catalog of equities with search, sector filtering and
sorting, a market overview and a keyword-driven chat assistant.

Configuration comes from the environment (or a .env file):
  PORT, HOST, ENVIRONMENT, LOG_LEVEL, SEARCH_ENGINE, CATALOG_PATH, MARKET_PATH,
  CHAT_SCRIPT_PATH, CHAT_MIN_DELAY, CHAT_MAX_DELAY, SESSION_TTL, SESSION_LIMIT,
  ALLOWED_ORIGINS`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&engine, "engine", "", "search engine override (memory|bleve)")

	root.AddCommand(
		newServeCommand(&engine),
		newStocksCommand(&engine),
		newShowCommand(&engine),
		newMarketCommand(),
		newChatCommand(),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}
