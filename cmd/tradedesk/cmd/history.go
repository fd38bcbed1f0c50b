package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled trades from a SQLite journal",
	Long: `List trades recorded in a SQLite trade journal.

Example:
  tradedesk history --db trades.db --company AAPL`,
	RunE: runHistory,
}

var (
	historyDBPath  string
	historyCompany string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "trades.db", "path to the SQLite journal")
	historyCmd.Flags().StringVar(&historyCompany, "company", "", "only list trades for this company")
}

func runHistory(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(historyDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	var records []journal.Record
	if historyCompany != "" {
		records, err = j.ListTradesByCompany(historyCompany)
	} else {
		records, err = j.ListTrades()
	}
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	fmt.Printf("%-28s %-8s %-6s %12s %8s  %s\n", "ID", "COMPANY", "ACTION", "PRICE", "AMOUNT", "TIMESTAMP")
	for _, r := range records {
		fmt.Printf("%-28s %-8s %-6s %12.2f %8d  %s\n",
			r.TradeID, r.Company, r.Action, r.Price, r.Amount, r.Timestamp)
	}
	fmt.Printf("\n%d trade(s)\n", len(records))
	return nil
}
