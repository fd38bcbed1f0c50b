package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradedesk",
	Short: "Operator console for an automated trading session",
	Long: `Tradedesk is the operator's console for an automated trading session.

It connects to an external strategy engine, mirrors its trade executions
into a local session (multi-currency wallet plus bounded trade history),
and lets the operator steer the session:
  - Pick the company and strategy the engine should trade
  - Watch the wallet balance in any configured currency
  - Inspect recent trades and undo the last one
  - Keep a best-effort trade journal (text log, CSV, or SQLite)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
