package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/config"
	"github.com/rustyeddy/tradedesk/engine"
	"github.com/rustyeddy/tradedesk/journal"
	"github.com/rustyeddy/tradedesk/ledger"
	"github.com/rustyeddy/tradedesk/market"
	"github.com/rustyeddy/tradedesk/pkg/logger"
	"github.com/rustyeddy/tradedesk/session"
	"github.com/rustyeddy/tradedesk/wallet"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the strategy engine and run a trading session",
	Long: `Run an interactive trading session against the strategy engine.

The session mirrors engine executions into the local wallet and trade
history and accepts operator commands on stdin:

  company <name>    select the company the engine should trade
  strategy <name>   select the engine's strategy
  currency <code>   switch the wallet display currency
  undo              undo the most recent trade
  trades            show the selected company's trades
  recent            show recent trades across all companies
  balance           show the wallet balance
  quit              end the session

Example:
  tradedesk run -f tradedesk.yaml --reconnect`,
	RunE: runRun,
}

var (
	runConfigPath string
	runReconnect  bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON; defaults apply if omitted)")
	runCmd.Flags().BoolVar(&runReconnect, "reconnect", false, "redial the engine with backoff when the connection drops")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if runReconnect {
		cfg.Engine.Reconnect = true
	}

	log := logger.New(cfg.Log)

	w, err := wallet.New(cfg.Wallet.Base, cfg.Wallet.Currencies)
	if err != nil {
		return fmt.Errorf("build wallet: %w", err)
	}

	jr, err := openJournals(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jr.Close()

	ctrl := session.New(session.Options{
		Wallet:  w,
		Ledger:  ledger.New(cfg.Session.HistorySize),
		Journal: jr,
		Log:     log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go ctrl.Run(ctx)
	go render(ctx, ctrl)

	if cfg.Engine.Reconnect {
		delay, _ := cfg.Engine.ParseReconnectDelay()
		maxDelay, _ := cfg.Engine.ParseMaxDelay()
		sup := &session.Supervisor{
			Address:      cfg.Engine.Address,
			InitialDelay: delay,
			MaxDelay:     maxDelay,
			Log:          log,
		}
		go sup.Run(ctx, ctrl)
	} else {
		client, err := engine.Dial(cfg.Engine.Address, log)
		if err != nil {
			return fmt.Errorf("connect to engine: %w", err)
		}
		ctrl.AttachSender(client)
		go func() {
			if err := client.Listen(ctx, ctrl.Deliver); err != nil {
				log.WithError(err).Warn("engine connection lost, selections are now no-ops")
			}
			ctrl.AttachSender(nil)
		}()
	}

	fmt.Printf("Session started. Companies: %s. Strategies: %s.\n",
		strings.Join(cfg.Session.Companies, ", "),
		strings.Join(cfg.Session.Strategies, ", "))
	printBalance(ctrl)

	return console(ctx, ctrl)
}

func openJournals(cfg config.JournalConfig) (journal.Journal, error) {
	text, err := journal.NewText(cfg.TradesLog)
	if err != nil {
		return nil, err
	}
	journals := journal.Multi{text}

	switch cfg.Type {
	case "csv":
		csvJournal, err := journal.NewCSV(cfg.TradesFile)
		if err != nil {
			return nil, err
		}
		journals = append(journals, csvJournal)
	case "sqlite":
		db, err := journal.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		journals = append(journals, db)
	}
	return journals, nil
}

// console reads operator commands from stdin until quit or shutdown.
func console(ctx context.Context, ctrl *session.Controller) error {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")

	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		field, rest, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		rest = strings.TrimSpace(rest)

		switch field {
		case "":
		case "company":
			ctrl.SelectCompany(rest)
		case "strategy":
			ctrl.SelectStrategy(rest)
		case "currency":
			ctrl.SelectCurrency(rest)
		case "undo":
			ctrl.Undo()
		case "trades":
			printTrades(ctrl.Current().Company, ctrl.Trades())
		case "recent":
			printTrades("all companies", ctrl.Recent())
		case "balance":
			printBalance(ctrl)
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q (company, strategy, currency, undo, trades, recent, balance, quit)\n", field)
		}
		fmt.Print("> ")
	}
	return sc.Err()
}

// render repaints on refresh signals from the session.
func render(ctx context.Context, ctrl *session.Controller) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-ctrl.RefreshSignals():
			if r.Wallet {
				printBalance(ctrl)
			}
			if r.Trades {
				printTrades(ctrl.Current().Company, ctrl.Trades())
			}
		}
	}
}

func printBalance(ctrl *session.Controller) {
	value, currency, err := ctrl.Balance()
	if err != nil {
		fmt.Printf("Balance unavailable: %v\n", err)
		return
	}
	fmt.Printf("Balance: %.2f %s\n", value, currency)
}

func printTrades(title string, trades []market.Trade) {
	if len(trades) == 0 {
		fmt.Printf("No trades for %s.\n", title)
		return
	}

	fmt.Printf("Trades for %s:\n", title)
	fmt.Printf("  %-8s %-6s %12s %8s  %s\n", "COMPANY", "ACTION", "PRICE", "AMOUNT", "TIMESTAMP")
	for _, t := range trades {
		fmt.Printf("  %-8s %-6s %12.2f %8d  %s\n", t.Company, t.Action, t.Price, t.Amount, t.Timestamp)
	}
}
