package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"coinops/internal/bank"
	"coinops/internal/terminal"
)

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Run the interactive ATM menu on stdin/stdout",
	RunE:  runTerminal,
}

func init() {
	rootCmd.AddCommand(terminalCmd)
}

func runTerminal(cmd *cobra.Command, _ []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := bank.NewLedger(bank.WithLogger(logger))
	return terminal.New(ledger, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
}
