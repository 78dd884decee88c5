package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketing-api",
		Short: "Ticket and work order lifecycle API",
		Long: `ticketing-api serves the ticket and work order HTTP API.

Running it without a subcommand starts the server. Configuration comes from
.env, an optional YAML file (--config or CONFIG_FILE) and the environment.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	addConfigFlag(rootCmd.PersistentFlags())

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(BootstrapCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
