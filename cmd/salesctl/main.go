// Command salesctl runs reports, exports and account maintenance against the
// sale log database without going through the HTTP API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "salesctl",
		Short: "Sale log maintenance tool",
		Long: `salesctl reads the same configuration as the server (environment and .env).

Commands:
  report         print the dashboard report as tables
  export         write the sales export to a file
  seed-admin     create or reset an admin account and seed the catalog
  hash-password  print a bcrypt hash for a password
  dlq            list dead-lettered handover jobs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(seedAdminCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(dlqCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
