// Command civicctl runs operator tasks against the CityPulse database:
// promoting admins, loading demo data and auditing issue locations.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dsn string

func main() {
	_ = godotenv.Load(".env.local")

	root := &cobra.Command{
		Use:           "civicctl",
		Short:         "Operator tools for the CityPulse backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (defaults to DATABASE_URL)")

	root.AddCommand(promoteCmd(), seedCmd(), auditLocationsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func requireDSN() error {
	if dsn == "" {
		return fmt.Errorf("missing --dsn (or DATABASE_URL)")
	}
	return nil
}
