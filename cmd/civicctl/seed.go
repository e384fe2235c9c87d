package main

import (
	"fmt"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/donations"
	"github.com/CityPulse/CityPulse-Backend/internal/issues"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"github.com/CityPulse/CityPulse-Backend/internal/seeds"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Load demo users, organizations, issues and donations from YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "internal/seeds/data/demo.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			f, err := seeds.Load(path)
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return fmt.Errorf("seed file validation failed:\n%w", err)
			}
			fmt.Printf("Loaded %d users, %d organizations, %d issues, %d donations from %s\n",
				len(f.Users), len(f.Organizations), len(f.Issues), len(f.Donations), path)

			if dryRun {
				fmt.Println("Dry run complete. No changes made.")
				return nil
			}
			if err := requireDSN(); err != nil {
				return err
			}

			db.Connect(dsn)
			auth.Init()
			orgs.Init()
			issues.Init()
			donations.Init()

			res, err := seeds.Apply(cmd.Context(), db.DB, f)
			if err != nil {
				return err
			}
			fmt.Printf("Created: users=%d organizations=%d issues=%d donations=%d likes=%d\n",
				res.Users, res.Organizations, res.Issues, res.Donations, res.Likes)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")
	return cmd
}
