package main

import (
	"fmt"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"github.com/spf13/cobra"
)

func promoteCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "promote <email>",
		Short: "Set a user's role (admin by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDSN(); err != nil {
				return err
			}
			if role != utils.RoleAdmin && role != utils.RoleUser {
				return fmt.Errorf("role must be %q or %q", utils.RoleAdmin, utils.RoleUser)
			}

			db.Connect(dsn)
			email := strings.ToLower(strings.TrimSpace(args[0]))
			store := auth.NewGormUserStore(db.DB)
			if err := store.SetRole(cmd.Context(), email, role); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", email, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", utils.RoleAdmin, "role to assign: admin or user")
	return cmd
}
