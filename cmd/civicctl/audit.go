package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

type badLocation struct {
	ID       string
	Title    string
	Location string
}

func auditLocationsCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit-locations",
		Short: "List issues whose location cannot be placed on the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDSN(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			conn, err := sql.Open("pgx", dsn)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer conn.Close()

			if err := conn.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}

			total, bad, err := scanLocations(ctx, conn)
			if err != nil {
				return err
			}

			for _, b := range bad {
				fmt.Printf("  %s  %-40q  %q\n", b.ID, b.Title, b.Location)
			}
			fmt.Printf("Checked %d issues, %d with invalid locations\n", total, len(bad))

			if strict && len(bad) > 0 {
				return fmt.Errorf("%d issues have invalid locations", len(bad))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any location is invalid")
	return cmd
}

func scanLocations(ctx context.Context, conn *sql.DB) (int, []badLocation, error) {
	rows, err := conn.QueryContext(ctx, `SELECT id, title, location FROM civic.issues ORDER BY created_at`)
	if err != nil {
		return 0, nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var (
		total int
		bad   []badLocation
	)
	for rows.Next() {
		var b badLocation
		if err := rows.Scan(&b.ID, &b.Title, &b.Location); err != nil {
			return 0, nil, fmt.Errorf("scan issue: %w", err)
		}
		total++
		if _, ok := issuemap.ParseLocation(b.Location); !ok {
			bad = append(bad, b)
		}
	}
	return total, bad, rows.Err()
}
