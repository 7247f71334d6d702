package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vbonduro/truckfest/internal/logging"
	"github.com/vbonduro/truckfest/internal/web"
)

var (
	// Global flags
	envFile    string
	jsonOutput bool
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "truckfest",
		Short: "Food truck festival planner",
		Long: `truckfest keeps the festival's food trucks, event schedule, vendor
inventories and logistics plans, and serves them over a JSON API.

Configuration comes from the environment (LISTEN_ADDR, KV_BACKEND, DB_PATH,
DATA_DIR, LOG_LEVEL, LOG_FILE, RESTOCK_THRESHOLD) and an optional .env file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to read before the environment")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newOverviewCommand())
	rootCmd.AddCommand(newRestockCommand())
	rootCmd.AddCommand(newResetCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			server := web.NewServer(a.planner, a.metrics, a.cfg.RestockThreshold, logging.Component(a.logger, "web"))
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR)")
	return cmd
}

func newOverviewCommand() *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the festival summary figures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.RestockThreshold
			}
			o := a.planner.Overview(threshold)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), o)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			rows := []struct {
				label string
				value int
			}{
				{"Food trucks", o.TotalTrucks},
				{"Eco-friendly trucks", o.EcoFriendlyTrucks},
				{"Menu items", o.TotalMenuItems},
				{"Events", o.TotalEvents},
				{"Ticketed events", o.TicketedEvents},
				{"Entertainment types", o.EntertainmentTypes},
				{"Inventories", o.TotalInventories},
				{"Inventories with perishables", o.PerishableInventories},
				{fmt.Sprintf("Items needing restock (<= %d)", o.RestockThreshold), o.ItemsNeedingRestock},
				{"Logistics plans", o.TotalPlans},
				{"Security-cleared plans", o.SecurityClearedPlans},
				{"Parking zones in use", o.ParkingZonesInUse},
			}
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%d\n", row.label, row.value)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "restock threshold (default RESTOCK_THRESHOLD)")
	return cmd
}

func newRestockCommand() *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "restock",
		Short: "List inventory items at or below the restock threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.RestockThreshold
			}
			report := a.planner.Restock(threshold)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TRUCK\tSUPPLIER\tITEM\tQUANTITY\tUNIT")
			for _, e := range report {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.TruckName, e.SupplierName, e.Item.ItemName, e.Item.Quantity, e.Item.Unit)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "restock threshold (default RESTOCK_THRESHOLD)")
	return cmd
}

func newResetCommand() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every truck, event, inventory and plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete all records without --yes")
			}
			a, err := newApp(envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			a.planner.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "All records deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting all records")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
