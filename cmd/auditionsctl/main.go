// Command auditionsctl is the operator CLI: it prints the dashboard
// summary and the leaderboard, and performs the bulk evaluation reset.
// It talks to the record store directly through the same application
// services the HTTP API uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/connectcc/auditions/infrastructure/store"
	"github.com/connectcc/auditions/internal/application"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	confirm := flag.Bool("yes", false, "confirm destructive operations")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := application.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Store.Driver != "postgres" {
		log.Fatalf("auditionsctl requires the postgres store driver, got %q", cfg.Store.Driver)
	}

	contestants, err := store.NewPostgresStore(cfg.Store.DSN)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	dashboard, err := application.NewDashboardService(contestants)
	if err != nil {
		log.Fatalf("dashboard service: %v", err)
	}

	ctx := context.Background()
	switch flag.Arg(0) {
	case "", "dashboard":
		err = printDashboard(ctx, dashboard)
	case "leaderboard":
		err = printLeaderboard(ctx, dashboard)
	case "reset":
		err = runReset(ctx, dashboard, *confirm)
	default:
		log.Fatalf("unknown command %q (expected dashboard, leaderboard or reset)", flag.Arg(0))
	}
	if err != nil {
		log.Fatal(err)
	}
}

func printDashboard(ctx context.Context, dashboard *application.DashboardService) error {
	summary, err := dashboard.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}

	color.Cyan("\n=== Audition Dashboard ===")
	fmt.Printf("Total contestants:  %d\n", summary.Total)
	fmt.Printf("Evaluated:          %d\n", summary.Evaluated)
	fmt.Printf("Not evaluated:      %d\n", summary.NotEvaluated)
	fmt.Printf("Average score:      %.2f%%\n", summary.AverageScorePercent)

	color.Yellow("\nPreferred Position Distribution")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Position", "Count"})
	for _, bucket := range summary.PositionDistribution {
		table.Append([]string{bucket.Position, fmt.Sprintf("%d", bucket.Count)})
	}
	table.Render()
	return nil
}

func printLeaderboard(ctx context.Context, dashboard *application.DashboardService) error {
	board, err := dashboard.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	color.Yellow("\nLeaderboard")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Roll", "Name", "Position", "Score"})
	for i, record := range board {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			record.Roll,
			record.Name,
			record.PreferredPosition,
			fmt.Sprintf("%.2f", *record.Score),
		})
	}
	table.Render()
	return nil
}

func runReset(ctx context.Context, dashboard *application.DashboardService, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("reset clears every saved evaluation; re-run with -yes to confirm")
	}
	if err := dashboard.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset failed, evaluations are unchanged: %w", err)
	}
	color.Green("All evaluations cleared.")
	return nil
}
