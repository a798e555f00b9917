package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/infra/logger"
)

var trendHours int

var trendCmd = &cobra.Command{
	Use:   "trend <area name>",
	Short: "Show per-lane congestion trends for an area",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().IntVar(&trendHours, "hours", 3, "hours ahead to inspect (1-24)")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if trendHours < 1 || trendHours > 24 {
		return fmt.Errorf("hours must be between 1 and 24")
	}

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("trend-command").Errorf("service close: %v", err)
		}
	}()

	name := args[0]
	area, err := svc.Store.AreaByName(ctx, name)
	if err != nil {
		mapping := svc.Resolver.Resolve(name)
		area, err = svc.Store.AreaByName(ctx, mapping.Area)
		if err != nil {
			return fmt.Errorf("area %q not found (mapped to %q)", name, mapping.Area)
		}
	}

	lanes, err := svc.Store.Lanes(ctx, area.ID)
	if err != nil {
		return err
	}
	if len(lanes) == 0 {
		fmt.Printf("No lanes registered for %s.\n", area.Name)
		return nil
	}

	fmt.Printf("Congestion trend for %s over the next %d hours\n", area.Name, trendHours)
	for _, lane := range lanes {
		trend, _, err := svc.Lanes.Trend(ctx, lane.ID, trendHours)
		if err != nil {
			logger.New("trend-command").Errorf("trend for lane %s: %v", lane.ID, err)
			continue
		}
		fmt.Printf("  %-10s %-25s %s\n", lane.Position, lane.Name, trendSymbol(trend))
	}
	return nil
}

func trendSymbol(t model.Trend) string {
	switch t {
	case model.TrendIncreasing:
		return "increasing"
	case model.TrendDecreasing:
		return "decreasing"
	default:
		return "stable"
	}
}
