package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/infra/logger"
)

var forecastDate string

var forecastCmd = &cobra.Command{
	Use:   "forecast <area name>",
	Short: "Print the 24-hour forecast for an area",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().StringVar(&forecastDate, "date", "", "forecast date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("forecast-command").Errorf("service close: %v", err)
		}
	}()

	target := time.Now()
	if forecastDate != "" {
		target, err = time.Parse("2006-01-02", forecastDate)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", forecastDate)
		}
	}

	name := args[0]
	area, err := svc.Store.AreaByName(ctx, name)
	if err != nil {
		mapping := svc.Resolver.Resolve(name)
		area, err = svc.Store.AreaByName(ctx, mapping.Area)
		if err != nil {
			return fmt.Errorf("area %q not found (mapped to %q)", name, mapping.Area)
		}
		fmt.Printf("Mapped %q to %s (%s)\n", name, area.Name, mapping.Reason)
	}

	predictions, err := svc.Hourly.Forecast(ctx, area.ID, target)
	if err != nil {
		return err
	}

	fmt.Printf("Forecast for %s on %s\n", area.Name, target.Format("2006-01-02"))
	for _, p := range predictions {
		fmt.Printf("  %02d:00  %-6s  density %5.1f  confidence %.2f\n",
			p.Hour, p.Level, p.Density, p.Confidence)
	}
	return nil
}
