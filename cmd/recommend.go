package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/core/route"
	"github.com/Ishaq7892/trafficsense/infra/logger"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score the configured target locations",
	RunE:  runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("recommend-command").Errorf("service close: %v", err)
		}
	}()

	recs, err := svc.Handlers.Recommender.Recommend(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No target locations could be resolved.")
		return nil
	}

	for _, rec := range recs {
		fmt.Printf("%-40s %-8s %s\n", rec.Area, verdictLabel(rec.Verdict), rec.Reason)
		for _, alt := range rec.Alternatives {
			fmt.Printf("    alternative: %s\n", alt)
		}
	}
	return nil
}

func verdictLabel(v route.Verdict) string {
	switch v {
	case route.VerdictAvoid:
		return "AVOID"
	case route.VerdictIdeal:
		return "IDEAL"
	default:
		return "PROCEED"
	}
}
