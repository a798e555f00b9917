package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/infra/ingest"
	"github.com/Ishaq7892/trafficsense/infra/logger"
)

var importLanes bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a CSV of traffic records",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importLanes, "lanes", false, "treat the file as lane-level records")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("import-command").Errorf("service close: %v", err)
		}
	}()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	importer := ingest.New(svc.Store, svc.Store, svc.Resolver, logger.New("import"))
	var result ingest.Result
	if importLanes {
		result, err = importer.ImportLaneRecords(ctx, f)
	} else {
		result, err = importer.ImportAreaRecords(ctx, f)
	}
	for _, skip := range result.Skipped {
		fmt.Printf("line %d skipped: %s\n", skip.Line, skip.Reason)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d records (%d skipped).\n", result.Inserted, len(result.Skipped))
	return nil
}
