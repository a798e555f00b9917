package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/core/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>...",
	Short: "Map free-text location names onto monitored areas",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	mappings := resolve.New().ResolveAll(args)
	for _, name := range args {
		m, ok := mappings[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		fmt.Printf("%-40s -> %-25s %.2f (%s)\n", name, m.Area, m.Confidence, m.Reason)
	}
	return nil
}
