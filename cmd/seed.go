package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/resolve"
	"github.com/Ishaq7892/trafficsense/infra/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register the monitored areas, circles and their lanes",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedCoordinates places each monitored area on the map. Values are
// approximate city coordinates, good enough for display.
var seedCoordinates = map[string][2]float64{
	"Mysore Palace Area": {12.3052, 76.6552},
	"Gokulam":            {12.3372, 76.6249},
	"Jayalakshmipuram":   {12.3301, 76.6305},
	"Vijayanagar":        {12.3189, 76.6697},
	"KRS Road":           {12.3541, 76.6132},
	"Chamundi Hill Road": {12.2724, 76.6736},
	"Bannimantap":        {12.3318, 76.6601},
	"Kuvempunagar":       {12.2901, 76.6233},
	"Hebbal":             {12.3496, 76.6860},
	"Saraswathipuram":    {12.2985, 76.6343},
}

// seedCircles are the monitored circular intersections. Each gets four
// lanes, one per approach direction.
var seedCircles = []model.Area{
	{Name: "Devegowda Circle", Category: model.CategoryCentral, Latitude: 12.3127, Longitude: 76.6498},
	{Name: "Metagalli Signal Junction", Category: model.CategoryMixed, Latitude: 12.3438, Longitude: 76.6284},
	{Name: "LIC Circle", Category: model.CategoryCommercial, Latitude: 12.3095, Longitude: 76.6471},
	{Name: "Krishnarajendra Circle Post Office", Category: model.CategoryCentral, Latitude: 12.3075, Longitude: 76.6526},
	{Name: "Basavanahalli Junction", Category: model.CategoryResidential, Latitude: 12.3224, Longitude: 76.6390},
}

var laneDirections = []struct {
	position  model.LanePosition
	direction string
}{
	{model.Lane1, "north"},
	{model.Lane2, "east"},
	{model.Lane3, "south"},
	{model.Lane4, "west"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("seed-command").Errorf("service close: %v", err)
		}
	}()

	seeded := 0
	for _, profile := range resolve.Profiles() {
		coords := seedCoordinates[profile.Name]
		area := model.Area{
			ID:        uuid.NewString(),
			Name:      profile.Name,
			Category:  profile.Category,
			Region:    "Mysuru",
			Latitude:  coords[0],
			Longitude: coords[1],
		}
		if _, err := svc.Store.AreaByName(ctx, area.Name); err == nil {
			continue
		}
		if err := svc.Store.InsertArea(ctx, area); err != nil {
			return fmt.Errorf("insert area %s: %w", area.Name, err)
		}
		seeded++
	}

	for _, circle := range seedCircles {
		if _, err := svc.Store.AreaByName(ctx, circle.Name); err == nil {
			continue
		}
		circle.ID = uuid.NewString()
		circle.Region = "Mysuru"
		circle.IsCircle = true
		circle.LaneCount = len(laneDirections)
		if err := svc.Store.InsertArea(ctx, circle); err != nil {
			return fmt.Errorf("insert circle %s: %w", circle.Name, err)
		}
		for _, ld := range laneDirections {
			lane := model.Lane{
				ID:        uuid.NewString(),
				AreaID:    circle.ID,
				Position:  ld.position,
				Name:      fmt.Sprintf("%s %s approach", circle.Name, ld.direction),
				Direction: ld.direction,
			}
			if err := svc.Store.InsertLane(ctx, lane); err != nil {
				return fmt.Errorf("insert lane %s: %w", lane.Name, err)
			}
		}
		seeded++
	}

	fmt.Printf("Seeded %d new areas.\n", seeded)
	return nil
}
