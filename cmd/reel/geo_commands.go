package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/api"
	"reel/internal/app"
)

func newGeoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "geo <place...>",
		Short: "Geocode place names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			places := make([]string, 0, len(args))
			for _, arg := range args {
				if arg = strings.TrimSpace(arg); arg != "" {
					places = append(places, arg)
				}
			}
			points := application.LocatePlaces(cmd.Context(), places)
			return emit(cmd, ctx, api.FromPoints(points), func(out io.Writer) error {
				fmt.Fprintln(out, renderTable(out, []string{"Place", "Latitude", "Longitude"}, pointRows(points), pointAligns))
				if missing := unlocated(places, points); len(missing) > 0 {
					fmt.Fprintf(out, "Not found: %s\n", strings.Join(missing, ", "))
				}
				return nil
			})
		},
	}
}

// mapResponse is the machine-readable form of the map command.
type mapResponse struct {
	Movies int            `json:"movies"`
	Points []api.GeoPoint `json:"points"`
}

func newMapCommand(ctx *commandContext) *cobra.Command {
	var input titleInput

	cmd := &cobra.Command{
		Use:   "map [title...]",
		Short: "Locate the production countries of a set of titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := input.collect(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			application, err := ctx.moviesApp()
			if err != nil {
				return err
			}
			records, points := application.MapMovies(cmd.Context(), titles)
			resp := mapResponse{Movies: len(records), Points: api.FromPoints(points).Points}
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				fmt.Fprintf(out, "Movies: %d\n", len(records))
				fmt.Fprintln(out, renderTable(out, []string{"Country", "Latitude", "Longitude"}, pointRows(points), pointAligns))
				return nil
			})
		},
	}

	addTitleFlags(cmd, &input)
	return cmd
}

var pointAligns = []columnAlignment{alignLeft, alignRight, alignRight}

func pointRows(points []app.Point) [][]string {
	rows := make([][]string, 0, len(points))
	for _, point := range points {
		rows = append(rows, []string{
			point.Place,
			strconv.FormatFloat(point.Latitude, 'f', 4, 64),
			strconv.FormatFloat(point.Longitude, 'f', 4, 64),
		})
	}
	return rows
}

func unlocated(places []string, points []app.Point) []string {
	found := make(map[string]struct{}, len(points))
	for _, point := range points {
		found[point.Place] = struct{}{}
	}
	var missing []string
	for _, place := range places {
		if _, ok := found[place]; !ok {
			missing = append(missing, place)
		}
	}
	return missing
}
