package main

import (
	"fmt"

	"github.com/dave/gpxtools/chart"
	"github.com/dave/gpxtools/tiler"
	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func tileCommand() *cli.Command {
	return &cli.Command{
		Name:      "tile",
		Usage:     "render a map tile png of the tracks and waypoints",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "zoom",
				Aliases:  []string{"z"},
				Usage:    "tile zoom level",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "x",
				Usage: "tile column, defaults to the tile holding the first track point",
			},
			&cli.IntFlag{
				Name:  "y",
				Usage: "tile row, defaults to the tile holding the first track point",
			},
			outputFlag(true),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input file, got %d", c.NArg())
			}
			var at *[2]int
			if c.IsSet("x") || c.IsSet("y") {
				at = &[2]int{c.Int("x"), c.Int("y")}
			}
			return tile(c.Args().First(), c.String("output"), c.Int("zoom"), at)
		},
	}
}

// tile renders tile z/at, or the tile holding the first track point when at is nil.
func tile(fpath, out string, z int, at *[2]int) error {
	if err := checkOutput(out); err != nil {
		return err
	}
	g, err := trackdata.Load(fpath)
	if err != nil {
		return err
	}
	var x, y int
	if at != nil {
		x, y = at[0], at[1]
	} else {
		points := g.TrackPoints()
		if len(points) == 0 {
			return fmt.Errorf("choosing a tile for %q: %w", fpath, trackdata.ErrNoPointsAvailable)
		}
		x, y = tiler.TileFor(points[0].Lat, points[0].Lon, z)
	}
	logf("rendering tile %d/%d/%d\n", z, x, y)
	return output(out, tiler.SaveTile(out, g, z, x, y))
}

func chartCommand() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "render the elevation profile as a png",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "image width in pixels",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "image height in pixels",
				Value: 400,
			},
			outputFlag(true),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input file, got %d", c.NArg())
			}
			return drawChart(c.Args().First(), c.String("output"), c.Int("width"), c.Int("height"))
		},
	}
}

func drawChart(fpath, out string, width, height int) error {
	if err := checkOutput(out); err != nil {
		return err
	}
	g, err := trackdata.Load(fpath)
	if err != nil {
		return err
	}
	return output(out, chart.Save(out, g, width, height))
}
