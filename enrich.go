package main

import (
	"fmt"

	"github.com/dave/gpxtools/srtm"
	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func enrichCommand() *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "copy elevation and time from a data track onto matching points of a track",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "track",
				Aliases:  []string{"t"},
				Usage:    "track to enrich",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "track holding elevation and time",
				Required: true,
			},
			outputFlag(false),
		},
		Action: func(c *cli.Context) error {
			return enrich(c.String("track"), c.String("data"), c.String("output"))
		},
	}
}

// enrich writes to out, or next to the track as <name>.with-data.gpx when out is empty.
func enrich(track, data, out string) error {
	if out == "" {
		out = withSuffix(track, ".with-data.gpx")
	}
	if err := checkOutput(out); err != nil {
		return err
	}
	target, err := trackdata.Load(track)
	if err != nil {
		return err
	}
	source, err := trackdata.Load(data)
	if err != nil {
		return err
	}
	trackdata.Enrich(target, source)
	return saveGPX(target, out)
}

func elevateCommand() *cli.Command {
	return &cli.Command{
		Name:      "elevate",
		Usage:     "fill in missing elevations from SRTM data",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "replace every elevation, not only missing ones",
			},
			outputFlag(true),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input file, got %d", c.NArg())
			}
			filler, err := srtm.New()
			if err != nil {
				return err
			}
			return elevate(filler, c.Args().First(), c.String("output"), c.Bool("all"))
		},
	}
}

func elevate(filler *srtm.Filler, fpath, out string, all bool) error {
	if err := checkOutput(out); err != nil {
		return err
	}
	g, err := trackdata.Load(fpath)
	if err != nil {
		return err
	}
	count, err := filler.Fill(g, all)
	if err != nil {
		return fmt.Errorf("filling elevations of %q: %w", fpath, err)
	}
	logf("set %d elevations\n", count)
	return saveGPX(g, out)
}
