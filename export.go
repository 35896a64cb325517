package main

import (
	"fmt"

	"github.com/dave/gpxtools/export"
	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "convert a file to kml or geojson",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "kml or geojson",
				Value: "kml",
			},
			outputFlag(true),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input file, got %d", c.NArg())
			}
			return exportFile(c.Args().First(), c.String("output"), c.String("format"))
		},
	}
}

func exportFile(fpath, out, format string) error {
	if format != "kml" && format != "geojson" {
		return fmt.Errorf("unknown export format %q", format)
	}
	if err := checkOutput(out); err != nil {
		return err
	}
	g, err := trackdata.Load(fpath)
	if err != nil {
		return err
	}
	switch format {
	case "kml":
		return output(out, export.SaveKML(out, stem(fpath), g))
	default:
		return output(out, export.SaveGeoJSON(out, g))
	}
}
