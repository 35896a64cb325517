package main

import (
	"fmt"

	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func splitCommand() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "write every segment to its own file",
		ArgsUsage: "files...",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			for _, fpath := range c.Args().Slice() {
				if _, err := split(fpath, c.String("format")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func split(fpath, format string) ([]string, error) {
	g, err := trackdata.Load(fpath)
	if err != nil {
		return nil, err
	}
	return saveSegments(g, fpath, format)
}

func splitPointsCommand() *cli.Command {
	return &cli.Command{
		Name:      "split-points",
		Usage:     "split the track at the point nearest to each waypoint",
		ArgsUsage: "file",
		Flags:     []cli.Flag{outputFlag(false), formatFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input file, got %d", c.NArg())
			}
			_, err := splitPoints(c.Args().First(), c.String("output"), c.String("format"))
			return err
		},
	}
}

// splitPoints writes the split track to out, or one file per segment when out is
// empty.
func splitPoints(fpath, out, format string) ([]string, error) {
	if out != "" {
		if err := checkOutput(out); err != nil {
			return nil, err
		}
	}
	g, err := trackdata.Load(fpath)
	if err != nil {
		return nil, err
	}
	if err := g.SplitAtWaypoints(); err != nil {
		return nil, fmt.Errorf("splitting %q: %w", fpath, err)
	}
	if out != "" {
		if err := saveGPX(g, out); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}
	return saveSegments(g, fpath, format)
}
