package main

import (
	"fmt"

	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func joinCommand() *cli.Command {
	return &cli.Command{
		Name:      "join",
		Usage:     "merge the segments and waypoints of several files into a single track",
		ArgsUsage: "files...",
		Flags:     []cli.Flag{outputFlag(true)},
		Action: func(c *cli.Context) error {
			return join(c.Args().Slice(), c.String("output"))
		},
	}
}

func join(files []string, out string) error {
	if err := checkOutput(out); err != nil {
		return err
	}
	gpxs, err := loadAll(files)
	if err != nil {
		return err
	}
	joined := trackdata.Join(gpxs...)
	logf("joined %d files into %d segments\n", len(gpxs), len(joined.Segments()))
	return saveGPX(joined, out)
}

func sequenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "sequence",
		Usage:     "join files and reorder all segments into one continuous path",
		ArgsUsage: "files...",
		Flags:     []cli.Flag{outputFlag(true)},
		Action: func(c *cli.Context) error {
			return sequence(c.Args().Slice(), c.String("output"))
		},
	}
}

func sequence(files []string, out string) error {
	if err := checkOutput(out); err != nil {
		return err
	}
	gpxs, err := loadAll(files)
	if err != nil {
		return err
	}
	sequenced, err := trackdata.Join(gpxs...).Sequenced()
	if err != nil {
		return fmt.Errorf("sequencing: %w", err)
	}
	return saveGPX(sequenced, out)
}

func loadAll(files []string) ([]*trackdata.GPX, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files: %w", trackdata.ErrEmptyInput)
	}
	var gpxs []*trackdata.GPX
	for _, fpath := range files {
		g, err := trackdata.Load(fpath)
		if err != nil {
			return nil, err
		}
		gpxs = append(gpxs, g)
	}
	return gpxs, nil
}
