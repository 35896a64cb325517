package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dave/gpxtools/trackdata"
	"github.com/urfave/cli/v2"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "print a tab separated elevation profile row per segment",
		ArgsUsage: "files...",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "fuzz",
				Usage:   "elevation changes smaller than this are folded into their neighbours",
				Value:   trackdata.DefaultFuzz,
				EnvVars: []string{"GPXTOOLS_FUZZ"},
			},
			&cli.IntFlag{
				Name:    "round",
				Usage:   "decimal places elevations are rounded to, negative rounds to tens, hundreds...",
				Value:   -1,
				EnvVars: []string{"GPXTOOLS_ROUND"},
			},
		},
		Action: func(c *cli.Context) error {
			return report(os.Stdout, c.Args().Slice(), c.Float64("fuzz"), c.Int("round"))
		},
	}
}

// report writes filename, segment number, last elevation, max elevation, elevation
// changes, gain, loss and length in km for every segment of every file.
func report(w io.Writer, files []string, fuzz float64, round int) error {
	for _, fpath := range files {
		g, err := trackdata.Load(fpath)
		if err != nil {
			return err
		}
		for i, s := range g.Segments() {
			row, err := trackdata.Profile(s, fuzz)
			if err != nil {
				return fmt.Errorf("profiling %q segment %d: %w", fpath, i+1, err)
			}
			fields := []string{
				fpath,
				fmt.Sprint(i + 1),
				trackdata.FormatElevation(row.Last, round, false),
				trackdata.FormatElevation(row.Max, round, false),
				"'" + trackdata.FormatChanges(row.Changes, round),
				trackdata.FormatElevation(row.Gain, round, false),
				trackdata.FormatElevation(row.Loss, round, false),
				fmt.Sprintf("%.1f", row.Length/1000),
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}
	}
	return nil
}
