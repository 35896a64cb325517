package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dave/gpxtools/globals"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := Main(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func Main(args []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return newApp().Run(args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "gpxtools",
		Usage:   "Analyze, split, join and reorder GPX track recordings",
		Version: globals.VERSION,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "log",
				Usage:       "log progress to stdout",
				EnvVars:     []string{"GPXTOOLS_LOG"},
				Destination: &globals.LOG,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "log debug details to stdout",
				EnvVars:     []string{"GPXTOOLS_DEBUG"},
				Destination: &globals.DEBUG,
			},
		},
		Commands: []*cli.Command{
			reportCommand(),
			joinCommand(),
			splitCommand(),
			splitPointsCommand(),
			sequenceCommand(),
			enrichCommand(),
			elevateCommand(),
			exportCommand(),
			tileCommand(),
			chartCommand(),
			fetchCommand(),
		},
	}
}

func outputFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "output file, never overwritten",
		Required: required,
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "per segment file name, from the input file name without extension and the segment number",
		Value: DefaultFormat,
	}
}
