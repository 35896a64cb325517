package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/dave/gpxtools/scrape"
	"github.com/urfave/cli/v2"
)

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "download every gpx file linked from a web page",
		ArgsUsage: "url",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory to download into",
				Value:   ".",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one url, got %d", c.NArg())
			}
			return fetch(http.DefaultClient, c.Args().First(), c.String("dir"))
		},
	}
}

func fetch(client *http.Client, url, dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}
	written, err := scrape.Fetch(client, url, dir)
	if err != nil {
		return output(dir, err)
	}
	logf("downloaded %d files\n", len(written))
	return nil
}
