package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/gpxtools/trackdata"
)

// DefaultFormat names per segment files after the input file and the segment number.
const DefaultFormat = "%s_%03d.gpx"

var (
	// ErrOutputExists is returned instead of overwriting a file.
	ErrOutputExists = errors.New("output file already exists")
	// ErrInvalidFormat is returned for a per segment name format that does not use its
	// arguments, or does not give each segment its own name.
	ErrInvalidFormat = errors.New("invalid name format")
)

// checkOutput fails early when fpath is taken, before any work is done.
func checkOutput(fpath string) error {
	if _, err := os.Stat(fpath); err == nil {
		return fmt.Errorf("%q: %w", fpath, ErrOutputExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %q: %w", fpath, err)
	}
	return nil
}

// output converts the exclusive-create failure of the writers into ErrOutputExists.
func output(fpath string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%q: %w", fpath, ErrOutputExists)
	}
	return err
}

func saveGPX(g *trackdata.GPX, fpath string) error {
	return output(fpath, g.Save(fpath))
}

// saveSegments writes one file per segment of g, named by format from the stem of
// source. All names are checked before anything is written.
func saveSegments(g *trackdata.GPX, source, format string) ([]string, error) {
	if err := checkFormat(format, source); err != nil {
		return nil, err
	}
	files := g.SegmentFiles()
	names := make([]string, len(files))
	for i := range files {
		names[i] = segmentName(format, source, i)
		if err := checkOutput(names[i]); err != nil {
			return nil, err
		}
	}
	for i, f := range files {
		if err := saveGPX(f, names[i]); err != nil {
			return names[:i], err
		}
	}
	return names, nil
}

// segmentName fills format with the file name of source without its extension and
// the zero based segment number.
func segmentName(format, source string, n int) string {
	return fmt.Sprintf(format, stem(source), n)
}

// checkFormat rejects a format that fmt cannot fill with a string and an int, and one
// that gives segments 0 and 1 the same name.
func checkFormat(format, source string) error {
	first, second := segmentName(format, source, 0), segmentName(format, source, 1)
	if strings.Contains(first, "%!") && !strings.Contains(stem(source), "%!") {
		return fmt.Errorf("%q gives %q: %w", format, first, ErrInvalidFormat)
	}
	if first == second {
		return fmt.Errorf("%q names every segment %q: %w", format, first, ErrInvalidFormat)
	}
	return nil
}

func stem(fpath string) string {
	base := filepath.Base(fpath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// withSuffix replaces the extension of fpath, keeping its directory.
func withSuffix(fpath, suffix string) string {
	return strings.TrimSuffix(fpath, filepath.Ext(fpath)) + suffix
}
