package trackdata

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/gpxtools/gpx"
)

// Load reads and converts a gpx file, or a kml file when the name ends in .kml.
func Load(fpath string) (*GPX, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", fpath, err)
	}
	defer f.Close()
	parse := Parse
	if strings.EqualFold(filepath.Ext(fpath), ".kml") {
		parse = ParseKML
	}
	g, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", fpath, err)
	}
	logf("loaded %q: %d tracks, %d segments, %d waypoints\n", fpath, len(g.Tracks), len(g.Segments()), len(g.Waypoints))
	return g, nil
}

// Parse reads and converts a gpx document. Broken xml fails with ErrMalformedInput.
func Parse(r io.Reader) (*GPX, error) {
	root, err := gpx.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return FromRoot(root)
}

// Encode writes g as a gpx document.
func (g *GPX) Encode(w io.Writer) error {
	return g.Root().Encode(w)
}

// Save writes g to a new file. An existing file is never overwritten.
func (g *GPX) Save(fpath string) error {
	if err := g.Root().Save(fpath); err != nil {
		return err
	}
	logf("saved %q: %d tracks, %d segments, %d waypoints\n", fpath, len(g.Tracks), len(g.Segments()), len(g.Waypoints))
	return nil
}

// FromRoot converts a decoded document. Points without valid lat and lon attributes
// fail with ErrMalformedInput. An empty or NaN elevation is treated as absent.
func FromRoot(root gpx.Root) (*GPX, error) {
	g := &GPX{}
	for i, w := range root.Waypoints {
		p, err := fromWaypoint(w)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		g.Waypoints = append(g.Waypoints, p)
	}
	for ti, t := range root.Tracks {
		var track Track
		for si, s := range t.Segments {
			segment := Segment{Points: make([]Point, 0, len(s.Points))}
			for pi, w := range s.Points {
				p, err := fromWaypoint(w)
				if err != nil {
					return nil, fmt.Errorf("track %d segment %d point %d: %w", ti, si, pi, err)
				}
				segment.Points = append(segment.Points, p)
			}
			track.Segments = append(track.Segments, segment)
		}
		g.Tracks = append(g.Tracks, track)
	}
	return g, nil
}

// Root converts g for encoding.
func (g *GPX) Root() gpx.Root {
	var root gpx.Root
	for _, p := range g.Waypoints {
		root.Waypoints = append(root.Waypoints, toWaypoint(p))
	}
	for _, t := range g.Tracks {
		var track gpx.Track
		for _, s := range t.Segments {
			segment := gpx.TrackSegment{Points: make([]gpx.Waypoint, 0, len(s.Points))}
			for _, p := range s.Points {
				segment.Points = append(segment.Points, toWaypoint(p))
			}
			track.Segments = append(track.Segments, segment)
		}
		root.Tracks = append(root.Tracks, track)
	}
	return root
}

func fromWaypoint(w gpx.Waypoint) (Point, error) {
	lat, err := parseCoordinate("lat", w.Lat)
	if err != nil {
		return Point{}, err
	}
	lon, err := parseCoordinate("lon", w.Lon)
	if err != nil {
		return Point{}, err
	}
	p := Point{Lat: lat, Lon: lon}
	if w.Ele != nil && strings.TrimSpace(*w.Ele) != "" {
		ele, err := strconv.ParseFloat(strings.TrimSpace(*w.Ele), 64)
		if err != nil {
			return Point{}, fmt.Errorf("elevation %q: %w", *w.Ele, ErrMalformedInput)
		}
		if !math.IsNaN(ele) {
			p.Ele = &ele
		}
	}
	if w.Time != nil {
		tm := strings.TrimSpace(*w.Time)
		if tm != "" {
			p.Time = &tm
		}
	}
	return p, nil
}

func parseCoordinate(name, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("missing %s attribute: %w", name, ErrMalformedInput)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s attribute %q: %w", name, value, ErrMalformedInput)
	}
	return v, nil
}

func toWaypoint(p Point) gpx.Waypoint {
	w := gpx.Waypoint{
		Lat: formatFloat(p.Lat),
		Lon: formatFloat(p.Lon),
	}
	if p.Ele != nil {
		ele := formatFloat(*p.Ele)
		w.Ele = &ele
	}
	if p.Time != nil {
		tm := *p.Time
		w.Time = &tm
	}
	return w
}

// formatFloat prints the shortest decimal that parses back to v, never in exponent
// form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
