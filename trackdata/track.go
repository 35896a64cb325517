package trackdata

import (
	"errors"
	"fmt"
	"math"
)

// Track is one recorded route. Its segments need not join up.
type Track struct {
	Segments []Segment
}

// GPX is the root of a loaded file: tracks plus standalone waypoints.
type GPX struct {
	Tracks    []Track
	Waypoints []Point
}

func (t Track) Length() float64 {
	var total float64
	for _, s := range t.Segments {
		total += s.Length()
	}
	return total
}

func (t Track) MinElevation() (float64, error) {
	return boundOf(t.Segments, Segment.MinElevation, math.Min)
}

func (t Track) MaxElevation() (float64, error) {
	return boundOf(t.Segments, Segment.MaxElevation, math.Max)
}

func (t Track) ElevationGain() (float64, error) {
	return sumOf(t.Segments, Segment.ElevationGain)
}

func (t Track) ElevationLoss() (float64, error) {
	return sumOf(t.Segments, Segment.ElevationLoss)
}

func (t Track) ElevationChanges(fuzz float64) ([]float64, error) {
	var out []float64
	for i, s := range t.Segments {
		changes, err := s.ElevationChanges(fuzz)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, changes...)
	}
	return out, nil
}

// Contains reports whether any segment holds p.
func (t Track) Contains(p Point) bool {
	for _, s := range t.Segments {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Split returns a copy of the track with the first segment containing p replaced by its
// two halves. The other segments keep their order.
func (t Track) Split(p Point) (Track, error) {
	for n, s := range t.Segments {
		if !s.Contains(p) {
			continue
		}
		a, b, err := s.Split(p)
		if err != nil {
			return Track{}, err
		}
		segments := make([]Segment, 0, len(t.Segments)+1)
		segments = append(segments, t.Segments[:n]...)
		segments = append(segments, a, b)
		segments = append(segments, t.Segments[n+1:]...)
		return Track{Segments: segments}, nil
	}
	return Track{}, fmt.Errorf("splitting track at (%v, %v): %w", p.Lat, p.Lon, ErrPointNotFound)
}

// Segments lists the segments of all tracks in order.
func (g *GPX) Segments() []Segment {
	var out []Segment
	for _, t := range g.Tracks {
		out = append(out, t.Segments...)
	}
	return out
}

// TrackPoints lists the points of all segments in order.
func (g *GPX) TrackPoints() []Point {
	var out []Point
	for _, s := range g.Segments() {
		out = append(out, s.Points...)
	}
	return out
}

func (g *GPX) Length() float64 {
	var total float64
	for _, t := range g.Tracks {
		total += t.Length()
	}
	return total
}

func (g *GPX) MinElevation() (float64, error) {
	return boundOf(g.Segments(), Segment.MinElevation, math.Min)
}

func (g *GPX) MaxElevation() (float64, error) {
	return boundOf(g.Segments(), Segment.MaxElevation, math.Max)
}

func (g *GPX) ElevationGain() (float64, error) {
	return sumOf(g.Segments(), Segment.ElevationGain)
}

func (g *GPX) ElevationLoss() (float64, error) {
	return sumOf(g.Segments(), Segment.ElevationLoss)
}

func (g *GPX) ElevationChanges(fuzz float64) ([]float64, error) {
	var out []float64
	for i, t := range g.Tracks {
		changes, err := t.ElevationChanges(fuzz)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		out = append(out, changes...)
	}
	return out, nil
}

// Split splits the first track containing p at p.
func (g *GPX) Split(p Point) error {
	for n, t := range g.Tracks {
		if !t.Contains(p) {
			continue
		}
		split, err := t.Split(p)
		if err != nil {
			return err
		}
		tracks := make([]Track, len(g.Tracks))
		copy(tracks, g.Tracks)
		tracks[n] = split
		g.Tracks = tracks
		return nil
	}
	return fmt.Errorf("splitting gpx at (%v, %v): %w", p.Lat, p.Lon, ErrPointNotFound)
}

// SplitAtWaypoints splits the tracks at the track point nearest to each waypoint, in
// waypoint order.
func (g *GPX) SplitAtWaypoints() error {
	for i, w := range g.Waypoints {
		p, err := Nearest(w, g.Tracks)
		if err != nil {
			return fmt.Errorf("locating waypoint %d: %w", i, err)
		}
		debugf("waypoint %d (%v, %v) -> track point (%v, %v)\n", i, w.Lat, w.Lon, p.Lat, p.Lon)
		if err := g.Split(p); err != nil {
			return fmt.Errorf("splitting at waypoint %d: %w", i, err)
		}
	}
	return nil
}

// SegmentFiles returns one single-track, single-segment GPX per segment, without
// waypoints.
func (g *GPX) SegmentFiles() []*GPX {
	var out []*GPX
	for _, s := range g.Segments() {
		out = append(out, &GPX{Tracks: []Track{{Segments: []Segment{s}}}})
	}
	return out
}

// Join combines the segments of all inputs into a single track, in input order, and
// collects all waypoints.
func Join(gpxs ...*GPX) *GPX {
	var track Track
	out := &GPX{}
	for _, g := range gpxs {
		track.Segments = append(track.Segments, g.Segments()...)
		out.Waypoints = append(out.Waypoints, g.Waypoints...)
	}
	out.Tracks = []Track{track}
	return out
}

// Sequenced returns a single-track GPX with every segment of g chained in travel order,
// see Sequence.
func (g *GPX) Sequenced() (*GPX, error) {
	ordered, err := Sequence(g.Segments())
	if err != nil {
		return nil, err
	}
	return &GPX{
		Tracks:    []Track{{Segments: ordered}},
		Waypoints: g.Waypoints,
	}, nil
}

func sumOf(segments []Segment, f func(Segment) (float64, error)) (float64, error) {
	var total float64
	for i, s := range segments {
		v, err := f(s)
		if err != nil {
			return 0, fmt.Errorf("segment %d: %w", i, err)
		}
		total += v
	}
	return total, nil
}

// boundOf combines per-segment bounds, skipping segments without elevation data.
func boundOf(segments []Segment, f func(Segment) (float64, error), pick func(a, b float64) float64) (float64, error) {
	var out float64
	var found bool
	for _, s := range segments {
		v, err := f(s)
		if errors.Is(err, ErrNoElevationData) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if !found {
			out, found = v, true
			continue
		}
		out = pick(out, v)
	}
	if !found {
		return 0, ErrNoElevationData
	}
	return out, nil
}
