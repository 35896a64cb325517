package trackdata

import (
	"fmt"
	"math"

	"github.com/dave/gpxtools/geo"
)

// Segment is a run of points recorded without a break, in recording order.
type Segment struct {
	Points []Point
}

// Start is the first point. The segment must not be empty.
func (s Segment) Start() Point {
	return s.Points[0]
}

// End is the last point. The segment must not be empty.
func (s Segment) End() Point {
	return s.Points[len(s.Points)-1]
}

// Line returns the positions of the segment's points.
func (s Segment) Line() geo.Line {
	line := make(geo.Line, len(s.Points))
	for i, p := range s.Points {
		line[i] = p.Pos()
	}
	return line
}

// Length in meters. Segments with fewer than two points have no length.
func (s Segment) Length() float64 {
	return s.Line().Length()
}

// Index of the first point equal to p, or -1.
func (s Segment) Index(p Point) int {
	for i, q := range s.Points {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}

func (s Segment) Contains(p Point) bool {
	return s.Index(p) >= 0
}

// Elevations returns the elevation of every point. It fails on the first point without
// one.
func (s Segment) Elevations() ([]float64, error) {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		if p.Ele == nil {
			return nil, &MissingElevationError{Index: i, Point: p}
		}
		out[i] = *p.Ele
	}
	return out, nil
}

// MinElevation is the lowest elevation of the points that have one.
func (s Segment) MinElevation() (float64, error) {
	return s.elevationBound(math.Min)
}

// MaxElevation is the highest elevation of the points that have one.
func (s Segment) MaxElevation() (float64, error) {
	return s.elevationBound(math.Max)
}

func (s Segment) elevationBound(pick func(a, b float64) float64) (float64, error) {
	var out float64
	var found bool
	for _, p := range s.Points {
		if p.Ele == nil {
			continue
		}
		if !found {
			out, found = *p.Ele, true
			continue
		}
		out = pick(out, *p.Ele)
	}
	if !found {
		return 0, ErrNoElevationData
	}
	return out, nil
}

// ElevationGain is the sum of all climbs between consecutive points.
func (s Segment) ElevationGain() (float64, error) {
	gain, _, err := s.gainLoss()
	return gain, err
}

// ElevationLoss is the sum of all descents between consecutive points, as a positive
// number.
func (s Segment) ElevationLoss() (float64, error) {
	_, loss, err := s.gainLoss()
	return loss, err
}

func (s Segment) gainLoss() (gain, loss float64, err error) {
	elevations, err := s.Elevations()
	if err != nil {
		return 0, 0, err
	}
	for i := 1; i < len(elevations); i++ {
		delta := elevations[i] - elevations[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	return gain, loss, nil
}

// ElevationChanges returns the significant climbs and descents of the segment, see
// ElevationChanges.
func (s Segment) ElevationChanges(fuzz float64) ([]float64, error) {
	elevations, err := s.Elevations()
	if err != nil {
		return nil, err
	}
	return ElevationChanges(elevations, fuzz), nil
}

// Split divides the segment at p. Both halves contain p, so each stays walkable on its
// own: the first ends at p and the second starts at it.
func (s Segment) Split(p Point) (Segment, Segment, error) {
	index := s.Index(p)
	if index < 0 {
		return Segment{}, Segment{}, fmt.Errorf("splitting segment at (%v, %v): %w", p.Lat, p.Lon, ErrPointNotFound)
	}
	a := Segment{Points: clonePoints(s.Points[:index+1])}
	b := Segment{Points: clonePoints(s.Points[index:])}
	return a, b, nil
}

func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.clone()
	}
	return out
}
