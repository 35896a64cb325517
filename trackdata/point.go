package trackdata

import (
	"github.com/dave/gpxtools/geo"
)

// Point is a track point or waypoint. Ele and Time are nil when the recording has no
// value for them.
type Point struct {
	Lat, Lon float64
	Ele      *float64
	Time     *string
}

// NewPoint returns a point with an elevation.
func NewPoint(lat, lon, ele float64) Point {
	return Point{Lat: lat, Lon: lon, Ele: &ele}
}

// Equal reports whether p and q hold the same coordinates, elevation and timestamp.
func (p Point) Equal(q Point) bool {
	if p.Lat != q.Lat || p.Lon != q.Lon {
		return false
	}
	if (p.Ele == nil) != (q.Ele == nil) || p.Ele != nil && *p.Ele != *q.Ele {
		return false
	}
	if (p.Time == nil) != (q.Time == nil) || p.Time != nil && *p.Time != *q.Time {
		return false
	}
	return true
}

// Pos converts to a geo position. A missing elevation becomes 0.
func (p Point) Pos() geo.Pos {
	pos := geo.Pos{Lat: p.Lat, Lon: p.Lon}
	if p.Ele != nil {
		pos.Ele = *p.Ele
	}
	return pos
}

// Distance in meters between a and b.
func Distance(a, b Point) float64 {
	return geo.Distance(a.Pos(), b.Pos())
}

// clone copies the optional fields so the result shares no memory with p.
func (p Point) clone() Point {
	out := Point{Lat: p.Lat, Lon: p.Lon}
	if p.Ele != nil {
		ele := *p.Ele
		out.Ele = &ele
	}
	if p.Time != nil {
		tm := *p.Time
		out.Time = &tm
	}
	return out
}
