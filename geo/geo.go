package geo

import (
	"math"
)

// EarthRadius is the mean earth radius in meters.
const EarthRadius = 6371000.0

type Line []Pos

// Length in meters along the line
func (l Line) Length() float64 {
	var total float64
	for i, pos := range l {
		if i == 0 {
			continue
		}
		total += l[i-1].Distance(pos)
	}
	return total
}

// Bounds returns the south-west and north-east corners of the line.
func (l Line) Bounds() (min, max Pos) {
	for i, pos := range l {
		if i == 0 {
			min, max = pos, pos
			continue
		}
		min.Lat = math.Min(min.Lat, pos.Lat)
		min.Lon = math.Min(min.Lon, pos.Lon)
		max.Lat = math.Max(max.Lat, pos.Lat)
		max.Lon = math.Max(max.Lon, pos.Lon)
	}
	return min, max
}

func MergeLines(lines []Line) Line {
	var totalLen int
	for _, s := range lines {
		totalLen += len(s)
	}
	tmp := make(Line, totalLen)
	var i int
	for _, s := range lines {
		i += copy(tmp[i:], s)
	}
	return tmp
}

type Pos struct {
	Lat, Lon, Ele float64
}

// Distance in meters to another location (only considering lat and lon)
func (p1 Pos) Distance(p2 Pos) float64 {
	return Distance(p1, p2)
}

// Distance is the great-circle (haversine) distance in meters between a and b on a
// spherical earth. Elevation is ignored.
func Distance(a, b Pos) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dphi := phi2 - phi1
	dlambda := radians(b.Lon - a.Lon)

	sinPhi := math.Sin(dphi / 2)
	sinLambda := math.Sin(dlambda / 2)

	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(d float64) float64 {
	return d * math.Pi / 180
}
