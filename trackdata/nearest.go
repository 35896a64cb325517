package trackdata

import (
	"math"
)

// Nearest returns the track point closest to p. Every point of every segment is
// checked; on a tie the first one found wins.
func Nearest(p Point, tracks []Track) (Point, error) {
	var nearest Point
	var found bool
	min := math.Inf(1)
	for _, t := range tracks {
		for _, s := range t.Segments {
			for _, q := range s.Points {
				if d := Distance(p, q); d < min || !found {
					nearest, min, found = q, d, true
				}
			}
		}
	}
	if !found {
		return Point{}, ErrNoPointsAvailable
	}
	return nearest, nil
}
