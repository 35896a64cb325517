package trackdata

import (
	"fmt"
)

// Enrich copies elevation and timestamp from the track points of data onto the track
// points of target at the same position, compared to six decimal places. Points of data
// without a value clear it on the target. It returns how many target points matched.
func Enrich(target, data *GPX) int {
	lookup := map[string]Point{}
	for _, p := range data.TrackPoints() {
		lookup[positionKey(p)] = p
	}
	var count int
	for ti := range target.Tracks {
		for si := range target.Tracks[ti].Segments {
			points := target.Tracks[ti].Segments[si].Points
			for pi := range points {
				source, ok := lookup[positionKey(points[pi])]
				if !ok {
					continue
				}
				copied := source.clone()
				points[pi].Ele = copied.Ele
				points[pi].Time = copied.Time
				count++
			}
		}
	}
	logf("enriched %d of %d points\n", count, len(target.TrackPoints()))
	return count
}

func positionKey(p Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}
