package trackdata

import (
	"fmt"
	"math"
	"strings"
)

// DefaultFuzz is the smallest elevation swing (in meters) reported on its own.
const DefaultFuzz = 50.0

// ElevationChanges reduces a series of elevation samples to its significant climbs
// (positive) and descents (negative).
//
// Consecutive deltas of the same sign are merged first, zero joining either side. The
// merged deltas are then folded into a running total: a delta smaller than fuzz, or one
// going the same way as the total, is added to it, anything else closes the total and
// starts a new one. A leading total of exactly zero is dropped.
//
// With fuzz 0 the result sums to the difference between the last and first sample.
// Fewer than two samples give no changes.
func ElevationChanges(samples []float64, fuzz float64) []float64 {
	if len(samples) < 2 {
		return []float64{}
	}
	deltas := make([]float64, len(samples)-1)
	for i := range deltas {
		deltas[i] = samples[i+1] - samples[i]
	}
	return defuzz(simplify(deltas), fuzz)
}

// simplify merges runs of deltas sharing a sign.
func simplify(deltas []float64) []float64 {
	if len(deltas) == 0 {
		return nil
	}
	out := []float64{deltas[0]}
	for _, d := range deltas[1:] {
		last := len(out) - 1
		if d*out[last] >= 0 {
			out[last] += d
		} else {
			out = append(out, d)
		}
	}
	return out
}

// defuzz folds swings smaller than fuzz into their neighbours.
func defuzz(deltas []float64, fuzz float64) []float64 {
	out := []float64{0}
	for _, d := range deltas {
		last := len(out) - 1
		switch {
		case math.Abs(d) < fuzz:
			out[last] += d
		case d*out[last] >= 0:
			out[last] += d
		default:
			out = append(out, d)
		}
	}
	if out[0] == 0 {
		out = out[1:]
	}
	return out
}

// FormatElevation rounds v to precision decimal places (negative precision rounds to
// tens, hundreds, ...; halves go to even) and prints it without decimals. Signed adds a
// leading + to non-negative values.
func FormatElevation(v float64, precision int, signed bool) string {
	var rounded float64
	if precision >= 0 {
		scale := math.Pow(10, float64(precision))
		rounded = math.RoundToEven(v*scale) / scale
	} else {
		scale := math.Pow(10, float64(-precision))
		rounded = math.RoundToEven(v/scale) * scale
	}
	if signed {
		return fmt.Sprintf("%+.0f", rounded)
	}
	return fmt.Sprintf("%.0f", rounded)
}

// FormatChanges prints elevation changes as "+120,-40,+300".
func FormatChanges(changes []float64, precision int) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = FormatElevation(c, precision, true)
	}
	return strings.Join(parts, ",")
}

// ProfileRow summarises the elevation profile of one segment.
type ProfileRow struct {
	Last    float64   // elevation at the end of the segment
	Max     float64   // highest elevation
	Changes []float64 // significant climbs and descents
	Gain    float64
	Loss    float64
	Length  float64 // meters
}

// Profile builds the summary row of a segment. Every point needs an elevation.
func Profile(s Segment, fuzz float64) (ProfileRow, error) {
	if len(s.Points) == 0 {
		return ProfileRow{}, ErrEmptySegment
	}
	elevations, err := s.Elevations()
	if err != nil {
		return ProfileRow{}, err
	}
	gain, loss, err := s.gainLoss()
	if err != nil {
		return ProfileRow{}, err
	}
	max, err := s.MaxElevation()
	if err != nil {
		return ProfileRow{}, err
	}
	return ProfileRow{
		Last:    elevations[len(elevations)-1],
		Max:     max,
		Changes: ElevationChanges(elevations, fuzz),
		Gain:    gain,
		Loss:    loss,
		Length:  s.Length(),
	}, nil
}
