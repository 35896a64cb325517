package trackdata

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput    = errors.New("malformed input")
	ErrMissingElevation  = errors.New("point has no elevation")
	ErrNoElevationData   = errors.New("no elevation data")
	ErrPointNotFound     = errors.New("point not found")
	ErrNoPointsAvailable = errors.New("no points available")
	ErrEmptyInput        = errors.New("empty input")
	ErrEmptySegment      = errors.New("segment has no points")
)

// MissingElevationError identifies the point an elevation query tripped over.
type MissingElevationError struct {
	Index int // index of the point in its segment
	Point Point
}

func (e *MissingElevationError) Error() string {
	return fmt.Sprintf("point %d (%v, %v) has no elevation", e.Index, e.Point.Lat, e.Point.Lon)
}

func (e *MissingElevationError) Unwrap() error {
	return ErrMissingElevation
}
