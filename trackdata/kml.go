package trackdata

import (
	"fmt"
	"io"

	"github.com/dave/gpxtools/kml"
)

// ParseKML reads a kml document. Point placemarks become waypoints and every placemark
// with lines becomes a track holding one segment per LineString.
func ParseKML(r io.Reader) (*GPX, error) {
	root, err := kml.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return FromKML(root)
}

// FromKML converts a decoded kml document, walking nested folders in document order.
func FromKML(root kml.Root) (*GPX, error) {
	g := &GPX{}
	if err := g.addPlacemarks(root.Document.Placemarks); err != nil {
		return nil, err
	}
	if err := g.addFolders(root.Document.Folders); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GPX) addFolders(folders []*kml.Folder) error {
	for _, f := range folders {
		if err := g.addPlacemarks(f.Placemarks); err != nil {
			return fmt.Errorf("folder %q: %w", f.Name, err)
		}
		if err := g.addFolders(f.Folders); err != nil {
			return err
		}
	}
	return nil
}

func (g *GPX) addPlacemarks(placemarks []*kml.Placemark) error {
	for _, pm := range placemarks {
		if pm.Point != nil {
			c, err := pm.Point.Position()
			if err != nil {
				return fmt.Errorf("placemark %q: %w: %w", pm.Name, ErrMalformedInput, err)
			}
			g.Waypoints = append(g.Waypoints, fromCoordinate(c))
		}
		var track Track
		for _, ls := range pm.LineStrings() {
			coords, err := ls.Positions()
			if err != nil {
				return fmt.Errorf("placemark %q: %w: %w", pm.Name, ErrMalformedInput, err)
			}
			segment := Segment{Points: make([]Point, len(coords))}
			for i, c := range coords {
				segment.Points[i] = fromCoordinate(c)
			}
			track.Segments = append(track.Segments, segment)
		}
		if len(track.Segments) > 0 {
			g.Tracks = append(g.Tracks, track)
		}
	}
	return nil
}

func fromCoordinate(c kml.Coordinate) Point {
	p := Point{Lat: c.Lat, Lon: c.Lon}
	if c.HasEle {
		ele := c.Ele
		p.Ele = &ele
	}
	return p
}

// Coordinate converts to a kml coordinate, leaving out the altitude when p has none.
func (p Point) Coordinate() kml.Coordinate {
	c := kml.Coordinate{Pos: p.Pos()}
	c.HasEle = p.Ele != nil
	return c
}
