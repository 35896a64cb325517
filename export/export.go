// Package export converts track data into formats for map viewers.
package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/dave/gpxtools/kml"
	"github.com/dave/gpxtools/trackdata"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// KML builds a document with a Waypoints folder and a Tracks folder. Each track is
// one placemark styled with the next color in turn.
func KML(name string, g *trackdata.GPX) kml.Root {
	var folders []*kml.Folder
	if len(g.Waypoints) > 0 {
		waypointFolder := &kml.Folder{
			Name:       "Waypoints",
			Visibility: 1,
		}
		for i, w := range g.Waypoints {
			waypointFolder.Placemarks = append(waypointFolder.Placemarks, &kml.Placemark{
				Name:       fmt.Sprintf("Waypoint %d", i+1),
				Visibility: 1,
				Point:      &kml.Point{Coordinates: kml.PosCoordinates(w.Coordinate())},
			})
		}
		folders = append(folders, waypointFolder)
	}
	if len(g.Tracks) > 0 {
		tracksFolder := &kml.Folder{
			Name:       "Tracks",
			Visibility: 1,
		}
		for i, t := range g.Tracks {
			placemark := &kml.Placemark{
				Name:        fmt.Sprintf("Track %d", i+1),
				Description: fmt.Sprintf("%d segments, %.1f km", len(t.Segments), t.Length()/1000),
				Visibility:  1,
				StyleUrl:    "#" + kml.Colors[i%len(kml.Colors)].Name,
			}
			var lines []*kml.LineString
			for _, s := range t.Segments {
				if len(s.Points) == 0 {
					continue
				}
				lines = append(lines, lineString(s))
			}
			switch len(lines) {
			case 0:
				continue
			case 1:
				placemark.LineString = lines[0]
			default:
				placemark.MultiGeometry = &kml.MultiGeometry{LineStrings: lines}
			}
			tracksFolder.Placemarks = append(tracksFolder.Placemarks, placemark)
		}
		folders = append(folders, tracksFolder)
	}
	return kml.Root{
		Xmlns: kml.Namespace,
		Document: kml.Document{
			Name:       name,
			Visibility: 1,
			Open:       1,
			Styles:     kml.Styles(4),
			Folders:    folders,
		},
	}
}

func lineString(s trackdata.Segment) *kml.LineString {
	return &kml.LineString{
		Tessellate:   true,
		AltitudeMode: "clampToGround",
		Coordinates:  kml.LineCoordinates(coordinates(s)),
	}
}

func coordinates(s trackdata.Segment) []kml.Coordinate {
	out := make([]kml.Coordinate, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Coordinate()
	}
	return out
}

// GeoJSON builds a feature collection with one Point feature per waypoint and one
// MultiLineString feature per track. Elevations are carried as properties since orb
// geometries are two dimensional.
func GeoJSON(g *trackdata.GPX) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, w := range g.Waypoints {
		f := geojson.NewFeature(orb.Point{w.Lon, w.Lat})
		f.Properties["kind"] = "waypoint"
		f.Properties["index"] = i
		if w.Ele != nil {
			f.Properties["ele"] = *w.Ele
		}
		if w.Time != nil {
			f.Properties["time"] = *w.Time
		}
		fc.Append(f)
	}
	for i, t := range g.Tracks {
		var mls orb.MultiLineString
		for _, s := range t.Segments {
			if len(s.Points) == 0 {
				continue
			}
			ls := make(orb.LineString, 0, len(s.Points))
			for _, p := range s.Points {
				ls = append(ls, orb.Point{p.Lon, p.Lat})
			}
			mls = append(mls, ls)
		}
		if len(mls) == 0 {
			continue
		}
		f := geojson.NewFeature(mls)
		f.BBox = geojson.NewBBox(mls.Bound())
		f.Properties["kind"] = "track"
		f.Properties["index"] = i
		f.Properties["length"] = t.Length()
		if gain, err := t.ElevationGain(); err == nil {
			f.Properties["gain"] = gain
		}
		if loss, err := t.ElevationLoss(); err == nil {
			f.Properties["loss"] = loss
		}
		if max, err := t.MaxElevation(); err == nil {
			f.Properties["max_ele"] = max
		} else if !errors.Is(err, trackdata.ErrNoElevationData) {
			logf("track %d: %v\n", i, err)
		}
		fc.Append(f)
	}
	return fc
}

// SaveKML writes the KML export of g to a new file.
func SaveKML(fpath, name string, g *trackdata.GPX) error {
	return KML(name, g).Save(fpath)
}

// SaveGeoJSON writes the GeoJSON export of g to a new file. An existing file is never
// overwritten.
func SaveGeoJSON(fpath string, g *trackdata.GPX) error {
	b, err := GeoJSON(g).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling geojson: %w", err)
	}
	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("creating geojson file %q: %w", fpath, err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("writing geojson file %q: %w", fpath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing geojson file %q: %w", fpath, err)
	}
	return nil
}
