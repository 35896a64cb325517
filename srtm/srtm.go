// Package srtm fills in missing point elevations from SRTM data.
package srtm

import (
	"fmt"
	"math"
	"net/http"

	"github.com/dave/gpxtools/geo"
	"github.com/dave/gpxtools/globals"
	"github.com/dave/gpxtools/trackdata"
	"github.com/schollz/progressbar/v3"
	"github.com/tkrajina/go-elevations/geoelevations"
)

// Source looks up the elevation at a position. *geoelevations.Srtm implements it.
type Source interface {
	GetElevation(client *http.Client, lat, lon float64) (float64, error)
}

// Filler looks up elevations, caching every result by position.
type Filler struct {
	source Source
	client *http.Client
	cache  map[geo.Pos]float64
}

// New returns a Filler backed by the SRTM tiles, downloaded on demand.
func New() (*Filler, error) {
	client, err := geoelevations.NewSrtm(http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("creating srtm client: %w", err)
	}
	return NewFiller(client, http.DefaultClient), nil
}

func NewFiller(source Source, client *http.Client) *Filler {
	return &Filler{
		source: source,
		client: client,
		cache:  map[geo.Pos]float64{},
	}
}

// Lookup returns the elevation at lat, lon. ok is false when the data has a void there.
func (f *Filler) Lookup(lat, lon float64) (ele float64, ok bool, err error) {
	pos := geo.Pos{Lat: lat, Lon: lon}
	ele, found := f.cache[pos]
	if !found {
		ele, err = f.source.GetElevation(f.client, lat, lon)
		if err != nil {
			return 0, false, fmt.Errorf("looking up elevation at %v, %v: %w", lat, lon, err)
		}
		f.cache[pos] = ele
	}
	if math.IsNaN(ele) {
		return 0, false, nil
	}
	return ele, true, nil
}

// Fill sets the elevation of every track point and waypoint that has none, or of every
// point when all is set. Points in an SRTM void are left as they are. It returns the
// number of points updated.
func (f *Filler) Fill(g *trackdata.GPX, all bool) (int, error) {
	var targets []*trackdata.Point
	for ti := range g.Tracks {
		for si := range g.Tracks[ti].Segments {
			points := g.Tracks[ti].Segments[si].Points
			for pi := range points {
				if all || points[pi].Ele == nil {
					targets = append(targets, &points[pi])
				}
			}
		}
	}
	for wi := range g.Waypoints {
		if all || g.Waypoints[wi].Ele == nil {
			targets = append(targets, &g.Waypoints[wi])
		}
	}
	logf("looking up %d elevations\n", len(targets))

	var bar *progressbar.ProgressBar
	if globals.LOG {
		bar = progressbar.Default(int64(len(targets)), "Looking up elevations")
	}
	var count int
	for _, p := range targets {
		ele, ok, err := f.Lookup(p.Lat, p.Lon)
		if err != nil {
			return count, err
		}
		if ok {
			p.Ele = &ele
			count++
		} else {
			debugf("no elevation data at %v, %v\n", p.Lat, p.Lon)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return count, nil
}
