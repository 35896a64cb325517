package tiler

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/dave/gpxtools/geo"
	"github.com/dave/gpxtools/globals"
	"github.com/dave/gpxtools/trackdata"
	"github.com/fogleman/gg"
)

const (
	TileSize = 256
)

// SaveTile renders tile z/x/y of g as a PNG in a new file. An existing file is never
// overwritten.
func SaveTile(fpath string, g *trackdata.GPX, z, x, y int) error {
	dc := renderTile(z, x, y, g)
	file, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("creating tile file %q: %w", fpath, err)
	}
	if err := dc.EncodePNG(file); err != nil {
		file.Close()
		return fmt.Errorf("encoding tile %d/%d/%d: %w", z, x, y, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing tile file %q: %w", fpath, err)
	}
	return nil
}

// Render returns tile z/x/y of g. Everything outside the tile is transparent.
func Render(g *trackdata.GPX, z, x, y int) image.Image {
	return renderTile(z, x, y, g).Image()
}

// TileFor returns the x/y of the tile holding lat, lon at zoom z.
func TileFor(lat, lon float64, z int) (int, int) {
	return latLonToTileXY(lat, lon, z)
}

func renderTile(z, x, y int, g *trackdata.GPX) *gg.Context {
	dc := gg.NewContext(TileSize, TileSize)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	dc.SetLineWidth(2.0)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	if globals.DEBUG {
		debugText := fmt.Sprintf("x: %d, y: %d, z: %d", x, y, z)
		dc.DrawStringAnchored(debugText, TileSize/2, TileSize/2, 0.5, 0.5)
	}

	for trackIndex, track := range g.Tracks {
		if !overlapsTile(track, z, x, y) {
			continue
		}
		var found bool
		for _, segment := range track.Segments {
			for i := 0; i < len(segment.Points)-1; i++ {
				this, next := segment.Points[i], segment.Points[i+1]
				foundThis, xThis, yThis := isLatLonInTile(this.Lat, this.Lon, z, x, y)
				foundNext, xNext, yNext := isLatLonInTile(next.Lat, next.Lon, z, x, y)
				if foundThis || foundNext {
					found = true
					dc.MoveTo(xThis, yThis)
					dc.LineTo(xNext, yNext)
				}
			}
		}
		dc.Stroke()
		if !found {
			continue
		}
		name := fmt.Sprintf("Track %d", trackIndex+1)
		segments := nonEmpty(track.Segments)
		if len(segments) == 0 {
			continue
		}
		first := segments[0].Start()
		if startFound, startX, startY := isLatLonInTile(first.Lat, first.Lon, z, x, y); startFound {
			dc.DrawStringAnchored(name+" (start)", startX, startY, 0, 0)
		}
		last := segments[len(segments)-1].End()
		if endFound, endX, endY := isLatLonInTile(last.Lat, last.Lon, z, x, y); endFound {
			dc.DrawStringAnchored(name+" (end)", endX, endY, 0, 0)
		}
	}

	dc.SetRGB(0.8, 0, 0)
	for _, w := range g.Waypoints {
		if found, px, py := isLatLonInTile(w.Lat, w.Lon, z, x, y); found {
			dc.DrawCircle(px, py, 3)
			dc.Fill()
		}
	}
	return dc
}

// overlapsTile reports whether the bounding box of the track touches the tile.
func overlapsTile(track trackdata.Track, z, x, y int) bool {
	var lines []geo.Line
	for _, s := range track.Segments {
		lines = append(lines, s.Line())
	}
	line := geo.MergeLines(lines)
	if len(line) == 0 {
		return false
	}
	min, max := line.Bounds()
	latMin, latMax, lonMin, lonMax := tileBounds(z, x, y)
	return min.Lat <= latMax && max.Lat >= latMin && min.Lon <= lonMax && max.Lon >= lonMin
}

func nonEmpty(segments []trackdata.Segment) []trackdata.Segment {
	var out []trackdata.Segment
	for _, s := range segments {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// tileBounds returns the latitude and longitude range covered by a tile.
func tileBounds(z, x, y int) (latMin, latMax, lonMin, lonMax float64) {
	lonMin = float64(x)/math.Exp2(float64(z))*360.0 - 180.0
	lonMax = float64(x+1)/math.Exp2(float64(z))*360.0 - 180.0
	latMin = math.Atan(math.Sinh(math.Pi*(1-2*float64(y+1)/math.Exp2(float64(z))))) * 180.0 / math.Pi
	latMax = math.Atan(math.Sinh(math.Pi*(1-2*float64(y)/math.Exp2(float64(z))))) * 180.0 / math.Pi
	return latMin, latMax, lonMin, lonMax
}

// latLonToTileXY converts latitude and longitude to tile x/y coordinates at a given zoom level.
func latLonToTileXY(lat, lon float64, zoom int) (int, int) {
	tileX := int((lon + 180.0) / 360.0 * math.Exp2(float64(zoom)))
	tileY := int((1.0 - math.Log(math.Tan(lat*math.Pi/180.0)+1.0/math.Cos(lat*math.Pi/180.0))/math.Pi) / 2.0 * math.Exp2(float64(zoom)))
	return tileX, tileY
}

// latLonToPixelXY converts latitude and longitude to pixel x/y coordinates within a tile.
func latLonToPixelXY(lat, lon float64, zoom int) (float64, float64) {
	sinLat := math.Sin(lat * math.Pi / 180.0)
	pixelX := ((lon + 180.0) / 360.0) * TileSize * math.Exp2(float64(zoom))
	pixelY := (0.5 - math.Log((1.0+sinLat)/(1.0-sinLat))/(4.0*math.Pi)) * TileSize * math.Exp2(float64(zoom))
	return pixelX, pixelY
}

// isLatLonInTile checks if a given lat/lon is inside a specific tile and returns the x/y position within the tile.
func isLatLonInTile(lat, lon float64, z, x, y int) (bool, float64, float64) {
	latMin, latMax, lonMin, lonMax := tileBounds(z, x, y)

	pixelX, pixelY := latLonToPixelXY(lat, lon, z)
	tilePixelX := pixelX - float64(x)*TileSize
	tilePixelY := pixelY - float64(y)*TileSize

	return lat >= latMin && lat <= latMax && lon >= lonMin && lon <= lonMax, tilePixelX, tilePixelY
}
