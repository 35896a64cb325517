// Package chart draws elevation profiles.
package chart

import (
	"fmt"
	"image"
	"os"

	"github.com/dave/gpxtools/trackdata"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const margin = 40

// Sample is one point of a profile: distance along the route in meters and elevation.
type Sample struct {
	Distance, Elevation float64
}

// Samples lays every track point of g along one distance axis. Segments follow each
// other with no gap; points without elevation count for distance but are not sampled.
func Samples(g *trackdata.GPX) ([]Sample, error) {
	var samples []Sample
	var distance float64
	for _, s := range g.Segments() {
		for i, p := range s.Points {
			if i > 0 {
				distance += trackdata.Distance(s.Points[i-1], p)
			}
			if p.Ele != nil {
				samples = append(samples, Sample{Distance: distance, Elevation: *p.Ele})
			}
		}
	}
	if len(samples) == 0 {
		return nil, trackdata.ErrNoElevationData
	}
	return samples, nil
}

// Render draws the elevation profile of g on a width x height canvas.
func Render(g *trackdata.GPX, width, height int) (image.Image, error) {
	dc, err := render(g, width, height)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Save renders the profile as a PNG in a new file. An existing file is never
// overwritten.
func Save(fpath string, g *trackdata.GPX, width, height int) error {
	dc, err := render(g, width, height)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("creating chart file %q: %w", fpath, err)
	}
	if err := dc.EncodePNG(file); err != nil {
		file.Close()
		return fmt.Errorf("encoding chart: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing chart file %q: %w", fpath, err)
	}
	return nil
}

func render(g *trackdata.GPX, width, height int) (*gg.Context, error) {
	if width <= 2*margin || height <= 2*margin {
		return nil, fmt.Errorf("chart size %dx%d is too small", width, height)
	}
	samples, err := Samples(g)
	if err != nil {
		return nil, fmt.Errorf("building profile: %w", err)
	}
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	min, max := samples[0].Elevation, samples[0].Elevation
	for _, s := range samples {
		if s.Elevation < min {
			min = s.Elevation
		}
		if s.Elevation > max {
			max = s.Elevation
		}
	}
	if max == min {
		max = min + 1
	}
	total := samples[len(samples)-1].Distance
	if total == 0 {
		total = 1
	}
	plotW := float64(width - 2*margin)
	plotH := float64(height - 2*margin)
	px := func(s Sample) (float64, float64) {
		return margin + s.Distance/total*plotW, margin + (1-(s.Elevation-min)/(max-min))*plotH
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// filled area under the profile
	dc.MoveTo(margin, margin+plotH)
	for _, s := range samples {
		dc.LineTo(px(s))
	}
	dc.LineTo(margin+samples[len(samples)-1].Distance/total*plotW, margin+plotH)
	dc.ClosePath()
	dc.SetRGBA(0.2, 0.4, 0.8, 0.3)
	dc.Fill()

	for i, s := range samples {
		x, y := px(s)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.SetRGB(0.1, 0.2, 0.6)
	dc.SetLineWidth(2)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, margin+plotH)
	dc.DrawLine(margin, margin+plotH, margin+plotW, margin+plotH)
	dc.Stroke()

	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 12}))
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", max), margin-4, margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", min), margin-4, margin+plotH, 1, 0.5)
	dc.DrawStringAnchored("0 km", margin, margin+plotH+4, 0.5, 1)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f km", samples[len(samples)-1].Distance/1000), margin+plotW, margin+plotH+4, 0.5, 1)

	title := fmt.Sprintf("%.1f km", g.Length()/1000)
	gain, gainErr := g.ElevationGain()
	loss, lossErr := g.ElevationLoss()
	if gainErr == nil && lossErr == nil {
		title += fmt.Sprintf(", +%.0f m / -%.0f m", gain, loss)
	}
	dc.DrawStringAnchored(title, float64(width)/2, margin/2, 0.5, 0.5)
	return dc, nil
}
