package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dave/gpxtools/geo"
)

const Namespace = "http://www.opengis.net/kml/2.2"

func Decode(reader io.Reader) (Root, error) {
	var r Root
	if err := xml.NewDecoder(reader).Decode(&r); err != nil {
		return Root{}, fmt.Errorf("decoding kml: %w", err)
	}
	return r, nil
}

type Root struct {
	XMLName  xml.Name `xml:"kml"`
	Xmlns    string   `xml:"xmlns,attr"`
	Document Document `xml:"Document"`
}

func (r Root) Encode(w io.Writer) error {
	if r.Xmlns == "" {
		r.Xmlns = Namespace
	}
	r.XMLName = xml.Name{Local: "kml"}
	bw, err := xml.MarshalIndent(r, "", "\t")
	if err != nil {
		return fmt.Errorf("marshing kml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header+string(bw)+"\n"); err != nil {
		return fmt.Errorf("writing kml: %w", err)
	}
	return nil
}

// Save writes the document to a new file. An existing file is never overwritten.
func (r Root) Save(fpath string) error {
	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("creating kml file %q: %w", fpath, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing kml file %q: %w", fpath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing kml file %q: %w", fpath, err)
	}
	return nil
}

type Document struct {
	Name        string       `xml:"name"`
	Description string       `xml:"description"`
	Visibility  int          `xml:"visibility"`
	Open        int          `xml:"open"`
	Styles      []*Style     `xml:"Style"`
	Placemarks  []*Placemark `xml:"Placemark"`
	Folders     []*Folder    `xml:"Folder"`
}

type Style struct {
	Id        string    `xml:"id,attr,omitempty"`
	LineStyle LineStyle `xml:"LineStyle"`
}

type LineStyle struct {
	Color string  `xml:"color"`
	Width float64 `xml:"width,omitempty"`
}

type Folder struct {
	Name        string       `xml:"name"`
	Description string       `xml:"description"`
	Visibility  int          `xml:"visibility"`
	Open        int          `xml:"open"`
	Placemarks  []*Placemark `xml:"Placemark"`
	Folders     []*Folder    `xml:"Folder"`
}

type Placemark struct {
	Name          string         `xml:"name"`
	Description   string         `xml:"description"`
	Visibility    int            `xml:"visibility"`
	Open          int            `xml:"open"`
	StyleUrl      string         `xml:"styleUrl,omitempty"`
	Point         *Point         `xml:"Point,omitempty"`
	LineString    *LineString    `xml:"LineString,omitempty"`
	MultiGeometry *MultiGeometry `xml:"MultiGeometry,omitempty"`
}

type Point struct {
	Coordinates string `xml:"coordinates"`
}

// Coordinate is one lon,lat[,alt] tuple. HasEle is false when the altitude is left out.
type Coordinate struct {
	geo.Pos
	HasEle bool
}

func (p Point) Position() (Coordinate, error) {
	return parseCoordinate(strings.TrimSpace(p.Coordinates))
}

type LineString struct {
	Extrude      bool   `xml:"extrude"`
	Tessellate   bool   `xml:"tessellate"`
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

type MultiGeometry struct {
	LineStrings []*LineString `xml:"LineString"`
}

func (l LineString) Positions() ([]Coordinate, error) {
	fields := strings.Fields(l.Coordinates)
	line := make([]Coordinate, len(fields))
	for i, csv := range fields {
		c, err := parseCoordinate(csv)
		if err != nil {
			return nil, err
		}
		line[i] = c
	}
	return line, nil
}

// LineStrings returns the lines of the placemark, from either a LineString or a
// MultiGeometry.
func (p Placemark) LineStrings() []*LineString {
	var lines []*LineString
	if p.LineString != nil {
		lines = append(lines, p.LineString)
	}
	if p.MultiGeometry != nil {
		lines = append(lines, p.MultiGeometry.LineStrings...)
	}
	return lines
}

func parseCoordinate(csv string) (Coordinate, error) {
	var c Coordinate
	parts := strings.Split(csv, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinates %q", csv)
	}
	values := make([]float64, len(parts))
	for i, s := range parts {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Coordinate{}, fmt.Errorf("invalid coordinates %q: %w", csv, err)
		}
		values[i] = v
	}
	c.Lon, c.Lat = values[0], values[1]
	if len(values) == 3 {
		c.Ele, c.HasEle = values[2], true
	}
	return c, nil
}

func LineCoordinates(line []Coordinate) string {
	var sb strings.Builder
	for i, c := range line {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(PosCoordinates(c))
	}
	return sb.String()
}

// PosCoordinates writes lon,lat,alt, or lon,lat when there is no altitude.
func PosCoordinates(c Coordinate) string {
	if !c.HasEle {
		return fmt.Sprintf("%v,%v", c.Lon, c.Lat)
	}
	return fmt.Sprintf("%v,%v,%v", c.Lon, c.Lat, c.Ele)
}

// Colors are the line styles assigned to tracks in turn, as aabbggrr.
var Colors = []struct{ Name, Color string }{
	{"red", "961400FF"},
	{"green", "9678FF00"},
	{"blue", "96FF7800"},
	{"cyan", "96F0FF14"},
	{"orange", "961478FF"},
	{"dark_green", "96008C14"},
	{"purple", "96FF7878"},
	{"pink", "96A078F0"},
	{"brown", "96143C96"},
	{"dark_blue", "96F01414"},
}

// Styles returns one line style per entry in Colors.
func Styles(width float64) []*Style {
	var styles []*Style
	for _, c := range Colors {
		styles = append(styles, &Style{
			Id:        c.Name,
			LineStyle: LineStyle{Color: c.Color, Width: width},
		})
	}
	return styles
}
