package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

const (
	Namespace = "http://www.topografix.com/GPX/1/1"
	Version   = "1.1"
	Creator   = "gpxtools"
)

// Decode reads a gpx document. Elements are matched by local name so GPX 1.0 and
// un-namespaced files load as well. Non UTF-8 encodings declared in the xml header
// are converted.
func Decode(reader io.Reader) (Root, error) {
	var r Root
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&r); err != nil {
		return Root{}, fmt.Errorf("decoding gpx: %w", err)
	}
	return r, nil
}

// Root is the gpx element. Waypoints are always written before tracks.
type Root struct {
	XMLName   xml.Name   `xml:"gpx"`
	Xmlns     string     `xml:"xmlns,attr,omitempty"`
	Version   string     `xml:"version,attr,omitempty"`
	Creator   string     `xml:"creator,attr,omitempty"`
	Waypoints []Waypoint `xml:"wpt"`
	Tracks    []Track    `xml:"trk"`
}

// Encode writes the document with an xml header. Namespace, version and creator are
// filled in when empty.
func (r Root) Encode(w io.Writer) error {
	if r.Xmlns == "" {
		r.Xmlns = Namespace
	}
	if r.Version == "" {
		r.Version = Version
	}
	if r.Creator == "" {
		r.Creator = Creator
	}
	r.XMLName = xml.Name{Local: "gpx"}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "\t")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding gpx: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing gpx: %w", err)
	}
	return nil
}

// Save writes the document to a new file. An existing file is never overwritten.
func (r Root) Save(fpath string) error {
	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return fmt.Errorf("creating gpx file %q: %w", fpath, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing gpx file %q: %w", fpath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing gpx file %q: %w", fpath, err)
	}
	return nil
}

// Waypoint is a wpt or trkpt element. Coordinates and elevation are kept as the
// literal attribute / element text so numeric precision survives a round trip.
type Waypoint struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele,omitempty"`
	Time *string `xml:"time,omitempty"`
}

type Track struct {
	Segments []TrackSegment `xml:"trkseg"`
}

type TrackSegment struct {
	Points []Waypoint `xml:"trkpt"`
}
