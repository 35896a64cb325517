package gpx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="UTF-8" standalone="no" ?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" creator="plan" version="1.1"
	xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
	<wpt lat="51.2" lon="0.57"><ele>110</ele></wpt>
	<trk><trkseg>
		<trkpt lat="51.1234" lon="0.5678"><ele>100</ele><time>2024-04-19T12:00:00Z</time></trkpt>
		<trkpt lat="51.4567" lon="0.5879"><ele>150</ele><time>2024-04-19T12:00:00Z</time></trkpt>
		<trkpt lat="51.2345000" lon="0.5789"></trkpt>
	</trkseg></trk>
</gpx>`

func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(root.Waypoints) != 1 {
		t.Fatalf("expected 1 waypoint, got %d", len(root.Waypoints))
	}
	if len(root.Tracks) != 1 || len(root.Tracks[0].Segments) != 1 {
		t.Fatalf("expected 1 track with 1 segment, got %+v", root.Tracks)
	}
	points := root.Tracks[0].Segments[0].Points
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Lat != "51.1234" || points[0].Lon != "0.5678" {
		t.Errorf("unexpected coordinates %q %q", points[0].Lat, points[0].Lon)
	}
	if points[0].Ele == nil || *points[0].Ele != "100" {
		t.Errorf("expected elevation 100, got %v", points[0].Ele)
	}
	if points[0].Time == nil || *points[0].Time != "2024-04-19T12:00:00Z" {
		t.Errorf("expected time, got %v", points[0].Time)
	}
	if points[2].Ele != nil || points[2].Time != nil {
		t.Errorf("expected no elevation or time on last point, got %v %v", points[2].Ele, points[2].Time)
	}
	if points[2].Lat != "51.2345000" {
		t.Errorf("expected literal latitude to be preserved, got %q", points[2].Lat)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	var buf bytes.Buffer
	if err := root.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("expected xml header, got %q", out[:20])
	}
	if strings.Count(out, `xmlns="http://www.topografix.com/GPX/1/1"`) != 1 {
		t.Errorf("expected exactly one default namespace declaration in %s", out)
	}
	if strings.Index(out, "<wpt") > strings.Index(out, "<trk>") {
		t.Errorf("expected waypoints before tracks in %s", out)
	}

	again, err := Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Decode of encoded output failed: %v", err)
	}
	a := root.Tracks[0].Segments[0].Points
	b := again.Tracks[0].Segments[0].Points
	if len(a) != len(b) {
		t.Fatalf("expected %d points, got %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Lat != b[i].Lat || a[i].Lon != b[i].Lon {
			t.Errorf("point %d: expected %s,%s got %s,%s", i, a[i].Lat, a[i].Lon, b[i].Lat, b[i].Lon)
		}
		if (a[i].Ele == nil) != (b[i].Ele == nil) {
			t.Errorf("point %d: elevation presence changed", i)
		}
	}
}

func TestDecodeLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<gpx version=\"1.1\" creator=\"caf\xe9\"><wpt lat=\"1\" lon=\"2\"/></gpx>"
	root, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if root.Creator != "café" {
		t.Errorf("expected creator to be converted to utf-8, got %q", root.Creator)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader("<gpx><trk>")); err == nil {
		t.Fatalf("expected an error for truncated xml")
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "out.gpx")
	root := Root{Waypoints: []Waypoint{{Lat: "1", Lon: "2"}}}
	if err := root.Save(fpath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	err = Root{}.Save(fpath)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected os.ErrExist, got %v", err)
	}
	after, _ := os.ReadFile(fpath)
	if !bytes.Equal(before, after) {
		t.Errorf("expected existing file to be left untouched")
	}
	loaded, err := Decode(bytes.NewReader(before))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(loaded.Waypoints) != 1 || loaded.Waypoints[0].Lat != "1" {
		t.Errorf("unexpected loaded waypoints %+v", loaded.Waypoints)
	}
}
