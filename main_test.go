package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dave/gpxtools/trackdata"
)

const climb = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<wpt lat="46.002" lon="7"></wpt>
	<trk>
		<trkseg>
			<trkpt lat="46" lon="7"><ele>100</ele></trkpt>
			<trkpt lat="46.001" lon="7"><ele>150</ele></trkpt>
			<trkpt lat="46.002" lon="7"><ele>90</ele></trkpt>
			<trkpt lat="46.003" lon="7"><ele>200</ele></trkpt>
		</trkseg>
	</trk>
</gpx>
`

const bare = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk>
		<trkseg>
			<trkpt lat="47" lon="8"></trkpt>
			<trkpt lat="47.001" lon="8"></trkpt>
		</trkseg>
		<trkseg>
			<trkpt lat="46" lon="7"></trkpt>
		</trkseg>
	</trk>
</gpx>
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	fpath := filepath.Join(dir, name)
	if err := os.WriteFile(fpath, []byte(content), 0666); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return fpath
}

func TestReport(t *testing.T) {
	fpath := write(t, t.TempDir(), "climb.gpx", climb)
	buf := &bytes.Buffer{}
	if err := report(buf, []string{fpath}, 50, -1); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	expected := fpath + "\t1\t200\t200\t'+50,-60,+110\t160\t60\t0.3\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	missing := write(t, t.TempDir(), "bare.gpx", bare)
	if err := report(&bytes.Buffer{}, []string{missing}, 50, -1); !errors.Is(err, trackdata.ErrMissingElevation) {
		t.Errorf("expected ErrMissingElevation, got %v", err)
	}
}

func TestJoinAndSequence(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.gpx", climb)
	b := write(t, dir, "b.gpx", bare)
	out := filepath.Join(dir, "joined.gpx")
	if err := newApp().Run([]string{"gpxtools", "join", "-o", out, a, b}); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	joined, err := trackdata.Load(out)
	if err != nil {
		t.Fatalf("loading joined file: %v", err)
	}
	if len(joined.Tracks) != 1 || len(joined.Segments()) != 3 || len(joined.Waypoints) != 1 {
		t.Errorf("expected one track of 3 segments and 1 waypoint")
	}

	before, _ := os.ReadFile(out)
	if err := join([]string{a}, out); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}
	after, _ := os.ReadFile(out)
	if !bytes.Equal(before, after) {
		t.Errorf("expected the existing file to be left untouched")
	}

	sequenced := filepath.Join(dir, "sequenced.gpx")
	if err := sequence([]string{b, a}, sequenced); err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	g, err := trackdata.Load(sequenced)
	if err != nil {
		t.Fatalf("loading sequenced file: %v", err)
	}
	if len(g.Segments()) != 3 {
		t.Errorf("expected 3 segments, got %d", len(g.Segments()))
	}

	if err := join(nil, filepath.Join(dir, "empty.gpx")); !errors.Is(err, trackdata.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	fpath := write(t, dir, "two.gpx", bare)
	format := filepath.Join(dir, DefaultFormat)
	names, err := split(fpath, format)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	expected := []string{filepath.Join(dir, "two_000.gpx"), filepath.Join(dir, "two_001.gpx")}
	if len(names) != 2 || names[0] != expected[0] || names[1] != expected[1] {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	g, err := trackdata.Load(names[1])
	if err != nil || len(g.Segments()) != 1 || len(g.TrackPoints()) != 1 {
		t.Errorf("expected the second file to hold the single point segment (%v)", err)
	}
	if _, err := split(fpath, format); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}
}

func TestSplitRejectsFormat(t *testing.T) {
	dir := t.TempDir()
	fpath := write(t, dir, "two.gpx", bare)
	for _, format := range []string{
		filepath.Join(dir, "%s.gpx"),
		filepath.Join(dir, "%[1]s.gpx"),
		filepath.Join(dir, "%d_%d.gpx"),
		filepath.Join(dir, "fixed.gpx"),
	} {
		if _, err := split(fpath, format); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: expected ErrInvalidFormat, got %v", format, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the input file, got %d entries", len(entries))
	}
	if err := checkFormat("%s-%d.gpx", "a.gpx"); err != nil {
		t.Errorf("expected a valid format to pass, got %v", err)
	}
}

func TestSplitPoints(t *testing.T) {
	dir := t.TempDir()
	fpath := write(t, dir, "climb.gpx", climb)
	out := filepath.Join(dir, "split.gpx")
	if _, err := splitPoints(fpath, out, DefaultFormat); err != nil {
		t.Fatalf("splitPoints failed: %v", err)
	}
	g, err := trackdata.Load(out)
	if err != nil {
		t.Fatalf("loading split file: %v", err)
	}
	segments := g.Segments()
	if len(segments) != 2 || len(segments[0].Points) != 3 || len(segments[1].Points) != 2 {
		t.Errorf("expected halves of 3 and 2 points")
	}

	names, err := splitPoints(fpath, "", filepath.Join(dir, "part-%s-%d.gpx"))
	if err != nil {
		t.Fatalf("splitPoints to separate files failed: %v", err)
	}
	if len(names) != 2 || names[0] != filepath.Join(dir, "part-climb-0.gpx") {
		t.Errorf("unexpected names %v", names)
	}
}

func TestEnrich(t *testing.T) {
	dir := t.TempDir()
	track := write(t, dir, "track.gpx", bare)
	data := write(t, dir, "data.gpx", strings.Replace(bare, `<trkpt lat="47" lon="8"></trkpt>`, `<trkpt lat="47.0000001" lon="8"><ele>321</ele><time>2024-04-19T12:00:00Z</time></trkpt>`, 1))
	if err := enrich(track, data, ""); err != nil {
		t.Fatalf("enrich failed: %v", err)
	}
	g, err := trackdata.Load(filepath.Join(dir, "track.with-data.gpx"))
	if err != nil {
		t.Fatalf("loading enriched file: %v", err)
	}
	p := g.TrackPoints()[0]
	if p.Ele == nil || *p.Ele != 321 || p.Time == nil {
		t.Errorf("expected elevation and time to be copied, got %v", p)
	}
	if err := enrich(track, data, ""); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	fpath := write(t, dir, "climb.gpx", climb)
	for _, format := range []string{"kml", "geojson"} {
		out := filepath.Join(dir, "climb."+format)
		if err := newApp().Run([]string{"gpxtools", "export", "--format", format, "-o", out, fpath}); err != nil {
			t.Fatalf("export %s failed: %v", format, err)
		}
		if err := exportFile(fpath, out, format); !errors.Is(err, ErrOutputExists) {
			t.Errorf("expected ErrOutputExists, got %v", err)
		}
	}
	if err := exportFile(fpath, filepath.Join(dir, "climb.shp"), "shp"); err == nil {
		t.Errorf("expected an unknown format to fail")
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	fpath := write(t, dir, "climb.gpx", climb)
	if err := tile(fpath, filepath.Join(dir, "tile.png"), 12, nil); err != nil {
		t.Errorf("tile failed: %v", err)
	}
	if err := drawChart(fpath, filepath.Join(dir, "chart.png"), 400, 200); err != nil {
		t.Errorf("chart failed: %v", err)
	}
	if err := drawChart(fpath, filepath.Join(dir, "chart.png"), 400, 200); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}
}

func TestSegmentName(t *testing.T) {
	if got := segmentName(DefaultFormat, "/data/tracks/day.one.gpx", 7); got != "day.one_007.gpx" {
		t.Errorf("unexpected name %q", got)
	}
	if got := withSuffix("/data/track.gpx", ".with-data.gpx"); got != "/data/track.with-data.gpx" {
		t.Errorf("unexpected name %q", got)
	}
}
