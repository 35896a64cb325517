package trackdata

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func segment(points ...Point) Segment {
	return Segment{Points: points}
}

func TestPointEqual(t *testing.T) {
	a := NewPoint(46.0, 7.0, 1000)
	b := NewPoint(46.0, 7.0, 1000)
	if !a.Equal(b) {
		t.Errorf("expected points with equal values to be equal")
	}
	c := NewPoint(46.0, 7.0, 1001)
	if a.Equal(c) {
		t.Errorf("expected different elevations to differ")
	}
	d := Point{Lat: 46.0, Lon: 7.0}
	if a.Equal(d) || d.Equal(a) {
		t.Errorf("expected missing elevation to differ from present elevation")
	}
	tm := "2024-04-19T12:00:00Z"
	e := Point{Lat: 46.0, Lon: 7.0, Time: &tm}
	if d.Equal(e) {
		t.Errorf("expected missing time to differ from present time")
	}
	tm2 := "2024-04-19T12:00:00Z"
	if !e.Equal(Point{Lat: 46.0, Lon: 7.0, Time: &tm2}) {
		t.Errorf("expected equal times at different addresses to be equal")
	}
}

func TestSegmentLength(t *testing.T) {
	s := segment(
		Point{Lat: 46.0, Lon: 7.0},
		Point{Lat: 46.01, Lon: 7.0},
		Point{Lat: 46.01, Lon: 7.01},
	)
	expected := Distance(s.Points[0], s.Points[1]) + Distance(s.Points[1], s.Points[2])
	if got := s.Length(); math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, got)
	}
	if got := segment(Point{Lat: 1, Lon: 1}).Length(); got != 0 {
		t.Errorf("expected 0 for a single point, got %f", got)
	}
	if got := (Segment{}).Length(); got != 0 {
		t.Errorf("expected 0 for an empty segment, got %f", got)
	}
}

func TestSegmentMinMaxElevation(t *testing.T) {
	s := segment(
		Point{Lat: 46.0, Lon: 7.0},
		NewPoint(46.001, 7.0, 1200),
		NewPoint(46.002, 7.0, 900),
		Point{Lat: 46.003, Lon: 7.0},
		NewPoint(46.004, 7.0, 1500),
	)
	min, err := s.MinElevation()
	if err != nil || min != 900 {
		t.Errorf("expected min 900, got %f (%v)", min, err)
	}
	max, err := s.MaxElevation()
	if err != nil || max != 1500 {
		t.Errorf("expected max 1500, got %f (%v)", max, err)
	}

	bare := segment(Point{Lat: 1, Lon: 1}, Point{Lat: 2, Lon: 2})
	if _, err := bare.MinElevation(); !errors.Is(err, ErrNoElevationData) {
		t.Errorf("expected ErrNoElevationData, got %v", err)
	}
	if _, err := bare.MaxElevation(); !errors.Is(err, ErrNoElevationData) {
		t.Errorf("expected ErrNoElevationData, got %v", err)
	}
}

func TestSegmentGainLoss(t *testing.T) {
	s := segment(
		NewPoint(46.0, 7.0, 100),
		NewPoint(46.001, 7.0, 150),
		NewPoint(46.002, 7.0, 90),
		NewPoint(46.003, 7.0, 200),
	)
	gain, err := s.ElevationGain()
	if err != nil || gain != 160 {
		t.Errorf("expected gain 160, got %f (%v)", gain, err)
	}
	loss, err := s.ElevationLoss()
	if err != nil || loss != 60 {
		t.Errorf("expected loss 60, got %f (%v)", loss, err)
	}
}

func TestSegmentGainLossTelescopes(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		var s Segment
		size := 2 + r.Intn(200)
		for i := 0; i < size; i++ {
			s.Points = append(s.Points, NewPoint(46+float64(i)*0.001, 7, r.Float64()*3000-100))
		}
		gain, err := s.ElevationGain()
		if err != nil {
			t.Fatalf("ElevationGain failed: %v", err)
		}
		loss, err := s.ElevationLoss()
		if err != nil {
			t.Fatalf("ElevationLoss failed: %v", err)
		}
		expected := *s.End().Ele - *s.Start().Ele
		if math.Abs((gain-loss)-expected) > 1e-6 {
			t.Fatalf("expected gain-loss == %f, got %f", expected, gain-loss)
		}
	}
}

func TestSegmentMissingElevation(t *testing.T) {
	s := segment(
		NewPoint(46.0, 7.0, 100),
		NewPoint(46.001, 7.0, 150),
		Point{Lat: 46.002, Lon: 7.0},
	)
	_, err := s.ElevationGain()
	var missing *MissingElevationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingElevationError, got %v", err)
	}
	if missing.Index != 2 || missing.Point.Lat != 46.002 {
		t.Errorf("expected point 2 to be reported, got %d %v", missing.Index, missing.Point)
	}
	if !errors.Is(err, ErrMissingElevation) {
		t.Errorf("expected error to match ErrMissingElevation")
	}
	if _, err := s.ElevationLoss(); !errors.Is(err, ErrMissingElevation) {
		t.Errorf("expected ErrMissingElevation from loss, got %v", err)
	}
	if _, err := s.ElevationChanges(50); !errors.Is(err, ErrMissingElevation) {
		t.Errorf("expected ErrMissingElevation from changes, got %v", err)
	}
}

func TestSegmentSplitReconstructs(t *testing.T) {
	var s Segment
	for i := 0; i < 6; i++ {
		s.Points = append(s.Points, NewPoint(46+float64(i)*0.001, 7, float64(i*10)))
	}
	for i, p := range s.Points {
		a, b, err := s.Split(p)
		if err != nil {
			t.Fatalf("split at %d failed: %v", i, err)
		}
		if len(a.Points) != i+1 || len(b.Points) != len(s.Points)-i {
			t.Fatalf("split at %d: unexpected halves %d and %d", i, len(a.Points), len(b.Points))
		}
		if !a.End().Equal(p) || !b.Start().Equal(p) {
			t.Errorf("split at %d: expected both halves to share the split point", i)
		}
		joined := append(append([]Point{}, a.Points...), b.Points[1:]...)
		if len(joined) != len(s.Points) {
			t.Fatalf("split at %d: expected %d points after rejoining, got %d", i, len(s.Points), len(joined))
		}
		for j := range joined {
			if !joined[j].Equal(s.Points[j]) {
				t.Errorf("split at %d: point %d differs after rejoining", i, j)
			}
		}
	}
}

func TestSegmentSplitDoesNotAlias(t *testing.T) {
	s := segment(NewPoint(46.0, 7.0, 1), NewPoint(46.001, 7.0, 2), NewPoint(46.002, 7.0, 3))
	a, b, err := s.Split(s.Points[1])
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	a.Points[1].Lat = 0
	*b.Points[0].Ele = 99
	if s.Points[1].Lat != 46.001 || *s.Points[1].Ele != 2 {
		t.Errorf("expected original segment to be unchanged, got %v", s.Points[1])
	}
	if *a.Points[1].Ele != 2 {
		t.Errorf("expected halves not to share elevations")
	}
}

func TestSegmentSplitNotFound(t *testing.T) {
	s := segment(NewPoint(46.0, 7.0, 1), NewPoint(46.001, 7.0, 2))
	_, _, err := s.Split(NewPoint(46.0, 7.0, 5))
	if !errors.Is(err, ErrPointNotFound) {
		t.Fatalf("expected ErrPointNotFound, got %v", err)
	}
}
