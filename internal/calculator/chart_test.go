package calculator

import "testing"

func TestScalePoints(t *testing.T) {
	pts := ScalePoints([]float64{100, 200, 300})
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	want := []Point{
		{X: 40, Y: 210, Value: 100},
		{X: 400, Y: 125, Value: 200},
		{X: 760, Y: 40, Value: 300},
	}
	for i, w := range want {
		if pts[i] != w {
			t.Errorf("point %d: expected %+v, got %+v", i, w, pts[i])
		}
	}
}

func TestScalePoints_FlatAndSingle(t *testing.T) {
	flat := ScalePoints([]float64{5, 5})
	if flat[0].Y != 210 || flat[1].Y != 210 {
		t.Errorf("flat series should sit on the baseline, got %+v", flat)
	}
	single := ScalePoints([]float64{42})
	if single[0].X != 40 || single[0].Y != 210 {
		t.Errorf("single point: got %+v", single[0])
	}
	if ScalePoints(nil) != nil {
		t.Error("expected nil for an empty series")
	}
}

func TestPathData(t *testing.T) {
	pts := ScalePoints([]float64{100, 200, 300})
	if got, want := PathData(pts), "M 40 210 L 400 125 L 760 40"; got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}
	if got, want := AreaPath(pts), "M 40 210 L 400 125 L 760 40 L 760 210 L 40 210 Z"; got != want {
		t.Errorf("AreaPath = %q, want %q", got, want)
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		40:          "40",
		123.456:     "123.46",
		66.66666667: "66.67",
		0.5:         "0.5",
	}
	for in, want := range tests {
		if got := FormatCoord(in); got != want {
			t.Errorf("FormatCoord(%v) = %q, want %q", in, got, want)
		}
	}
}
