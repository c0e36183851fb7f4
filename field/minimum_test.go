package field

import "testing"

func TestReferenceMinimumBowl(t *testing.T) {
	p, f, err := ReferenceMinimum(Bowl, Point{X: 4, Y: 3})
	if err != nil {
		t.Fatalf("ReferenceMinimum: %v", err)
	}
	if p.Dist(Point{}) > 1e-2 {
		t.Errorf("expected minimum near origin, got %+v", p)
	}
	if f > 1e-4 {
		t.Errorf("expected minimum value near 0, got %v", f)
	}
}

func TestReferenceMinimumRosenbrock(t *testing.T) {
	p, _, err := ReferenceMinimum(Rosenbrock, Point{X: -1.5, Y: 2})
	if err != nil {
		t.Fatalf("ReferenceMinimum: %v", err)
	}
	if p.Dist(Point{X: 1, Y: 1}) > 5e-2 {
		t.Errorf("expected minimum near (1, 1), got %+v", p)
	}
}
