package geo

import (
	"slices"
	"testing"
)

func TestBounds(t *testing.T) {
	if _, ok := New().Bounds(); ok {
		t.Error("empty graph should have no bounds")
	}

	g := New()
	g.AddIntersection("a", 43.1, -77.7)
	g.AddIntersection("b", 43.3, -77.5)
	g.AddIntersection("c", 43.2, -77.9)

	b, ok := g.Bounds()
	if !ok {
		t.Fatal("Bounds() returned false")
	}
	want := BoundingBox{MinLat: 43.1, MinLon: -77.9, MaxLat: 43.3, MaxLon: -77.5}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestSpatialIndexNearest(t *testing.T) {
	g := New()
	g.AddIntersection("origin", 0, 0)
	g.AddIntersection("east", 0, 1)
	g.AddIntersection("north", 1, 0)
	g.AddIntersection("far", 10, 10)

	idx := NewSpatialIndex(g)
	if idx.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", idx.Len())
	}

	tests := []struct {
		lat, lon float64
		want     string
	}{
		{0.1, 0.1, "origin"},
		{0.1, 0.9, "east"},
		{0.8, 0.1, "north"},
		{9, 9, "far"},
	}
	for _, tt := range tests {
		in, ok := idx.Nearest(tt.lat, tt.lon)
		if !ok {
			t.Fatalf("Nearest(%v, %v) found nothing", tt.lat, tt.lon)
		}
		if in.ID != tt.want {
			t.Errorf("Nearest(%v, %v) = %s, want %s", tt.lat, tt.lon, in.ID, tt.want)
		}
	}
}

func TestSpatialIndexEmpty(t *testing.T) {
	idx := NewSpatialIndex(New())
	if _, ok := idx.Nearest(0, 0); ok {
		t.Error("Nearest on empty index should return false")
	}
}

func TestSpatialIndexWithin(t *testing.T) {
	g := New()
	g.AddIntersection("in1", 0.5, 0.5)
	g.AddIntersection("in2", 0.2, 0.8)
	g.AddIntersection("out", 2, 2)

	idx := NewSpatialIndex(g)
	var ids []string
	for _, in := range idx.Within(BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}) {
		ids = append(ids, in.ID)
	}
	slices.Sort(ids)
	if want := []string{"in1", "in2"}; !slices.Equal(ids, want) {
		t.Errorf("Within() = %v, want %v", ids, want)
	}
}
