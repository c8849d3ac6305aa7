package io

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
)

const sample = `i HOME 43.1300 -77.6300
i WORK 43.1310 -77.6250
i SHOP 43.1280 -77.6270
r HOME-WORK HOME WORK
r WORK-SHOP WORK
  SHOP
`

func TestReadNetwork(t *testing.T) {
	g, err := ReadNetwork(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadNetwork: %v", err)
	}
	if g.IntersectionCount() != 3 || g.RoadCount() != 2 {
		t.Fatalf("got %d intersections, %d roads; want 3, 2", g.IntersectionCount(), g.RoadCount())
	}
	home, _ := g.Intersection("HOME")
	if home.Lat != 43.13 || home.Lon != -77.63 {
		t.Errorf("HOME = (%v, %v)", home.Lat, home.Lon)
	}
	r, ok := g.Road("HOME-WORK")
	if !ok {
		t.Fatal("road HOME-WORK missing")
	}
	want := geo.Haversine(43.13, -77.63, 43.131, -77.625)
	if math.Abs(r.Distance-want) > 1e-12 {
		t.Errorf("Distance = %v, want %v", r.Distance, want)
	}
}

func TestReadNetworkEmpty(t *testing.T) {
	g, err := ReadNetwork(strings.NewReader("  \n\t\n"))
	if err != nil {
		t.Fatalf("ReadNetwork: %v", err)
	}
	if g.IntersectionCount() != 0 {
		t.Errorf("IntersectionCount() = %d, want 0", g.IntersectionCount())
	}
}

func TestReadNetworkErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    errs.Code
		message string
	}{
		{"unknown tag", "i A 1 2\nx B 1 2", errs.ErrCodeInvalidFormat, "record 2"},
		{"truncated intersection", "i A 1", errs.ErrCodeInvalidFormat, "truncated"},
		{"truncated road", "i A 1 2\ni B 1 3\nr AB A", errs.ErrCodeInvalidFormat, "record 3"},
		{"bad latitude", "i A north 2", errs.ErrCodeInvalidFormat, "latitude"},
		{"bad longitude", "i A 1 NaN", errs.ErrCodeInvalidFormat, "longitude"},
		{"road before intersection", "i A 1 2\nr AB A B\ni B 1 3", errs.ErrCodeNotFound, "record 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadNetwork(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("expected nil graph on error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %q, want %q (%v)", errs.GetCode(err), tt.code, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestReadNetworkUnknownIntersectionSentinel(t *testing.T) {
	_, err := ReadNetwork(strings.NewReader("i A 1 2\nr AB A B"))
	if !errors.Is(err, geo.ErrUnknownIntersection) {
		t.Errorf("err = %v, want wrapping ErrUnknownIntersection", err)
	}
}

func TestImportNetworkMissingFile(t *testing.T) {
	_, err := ImportNetwork(filepath.Join(t.TempDir(), "missing.txt"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errs.GetCode(err))
	}
	if errs.ExitCode(err) != errs.ExitFileNotFound {
		t.Errorf("ExitCode = %d, want %d", errs.ExitCode(err), errs.ExitFileNotFound)
	}
}

func TestWriteNetworkRoundTrip(t *testing.T) {
	g, err := ReadNetwork(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteNetwork(g, &buf); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}
	wantPrefix := "i HOME 43.13 -77.63\ni SHOP 43.128 -77.627\n"
	if !strings.HasPrefix(buf.String(), wantPrefix) {
		t.Errorf("output starts %q, want %q", buf.String(), wantPrefix)
	}

	g2, err := ReadNetwork(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if g2.IntersectionCount() != 3 || g2.RoadCount() != 2 {
		t.Errorf("re-read %d/%d, want 3/2", g2.IntersectionCount(), g2.RoadCount())
	}
	if math.Abs(g2.TotalDistance()-g.TotalDistance()) > 1e-12 {
		t.Errorf("TotalDistance = %v, want %v", g2.TotalDistance(), g.TotalDistance())
	}
}

func TestExportImportNetworkFile(t *testing.T) {
	g := geo.New()
	g.AddIntersection("A", 1, 2)
	g.AddIntersection("B", 1.5, 2.5)
	if _, err := g.AddRoad("AB", "A", "B"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "net.txt")
	if err := ExportNetwork(g, path); err != nil {
		t.Fatalf("ExportNetwork: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := got.RoadBetween("B", "A"); !ok {
		t.Error("road between A and B missing after import")
	}
}
