package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
)

// Record tags of the text format.
const (
	TagIntersection = "i"
	TagRoad         = "r"
)

// tokenizer yields whitespace-separated tokens and counts records.
type tokenizer struct {
	scan   *bufio.Scanner
	record int
}

func newTokenizer(r io.Reader) *tokenizer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	return &tokenizer{scan: s}
}

// next returns the next token, or ok=false at end of input.
func (t *tokenizer) next() (string, bool, error) {
	if t.scan.Scan() {
		return t.scan.Text(), true, nil
	}
	if err := t.scan.Err(); err != nil {
		return "", false, errs.Wrap(errs.ErrCodeInvalidFormat, err, "record %d", t.record)
	}
	return "", false, nil
}

// fields reads the n tokens following a record tag.
func (t *tokenizer) fields(tag string, n int) ([]string, error) {
	out := make([]string, 0, n)
	for len(out) < n {
		tok, ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidFormat,
				"record %d: truncated %q record: want %d fields, got %d", t.record, tag, n, len(out))
		}
		out = append(out, tok)
	}
	return out, nil
}

// ReadNetwork parses a network in the text format from r.
//
// Each intersection id and road id is validated with [errs.ValidateID].
// Redefining an intersection moves it; redefining a road adds a parallel
// road under the same id. See the package documentation for the format and
// the error codes returned.
func ReadNetwork(r io.Reader) (*geo.Graph, error) {
	g := geo.New()
	t := newTokenizer(r)
	for {
		tag, ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return g, nil
		}
		t.record++

		switch tag {
		case TagIntersection:
			f, err := t.fields(tag, 3)
			if err != nil {
				return nil, err
			}
			if err := errs.ValidateID(f[0]); err != nil {
				return nil, fmt.Errorf("record %d: %w", t.record, err)
			}
			lat, err := parseCoord(t.record, "latitude", f[1])
			if err != nil {
				return nil, err
			}
			lon, err := parseCoord(t.record, "longitude", f[2])
			if err != nil {
				return nil, err
			}
			g.AddIntersection(f[0], lat, lon)

		case TagRoad:
			f, err := t.fields(tag, 3)
			if err != nil {
				return nil, err
			}
			if err := errs.ValidateID(f[0]); err != nil {
				return nil, fmt.Errorf("record %d: %w", t.record, err)
			}
			if _, err := g.AddRoad(f[0], f[1], f[2]); err != nil {
				return nil, fmt.Errorf("record %d: %w", t.record, err)
			}

		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "record %d: unknown record type %q", t.record, tag)
		}
	}
}

func parseCoord(record int, name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.New(errs.ErrCodeInvalidFormat, "record %d: invalid %s %q", record, name, s)
	}
	return v, nil
}

// ImportNetwork reads a text-format network file from path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportNetwork(path string) (*geo.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNetwork(f)
}

// WriteNetwork writes g in the text format: every intersection in id order,
// then every road in insertion order. Explicit road lengths are not
// represented; use [WriteJSON] to keep them.
func WriteNetwork(g *geo.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, in := range g.Intersections() {
		fmt.Fprintf(bw, "%s %s %s %s\n", TagIntersection, in.ID, formatCoord(in.Lat), formatCoord(in.Lon))
	}
	for _, r := range g.Roads() {
		fmt.Fprintf(bw, "%s %s %s %s\n", TagRoad, r.ID, r.A.ID, r.B.ID)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportNetwork writes g to a text-format file at path.
func ExportNetwork(g *geo.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteNetwork(g, f)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
