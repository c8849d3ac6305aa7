package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
)

// Network is the document form of a road network, shared by the JSON
// format, the HTTP API and the network store.
type Network struct {
	Intersections []IntersectionRecord `json:"intersections" bson:"intersections"`
	Roads         []RoadRecord         `json:"roads" bson:"roads"`
}

// IntersectionRecord is one intersection of a [Network].
type IntersectionRecord struct {
	ID  string  `json:"id" bson:"id"`
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// RoadRecord is one road of a [Network]. Miles is the stored length.
type RoadRecord struct {
	ID    string  `json:"id" bson:"id"`
	A     string  `json:"a" bson:"a"`
	B     string  `json:"b" bson:"b"`
	Miles float64 `json:"miles" bson:"miles"`
}

// FromGraph converts g to its document form.
func FromGraph(g *geo.Graph) Network {
	ins := g.Intersections()
	roads := g.Roads()
	n := Network{
		Intersections: make([]IntersectionRecord, len(ins)),
		Roads:         make([]RoadRecord, len(roads)),
	}
	for i, in := range ins {
		n.Intersections[i] = IntersectionRecord{ID: in.ID, Lat: in.Lat, Lon: in.Lon}
	}
	for i, r := range roads {
		n.Roads[i] = RoadRecord{ID: r.ID, A: r.A.ID, B: r.B.ID, Miles: r.Distance}
	}
	return n
}

// Graph builds a graph from the document. Roads keep their stored lengths.
func (n Network) Graph() (*geo.Graph, error) {
	g := geo.New()
	for _, in := range n.Intersections {
		if err := errs.ValidateID(in.ID); err != nil {
			return nil, fmt.Errorf("intersection: %w", err)
		}
		g.AddIntersection(in.ID, in.Lat, in.Lon)
	}
	for _, r := range n.Roads {
		if _, err := g.AddRoadWithDistance(r.ID, r.A, r.B, r.Miles); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// WriteJSON encodes g as an indented JSON [Network] document.
func WriteJSON(g *geo.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON [Network] document from r.
// Malformed JSON is reported as INVALID_FORMAT.
func ReadJSON(r io.Reader) (*geo.Graph, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	return n.Graph()
}

// ImportJSON reads a JSON network file from path.
func ImportJSON(path string) (*geo.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *geo.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// Load reads a network from path, choosing the format by extension:
// ".json" is JSON, anything else is the text format.
func Load(path string) (*geo.Graph, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path)
	}
	return ImportNetwork(path)
}

// Save writes g to path in the format [Load] would choose for it.
func Save(g *geo.Graph, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportJSON(g, path)
	}
	return ExportNetwork(g, path)
}
