package store

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	netio "github.com/matzehuels/trailblazer/pkg/io"
)

func sampleNetwork() netio.Network {
	return netio.Network{
		Intersections: []netio.IntersectionRecord{{ID: "A", Lat: 1, Lon: 2}, {ID: "B", Lat: 1, Lon: 3}},
		Roads:         []netio.RoadRecord{{ID: "AB", A: "A", B: "B", Miles: 42.8}},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	if err := s.Save(ctx, "rochester", sampleNetwork()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "albany", netio.Network{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "rochester")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Roads) != 1 || got.Roads[0].Miles != 42.8 {
		t.Errorf("Load = %+v", got)
	}

	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].Name != "albany" || list[1].Roads != 1 || list[1].Intersections != 2 {
		t.Errorf("List = %+v", list)
	}

	if err := s.Delete(ctx, "albany"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "albany"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Load after Delete err = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "albany"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("second Delete err = %v, want NOT_FOUND", err)
	}
}

func TestStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	for _, name := range []string{"", "a/b", "..", "has space"} {
		if err := s.Save(ctx, name, netio.Network{}); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("Save(%q) err = %v, want INVALID_INPUT", name, err)
		}
	}
}

func TestDocumentBSON(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(newDocument("rochester", sampleNetwork(), now))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if m["_id"] != "rochester" {
		t.Errorf("_id = %v", m["_id"])
	}
	if m["roads"] != int32(1) && m["roads"] != int64(1) {
		t.Errorf("roads = %v (%T)", m["roads"], m["roads"])
	}
	if _, ok := m["network"]; !ok {
		t.Error("document should embed the network")
	}

	var s Summary
	if err := bson.Unmarshal(raw, &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "rochester" || s.Intersections != 2 || !s.UpdatedAt.Equal(now) {
		t.Errorf("Summary = %+v", s)
	}
}

func TestNewMongoRequiresURI(t *testing.T) {
	if _, err := NewMongo(context.Background(), MongoConfig{}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}
