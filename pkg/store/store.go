// Package store persists named road networks.
//
// [Mongo] keeps one document per network in a MongoDB collection; [Memory]
// keeps them in process for tests and single-shot runs. Both validate names
// with [errs.ValidateNetworkName] and report unknown names as NOT_FOUND.
package store

import (
	"context"
	"time"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	netio "github.com/matzehuels/trailblazer/pkg/io"
)

// Summary describes a stored network without its contents.
type Summary struct {
	Name          string    `json:"name" bson:"_id"`
	Intersections int       `json:"intersections" bson:"intersections"`
	Roads         int       `json:"roads" bson:"roads"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// NetworkStore saves and loads networks by name.
type NetworkStore interface {
	Save(ctx context.Context, name string, n netio.Network) error
	Load(ctx context.Context, name string) (netio.Network, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

// document is the stored form of a network.
type document struct {
	Summary `bson:",inline"`
	Network netio.Network `bson:"network"`
}

func newDocument(name string, n netio.Network, now time.Time) document {
	return document{
		Summary: Summary{
			Name:          name,
			Intersections: len(n.Intersections),
			Roads:         len(n.Roads),
			UpdatedAt:     now.UTC(),
		},
		Network: n,
	}
}

func notFound(name string) error {
	return errs.New(errs.ErrCodeNotFound, "network %q not found", name)
}
