package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	netio "github.com/matzehuels/trailblazer/pkg/io"
)

// Defaults for [MongoConfig].
const (
	DefaultDatabase   = "trailblazer"
	DefaultCollection = "networks"
	connectTimeout    = 10 * time.Second
)

// MongoConfig locates the networks collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Mongo is a [NetworkStore] backed by a MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongo connects to MongoDB and pings the server.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		now:    time.Now,
	}, nil
}

// Save upserts the network stored under name.
func (m *Mongo) Save(ctx context.Context, name string, n netio.Network) error {
	if err := errs.ValidateNetworkName(name); err != nil {
		return err
	}
	doc := newDocument(name, n, m.now())
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save network %q: %w", name, err)
	}
	return nil
}

// Load returns the network stored under name.
func (m *Mongo) Load(ctx context.Context, name string) (netio.Network, error) {
	if err := errs.ValidateNetworkName(name); err != nil {
		return netio.Network{}, err
	}
	var doc document
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return netio.Network{}, notFound(name)
	}
	if err != nil {
		return netio.Network{}, fmt.Errorf("load network %q: %w", name, err)
	}
	return doc.Network, nil
}

// List returns every stored network's summary, sorted by name.
func (m *Mongo) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"network": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	return out, nil
}

// Delete removes the network stored under name.
func (m *Mongo) Delete(ctx context.Context, name string) error {
	if err := errs.ValidateNetworkName(name); err != nil {
		return err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("delete network %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

var _ NetworkStore = (*Mongo)(nil)
