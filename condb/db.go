// Package condb owns the single long-lived connection to MongoDB. It is
// initialized once at startup; a failure there is fatal for the process.
package condb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the store, verifies it with a ping and ensures the unique
// indexes the uniqueness constraints depend on.
func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	d := &DB{client: client, db: client.Database(dbName)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return d, nil
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Employees().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "staffNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = d.Vehicles().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vin", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *DB) Employees() *mongo.Collection {
	return d.db.Collection("employees")
}

func (d *DB) Vehicles() *mongo.Collection {
	return d.db.Collection("vehicles")
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
