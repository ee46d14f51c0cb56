package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// updateLoginState persists the lockout machine's state for one account.
// A nil lockUntil unsets the field so Locked() sees no window at all.
func updateLoginState(ctx context.Context, coll *mongo.Collection, idField, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"login_attempts": attempts,
		"updated_at":     time.Now().UTC(),
	}
	if lastLogin != nil {
		set["last_login"] = *lastLogin
	}
	if lockUntil != nil {
		set["lock_until"] = *lockUntil
	}

	update := bson.M{"$set": set}
	if lockUntil == nil {
		update["$unset"] = bson.M{"lock_until": 1}
	}

	if _, err := coll.UpdateOne(ctx, bson.M{idField: id}, update); err != nil {
		return fmt.Errorf("update login state: %w", err)
	}
	return nil
}

// uniqueIndexes builds the unique role-id + email index models shared by all
// account collections.
func uniqueIndexes(idField string) []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: idField, Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}
